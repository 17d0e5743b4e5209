package viz

import (
	"fmt"
	"sync"

	"github.com/san-kum/golfsim/internal/session"
	"github.com/san-kum/golfsim/internal/shot"
	"github.com/san-kum/golfsim/internal/terrain"
)

const feedSize = 8

// Feed is a session.Notifier that keeps the recent notifications and the
// last shot for display.
type Feed struct {
	mu     sync.Mutex
	events []string
	last   shot.Result
	shots  int
}

var _ session.Notifier = (*Feed)(nil)

func NewFeed() *Feed { return &Feed{} }

func (f *Feed) push(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, line)
	if len(f.events) > feedSize {
		f.events = f.events[len(f.events)-feedSize:]
	}
}

func (f *Feed) StateChanged(from, to session.State) {
	f.push(fmt.Sprintf("%s → %s", from, to))
}

func (f *Feed) ShotRecorded(r shot.Result) {
	f.mu.Lock()
	f.last = r
	f.shots++
	f.mu.Unlock()
	f.push(fmt.Sprintf("shot %.1f m %s", r.Distance, r.Outcome))
}

func (f *Feed) CameraModeChanged(mode session.CameraMode) {
	f.push("camera " + string(mode))
}

func (f *Feed) AudioCue(cue terrain.Cue) {
	if cue != terrain.CueNone {
		f.push("♪ " + string(cue))
	}
}

func (f *Feed) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

// Last returns the most recent shot and whether there has been one.
func (f *Feed) Last() (shot.Result, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.shots > 0
}

func (f *Feed) Shots() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shots
}
