package session

import (
	"github.com/san-kum/golfsim/internal/shot"
	"github.com/san-kum/golfsim/internal/terrain"
)

// Notifier receives outbound notifications. Calls are made on the session
// goroutine and must not block.
type Notifier interface {
	StateChanged(from, to State)
	ShotRecorded(r shot.Result)
	CameraModeChanged(mode CameraMode)
	AudioCue(cue terrain.Cue)
}

// Notifiers fans every notification out in order.
type Notifiers []Notifier

func (ns Notifiers) StateChanged(from, to State) {
	for _, n := range ns {
		n.StateChanged(from, to)
	}
}

func (ns Notifiers) ShotRecorded(r shot.Result) {
	for _, n := range ns {
		n.ShotRecorded(r)
	}
}

func (ns Notifiers) CameraModeChanged(mode CameraMode) {
	for _, n := range ns {
		n.CameraModeChanged(mode)
	}
}

func (ns Notifiers) AudioCue(cue terrain.Cue) {
	for _, n := range ns {
		n.AudioCue(cue)
	}
}

type NopNotifier struct{}

func (NopNotifier) StateChanged(State, State)    {}
func (NopNotifier) ShotRecorded(shot.Result)     {}
func (NopNotifier) CameraModeChanged(CameraMode) {}
func (NopNotifier) AudioCue(terrain.Cue)         {}

// ShotFunc adapts a function to a Notifier that only cares about results.
type ShotFunc func(shot.Result)

func (f ShotFunc) StateChanged(State, State)    {}
func (f ShotFunc) ShotRecorded(r shot.Result)   { f(r) }
func (f ShotFunc) CameraModeChanged(CameraMode) {}
func (f ShotFunc) AudioCue(terrain.Cue)         {}
