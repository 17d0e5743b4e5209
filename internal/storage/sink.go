package storage

import (
	"context"

	"go.uber.org/zap"

	"github.com/san-kum/golfsim/internal/session"
	"github.com/san-kum/golfsim/internal/shot"
	"github.com/san-kum/golfsim/internal/terrain"
)

type pending struct {
	rec        Record
	trajectory []shot.Sample
}

// Sink is a session.Notifier that saves finished shots from its own
// goroutine so the session never waits on disk.
type Sink struct {
	store   *Store
	log     *zap.Logger
	course  string
	queue   chan pending
	metrics func() map[string]float64
	path    func() []shot.Sample
}

var _ session.Notifier = (*Sink)(nil)

// NewSink queues up to buffer shots. metrics and path are read on the
// session goroutine when a shot is recorded; either may be nil.
func NewSink(store *Store, log *zap.Logger, course string, buffer int, metrics func() map[string]float64, path func() []shot.Sample) *Sink {
	if buffer < 1 {
		buffer = 1
	}
	return &Sink{
		store:   store,
		log:     log,
		course:  course,
		queue:   make(chan pending, buffer),
		metrics: metrics,
		path:    path,
	}
}

func (k *Sink) ShotRecorded(r shot.Result) {
	p := pending{rec: Record{Result: r, Course: k.course}}
	if k.metrics != nil {
		p.rec.Metrics = k.metrics()
	}
	if k.path != nil {
		p.trajectory = k.path()
	}
	select {
	case k.queue <- p:
	default:
		k.log.Warn("shot store backlog full, dropping shot", zap.String("id", r.ID.String()))
	}
}

func (k *Sink) StateChanged(session.State, session.State) {}
func (k *Sink) CameraModeChanged(session.CameraMode)      {}
func (k *Sink) AudioCue(terrain.Cue)                      {}

// Run saves queued shots until ctx is done, then drains what is left.
func (k *Sink) Run(ctx context.Context) error {
	if err := k.store.Init(); err != nil {
		return err
	}
	for {
		select {
		case p := <-k.queue:
			k.save(p)
		case <-ctx.Done():
			for {
				select {
				case p := <-k.queue:
					k.save(p)
				default:
					return nil
				}
			}
		}
	}
}

func (k *Sink) save(p pending) {
	id, err := k.store.Save(p.rec, p.trajectory)
	if err != nil {
		k.log.Error("save shot", zap.String("id", p.rec.ID.String()), zap.Error(err))
		return
	}
	k.log.Info("shot saved", zap.String("id", id), zap.Float64("distance", p.rec.Distance))
}
