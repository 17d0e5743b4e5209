package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultFrameRate  = 60.0
	DefaultMaxFrameDt = 0.1
)

// Loop drives a Session from one goroutine: commands are applied as they
// arrive and Tick runs on every frame.
type Loop struct {
	session    *Session
	log        *zap.Logger
	frameRate  float64
	maxFrameDt float64

	// OnFrame runs after every Tick on the loop goroutine.
	OnFrame func(s *Session, dt float64)
}

func NewLoop(s *Session, frameRate, maxFrameDt float64) *Loop {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	if maxFrameDt <= 0 {
		maxFrameDt = DefaultMaxFrameDt
	}
	return &Loop{
		session:    s,
		log:        s.log.Named("loop"),
		frameRate:  frameRate,
		maxFrameDt: maxFrameDt,
	}
}

// Run blocks until ctx is done. A closed commands channel only stops
// command intake; frames keep running.
func (l *Loop) Run(ctx context.Context, commands <-chan Command) error {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / l.frameRate))
	defer ticker.Stop()

	l.log.Info("loop started", zap.Float64("frame_rate", l.frameRate))
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.log.Info("loop stopped", zap.Stringer("state", l.session.State()))
			return nil
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			_ = l.session.Dispatch(cmd)
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt <= 0 {
				continue
			}
			if dt > l.maxFrameDt {
				dt = l.maxFrameDt
			}
			l.session.Tick(dt)
			if l.OnFrame != nil {
				l.OnFrame(l.session, dt)
			}
		}
	}
}
