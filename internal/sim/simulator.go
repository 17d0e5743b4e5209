package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/shot"
)

// Simulator plays shots on one stepper without a session: no state machine
// and no notifications, just launch, step and measure.
type Simulator struct {
	stepper *physics.Stepper
	cfg     Config
	path    *shot.Trajectory
}

func New(st *physics.Stepper, cfg Config) (*Simulator, error) {
	if st == nil {
		return nil, errors.New("sim: nil stepper")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{stepper: st, cfg: cfg}
	if cfg.Record > 0 {
		s.path = shot.NewTrajectory(cfg.Record)
		st.AddObserver(s.path)
	}
	return s, nil
}

// Run tees the ball, launches l and steps until the shot finishes or
// MaxTime passes. A stepper that goes non-finite is reported as an error.
func (s *Simulator) Run(ctx context.Context, l Launch) (res *Result, err error) {
	st := s.stepper
	defer func() {
		if r := recover(); r != nil {
			var simErr *dynamo.SimulationError
			if e, ok := r.(error); ok && errors.As(e, &simErr) {
				res, err = nil, fmt.Errorf("launch %+v: %w", l, simErr)
				return
			}
			panic(r)
		}
	}()

	st.ResetBall()
	if s.path != nil {
		s.path.Reset()
	}
	start := st.Body().Position
	velocity, spin := l.Vectors()
	if err := st.SetInitialShot(velocity, spin); err != nil {
		return nil, err
	}

	res = &Result{Launch: l}
	for !st.Finished() {
		if res.Time >= s.cfg.MaxTime {
			res.TimedOut = true
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		st.Step(s.cfg.FrameDt)
		res.Time += s.cfg.FrameDt
		res.Frames++
	}

	st.Halt()
	res.Rest = st.Body().Position
	res.Outcome = st.Outcome()
	res.Distance = dynamo.HorizontalDistance(start, res.Rest)
	res.Metrics = st.Metrics()
	if s.path != nil {
		res.Path = s.path.Samples()
	}
	return res, nil
}
