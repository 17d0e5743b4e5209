package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/golfsim/internal/physics"
)

// Factory builds an independent stepper, metrics attached. Steppers are not
// safe to share, so every run gets its own.
type Factory func() (*physics.Stepper, error)

// Ensemble runs many launches concurrently.
type Ensemble struct {
	factory Factory
	cfg     Config
	workers int
}

// NewEnsemble runs at most workers shots at once; workers <= 0 uses
// GOMAXPROCS.
func NewEnsemble(f Factory, cfg Config, workers int) *Ensemble {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Ensemble{factory: f, cfg: cfg, workers: workers}
}

// Run returns one result per launch, in launch order. The first failure
// cancels the remaining runs.
func (e *Ensemble) Run(ctx context.Context, launches []Launch) ([]*Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	results := make([]*Result, len(launches))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, l := range launches {
		g.Go(func() error {
			st, err := e.factory()
			if err != nil {
				return err
			}
			s, err := New(st, e.cfg)
			if err != nil {
				return err
			}
			results[i], err = s.Run(ctx, l)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
