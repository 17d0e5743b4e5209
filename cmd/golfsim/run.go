package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/golfsim/internal/config"
	"github.com/san-kum/golfsim/internal/logging"
	"github.com/san-kum/golfsim/internal/metrics"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/relay"
	"github.com/san-kum/golfsim/internal/session"
	"github.com/san-kum/golfsim/internal/shot"
	"github.com/san-kum/golfsim/internal/storage"
	"github.com/san-kum/golfsim/internal/viz"
)

const (
	trajectoryInterval = 0.05
	sinkBuffer         = 16
)

// runtime is one session with its physics, trajectory and shot store.
type runtime struct {
	cfg     *config.Config
	log     *zap.Logger
	stepper *physics.Stepper
	physErr error
	path    *shot.Trajectory
	session *session.Session
	store   *storage.Store
	sink    *storage.Sink
}

func newRuntime(cfg *config.Config, log *zap.Logger, notifiers ...session.Notifier) *runtime {
	rt := &runtime{
		cfg:   cfg,
		log:   log,
		path:  shot.NewTrajectory(trajectoryInterval),
		store: storage.New(cfg.DataDir),
	}

	rt.stepper, rt.physErr = cfg.NewStepper()
	if rt.physErr == nil {
		for _, m := range metrics.Flight() {
			rt.stepper.AddMetric(m)
		}
		rt.stepper.AddObserver(rt.path)
	}

	rt.sink = storage.NewSink(rt.store, log.Named("store"), cfg.Course.Name, sinkBuffer, rt.metrics, rt.path.Samples)

	opts := cfg.SessionOptions()
	opts.Logger = log.Named("session")
	opts.Notifier = session.Notifiers(append(notifiers, rt.sink))
	rt.session = session.New(opts)
	rt.session.AttachPhysics(rt.stepper, rt.physErr)
	return rt
}

func (rt *runtime) metrics() map[string]float64 {
	if rt.stepper == nil {
		return nil
	}
	return rt.stepper.Metrics()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Development)
}

func vec(name string, v []float64) (mgl64.Vec3, error) {
	if len(v) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("--%s needs 3 components, got %d", name, len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}

func runShot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	if !(frameDt > 0) || math.IsInf(frameDt, 0) {
		return fmt.Errorf("--dt must be positive, got %v", frameDt)
	}

	swing := session.Swing{}
	if swing.Velocity, err = vec("velocity", velocity); err != nil {
		return err
	}
	if swing.Spin, err = vec("spin", spin); err != nil {
		return err
	}
	if len(args) == 1 {
		preset, ok := config.GetShot(args[0])
		if !ok {
			return fmt.Errorf("unknown shot preset: %s (available: %v)", args[0], config.ShotNames())
		}
		p := preset.Swing()
		if !cmd.Flags().Changed("velocity") {
			swing.Velocity = p.Velocity
		}
		if !cmd.Flags().Changed("spin") {
			swing.Spin = p.Spin
		}
	}

	params, err := parseParams(paramFlags)
	if err != nil {
		return err
	}

	var results []shot.Result
	rt := newRuntime(cfg, log, session.ShotFunc(func(r shot.Result) { results = append(results, r) }))
	if rt.physErr != nil {
		return fmt.Errorf("physics: %w", rt.physErr)
	}
	if err := applyParams(rt.stepper, params); err != nil {
		return err
	}

	s := rt.session
	if err := s.Dispatch(session.PlayerReady{}); err != nil {
		return err
	}
	if wind != 0 {
		if err := s.Dispatch(session.SetEnvironment{Kind: session.EnvWind, Value: wind, Direction: mgl64.Vec3{1, 0, 0}}); err != nil {
			return err
		}
	}
	if err := s.Dispatch(swing); err != nil {
		return err
	}
	for len(results) == 0 {
		s.Tick(frameDt)
	}

	fmt.Println(viz.ResultCard(results[0], rt.stepper.Metrics()))
	if !noPlot {
		samples := rt.path.Samples()
		fmt.Println()
		fmt.Println(viz.PlotTrajectory(samples, 60, 10))
		fmt.Println()
		fmt.Println(viz.PlotLateral(samples, 60, 5))
	}

	if save {
		// draining a cancelled sink saves what it has queued
		ctx, cancel := context.WithCancel(cmd.Context())
		cancel()
		if err := rt.sink.Run(ctx); err != nil {
			return err
		}
		fmt.Printf("\nsaved: %s\n", results[0].ID)
	}
	return nil
}

// serve runs the relay and the shot sink next to run until one fails or
// the process is interrupted.
func serve(parent context.Context, rt *runtime, hub *relay.Hub, run func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return rt.sink.Run(ctx) })
	if hub != nil {
		g.Go(func() error { return hub.Serve(ctx, rt.cfg.Relay.Addr) })
	}
	g.Go(func() error { return run(ctx) })
	return g.Wait()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	commands := make(chan session.Command, 16)
	hub := relay.NewHub(log.Named("relay"), commands, cfg.Relay.SendBuffer)
	rt := newRuntime(cfg, log, hub)

	loop := session.NewLoop(rt.session, cfg.Session.FrameRate, cfg.Session.MaxFrameDt)
	log.Info("serving", zap.String("addr", cfg.Relay.Addr), zap.String("course", cfg.Course.Name), zap.String("data", cfg.DataDir))
	return serve(cmd.Context(), rt, hub, func(ctx context.Context) error {
		return loop.Run(ctx, commands)
	})
}

var errQuit = errors.New("quit")

func runSessionTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}
	log, err := logging.NewTo(cfg.Log.Level, cfg.Log.Development, filepath.Join(cfg.DataDir, "golfsim.log"))
	if err != nil {
		return err
	}
	defer log.Sync()

	feed := viz.NewFeed()
	notifiers := []session.Notifier{feed}

	var hub *relay.Hub
	var commands chan session.Command
	if withRelay {
		commands = make(chan session.Command, 16)
		hub = relay.NewHub(log.Named("relay"), commands, cfg.Relay.SendBuffer)
		notifiers = append(notifiers, hub)
	}
	rt := newRuntime(cfg, log, notifiers...)

	var presets []viz.Preset
	for _, name := range []string{"driver", "iron7", "wedge", "draw", "fade", "putt"} {
		p, _ := config.GetShot(name)
		presets = append(presets, viz.Preset{Name: name, Description: p.Description, Swing: p.Swing()})
	}

	model := viz.NewSessionModel(rt.session, feed, rt.path, commands, presets, cfg.Session.FrameRate, cfg.Session.MaxFrameDt)
	err = serve(cmd.Context(), rt, hub, func(ctx context.Context) error {
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		// leaving the program stops the relay and the sink
		return errQuit
	})
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
