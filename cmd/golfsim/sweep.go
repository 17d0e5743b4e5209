package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/golfsim/internal/config"
	"github.com/san-kum/golfsim/internal/export"
	"github.com/san-kum/golfsim/internal/metrics"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/shot"
	"github.com/san-kum/golfsim/internal/sim"
	"github.com/san-kum/golfsim/internal/terrain"
)

const planScale = 1.5

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	v, err := vec("velocity", velocity)
	if err != nil {
		return err
	}
	w, err := vec("spin", spin)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		preset, ok := config.GetShot(args[0])
		if !ok {
			return fmt.Errorf("unknown shot preset: %s (available: %v)", args[0], config.ShotNames())
		}
		p := preset.Swing()
		if !cmd.Flags().Changed("velocity") {
			v = p.Velocity
		}
		if !cmd.Flags().Changed("spin") {
			w = p.Spin
		}
	}

	var grid []sim.Axis
	for _, a := range axes {
		axis, err := sim.ParseAxis(a)
		if err != nil {
			return err
		}
		grid = append(grid, axis)
	}
	if len(grid) == 0 {
		return errors.New("nothing to sweep: pass at least one --axis")
	}

	obj := sim.Objective{Metric: metric, Maximize: !minimize}
	for _, name := range landIn {
		t, err := terrain.ParseType(name)
		if err != nil {
			return err
		}
		obj.Outcomes = append(obj.Outcomes, t)
	}

	params, err := parseParams(paramFlags)
	if err != nil {
		return err
	}

	simCfg := sim.DefaultConfig()
	simCfg.FrameDt = frameDt
	simCfg.MaxTime = cfg.Session.MaxFlightTime
	if svgFile != "" {
		simCfg.Record = trajectoryInterval
	}

	factory := func() (*physics.Stepper, error) {
		st, err := cfg.NewStepper()
		if err != nil {
			return nil, err
		}
		if err := applyParams(st, params); err != nil {
			return nil, err
		}
		for _, m := range metrics.Flight() {
			st.AddMetric(m)
		}
		return st, nil
	}

	g := sim.NewGridSearch(sim.LaunchFrom(v, w), grid...)
	ensemble := sim.NewEnsemble(factory, simCfg, workers)
	log.Info("sweep started", zap.Int("axes", len(grid)), zap.String("metric", metric))
	best, results, err := g.Search(cmd.Context(), ensemble, obj)
	if err != nil && !errors.Is(err, sim.ErrNoCandidate) {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, a := range grid {
		fmt.Fprintf(tw, "%s\t", a.Name)
	}
	fmt.Fprintf(tw, "%s\tDISTANCE\tOUTCOME\t\n", metric)
	for _, r := range results {
		for _, a := range grid {
			val, _ := r.Launch.Get(a.Name)
			fmt.Fprintf(tw, "%.1f\t", val)
		}
		m, _ := r.Value(metric)
		mark := ""
		if r == best {
			mark = "*"
		}
		fmt.Fprintf(tw, "%.2f\t%.1f\t%s\t%s\n", m, r.Distance, r.Outcome, mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if best == nil {
		fmt.Println("\nno launch met the objective")
	} else {
		fmt.Printf("\nbest: %+v\n", best.Launch)
	}

	if svgFile != "" {
		paths := make([][]shot.Sample, 0, len(results))
		for _, r := range results {
			paths = append(paths, r.Path)
		}
		if err := writePlan(svgFile, cfg.Course.Extents, cfg.Course.Zones, paths...); err != nil {
			return err
		}
		fmt.Printf("plan written to %s\n", svgFile)
	}
	return nil
}

func writePlan(path string, extents terrain.Extents, zones []terrain.Zone, paths ...[]shot.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.PlanSVG(f, export.Course{Extents: extents, Zones: zones}, planScale, paths...); err != nil {
		return err
	}
	return f.Close()
}
