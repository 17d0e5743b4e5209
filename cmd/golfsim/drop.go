package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/san-kum/golfsim/internal/metrics"
	"github.com/san-kum/golfsim/internal/physics"
)

// parseParams reads name=value physics overrides.
func parseParams(raw []string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for _, kv := range raw {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --param %q: want name=value", kv)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --param %q: %w", kv, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

func applyParams(st *physics.Stepper, params map[string]float64) error {
	for name, v := range params {
		if err := st.SetParam(name, v); err != nil {
			return fmt.Errorf("--param %s: %w (known: %v)", name, err, physics.ParamNames())
		}
	}
	return nil
}

// runDrop lets a ball fall from a point and reports where and how it settles.
func runDrop(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !(frameDt > 0) || math.IsInf(frameDt, 0) {
		return fmt.Errorf("--dt must be positive, got %v", frameDt)
	}
	var pos mgl64.Vec3
	for i, a := range args {
		if pos[i], err = strconv.ParseFloat(a, 64); err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", a, err)
		}
	}
	params, err := parseParams(paramFlags)
	if err != nil {
		return err
	}

	st, err := cfg.NewStepper()
	if err != nil {
		return err
	}
	if err := applyParams(st, params); err != nil {
		return err
	}
	bounces := metrics.NewBounces()
	st.AddMetric(bounces)
	if err := st.DropBall(pos); err != nil {
		return err
	}

	limit := cfg.Session.MaxFlightTime
	for !st.Finished() && st.Elapsed() < limit {
		st.Step(frameDt)
	}
	if !st.Finished() {
		st.Halt()
	}

	b := st.Body()
	fmt.Printf("rest     (%.2f, %.2f, %.2f)\n", b.Position.X(), b.Position.Y(), b.Position.Z())
	fmt.Printf("terrain  %s\n", st.Outcome())
	fmt.Printf("bounces  %.0f\n", bounces.Value())
	fmt.Printf("time     %.2f s\n", st.Elapsed())
	return nil
}
