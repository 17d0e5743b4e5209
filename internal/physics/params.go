package physics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/golfsim/internal/dynamo"
)

const (
	DefaultGravity         = 9.81
	DefaultDragCoeff       = 0.01
	DefaultMagnusCoeff     = 1e-4
	DefaultViscousDamping  = 0.9
	DefaultRollingFactor   = 0.3
	DefaultBounceThreshold = 0.3
	DefaultGroundSpinDecay = 4.0
	DefaultRestSpeed       = 0.05

	// contactSlop is how far above the plane a ball still counts as touching it.
	contactSlop = 1e-4
)

type MagnusMode uint8

const (
	MagnusCross MagnusMode = iota
	MagnusDecoupled
)

func (m MagnusMode) String() string {
	if m == MagnusDecoupled {
		return "decoupled"
	}
	return "cross"
}

func ParseMagnusMode(s string) (MagnusMode, error) {
	switch strings.ToLower(s) {
	case "", "cross":
		return MagnusCross, nil
	case "decoupled":
		return MagnusDecoupled, nil
	}
	return 0, fmt.Errorf("unknown magnus mode: %s", s)
}

// Params are the overridable physical constants of the simulation.
type Params struct {
	Gravity         float64
	DragCoeff       float64
	MagnusCoeff     float64
	MagnusMode      MagnusMode
	ViscousDamping  float64
	RollingFactor   float64
	BounceThreshold float64
	GroundSpinDecay float64
	RestSpeed       float64
	Step            dynamo.Config
}

func DefaultParams() Params {
	return Params{
		Gravity:         DefaultGravity,
		DragCoeff:       DefaultDragCoeff,
		MagnusCoeff:     DefaultMagnusCoeff,
		ViscousDamping:  DefaultViscousDamping,
		RollingFactor:   DefaultRollingFactor,
		BounceThreshold: DefaultBounceThreshold,
		GroundSpinDecay: DefaultGroundSpinDecay,
		RestSpeed:       DefaultRestSpeed,
		Step:            dynamo.DefaultConfig(),
	}
}

func (p Params) Validate() error {
	nonNeg := map[string]float64{
		"gravity":          p.Gravity,
		"drag":             p.DragCoeff,
		"magnus":           p.MagnusCoeff,
		"rolling_factor":   p.RollingFactor,
		"bounce_threshold": p.BounceThreshold,
		"spin_decay":       p.GroundSpinDecay,
		"rest_speed":       p.RestSpeed,
	}
	for name, v := range nonNeg {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s = %v", dynamo.ErrParameterBounds, name, v)
		}
	}
	if !(p.ViscousDamping >= 0 && p.ViscousDamping <= 1) {
		return fmt.Errorf("%w: viscous_damping = %v", dynamo.ErrParameterBounds, p.ViscousDamping)
	}
	if !(p.Step.FixedStep > 0) || math.IsInf(p.Step.FixedStep, 0) {
		return fmt.Errorf("%w: fixed_step = %v", dynamo.ErrParameterBounds, p.Step.FixedStep)
	}
	if p.Step.MinSubSteps < 1 || (p.Step.MaxSubSteps > 0 && p.Step.MaxSubSteps < p.Step.MinSubSteps) {
		return fmt.Errorf("%w: sub-steps %d..%d", dynamo.ErrParameterBounds, p.Step.MinSubSteps, p.Step.MaxSubSteps)
	}
	return nil
}

func (p *Params) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity":          p.Gravity,
		"drag":             p.DragCoeff,
		"magnus":           p.MagnusCoeff,
		"viscous_damping":  p.ViscousDamping,
		"rolling_factor":   p.RollingFactor,
		"bounce_threshold": p.BounceThreshold,
		"spin_decay":       p.GroundSpinDecay,
		"rest_speed":       p.RestSpeed,
	}
}

func (p *Params) SetParam(name string, value float64) error {
	next := *p
	switch name {
	case "gravity":
		next.Gravity = value
	case "drag":
		next.DragCoeff = value
	case "magnus":
		next.MagnusCoeff = value
	case "viscous_damping":
		next.ViscousDamping = value
	case "rolling_factor":
		next.RollingFactor = value
	case "bounce_threshold":
		next.BounceThreshold = value
	case "spin_decay":
		next.GroundSpinDecay = value
	case "rest_speed":
		next.RestSpeed = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}

func ParamNames() []string {
	var p Params
	names := make([]string, 0, 8)
	for k := range p.GetParams() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
