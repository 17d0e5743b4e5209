package dynamo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultMass    = 0.045
	DefaultRadius  = 0.042
	DefaultMaxSpin = 200.0
)

// RigidBody is the physical state of the ball. Spin is in revolutions per
// second; everything else is SI.
type RigidBody struct {
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	Orientation mgl64.Quat
	Spin        mgl64.Vec3
	Mass        float64
	Radius      float64
	Active      bool

	maxSpin float64
	force   mgl64.Vec3
}

func NewRigidBody(mass, radius, maxSpin float64, start mgl64.Vec3) (*RigidBody, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, fmt.Errorf("%w: mass %v", ErrParameterBounds, mass)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: radius %v", ErrParameterBounds, radius)
	}
	if !(maxSpin > 0) || math.IsInf(maxSpin, 0) {
		return nil, fmt.Errorf("%w: max spin %v", ErrParameterBounds, maxSpin)
	}
	if !IsFinite(start) {
		return nil, fmt.Errorf("%w: start position %v", ErrParameterBounds, start)
	}
	return &RigidBody{
		Position:    start,
		Orientation: mgl64.QuatIdent(),
		Mass:        mass,
		Radius:      radius,
		maxSpin:     maxSpin,
	}, nil
}

func (b *RigidBody) MaxSpin() float64 { return b.maxSpin }

// SetSpin stores spin clamped to the body's spin cap, keeping its axis.
func (b *RigidBody) SetSpin(spin mgl64.Vec3) {
	if l := spin.Len(); l > b.maxSpin {
		spin = spin.Mul(b.maxSpin / l)
	}
	b.Spin = spin
}

func (b *RigidBody) ApplyForce(f mgl64.Vec3) { b.force = b.force.Add(f) }
func (b *RigidBody) Force() mgl64.Vec3       { return b.force }
func (b *RigidBody) ClearForces()            { b.force = mgl64.Vec3{} }

// Acceleration returns the accumulated force divided by mass.
func (b *RigidBody) Acceleration() mgl64.Vec3 {
	return b.force.Mul(1 / b.Mass)
}

func (b RigidBody) Speed() float64 { return b.Velocity.Len() }

// Grounded reports whether the ball touches the y=0 plane within eps.
func (b RigidBody) Grounded(eps float64) bool {
	return b.Position.Y() <= b.Radius+eps
}

// Rotate integrates orientation by angular velocity omega (rad/s) over dt.
func (b *RigidBody) Rotate(omega mgl64.Vec3, dt float64) {
	if omega.Len() == 0 {
		return
	}
	w := mgl64.Quat{W: 0, V: omega.Mul(0.5 * dt)}
	b.Orientation = b.Orientation.Add(w.Mul(b.Orientation)).Normalize()
}

func (b RigidBody) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.Dot(b.Velocity)
}

func (b RigidBody) IsValid() bool {
	return IsFinite(b.Position) && IsFinite(b.Velocity) && IsFinite(b.Spin) &&
		IsFinite(b.Orientation.V) && !math.IsNaN(b.Orientation.W) && !math.IsInf(b.Orientation.W, 0)
}

func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// HorizontalDistance is the distance between a and b projected onto the ground plane.
func HorizontalDistance(a, b mgl64.Vec3) float64 {
	dx, dz := b.X()-a.X(), b.Z()-a.Z()
	return math.Hypot(dx, dz)
}

type Integrator interface {
	Integrate(b *RigidBody, acc mgl64.Vec3, dt float64)
}

type Metric interface {
	Name() string
	Observe(b *RigidBody, t float64)
	Value() float64
	Reset()
}

// Launcher is implemented by metrics that need the launch state of a shot.
type Launcher interface {
	Launch(b *RigidBody)
}

type Observer interface {
	OnStep(b *RigidBody, t float64)
}

type Config struct {
	FixedStep     float64
	MinSubSteps   int
	MaxSubSteps   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		FixedStep:     1.0 / 120.0,
		MinSubSteps:   8,
		MaxSubSteps:   64,
		ValidateState: true,
	}
}

// SubSteps splits dt into equal sub-steps no larger than FixedStep where the
// bounds allow it.
func (c Config) SubSteps(dt float64) (int, float64) {
	n := int(math.Ceil(dt/c.FixedStep - 1e-9))
	if n < c.MinSubSteps {
		n = c.MinSubSteps
	}
	if c.MaxSubSteps > 0 && n > c.MaxSubSteps {
		n = c.MaxSubSteps
	}
	if n < 1 {
		n = 1
	}
	return n, dt / float64(n)
}
