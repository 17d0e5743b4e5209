package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/terrain"
)

// Surface classifies ground positions and supplies contact coefficients.
type Surface interface {
	Classify(pos mgl64.Vec3) terrain.Type
	Coefficients(t terrain.Type) (terrain.Coefficients, bool)
}

// Stepper owns the ball and advances it frame by frame. It is driven from a
// single goroutine.
type Stepper struct {
	params  Params
	aero    Aerodynamics
	integ   dynamo.Integrator
	surface Surface

	body     *dynamo.RigidBody
	start    mgl64.Vec3
	wind     mgl64.Vec3
	terrain  terrain.Type
	coeff    terrain.Coefficients
	fallback terrain.Coefficients
	grounded bool

	t     float64
	steps int

	observers []dynamo.Observer
	metrics   []dynamo.Metric
}

func NewStepper(p Params, body *dynamo.RigidBody, integ dynamo.Integrator, surface Surface) (*Stepper, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if body == nil || integ == nil || surface == nil {
		return nil, fmt.Errorf("physics: stepper needs a body, an integrator and a surface")
	}
	fallback, ok := surface.Coefficients(terrain.Fairway)
	if !ok {
		fallback = terrain.DefaultSurfaces()[terrain.Fairway]
	}
	s := &Stepper{
		params:   p,
		aero:     NewAerodynamics(p),
		integ:    integ,
		surface:  surface,
		body:     body,
		start:    body.Position,
		fallback: fallback,
	}
	s.ResetBall()
	return s, nil
}

func (s *Stepper) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Stepper) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }

func (s *Stepper) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Body returns a copy of the ball state.
func (s *Stepper) Body() dynamo.RigidBody        { return *s.body }
func (s *Stepper) Start() mgl64.Vec3             { return s.start }
func (s *Stepper) Terrain() terrain.Type         { return s.terrain }
func (s *Stepper) Grounded() bool                { return s.grounded }
func (s *Stepper) AtRest() bool                  { return !s.body.Active }
func (s *Stepper) Elapsed() float64              { return s.t }
func (s *Stepper) Params() Params                { return s.params }
func (s *Stepper) Wind() mgl64.Vec3              { return s.wind }
func (s *Stepper) Gravity() float64              { return s.params.Gravity }
func (s *Stepper) GetParams() map[string]float64 { return s.params.GetParams() }

func (s *Stepper) SetParam(name string, value float64) error {
	if err := s.params.SetParam(name, value); err != nil {
		return err
	}
	s.aero = NewAerodynamics(s.params)
	return nil
}

func (s *Stepper) SetGravity(g float64) error {
	return s.SetParam("gravity", g)
}

func (s *Stepper) SetWind(w mgl64.Vec3) error {
	if !dynamo.IsFinite(w) {
		return fmt.Errorf("%w: wind %v", dynamo.ErrInvalidInput, w)
	}
	s.wind = w
	return nil
}

// ResetBall puts the ball back on its start position at rest.
func (s *Stepper) ResetBall() {
	b := s.body
	b.Position = s.start
	b.Velocity = mgl64.Vec3{}
	b.Spin = mgl64.Vec3{}
	b.Orientation = mgl64.QuatIdent()
	b.Active = false
	b.ClearForces()
	s.t = 0
	s.resetMetrics()
	s.classify()
	s.grounded = b.Grounded(contactSlop)
}

// SetInitialShot launches the ball from where it lies.
func (s *Stepper) SetInitialShot(velocity, spin mgl64.Vec3) error {
	if !dynamo.IsFinite(velocity) || !dynamo.IsFinite(spin) {
		return fmt.Errorf("%w: velocity %v spin %v", dynamo.ErrInvalidInput, velocity, spin)
	}
	b := s.body
	b.Velocity = velocity
	b.SetSpin(spin)
	b.Active = true
	s.t = 0
	s.resetMetrics()
	for _, m := range s.metrics {
		if l, ok := m.(dynamo.Launcher); ok {
			l.Launch(b)
		}
	}
	s.classify()
	s.grounded = b.Grounded(contactSlop)
	return nil
}

// DropBall places the ball at pos with no velocity and lets it settle.
func (s *Stepper) DropBall(pos mgl64.Vec3) error {
	if !dynamo.IsFinite(pos) {
		return fmt.Errorf("%w: drop position %v", dynamo.ErrInvalidInput, pos)
	}
	b := s.body
	if pos.Y() < b.Radius {
		pos[1] = b.Radius
	}
	b.Position = pos
	b.Velocity = mgl64.Vec3{}
	b.Spin = mgl64.Vec3{}
	b.Active = true
	s.classify()
	s.grounded = b.Grounded(contactSlop)
	return nil
}

// Halt stops the ball where it is.
func (s *Stepper) Halt() {
	b := s.body
	b.Velocity = mgl64.Vec3{}
	b.Spin = mgl64.Vec3{}
	b.Active = false
	b.ClearForces()
}

// Finished reports whether the shot is over without a time limit: the ball
// is at rest or classified out of bounds or in water, airborne or not.
func (s *Stepper) Finished() bool {
	if !s.body.Active {
		return true
	}
	return s.terrain == terrain.OutOfBounds || s.terrain == terrain.Water
}

// Outcome classifies the ball's current position afresh.
func (s *Stepper) Outcome() terrain.Type {
	return s.surface.Classify(s.body.Position)
}

// Step advances the ball by exactly dt seconds. A dt that is not positive
// and finite is a caller bug and panics.
func (s *Stepper) Step(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		panic(&dynamo.SimulationError{
			Step:    s.steps,
			Time:    s.t,
			Body:    *s.body,
			Wrapped: fmt.Errorf("%w: got %v", dynamo.ErrInvalidTimestep, dt),
		})
	}
	s.steps++

	s.classify()
	if !s.body.Active {
		return
	}
	if s.terrain.Viscous() {
		s.body.Velocity = s.body.Velocity.Mul(s.params.ViscousDamping)
	}

	n, h := s.params.Step.SubSteps(dt)
	for i := 0; i < n && s.body.Active; i++ {
		s.classify()
		s.subStep(h)
		s.t += h
		for _, m := range s.metrics {
			m.Observe(s.body, s.t)
		}
		for _, o := range s.observers {
			o.OnStep(s.body, s.t)
		}
	}

	if s.params.Step.ValidateState && !s.body.IsValid() {
		panic(&dynamo.SimulationError{Step: s.steps, Time: s.t, Body: *s.body, Wrapped: dynamo.ErrInvalidState})
	}
}

func (s *Stepper) resetMetrics() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Stepper) classify() {
	s.terrain = s.surface.Classify(s.body.Position)
	coeff, ok := s.surface.Coefficients(s.terrain)
	if !ok {
		coeff = s.fallback
	}
	s.coeff = coeff
}

func (s *Stepper) subStep(h float64) {
	b := s.body
	b.ClearForces()
	vAir := b.Velocity.Sub(s.wind)
	b.ApplyForce(mgl64.Vec3{0, -s.params.Gravity * b.Mass, 0})
	b.ApplyForce(s.aero.Force(vAir, b.Spin, !s.grounded))

	s.integ.Integrate(b, b.Acceleration(), h)
	s.resolveContact(h)
	s.rotate(h)
	s.settle()
}

func (s *Stepper) rotate(h float64) {
	b := s.body
	if s.grounded {
		// rolling without slipping
		v := b.Velocity
		b.Rotate(mgl64.Vec3{v.Z(), 0, -v.X()}.Mul(1/b.Radius), h)
		return
	}
	b.Rotate(b.Spin.Mul(2*math.Pi), h)
}

func (s *Stepper) settle() {
	b := s.body
	if s.grounded && b.Speed() < s.params.RestSpeed {
		b.Velocity = mgl64.Vec3{}
		b.Spin = mgl64.Vec3{}
		b.Active = false
	}
}
