package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/integrators"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/terrain"
)

func newBall(t *testing.T) *dynamo.RigidBody {
	t.Helper()
	b, err := dynamo.NewRigidBody(dynamo.DefaultMass, dynamo.DefaultRadius, dynamo.DefaultMaxSpin, mgl64.Vec3{0, dynamo.DefaultRadius, 0})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// hop places the ball at pos and lets m observe it at time t.
func hop(b *dynamo.RigidBody, m dynamo.Metric, pos mgl64.Vec3, t float64) {
	b.Position = pos
	m.Observe(b, t)
}

func TestCarryAndHangTime(t *testing.T) {
	b := newBall(t)
	b.Velocity = mgl64.Vec3{0, 10, -10}
	carry, hang := NewCarry(), NewHangTime()
	carry.Launch(b)
	hang.Launch(b)

	r := dynamo.DefaultRadius
	path := []mgl64.Vec3{{0, r, -0.1}, {0, 3, -5}, {0, 5, -10}, {3, r, -20}, {3, 1, -25}, {3, r, -30}}
	for i, p := range path {
		hop(b, carry, p, float64(i))
		hop(b, hang, p, float64(i))
	}

	if got, want := carry.Value(), math.Hypot(3, 20); math.Abs(got-want) > 1e-12 {
		t.Errorf("carry = %v, want %v", got, want)
	}
	if hang.Value() != 3 {
		t.Errorf("hang time = %v, want 3", hang.Value())
	}

	carry.Reset()
	hang.Reset()
	if carry.Value() != 0 || hang.Value() != 0 {
		t.Error("reset should clear values")
	}
}

func TestCarry_RollingShotNeverLands(t *testing.T) {
	b := newBall(t)
	c := NewCarry()
	c.Launch(b)
	for i := 1; i <= 10; i++ {
		hop(b, c, mgl64.Vec3{0, dynamo.DefaultRadius, -float64(i)}, float64(i))
	}
	if c.Value() != 0 {
		t.Errorf("putt carry = %v, want 0", c.Value())
	}
}

func TestApexAndBounces(t *testing.T) {
	b := newBall(t)
	apex, bounces := NewApex(), NewBounces()
	apex.Launch(b)

	r := dynamo.DefaultRadius
	heights := []float64{r, 4, 12, 6, r, 2, r, 0.5, r, r}
	for i, y := range heights {
		b.Position = mgl64.Vec3{0, y, 0}
		apex.Observe(b, float64(i))
		bounces.Observe(b, float64(i))
	}
	if got := apex.Value(); math.Abs(got-(12-r)) > 1e-12 {
		t.Errorf("apex = %v, want %v", got, 12-r)
	}
	if bounces.Value() != 3 {
		t.Errorf("bounces = %v, want 3", bounces.Value())
	}
}

func TestLateral(t *testing.T) {
	b := newBall(t)
	b.Velocity = mgl64.Vec3{0, 10, -30}
	l := NewLateral()
	l.Launch(b)

	b.Position = mgl64.Vec3{4, 3, -50}
	l.Observe(b, 1)
	if math.Abs(l.Value()-4) > 1e-12 {
		t.Errorf("lateral = %v, want 4 (right of a -z launch)", l.Value())
	}
	b.Position = mgl64.Vec3{-2, 0, -80}
	l.Observe(b, 2)
	if math.Abs(l.Value()+2) > 1e-12 {
		t.Errorf("lateral = %v, want -2", l.Value())
	}
}

func TestEnergyLossAndSpin(t *testing.T) {
	b := newBall(t)
	b.Velocity = mgl64.Vec3{0, 0, -10}
	b.SetSpin(mgl64.Vec3{40, 0, 0})
	e, s, top := NewEnergyLoss(), NewSpinRetained(), NewMaxSpeed()
	e.Launch(b)
	s.Launch(b)
	top.Launch(b)

	b.Velocity = mgl64.Vec3{0, 0, -5}
	b.Spin = mgl64.Vec3{10, 0, 0}
	e.Observe(b, 1)
	s.Observe(b, 1)
	top.Observe(b, 1)

	if math.Abs(e.Value()-0.75) > 1e-12 {
		t.Errorf("energy loss = %v, want 0.75", e.Value())
	}
	if math.Abs(s.Value()-0.25) > 1e-12 {
		t.Errorf("spin retained = %v, want 0.25", s.Value())
	}
	if top.Value() != 10 {
		t.Errorf("max speed = %v, want launch speed 10", top.Value())
	}
}

func TestFlight_ThroughStepper(t *testing.T) {
	classifier, err := terrain.NewClassifier(terrain.DefaultExtents(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s, err := physics.NewStepper(physics.DefaultParams(), newBall(t), integrators.NewSemiImplicitEuler(), classifier)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range Flight() {
		s.AddMetric(m)
	}
	if err := s.SetInitialShot(mgl64.Vec3{0, 20, -40}, mgl64.Vec3{}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3000 && !s.AtRest(); i++ {
		s.Step(1.0 / 60)
	}

	got := s.Metrics()
	if len(got) != 8 {
		t.Fatalf("got %d metrics: %v", len(got), got)
	}
	if got[NameApex] < 10 || got[NameApex] > 20.4 {
		t.Errorf("apex = %.2f, want between drag-free bound and 10 m", got[NameApex])
	}
	if got[NameCarry] < 80 || got[NameCarry] > 120 {
		t.Errorf("carry = %.2f", got[NameCarry])
	}
	rest := dynamo.HorizontalDistance(s.Start(), s.Body().Position)
	if rest <= got[NameCarry] {
		t.Errorf("total %.2f should exceed carry %.2f on fairway", rest, got[NameCarry])
	}
	if got[NameHangTime] <= 2 || got[NameHangTime] >= 4.1 {
		t.Errorf("hang time = %.2f", got[NameHangTime])
	}
	if got[NameBounces] < 1 {
		t.Errorf("bounces = %v", got[NameBounces])
	}
	if got[NameLateral] != 0 {
		t.Errorf("lateral = %v for a straight shot", got[NameLateral])
	}
	if math.Abs(got[NameEnergyLoss]-1) > 1e-9 {
		t.Errorf("energy loss = %v at rest, want 1", got[NameEnergyLoss])
	}
	if math.Abs(got[NameMaxSpeed]-math.Hypot(20, 40)) > 1e-9 {
		t.Errorf("max speed = %v", got[NameMaxSpeed])
	}
}
