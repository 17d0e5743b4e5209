package integrators

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/golfsim/internal/dynamo"
)

func newBody(t *testing.T) *dynamo.RigidBody {
	t.Helper()
	b, err := dynamo.NewRigidBody(1, 0.1, 100, mgl64.Vec3{1, 0, 0})
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	return b
}

func oscillatorEnergy(b *dynamo.RigidBody) float64 {
	x, v := b.Position.X(), b.Velocity.X()
	return 0.5 * (x*x + v*v)
}

func runOscillator(integ dynamo.Integrator, b *dynamo.RigidBody, steps int, dt float64) {
	for i := 0; i < steps; i++ {
		integ.Integrate(b, mgl64.Vec3{-b.Position.X(), 0, 0}, dt)
	}
}

func TestSemiImplicitEuler_EnergyBounded(t *testing.T) {
	b := newBody(t)
	runOscillator(NewSemiImplicitEuler(), b, 100000, 0.01)

	if e := oscillatorEnergy(b); math.Abs(e-0.5) > 0.01 {
		t.Errorf("energy drifted to %.6f, want ~0.5", e)
	}
}

func TestEuler_EnergyGrows(t *testing.T) {
	b := newBody(t)
	runOscillator(NewEuler(), b, 10000, 0.01)

	if e := oscillatorEnergy(b); e < 0.6 {
		t.Errorf("explicit Euler energy = %.6f, expected growth above 0.6", e)
	}
}

func TestVerlet_Accuracy(t *testing.T) {
	b := newBody(t)
	steps, dt := 100, 0.01
	runOscillator(NewVerlet(), b, steps, dt)

	expectedX := math.Cos(float64(steps) * dt)
	if math.Abs(b.Position.X()-expectedX) > 0.02 {
		t.Errorf("position error too large: got %.6f, expected %.6f", b.Position.X(), expectedX)
	}
}

func TestFreeFall(t *testing.T) {
	g := mgl64.Vec3{0, -9.81, 0}
	tests := []struct {
		name string
		tol  float64
	}{
		{"symplectic", 0.05},
		{"euler", 0.05},
		{"verlet", 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ, err := New(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			b := newBody(t)
			b.Position = mgl64.Vec3{}
			for i := 0; i < 120; i++ {
				integ.Integrate(b, g, 1.0/120)
			}
			want := -0.5 * 9.81
			if math.Abs(b.Position.Y()-want) > tt.tol {
				t.Errorf("y after 1s = %.6f, want %.6f", b.Position.Y(), want)
			}
			if math.Abs(b.Velocity.Y()+9.81) > 1e-9 {
				t.Errorf("vy after 1s = %.6f, want -9.81", b.Velocity.Y())
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	if _, err := New(""); err != nil {
		t.Errorf("empty name should select the default: %v", err)
	}
	if _, err := New("rk4"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	if got := Names(); len(got) != 3 || got[0] != "euler" {
		t.Errorf("Names() = %v", got)
	}
}
