package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/integrators"
	"github.com/san-kum/golfsim/internal/metrics"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/terrain"
)

func factory(zones ...terrain.Zone) Factory {
	return func() (*physics.Stepper, error) {
		classifier, err := terrain.NewClassifier(terrain.DefaultExtents(), nil, zones...)
		if err != nil {
			return nil, err
		}
		body, err := dynamo.NewRigidBody(dynamo.DefaultMass, dynamo.DefaultRadius, dynamo.DefaultMaxSpin, mgl64.Vec3{0, dynamo.DefaultRadius, 0})
		if err != nil {
			return nil, err
		}
		st, err := physics.NewStepper(physics.DefaultParams(), body, integrators.NewSemiImplicitEuler(), classifier)
		if err != nil {
			return nil, err
		}
		for _, m := range metrics.Flight() {
			st.AddMetric(m)
		}
		return st, nil
	}
}

func newSim(t *testing.T, cfg Config, zones ...terrain.Zone) *Simulator {
	t.Helper()
	st, err := factory(zones...)()
	if err != nil {
		t.Fatalf("stepper: %v", err)
	}
	s, err := New(st, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestLaunch_Vectors(t *testing.T) {
	l := Launch{Speed: 50, Angle: 30, Azimuth: 0, Backspin: 60, Sidespin: -10}
	v, spin := l.Vectors()
	want := mgl64.Vec3{0, 25, -50 * math.Cos(math.Pi/6)}
	if !near(v, want, 1e-9) {
		t.Errorf("velocity = %v, want %v", v, want)
	}
	if spin != (mgl64.Vec3{60, -10, 0}) {
		t.Errorf("spin = %v", spin)
	}

	right := Launch{Speed: 10, Azimuth: 90}
	if v, _ := right.Vectors(); !near(v, mgl64.Vec3{10, 0, 0}, 1e-9) {
		t.Errorf("azimuth 90 velocity = %v, want +x", v)
	}
}

func near(a, b mgl64.Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestLaunchFrom_RoundTrip(t *testing.T) {
	in := Launch{Speed: 62, Angle: 14.5, Azimuth: -3, Backspin: 45, Sidespin: 12}
	got := LaunchFrom(in.Vectors())
	for _, name := range LaunchParams {
		a, _ := in.Get(name)
		b, _ := got.Get(name)
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("%s = %v, want %v", name, b, a)
		}
	}
}

func TestLaunch_SetUnknown(t *testing.T) {
	var l Launch
	if err := l.Set("loft", 10); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
	if _, err := l.Get("loft"); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestSimulatorRun(t *testing.T) {
	s := newSim(t, Config{FrameDt: 1.0 / 60, MaxTime: 30, Record: 0.1})

	res, err := s.Run(context.Background(), LaunchFrom(mgl64.Vec3{0, 20, -40}, mgl64.Vec3{}))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.TimedOut {
		t.Fatal("shot timed out")
	}
	if res.Outcome != terrain.Fairway {
		t.Errorf("outcome = %s, want FAIRWAY", res.Outcome)
	}
	if res.Distance < 80 || res.Distance > 140 {
		t.Errorf("distance = %.1f, want 80..140", res.Distance)
	}
	carry, ok := res.Value(metrics.NameCarry)
	if !ok || carry <= 0 || carry > res.Distance+1e-9 {
		t.Errorf("carry = %.1f (ok=%v), distance %.1f", carry, ok, res.Distance)
	}
	if len(res.Path) < 10 {
		t.Errorf("recorded %d samples", len(res.Path))
	}
	if math.Abs(res.Time-float64(res.Frames)/60) > 1e-9 {
		t.Errorf("time %.4f does not match %d frames", res.Time, res.Frames)
	}

	// a second run on the same simulator starts from the tee again
	again, err := s.Run(context.Background(), LaunchFrom(mgl64.Vec3{0, 20, -40}, mgl64.Vec3{}))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(again.Distance-res.Distance) > 1e-9 {
		t.Errorf("repeat distance %.4f, want %.4f", again.Distance, res.Distance)
	}
}

func TestSimulatorTimesOut(t *testing.T) {
	s := newSim(t, Config{FrameDt: 0.25, MaxTime: 1})
	res, err := s.Run(context.Background(), Launch{Speed: 50, Angle: 45})
	if err != nil {
		t.Fatal(err)
	}
	if !res.TimedOut || res.Frames != 4 {
		t.Errorf("timed out = %v after %d frames", res.TimedOut, res.Frames)
	}
}

func TestSimulatorStopsInWater(t *testing.T) {
	pond := terrain.Zone{Name: "pond", Type: terrain.Water, Bounds: terrain.Bounds{XMin: -30, XMax: 30, ZMin: -150, ZMax: -20}}
	s := newSim(t, DefaultConfig(), pond)
	res, err := s.Run(context.Background(), LaunchFrom(mgl64.Vec3{0, 20, -40}, mgl64.Vec3{}))
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != terrain.Water {
		t.Errorf("outcome = %s, want WATER", res.Outcome)
	}
	if res.Time > 5 {
		t.Errorf("shot in water ran %.1fs", res.Time)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	st, _ := factory()()
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{FrameDt: 0, MaxTime: 1}},
		{"negative dt", Config{FrameDt: -0.1, MaxTime: 1}},
		{"inf dt", Config{FrameDt: math.Inf(1), MaxTime: 1}},
		{"zero max time", Config{FrameDt: 0.1}},
		{"negative record", Config{FrameDt: 0.1, MaxTime: 1, Record: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(st, tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
	if _, err := New(nil, DefaultConfig()); err == nil {
		t.Error("expected error for nil stepper")
	}
}

func TestSimulatorRejectsNonFiniteLaunch(t *testing.T) {
	s := newSim(t, DefaultConfig())
	_, err := s.Run(context.Background(), Launch{Speed: math.NaN(), Angle: 10})
	if !errors.Is(err, dynamo.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSimulatorCancelled(t *testing.T) {
	s := newSim(t, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Run(ctx, Launch{Speed: 40, Angle: 20}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
