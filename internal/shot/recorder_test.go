package shot

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/san-kum/golfsim/internal/metrics"
	"github.com/san-kum/golfsim/internal/terrain"
)

func TestRecorder_Finish(t *testing.T) {
	clock := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	r := NewRecorder(func() time.Time { return clock })

	r.Launch(mgl64.Vec3{1, 0.042, 2}, mgl64.Vec3{0, 30, -30}, "pro")
	if !r.Launched() {
		t.Fatal("recorder should hold a launch")
	}

	res := r.Finish(mgl64.Vec3{4, 0.042, -2}, terrain.Green, map[string]float64{
		metrics.NameCarry:    110,
		metrics.NameApex:     25,
		metrics.NameHangTime: 4.5,
	})

	if res.ID == uuid.Nil {
		t.Error("result needs an id")
	}
	if res.Distance != 5 {
		t.Errorf("distance = %v, want 5", res.Distance)
	}
	if math.Abs(res.Speed-math.Hypot(30, 30)) > 1e-12 {
		t.Errorf("speed = %v", res.Speed)
	}
	if math.Abs(res.LaunchAngle-45) > 1e-9 {
		t.Errorf("launch angle = %v, want 45", res.LaunchAngle)
	}
	if res.Outcome != terrain.Green || res.Ball != "pro" || !res.Timestamp.Equal(clock) {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Carry != 110 || res.Apex != 25 || res.HangTime != 4.5 {
		t.Errorf("flight stats not copied: %+v", res)
	}
	if r.Launched() {
		t.Error("finish should clear the launch")
	}
}

func TestRecorder_UniqueIDs(t *testing.T) {
	r := NewRecorder(nil)
	seen := map[uuid.UUID]bool{}
	for i := 0; i < 50; i++ {
		r.Launch(mgl64.Vec3{}, mgl64.Vec3{0, 1, -1}, "standard")
		res := r.Finish(mgl64.Vec3{}, terrain.Fairway, nil)
		if seen[res.ID] {
			t.Fatalf("duplicate id %s", res.ID)
		}
		seen[res.ID] = true
	}
}

func TestLaunchAngle(t *testing.T) {
	tests := []struct {
		v    mgl64.Vec3
		want float64
	}{
		{mgl64.Vec3{0, 0, -10}, 0},
		{mgl64.Vec3{0, 10, 0}, 90},
		{mgl64.Vec3{}, 0},
		{mgl64.Vec3{3, -4, 0}, -53.13010235415598},
	}
	for _, tt := range tests {
		if got := LaunchAngle(tt.v); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("LaunchAngle(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestResult_JSON(t *testing.T) {
	r := NewRecorder(nil)
	r.Launch(mgl64.Vec3{}, mgl64.Vec3{0, 5, -20}, "standard")
	res := r.Finish(mgl64.Vec3{0, 0, -30}, terrain.OutOfBounds, nil)

	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatal(err)
	}
	if fields["outcome"] != "OB" {
		t.Errorf("outcome encoded as %v", fields["outcome"])
	}
	if fields["id"] != res.ID.String() {
		t.Errorf("id encoded as %v", fields["id"])
	}
}
