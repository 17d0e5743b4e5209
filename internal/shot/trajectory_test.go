package shot

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/golfsim/internal/dynamo"
)

func TestTrajectory_Sampling(t *testing.T) {
	b, _ := dynamo.NewRigidBody(dynamo.DefaultMass, dynamo.DefaultRadius, dynamo.DefaultMaxSpin, mgl64.Vec3{})
	tr := NewTrajectory(0.1)

	for i := 1; i <= 100; i++ {
		b.Position = mgl64.Vec3{0, 1, -float64(i)}
		tr.OnStep(b, float64(i)*0.01)
	}
	if n := tr.Len(); n < 9 || n > 11 {
		t.Errorf("got %d samples for 1s at 0.1s spacing", n)
	}
	first := tr.Samples()[0]
	if first.Time != 0.01 || first.Position.Z() != -1 {
		t.Errorf("first sample = %+v", first)
	}

	tr.OnStep(b, 0.005)
	if tr.Len() != 1 {
		t.Errorf("restarted clock should reset, have %d samples", tr.Len())
	}
}

func TestTrajectory_SamplesIsCopy(t *testing.T) {
	b, _ := dynamo.NewRigidBody(dynamo.DefaultMass, dynamo.DefaultRadius, dynamo.DefaultMaxSpin, mgl64.Vec3{})
	tr := NewTrajectory(0)
	tr.OnStep(b, 0.1)
	s := tr.Samples()
	s[0].Time = 99
	if tr.Samples()[0].Time != 0.1 {
		t.Error("Samples leaked internal slice")
	}
}
