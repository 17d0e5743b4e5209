package shot

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/golfsim/internal/dynamo"
)

// Sample is one recorded point of a flight.
type Sample struct {
	Time     float64    `json:"t"`
	Position mgl64.Vec3 `json:"pos"`
	Velocity mgl64.Vec3 `json:"vel"`
}

// Trajectory records the ball path as a dynamo.Observer, keeping at most one
// sample per Interval seconds.
type Trajectory struct {
	Interval float64
	samples  []Sample
	last     float64
}

func NewTrajectory(interval float64) *Trajectory {
	return &Trajectory{Interval: interval, last: -1}
}

func (tr *Trajectory) OnStep(b *dynamo.RigidBody, t float64) {
	if t < tr.last {
		// clock restarted by a new launch
		tr.Reset()
	}
	if tr.last >= 0 && t-tr.last < tr.Interval {
		return
	}
	tr.last = t
	tr.samples = append(tr.samples, Sample{Time: t, Position: b.Position, Velocity: b.Velocity})
}

func (tr *Trajectory) Samples() []Sample {
	out := make([]Sample, len(tr.samples))
	copy(out, tr.samples)
	return out
}

func (tr *Trajectory) Len() int { return len(tr.samples) }

func (tr *Trajectory) Reset() {
	tr.samples = tr.samples[:0]
	tr.last = -1
}
