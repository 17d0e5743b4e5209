package metrics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/golfsim/internal/dynamo"
)

// Lateral is the signed offset of the ball from its launch line, positive
// to the right of the direction of play.
type Lateral struct {
	name   string
	origin mgl64.Vec3
	right  mgl64.Vec3
	offset float64
}

func NewLateral() *Lateral {
	return &Lateral{name: "lateral"}
}

func (l *Lateral) Name() string { return l.name }

func (l *Lateral) Launch(b *dynamo.RigidBody) {
	l.origin = b.Position
	l.offset = 0
	dir := mgl64.Vec3{b.Velocity.X(), 0, b.Velocity.Z()}
	if dir.Len() == 0 {
		dir = mgl64.Vec3{0, 0, -1}
	}
	dir = dir.Normalize()
	l.right = mgl64.Vec3{-dir.Z(), 0, dir.X()}
}

func (l *Lateral) Observe(b *dynamo.RigidBody, t float64) {
	l.offset = b.Position.Sub(l.origin).Dot(l.right)
}

func (l *Lateral) Value() float64 { return l.offset }

func (l *Lateral) Reset() {
	l.origin = mgl64.Vec3{}
	l.right = mgl64.Vec3{1, 0, 0}
	l.offset = 0
}
