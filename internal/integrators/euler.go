package integrators

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/golfsim/internal/dynamo"
)

// SemiImplicitEuler updates velocity first and moves with the new velocity.
// It is symplectic and is the stepper default.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Integrate(b *dynamo.RigidBody, acc mgl64.Vec3, dt float64) {
	b.Velocity = b.Velocity.Add(acc.Mul(dt))
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
}

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Integrate(b *dynamo.RigidBody, acc mgl64.Vec3, dt float64) {
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	b.Velocity = b.Velocity.Add(acc.Mul(dt))
}
