package integrators

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/golfsim/internal/dynamo"
)

// Verlet is velocity Verlet with the acceleration held constant across the
// sub-step, since the aerodynamic forces are evaluated once per sub-step.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Integrate(b *dynamo.RigidBody, acc mgl64.Vec3, dt float64) {
	b.Position = b.Position.Add(b.Velocity.Mul(dt)).Add(acc.Mul(0.5 * dt * dt))
	b.Velocity = b.Velocity.Add(acc.Mul(dt))
}
