// Package dynamo provides the core simulation primitives for the ball.
//
// The package defines the types shared by every stage of the simulation:
//
//   - [RigidBody]: position, velocity, orientation and spin of the ball
//   - [Integrator]: advances a body by one sub-step given its acceleration
//   - [Observer] and [Metric]: per-sub-step hooks used for flight statistics
//   - [Config]: fixed sub-step size and sub-step bounds
//
// # Example
//
//	body, _ := dynamo.NewRigidBody(dynamo.DefaultMass, dynamo.DefaultRadius, dynamo.DefaultMaxSpin, start)
//	body.ApplyForce(mgl64.Vec3{0, -9.81 * body.Mass, 0})
//	integ.Integrate(body, body.Acceleration(), 1.0/120)
//
// # Thread Safety
//
// A RigidBody is owned by exactly one stepper and is NOT thread-safe.
package dynamo
