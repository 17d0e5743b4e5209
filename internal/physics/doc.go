// Package physics advances the golf ball through flight and ground contact.
//
// [Stepper] owns the ball's [dynamo.RigidBody] and splits every frame into
// fixed sub-steps. Each sub-step re-classifies the terrain under the ball,
// accumulates gravity and [Aerodynamics] forces, integrates, and resolves
// contact with the ground plane using the live terrain coefficients.
//
// Forward play runs toward -z, y is up. Spin is in revolutions per second.
//
// # Tuning
//
// Every coefficient is a named [Params] field and can be changed at runtime:
//
//	s.SetParam("drag", 0.02)
//	s.SetParam("magnus", 2e-4)
package physics
