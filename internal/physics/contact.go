package physics

import "github.com/go-gl/mathgl/mgl64"

// resolveContact keeps the ball on or above the y=0 plane using the
// coefficients of the terrain it is on.
func (s *Stepper) resolveContact(h float64) {
	b := s.body
	if b.Position.Y() > b.Radius+contactSlop {
		s.grounded = false
		return
	}
	s.grounded = true
	if b.Position.Y() < b.Radius {
		b.Position[1] = b.Radius
	}

	mu, e := s.coeff.Friction, s.coeff.Restitution
	vn := b.Velocity.Y()
	vt := mgl64.Vec3{b.Velocity.X(), 0, b.Velocity.Z()}

	if vn < 0 {
		bounce := -vn * e
		if bounce < s.params.BounceThreshold {
			bounce = 0
		}
		if -vn > s.params.BounceThreshold {
			vt = slow(vt, mu*(bounce-vn))
		}
		vn = bounce
	}
	if vn == 0 {
		vt = slow(vt, mu*s.params.RollingFactor*s.params.Gravity*h)
		decay := 1 - s.params.GroundSpinDecay*h
		if decay < 0 {
			decay = 0
		}
		b.Spin = b.Spin.Mul(decay)
	}
	if vn > 0 {
		s.grounded = false
	}
	b.Velocity = mgl64.Vec3{vt.X(), vn, vt.Z()}
}

// slow reduces the magnitude of v by dv without reversing it.
func slow(v mgl64.Vec3, dv float64) mgl64.Vec3 {
	speed := v.Len()
	if speed <= dv || speed == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul((speed - dv) / speed)
}
