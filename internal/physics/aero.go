package physics

import "github.com/go-gl/mathgl/mgl64"

// Aerodynamics computes drag and Magnus forces from air-relative velocity
// and spin. It holds no state between calls.
type Aerodynamics struct {
	DragCoeff   float64
	MagnusCoeff float64
	Mode        MagnusMode
}

func NewAerodynamics(p Params) Aerodynamics {
	return Aerodynamics{DragCoeff: p.DragCoeff, MagnusCoeff: p.MagnusCoeff, Mode: p.MagnusMode}
}

// Drag is linear in airspeed.
func (a Aerodynamics) Drag(vAir mgl64.Vec3) mgl64.Vec3 {
	return vAir.Mul(-a.DragCoeff)
}

// Magnus returns k·(spin × v). The decoupled mode only uses the forward
// component of velocity, which gives side force spin.y·v.z·k and lift
// -spin.x·v.z·k.
func (a Aerodynamics) Magnus(vAir, spin mgl64.Vec3) mgl64.Vec3 {
	if a.Mode == MagnusDecoupled {
		vz := vAir.Z()
		return mgl64.Vec3{spin.Y() * vz, -spin.X() * vz, 0}.Mul(a.MagnusCoeff)
	}
	return spin.Cross(vAir).Mul(a.MagnusCoeff)
}

// Force is the total aerodynamic force. Lift needs the ball in the air.
func (a Aerodynamics) Force(vAir, spin mgl64.Vec3, airborne bool) mgl64.Vec3 {
	f := a.Drag(vAir)
	if airborne {
		f = f.Add(a.Magnus(vAir, spin))
	}
	return f
}
