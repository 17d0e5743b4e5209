package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/golfsim/internal/dynamo"
)

// groundEps is how close to the plane the ball must be to count as down.
const groundEps = 1e-6

// Apex is the highest point reached above the launch height.
type Apex struct {
	name   string
	origin float64
	max    float64
}

func NewApex() *Apex { return &Apex{name: "apex"} }

func (a *Apex) Name() string { return a.name }

func (a *Apex) Launch(b *dynamo.RigidBody) {
	a.origin = b.Position.Y()
	a.max = 0
}

func (a *Apex) Observe(b *dynamo.RigidBody, t float64) {
	a.max = math.Max(a.max, b.Position.Y()-a.origin)
}

func (a *Apex) Value() float64 { return a.max }

func (a *Apex) Reset() {
	a.origin = 0
	a.max = 0
}

// landing tracks the first touchdown after the ball leaves the ground.
type landing struct {
	origin   mgl64.Vec3
	airborne bool
	landed   bool
}

func (l *landing) launch(b *dynamo.RigidBody) {
	*l = landing{origin: b.Position}
}

// observe reports true on the sub-step the ball first comes back down.
func (l *landing) observe(b *dynamo.RigidBody) bool {
	if l.landed {
		return false
	}
	if !b.Grounded(groundEps) {
		l.airborne = true
		return false
	}
	if l.airborne {
		l.landed = true
		return true
	}
	return false
}

// Carry is the horizontal distance from launch to first landing.
type Carry struct {
	name  string
	l     landing
	carry float64
}

func NewCarry() *Carry { return &Carry{name: "carry"} }

func (c *Carry) Name() string { return c.name }

func (c *Carry) Launch(b *dynamo.RigidBody) {
	c.l.launch(b)
	c.carry = 0
}

func (c *Carry) Observe(b *dynamo.RigidBody, t float64) {
	if c.l.observe(b) {
		c.carry = dynamo.HorizontalDistance(c.l.origin, b.Position)
	}
}

func (c *Carry) Value() float64 { return c.carry }

func (c *Carry) Reset() {
	c.l = landing{}
	c.carry = 0
}

// HangTime is the time from launch to first landing.
type HangTime struct {
	name string
	l    landing
	t    float64
}

func NewHangTime() *HangTime { return &HangTime{name: "hang_time"} }

func (h *HangTime) Name() string { return h.name }

func (h *HangTime) Launch(b *dynamo.RigidBody) {
	h.l.launch(b)
	h.t = 0
}

func (h *HangTime) Observe(b *dynamo.RigidBody, t float64) {
	if h.l.observe(b) {
		h.t = t
	}
}

func (h *HangTime) Value() float64 { return h.t }

func (h *HangTime) Reset() {
	h.l = landing{}
	h.t = 0
}

// Bounces counts touchdowns after the ball has been in the air.
type Bounces struct {
	name     string
	airborne bool
	count    int
}

func NewBounces() *Bounces { return &Bounces{name: "bounces"} }

func (c *Bounces) Name() string { return c.name }

func (c *Bounces) Observe(b *dynamo.RigidBody, t float64) {
	if !b.Grounded(groundEps) {
		c.airborne = true
		return
	}
	if c.airborne {
		c.count++
		c.airborne = false
	}
}

func (c *Bounces) Value() float64 { return float64(c.count) }

func (c *Bounces) Reset() {
	c.airborne = false
	c.count = 0
}

type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{name: "max_speed"} }

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Launch(b *dynamo.RigidBody) { m.max = b.Speed() }

func (m *MaxSpeed) Observe(b *dynamo.RigidBody, t float64) {
	m.max = math.Max(m.max, b.Speed())
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }
