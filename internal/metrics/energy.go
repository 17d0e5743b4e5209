package metrics

import (
	"math"

	"github.com/san-kum/golfsim/internal/dynamo"
)

// EnergyLoss is the largest fraction of launch kinetic energy lost so far.
// Drag and ground contact only ever remove energy, so the value climbs
// towards 1 as the ball comes to rest.
type EnergyLoss struct {
	name          string
	initialEnergy float64
	maxLoss       float64
}

func NewEnergyLoss() *EnergyLoss {
	return &EnergyLoss{name: "energy_loss"}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Launch(b *dynamo.RigidBody) {
	e.initialEnergy = b.KineticEnergy()
	e.maxLoss = 0
}

func (e *EnergyLoss) Observe(b *dynamo.RigidBody, t float64) {
	if e.initialEnergy == 0 {
		return
	}
	loss := 1 - b.KineticEnergy()/e.initialEnergy
	e.maxLoss = math.Max(e.maxLoss, loss)
}

func (e *EnergyLoss) Value() float64 {
	return e.maxLoss
}

func (e *EnergyLoss) Reset() {
	e.initialEnergy = 0
	e.maxLoss = 0
}
