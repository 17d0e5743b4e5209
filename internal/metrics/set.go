package metrics

import "github.com/san-kum/golfsim/internal/dynamo"

// Metric names reported by Flight.
const (
	NameApex         = "apex"
	NameCarry        = "carry"
	NameHangTime     = "hang_time"
	NameBounces      = "bounces"
	NameMaxSpeed     = "max_speed"
	NameEnergyLoss   = "energy_loss"
	NameLateral      = "lateral"
	NameSpinRetained = "spin_retained"
)

// Flight returns a fresh instance of every shot metric.
func Flight() []dynamo.Metric {
	return []dynamo.Metric{
		NewApex(),
		NewCarry(),
		NewHangTime(),
		NewBounces(),
		NewMaxSpeed(),
		NewEnergyLoss(),
		NewLateral(),
		NewSpinRetained(),
	}
}
