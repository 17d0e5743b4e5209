// Package shot records launches and turns finished flights into results.
package shot

import (
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/golfsim/internal/terrain"
)

// Result describes one completed shot. Distances are in metres.
type Result struct {
	ID          uuid.UUID    `json:"id"`
	Distance    float64      `json:"distance"`
	Speed       float64      `json:"speed"`
	LaunchAngle float64      `json:"launch_angle"`
	Outcome     terrain.Type `json:"outcome"`
	Carry       float64      `json:"carry"`
	Apex        float64      `json:"apex"`
	HangTime    float64      `json:"hang_time"`
	Ball        string       `json:"ball"`
	Timestamp   time.Time    `json:"timestamp"`
}
