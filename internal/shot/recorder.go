package shot

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/metrics"
	"github.com/san-kum/golfsim/internal/terrain"
)

// Recorder holds the launch of the shot in progress.
type Recorder struct {
	now func() time.Time

	start    mgl64.Vec3
	velocity mgl64.Vec3
	ball     string
	launched bool
}

func NewRecorder(now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{now: now}
}

func (r *Recorder) Launch(pos, velocity mgl64.Vec3, ball string) {
	r.start = pos
	r.velocity = velocity
	r.ball = ball
	r.launched = true
}

func (r *Recorder) Launched() bool    { return r.launched }
func (r *Recorder) Start() mgl64.Vec3 { return r.start }

// Finish builds the result for the recorded launch and clears it. flight
// is keyed by the metric names in package metrics; missing keys read as 0.
func (r *Recorder) Finish(rest mgl64.Vec3, outcome terrain.Type, flight map[string]float64) Result {
	res := Result{
		ID:          uuid.New(),
		Distance:    dynamo.HorizontalDistance(r.start, rest),
		Speed:       r.velocity.Len(),
		LaunchAngle: LaunchAngle(r.velocity),
		Outcome:     outcome,
		Carry:       flight[metrics.NameCarry],
		Apex:        flight[metrics.NameApex],
		HangTime:    flight[metrics.NameHangTime],
		Ball:        r.ball,
		Timestamp:   r.now(),
	}
	r.launched = false
	return res
}

// LaunchAngle is the elevation of v above the ground plane in degrees.
func LaunchAngle(v mgl64.Vec3) float64 {
	h := math.Hypot(v.X(), v.Z())
	if h == 0 && v.Y() == 0 {
		return 0
	}
	return mgl64.RadToDeg(math.Atan2(v.Y(), h))
}
