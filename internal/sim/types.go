package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/golfsim/internal/shot"
	"github.com/san-kum/golfsim/internal/terrain"
)

var ErrUnknownParam = errors.New("sim: unknown launch parameter")

// Launch describes a shot the way a launch monitor reports it. Angles are
// degrees; azimuth is positive to the right of the -z target line. Spins are
// rev/s, backspin about x and sidespin about y (positive draws left).
type Launch struct {
	Speed    float64 `json:"speed"`
	Angle    float64 `json:"angle"`
	Azimuth  float64 `json:"azimuth"`
	Backspin float64 `json:"backspin"`
	Sidespin float64 `json:"sidespin"`
}

// LaunchParams lists the names accepted by Launch.Set.
var LaunchParams = []string{"speed", "angle", "azimuth", "backspin", "sidespin"}

// LaunchFrom converts world launch vectors to a Launch. Spin about the
// direction of travel is dropped.
func LaunchFrom(velocity, spin mgl64.Vec3) Launch {
	return Launch{
		Speed:    velocity.Len(),
		Angle:    shot.LaunchAngle(velocity),
		Azimuth:  mgl64.RadToDeg(math.Atan2(velocity.X(), -velocity.Z())),
		Backspin: spin.X(),
		Sidespin: spin.Y(),
	}
}

// Vectors returns the launch velocity and spin in world axes.
func (l Launch) Vectors() (velocity, spin mgl64.Vec3) {
	elev, az := mgl64.DegToRad(l.Angle), mgl64.DegToRad(l.Azimuth)
	h := l.Speed * math.Cos(elev)
	velocity = mgl64.Vec3{h * math.Sin(az), l.Speed * math.Sin(elev), -h * math.Cos(az)}
	spin = mgl64.Vec3{l.Backspin, l.Sidespin, 0}
	return velocity, spin
}

func (l *Launch) Set(name string, v float64) error {
	switch name {
	case "speed":
		l.Speed = v
	case "angle":
		l.Angle = v
	case "azimuth":
		l.Azimuth = v
	case "backspin":
		l.Backspin = v
	case "sidespin":
		l.Sidespin = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}

func (l Launch) Get(name string) (float64, error) {
	switch name {
	case "speed":
		return l.Speed, nil
	case "angle":
		return l.Angle, nil
	case "azimuth":
		return l.Azimuth, nil
	case "backspin":
		return l.Backspin, nil
	case "sidespin":
		return l.Sidespin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

type Config struct {
	// FrameDt is the time handed to each Step.
	FrameDt float64
	// MaxTime ends shots that never finish.
	MaxTime float64
	// Record is the trajectory sample interval; zero records nothing.
	Record float64
}

func DefaultConfig() Config {
	return Config{FrameDt: 1.0 / 60, MaxTime: 30}
}

func (c Config) Validate() error {
	if !(c.FrameDt > 0) || math.IsInf(c.FrameDt, 0) {
		return fmt.Errorf("frame dt must be positive, got %v", c.FrameDt)
	}
	if !(c.MaxTime > 0) || math.IsInf(c.MaxTime, 0) {
		return fmt.Errorf("max time must be positive, got %v", c.MaxTime)
	}
	if c.Record < 0 {
		return fmt.Errorf("record interval must not be negative, got %v", c.Record)
	}
	return nil
}

type Result struct {
	Launch   Launch             `json:"launch"`
	Rest     mgl64.Vec3         `json:"rest"`
	Outcome  terrain.Type       `json:"outcome"`
	Distance float64            `json:"distance"`
	Time     float64            `json:"time"`
	Frames   int                `json:"frames"`
	TimedOut bool               `json:"timed_out,omitempty"`
	Metrics  map[string]float64 `json:"metrics"`
	Path     []shot.Sample      `json:"path,omitempty"`
}

// Value returns a metric by name. "distance" and "time" read the result
// itself.
func (r *Result) Value(name string) (float64, bool) {
	switch name {
	case "distance":
		return r.Distance, true
	case "time":
		return r.Time, true
	}
	v, ok := r.Metrics[name]
	return v, ok
}
