package config

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/golfsim/internal/session"
	"github.com/san-kum/golfsim/internal/terrain"
)

// Shot is a canned swing. Forward is -z and positive spin.x is backspin.
type Shot struct {
	Description string     `yaml:"description"`
	Velocity    [3]float64 `yaml:"velocity,flow"`
	Spin        [3]float64 `yaml:"spin,flow"`
}

func (s Shot) Swing() session.Swing {
	return session.Swing{Velocity: mgl64.Vec3(s.Velocity), Spin: mgl64.Vec3(s.Spin)}
}

var Shots = map[string]Shot{
	"driver": {Description: "low launch, long roll", Velocity: [3]float64{0, 16, -68}, Spin: [3]float64{45, 0, 0}},
	"iron7":  {Description: "mid iron", Velocity: [3]float64{0, 18, -45}, Spin: [3]float64{110, 0, 0}},
	"wedge":  {Description: "high and soft", Velocity: [3]float64{0, 22, -28}, Spin: [3]float64{150, 0, 0}},
	"draw":   {Description: "driver curving left", Velocity: [3]float64{0, 16, -62}, Spin: [3]float64{45, 12, 0}},
	"fade":   {Description: "driver curving right", Velocity: [3]float64{0, 16, -62}, Spin: [3]float64{45, -12, 0}},
	"putt":   {Description: "rolling putt", Velocity: [3]float64{0, 0, -4}},
}

func rect(xMin, xMax, zMin, zMax float64) terrain.Bounds {
	return terrain.Bounds{XMin: xMin, XMax: xMax, ZMin: zMin, ZMax: zMax}
}

var Courses = map[string]CourseConfig{
	"practice": {
		Name:    "practice",
		Extents: terrain.DefaultExtents(),
		Zones: []terrain.Zone{
			{Name: "green", Type: terrain.Green, Bounds: rect(-12, 12, -135, -110)},
			{Name: "front bunker", Type: terrain.Bunker, Bounds: rect(-25, -10, -110, -98)},
			{Name: "pond", Type: terrain.Water, Bounds: rect(15, 45, -90, -60)},
			{Name: "left rough", Type: terrain.Rough, Bounds: rect(-150, -25, -500, 50)},
			{Name: "right rough", Type: terrain.Rough, Bounds: rect(25, 150, -500, 50)},
		},
	},
	"links": {
		Name:    "links",
		Extents: terrain.Extents{Lateral: 120, Forward: 420, Backward: 30},
		Surfaces: map[string]terrain.Coefficients{
			"FAIRWAY": {Friction: 0.35, Restitution: 0.35},
			"ROUGH":   {Friction: 1.6, Restitution: 0.08},
		},
		Zones: []terrain.Zone{
			{Name: "green", Type: terrain.Green, Bounds: rect(-15, 15, -330, -300)},
			{Name: "pot bunker", Type: terrain.Bunker, Bounds: rect(-4, 4, -180, -172)},
			{Name: "burn", Type: terrain.Water, Bounds: rect(-120, 120, -262, -255)},
			{Name: "gorse", Type: terrain.Rough, Bounds: rect(-120, -20, -420, 30)},
			{Name: "dunes", Type: terrain.Rough, Bounds: rect(20, 120, -420, 30)},
		},
	},
}

// GetCourse returns a copy of the named course, or nil.
func GetCourse(name string) *CourseConfig {
	c, ok := Courses[name]
	if !ok {
		return nil
	}
	c.Zones = append([]terrain.Zone(nil), c.Zones...)
	if c.Surfaces != nil {
		surfaces := make(map[string]terrain.Coefficients, len(c.Surfaces))
		for k, v := range c.Surfaces {
			surfaces[k] = v
		}
		c.Surfaces = surfaces
	}
	return &c
}

func GetShot(name string) (Shot, bool) {
	s, ok := Shots[name]
	return s, ok
}

func ShotNames() []string   { return sortedKeys(Shots) }
func CourseNames() []string { return sortedKeys(Courses) }

func BallNames() []string {
	return sortedKeys(session.DefaultBalls())
}

// ApplyCourse swaps in a named course.
func (c *Config) ApplyCourse(name string) bool {
	course := GetCourse(name)
	if course == nil {
		return false
	}
	c.Course = *course
	return true
}

// Presets lists every preset name by kind.
func Presets() map[string][]string {
	return map[string][]string{
		"shots":   ShotNames(),
		"courses": CourseNames(),
		"balls":   BallNames(),
	}
}
