package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/integrators"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/session"
	"github.com/san-kum/golfsim/internal/terrain"
)

const (
	DefaultRelayAddr = ":8080"
	DefaultLogLevel  = "info"
	DefaultDataDir   = "./data/shots"
	DefaultCourse    = "practice"
)

type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Ball    BallConfig    `yaml:"ball"`
	Course  CourseConfig  `yaml:"course"`
	Session SessionConfig `yaml:"session"`
	Relay   RelayConfig   `yaml:"relay"`
	Log     LogConfig     `yaml:"log"`
	DataDir string        `yaml:"data_dir"`
}

type PhysicsConfig struct {
	Integrator      string  `yaml:"integrator"`
	Gravity         float64 `yaml:"gravity"`
	Drag            float64 `yaml:"drag"`
	Magnus          float64 `yaml:"magnus"`
	MagnusMode      string  `yaml:"magnus_mode"`
	ViscousDamping  float64 `yaml:"viscous_damping"`
	RollingFactor   float64 `yaml:"rolling_factor"`
	BounceThreshold float64 `yaml:"bounce_threshold"`
	SpinDecay       float64 `yaml:"spin_decay"`
	RestSpeed       float64 `yaml:"rest_speed"`
	FixedStep       float64 `yaml:"fixed_step"`
	MinSubSteps     int     `yaml:"min_sub_steps"`
	MaxSubSteps     int     `yaml:"max_sub_steps"`
}

type BallConfig struct {
	Mass     float64                 `yaml:"mass"`
	Radius   float64                 `yaml:"radius"`
	MaxSpin  float64                 `yaml:"max_spin"`
	Start    [3]float64              `yaml:"start,flow"`
	Equipped string                  `yaml:"equipped"`
	Catalog  map[string]session.Ball `yaml:"catalog"`
}

type CourseConfig struct {
	Name     string                          `yaml:"name"`
	Extents  terrain.Extents                 `yaml:"extents"`
	Surfaces map[string]terrain.Coefficients `yaml:"surfaces"`
	Zones    []terrain.Zone                  `yaml:"zones"`
}

type SessionConfig struct {
	FailsafeTimeout float64 `yaml:"failsafe_timeout"`
	MaxFlightTime   float64 `yaml:"max_flight_time"`
	GodGravity      float64 `yaml:"god_gravity"`
	FrameRate       float64 `yaml:"frame_rate"`
	MaxFrameDt      float64 `yaml:"max_frame_dt"`
}

type RelayConfig struct {
	Addr       string `yaml:"addr"`
	SendBuffer int    `yaml:"send_buffer"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultConfig() *Config {
	p := physics.DefaultParams()
	return &Config{
		Physics: PhysicsConfig{
			Integrator:      integrators.Default,
			Gravity:         p.Gravity,
			Drag:            p.DragCoeff,
			Magnus:          p.MagnusCoeff,
			MagnusMode:      p.MagnusMode.String(),
			ViscousDamping:  p.ViscousDamping,
			RollingFactor:   p.RollingFactor,
			BounceThreshold: p.BounceThreshold,
			SpinDecay:       p.GroundSpinDecay,
			RestSpeed:       p.RestSpeed,
			FixedStep:       p.Step.FixedStep,
			MinSubSteps:     p.Step.MinSubSteps,
			MaxSubSteps:     p.Step.MaxSubSteps,
		},
		Ball: BallConfig{
			Mass:     dynamo.DefaultMass,
			Radius:   dynamo.DefaultRadius,
			MaxSpin:  dynamo.DefaultMaxSpin,
			Start:    [3]float64{0, dynamo.DefaultRadius, 0},
			Equipped: session.DefaultBall,
			Catalog:  session.DefaultBalls(),
		},
		Course: *GetCourse(DefaultCourse),
		Session: SessionConfig{
			FailsafeTimeout: session.DefaultFailsafeTimeout,
			MaxFlightTime:   session.DefaultMaxFlightTime,
			GodGravity:      session.DefaultGodGravity,
			FrameRate:       session.DefaultFrameRate,
			MaxFrameDt:      session.DefaultMaxFrameDt,
		},
		Relay:   RelayConfig{Addr: DefaultRelayAddr, SendBuffer: 64},
		Log:     LogConfig{Level: DefaultLogLevel},
		DataDir: DefaultDataDir,
	}
}

// Load reads a YAML file over the defaults. Fields missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the physics section.
func (c *Config) Params() (physics.Params, error) {
	mode, err := physics.ParseMagnusMode(c.Physics.MagnusMode)
	if err != nil {
		return physics.Params{}, err
	}
	p := physics.Params{
		Gravity:         c.Physics.Gravity,
		DragCoeff:       c.Physics.Drag,
		MagnusCoeff:     c.Physics.Magnus,
		MagnusMode:      mode,
		ViscousDamping:  c.Physics.ViscousDamping,
		RollingFactor:   c.Physics.RollingFactor,
		BounceThreshold: c.Physics.BounceThreshold,
		GroundSpinDecay: c.Physics.SpinDecay,
		RestSpeed:       c.Physics.RestSpeed,
		Step: dynamo.Config{
			FixedStep:     c.Physics.FixedStep,
			MinSubSteps:   c.Physics.MinSubSteps,
			MaxSubSteps:   c.Physics.MaxSubSteps,
			ValidateState: true,
		},
	}
	return p, p.Validate()
}

func (c *Config) StartPosition() mgl64.Vec3 {
	return mgl64.Vec3(c.Ball.Start)
}

// Surfaces converts the course surface table, filling in defaults for
// terrain types the file leaves out.
func (c *Config) Surfaces() (map[terrain.Type]terrain.Coefficients, error) {
	out := terrain.DefaultSurfaces()
	for name, coeff := range c.Course.Surfaces {
		t, err := terrain.ParseType(name)
		if err != nil {
			return nil, err
		}
		if t == terrain.OutOfBounds {
			return nil, fmt.Errorf("%w: OB takes no coefficients", terrain.ErrInvalidZone)
		}
		out[t] = coeff
	}
	return out, nil
}

func (c *Config) Classifier() (*terrain.Classifier, error) {
	surfaces, err := c.Surfaces()
	if err != nil {
		return nil, err
	}
	return terrain.NewClassifier(c.Course.Extents, surfaces, c.Course.Zones...)
}

// NewStepper builds the ball, classifier and stepper described by c.
func (c *Config) NewStepper() (*physics.Stepper, error) {
	params, err := c.Params()
	if err != nil {
		return nil, err
	}
	integ, err := integrators.New(c.Physics.Integrator)
	if err != nil {
		return nil, err
	}
	classifier, err := c.Classifier()
	if err != nil {
		return nil, err
	}
	body, err := dynamo.NewRigidBody(c.Ball.Mass, c.Ball.Radius, c.Ball.MaxSpin, c.StartPosition())
	if err != nil {
		return nil, err
	}
	return physics.NewStepper(params, body, integ, classifier)
}

func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Balls:           c.Ball.Catalog,
		Ball:            c.Ball.Equipped,
		FailsafeTimeout: c.Session.FailsafeTimeout,
		MaxFlightTime:   c.Session.MaxFlightTime,
		GodGravity:      c.Session.GodGravity,
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Params(); err != nil {
		errs = append(errs, fmt.Errorf("physics: %w", err))
	}
	if _, err := integrators.New(c.Physics.Integrator); err != nil {
		errs = append(errs, fmt.Errorf("physics: %w", err))
	}
	if !(c.Ball.Mass > 0) || !(c.Ball.Radius > 0) || !(c.Ball.MaxSpin > 0) {
		errs = append(errs, fmt.Errorf("ball: %w: mass, radius and max_spin must be positive", dynamo.ErrParameterBounds))
	}
	if c.Ball.Start[1] < c.Ball.Radius {
		errs = append(errs, fmt.Errorf("ball: start height %v below radius %v", c.Ball.Start[1], c.Ball.Radius))
	}
	if _, ok := c.Ball.Catalog[c.Ball.Equipped]; !ok {
		errs = append(errs, fmt.Errorf("ball: %w: %q", session.ErrUnknownBall, c.Ball.Equipped))
	}
	for _, id := range sortedKeys(c.Ball.Catalog) {
		b := c.Ball.Catalog[id]
		if !(b.SpeedMult > 0) || !(b.SpinMult >= 0) {
			errs = append(errs, fmt.Errorf("ball %s: multipliers must be positive", id))
		}
	}
	if surfaces, err := c.Surfaces(); err != nil {
		errs = append(errs, fmt.Errorf("course: %w", err))
	} else {
		for _, t := range []terrain.Type{terrain.Fairway, terrain.Rough, terrain.Bunker, terrain.Green, terrain.Water} {
			if err := surfaces[t].Validate(); err != nil {
				errs = append(errs, fmt.Errorf("course: surface %s: %w", t, err))
			}
		}
	}
	for i, z := range c.Course.Zones {
		if err := z.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("course: zone %d: %w", i, err))
		}
	}
	e := c.Course.Extents
	if !(e.Lateral > 0) || !(e.Forward > 0) || e.Backward < 0 {
		errs = append(errs, fmt.Errorf("course: extents %+v", e))
	}
	if c.Session.FailsafeTimeout <= 0 || c.Session.MaxFlightTime <= 0 {
		errs = append(errs, errors.New("session: timeouts must be positive"))
	}
	if c.Session.FrameRate <= 0 || c.Session.MaxFrameDt <= 0 {
		errs = append(errs, errors.New("session: frame_rate and max_frame_dt must be positive"))
	}
	if c.Relay.SendBuffer < 1 {
		errs = append(errs, errors.New("relay: send_buffer must be at least 1"))
	}
	return errors.Join(errs...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
