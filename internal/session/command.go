package session

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Command is an inbound request from a collaborator. Commands are applied
// with Session.Dispatch.
type Command interface {
	command()
}

type (
	// PlayerReady is the readiness signal from the stance detector.
	PlayerReady struct{}

	Swing struct {
		Velocity mgl64.Vec3 `json:"velocity"`
		Spin     mgl64.Vec3 `json:"spin"`
	}

	// Mulligan cancels whatever is in progress and re-tees the ball.
	Mulligan struct{}

	SetCameraMode struct {
		Mode CameraMode `json:"mode"`
	}

	// SetEnvironment changes wind (Value m/s along Direction) or gravity
	// (Value m/s²). Other kinds are accepted and ignored.
	SetEnvironment struct {
		Kind      string     `json:"kind"`
		Value     float64    `json:"value"`
		Direction mgl64.Vec3 `json:"direction"`
	}

	TogglePutting struct {
		On bool `json:"on"`
	}

	EquipBall struct {
		ID string `json:"id"`
	}

	// GodMode switches to low gravity.
	GodMode struct {
		Enabled bool `json:"enabled"`
	}

	NewHole struct{}
)

func (PlayerReady) command()    {}
func (Swing) command()          {}
func (Mulligan) command()       {}
func (SetCameraMode) command()  {}
func (SetEnvironment) command() {}
func (TogglePutting) command()  {}
func (EquipBall) command()      {}
func (GodMode) command()        {}
func (NewHole) command()        {}

const (
	EnvWind    = "wind"
	EnvGravity = "gravity"
)

type CameraMode string

const (
	CameraTee     CameraMode = "tee"
	CameraFollow  CameraMode = "follow"
	CameraTop     CameraMode = "top"
	CameraPutting CameraMode = "putting"
	CameraFree    CameraMode = "free"
)

func (m CameraMode) Valid() bool {
	switch m {
	case CameraTee, CameraFollow, CameraTop, CameraPutting, CameraFree:
		return true
	}
	return false
}

func ParseCameraMode(s string) (CameraMode, error) {
	m := CameraMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCameraMode, s)
	}
	return m, nil
}

// Ball is an equippable ball. Multipliers scale launch speed and spin.
type Ball struct {
	ID        string  `yaml:"id" json:"id"`
	Name      string  `yaml:"name" json:"name"`
	SpeedMult float64 `yaml:"speed_mult" json:"speed_mult"`
	SpinMult  float64 `yaml:"spin_mult" json:"spin_mult"`
}

const DefaultBall = "standard"

func DefaultBalls() map[string]Ball {
	return map[string]Ball{
		"standard": {ID: "standard", Name: "Standard (2pc)", SpeedMult: 1.0, SpinMult: 1.0},
		"pro":      {ID: "pro", Name: "Tour (3pc)", SpeedMult: 1.05, SpinMult: 1.2},
		"premium":  {ID: "premium", Name: "Golden (4pc)", SpeedMult: 1.15, SpinMult: 1.5},
	}
}
