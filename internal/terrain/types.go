package terrain

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownType = errors.New("terrain: unknown type")
	ErrInvalidZone = errors.New("terrain: invalid zone")
)

type Type uint8

const (
	Fairway Type = iota
	Rough
	Bunker
	Green
	Water
	OutOfBounds
)

var typeNames = [...]string{
	Fairway:     "FAIRWAY",
	Rough:       "ROUGH",
	Bunker:      "BUNKER",
	Green:       "GREEN",
	Water:       "WATER",
	OutOfBounds: "OB",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

func ParseType(s string) (Type, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Viscous terrains absorb energy beyond restitution and friction.
func (t Type) Viscous() bool { return t == Bunker || t == Water }

func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t Type) MarshalYAML() (interface{}, error) { return t.String(), nil }

func (t *Type) UnmarshalYAML(n *yaml.Node) error {
	return t.UnmarshalText([]byte(n.Value))
}

// Coefficients are the contact parameters of a playable surface.
type Coefficients struct {
	Friction    float64 `yaml:"friction" json:"friction"`
	Restitution float64 `yaml:"restitution" json:"restitution"`
}

func (c Coefficients) Validate() error {
	if c.Friction < 0 {
		return fmt.Errorf("friction %v must be >= 0", c.Friction)
	}
	if c.Restitution < 0 || c.Restitution > 1 {
		return fmt.Errorf("restitution %v must be in [0,1]", c.Restitution)
	}
	return nil
}

func DefaultSurfaces() map[Type]Coefficients {
	return map[Type]Coefficients{
		Fairway: {Friction: 0.5, Restitution: 0.3},
		Rough:   {Friction: 1.2, Restitution: 0.1},
		Bunker:  {Friction: 3.5, Restitution: 0.0},
		Green:   {Friction: 0.2, Restitution: 0.4},
		Water:   {Friction: 5.0, Restitution: 0.0},
	}
}

// Bounds is an inclusive axis-aligned rectangle on the ground plane.
type Bounds struct {
	XMin float64 `yaml:"x_min" json:"x_min"`
	XMax float64 `yaml:"x_max" json:"x_max"`
	ZMin float64 `yaml:"z_min" json:"z_min"`
	ZMax float64 `yaml:"z_max" json:"z_max"`
}

func (b Bounds) Contains(x, z float64) bool {
	return x >= b.XMin && x <= b.XMax && z >= b.ZMin && z <= b.ZMax
}

type Zone struct {
	Name   string `yaml:"name" json:"name"`
	Type   Type   `yaml:"type" json:"type"`
	Bounds Bounds `yaml:"bounds" json:"bounds"`
}

func (z Zone) Validate() error {
	if z.Type == OutOfBounds || int(z.Type) >= len(typeNames) {
		return fmt.Errorf("%w: zone %q has type %s", ErrInvalidZone, z.Name, z.Type)
	}
	if z.Bounds.XMin > z.Bounds.XMax || z.Bounds.ZMin > z.Bounds.ZMax {
		return fmt.Errorf("%w: zone %q bounds are not ordered", ErrInvalidZone, z.Name)
	}
	return nil
}

// Extents are the playable world limits. Forward play runs toward -z.
type Extents struct {
	Lateral  float64 `yaml:"lateral" json:"lateral"`
	Forward  float64 `yaml:"forward" json:"forward"`
	Backward float64 `yaml:"backward" json:"backward"`
}

func DefaultExtents() Extents {
	return Extents{Lateral: 150, Forward: 500, Backward: 50}
}

func (e Extents) Outside(x, z float64) bool {
	return x > e.Lateral || x < -e.Lateral || z < -e.Forward || z > e.Backward
}
