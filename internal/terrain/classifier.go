package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Classifier maps ground positions to terrain. Zones are matched in
// registration order; positions inside no zone are fairway.
type Classifier struct {
	zones    []Zone
	extents  Extents
	surfaces map[Type]Coefficients
}

func NewClassifier(extents Extents, surfaces map[Type]Coefficients, zones ...Zone) (*Classifier, error) {
	if surfaces == nil {
		surfaces = DefaultSurfaces()
	}
	for _, t := range []Type{Fairway, Rough, Bunker, Green, Water} {
		c, ok := surfaces[t]
		if !ok {
			return nil, fmt.Errorf("%w: no coefficients for %s", ErrInvalidZone, t)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidZone, t, err)
		}
	}
	c := &Classifier{
		extents:  extents,
		surfaces: make(map[Type]Coefficients, len(surfaces)),
	}
	for t, coeff := range surfaces {
		if t != OutOfBounds {
			c.surfaces[t] = coeff
		}
	}
	for _, z := range zones {
		if err := c.Add(z); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add registers a zone after all existing ones.
func (c *Classifier) Add(z Zone) error {
	if err := z.Validate(); err != nil {
		return err
	}
	c.zones = append(c.zones, z)
	return nil
}

func (c *Classifier) Zones() []Zone {
	out := make([]Zone, len(c.zones))
	copy(out, c.zones)
	return out
}

func (c *Classifier) Extents() Extents { return c.extents }

func (c *Classifier) Classify(pos mgl64.Vec3) Type {
	x, z := pos.X(), pos.Z()
	if c.extents.Outside(x, z) {
		return OutOfBounds
	}
	for _, zone := range c.zones {
		if zone.Bounds.Contains(x, z) {
			return zone.Type
		}
	}
	return Fairway
}

// Coefficients looks up contact parameters. OB has none.
func (c *Classifier) Coefficients(t Type) (Coefficients, bool) {
	coeff, ok := c.surfaces[t]
	return coeff, ok
}

// Outcome classifies the rest position of a finished shot.
func (c *Classifier) Outcome(rest mgl64.Vec3) Type {
	return c.Classify(rest)
}
