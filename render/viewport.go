package render

import (
	"fmt"
	"math"
)

// BaseScale is the number of pixels per plane unit at Scale 1 when the
// fixed convention is used.
const BaseScale = 256.0

// Convention selects the reference unit a Transform's Scale multiplies.
type Convention int

const (
	// ConventionFixed uses BaseScale pixels per plane unit, independent of
	// the image size.
	ConventionFixed Convention = iota
	// ConventionHeight uses the image height as the reference unit, so the
	// visible plane area stays the same when the window is resized.
	ConventionHeight
)

func (c Convention) String() string {
	switch c {
	case ConventionFixed:
		return "fixed"
	case ConventionHeight:
		return "height"
	}
	return fmt.Sprintf("Convention(%d)", int(c))
}

// ParseConvention parses the textual form produced by Convention.String.
// The empty string selects ConventionFixed.
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "", "fixed":
		return ConventionFixed, nil
	case "height":
		return ConventionHeight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownConvention, s)
}

func (c Convention) MarshalText() ([]byte, error) {
	if c != ConventionFixed && c != ConventionHeight {
		return nil, fmt.Errorf("%w: %d", ErrUnknownConvention, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Convention) UnmarshalText(text []byte) error {
	v, err := ParseConvention(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Transform maps pixel space onto the complex plane: the pixel at
// (OffsetX, OffsetY) lands on the origin and Scale zooms in.
type Transform struct {
	OffsetX    float64
	OffsetY    float64
	Scale      float64
	Convention Convention
}

// DefaultTransform has no pan and unit zoom.
func DefaultTransform() Transform {
	return Transform{Scale: 1}
}

// CenteredTransform places the origin two thirds across and halfway down
// a width×height image, using the image height as reference unit. With
// scale 0.4 the whole set fits a landscape frame.
func CenteredTransform(width, height int, scale float64) Transform {
	return Transform{
		OffsetX:    2 * float64(width) / 3,
		OffsetY:    float64(height) / 2,
		Scale:      scale,
		Convention: ConventionHeight,
	}
}

// Validate reports ErrInvalidScale for a non-positive or non-finite scale.
func (t Transform) Validate() error {
	if !(t.Scale > 0) || math.IsInf(t.Scale, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidScale, t.Scale)
	}
	if t.Convention != ConventionFixed && t.Convention != ConventionHeight {
		return fmt.Errorf("%w: %d", ErrUnknownConvention, int(t.Convention))
	}
	return nil
}

// Map returns the plane point for pixel (x, y) of an image that is height
// pixels tall. The width never enters the mapping.
func (t Transform) Map(x, y, height int) complex128 {
	unit := t.unit(height)
	return complex((float64(x)-t.OffsetX)/unit, (float64(y)-t.OffsetY)/unit)
}

// unit is the number of pixels per plane unit.
func (t Transform) unit(height int) float64 {
	if t.Convention == ConventionHeight {
		return float64(height) * t.Scale
	}
	return BaseScale * t.Scale
}

// ZoomAt returns a transform that puts the point under pixel (x, y) in
// the middle of a width×height image and multiplies the zoom by factor.
func (t Transform) ZoomAt(x, y, width, height int, factor float64) Transform {
	c := t.Map(x, y, height)

	z := t
	z.Scale *= factor
	unit := z.unit(height)
	z.OffsetX = float64(width)/2 - real(c)*unit
	z.OffsetY = float64(height)/2 - imag(c)*unit
	return z
}
