package render

import (
	"fmt"
	"image/color"
	"math"
)

// White marks points inside the set.
var White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Policy turns a finite smoothed iteration count into an opaque color.
type Policy interface {
	Color(n float64) color.RGBA
}

// GrowthPolicy grows intensity exponentially: the color at Target
// iterations has intensity 1 (pure blue), and every Steps iterations
// further out multiply intensity by 255.
type GrowthPolicy struct {
	Target float64
	Steps  float64
}

// DefaultGrowth is the growth policy with Target 20 and Steps 25.
func DefaultGrowth() GrowthPolicy {
	return GrowthPolicy{Target: 20, Steps: 25}
}

// Validate rejects a Steps that is not a positive finite number; Intensity
// would otherwise be NaN or constant for every point.
func (p GrowthPolicy) Validate() error {
	if !(p.Steps > 0) || math.IsInf(p.Steps, 0) {
		return fmt.Errorf("%w: growth steps %g", ErrInvalidPolicy, p.Steps)
	}
	if math.IsNaN(p.Target) || math.IsInf(p.Target, 0) {
		return fmt.Errorf("%w: growth target %g", ErrInvalidPolicy, p.Target)
	}
	return nil
}

func (p GrowthPolicy) Intensity(n float64) float64 {
	growth := math.Pow(255, 1/p.Steps)
	return math.Pow(growth, n-p.Target)
}

func (p GrowthPolicy) Color(n float64) color.RGBA {
	return blueFire(p.Intensity(n))
}

// SaturationPolicy approaches intensity 3 (white) as n grows.
type SaturationPolicy struct{}

func (SaturationPolicy) Intensity(n float64) float64 {
	return 3 * (1 - math.Exp(-n/128))
}

func (p SaturationPolicy) Color(n float64) color.RGBA {
	return blueFire(p.Intensity(n))
}

// HuePolicy cycles through the hue wheel, one full turn every
// 1/Frequency iterations.
type HuePolicy struct {
	Frequency float64
}

func (p HuePolicy) Color(n float64) color.RGBA {
	return hsv(n*p.Frequency, 1, 1)
}

// Policy names accepted by ParsePolicy.
const (
	PolicyGrowth     = "growth"
	PolicySaturation = "saturation"
	PolicyHue        = "hue"
)

// ParsePolicy returns the policy registered under name with its default
// parameters. The empty name selects the growth policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", PolicyGrowth:
		return DefaultGrowth(), nil
	case PolicySaturation:
		return SaturationPolicy{}, nil
	case PolicyHue:
		return HuePolicy{Frequency: 0.02}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// ColorOf maps a measure to a color. Bounded points, and escaped points
// whose value is not finite, are white. A nil policy means DefaultGrowth.
func ColorOf(m Measure, p Policy) color.RGBA {
	n, escaped := m.Value()
	if !escaped || math.IsNaN(n) || math.IsInf(n, 0) {
		return White
	}
	if p == nil {
		p = DefaultGrowth()
	}
	return p.Color(n)
}

// blueFire ramps dark blue → blue → white as intensity goes 0 → 3.
func blueFire(intensity float64) color.RGBA {
	return color.RGBA{
		R: channel((intensity - 2) * 0xff),
		G: channel((intensity - 1) * 0xff),
		B: channel(intensity * 0xff),
		A: 0xff,
	}
}

// channel rounds v to the nearest byte, ties to even, saturating at 0 and
// 255.
func channel(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 0xff:
		return 0xff
	}
	return uint8(math.RoundToEven(v))
}

func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{R: channel(r * 0xff), G: channel(g * 0xff), B: channel(b * 0xff), A: 0xff}
}
