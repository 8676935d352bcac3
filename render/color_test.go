package render

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestColorOf_Bounded(t *testing.T) {
	for _, p := range []Policy{nil, DefaultGrowth(), SaturationPolicy{}, HuePolicy{Frequency: 0.02}} {
		if got := ColorOf(Bounded(), p); got != White {
			t.Errorf("ColorOf(bounded, %T) = %v, want %v", p, got, White)
		}
	}
}

func TestColorOf_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := ColorOf(Escaped(v), DefaultGrowth()); got != White {
			t.Errorf("ColorOf(Escaped(%g)) = %v, want white", v, got)
		}
	}
}

func TestGrowthPolicy(t *testing.T) {
	p := DefaultGrowth()
	tests := []struct {
		n    float64
		want color.RGBA
	}{
		{p.Target, color.RGBA{0, 0, 255, 255}},               // intensity 1
		{p.Target - p.Steps, color.RGBA{0, 0, 1, 255}},       // intensity 1/255
		{p.Target + p.Steps, color.RGBA{255, 255, 255, 255}}, // intensity 255
		{-1000, color.RGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := ColorOf(Escaped(tt.n), p); got != tt.want {
			t.Errorf("growth color at n=%g = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestSaturationPolicy(t *testing.T) {
	p := SaturationPolicy{}
	if got, want := p.Color(0), (color.RGBA{0, 0, 0, 255}); got != want {
		t.Errorf("saturation color at 0 = %v, want %v", got, want)
	}
	if got := p.Color(1e6); got != White {
		t.Errorf("saturation color at 1e6 = %v, want white", got)
	}
	// 3(1-e^{-1}) ≈ 1.896: blue saturated, green partly, red off.
	got := p.Color(128)
	if got.R != 0 || got.B != 255 || got.G < 200 || got.G > 250 {
		t.Errorf("saturation color at 128 = %v", got)
	}
}

func TestHuePolicy(t *testing.T) {
	p := HuePolicy{Frequency: 0.02}
	if got, want := p.Color(0), (color.RGBA{255, 0, 0, 255}); got != want {
		t.Errorf("hue color at 0 = %v, want %v", got, want)
	}
	if got, want := p.Color(50), p.Color(0); got != want {
		t.Errorf("hue not periodic: %v != %v", got, want)
	}
	if got := p.Color(-7.3); got.A != 255 {
		t.Errorf("hue color at negative n has alpha %d", got.A)
	}
}

func TestColorOf_Continuous(t *testing.T) {
	const step = 0.001
	policies := map[string]Policy{
		"growth":     DefaultGrowth(),
		"saturation": SaturationPolicy{},
	}
	for name, p := range policies {
		t.Run(name, func(t *testing.T) {
			prev := ColorOf(Escaped(0), p)
			for n := step; n < 200; n += step {
				cur := ColorOf(Escaped(n), p)
				if absDiff(cur.R, prev.R) > 1 || absDiff(cur.G, prev.G) > 1 || absDiff(cur.B, prev.B) > 1 {
					t.Fatalf("jump at n=%g: %v -> %v", n, prev, cur)
				}
				if cur.A != 255 {
					t.Fatalf("alpha %d at n=%g", cur.A, n)
				}
				prev = cur
			}
		})
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{math.NaN(), 0},
		{127.4, 127},
		{127.6, 128},
		{127.5, 128},
		{128.5, 128},
		{0.5, 0},
		{254.5, 254},
		{255, 255},
		{300, 255},
		{math.Inf(1), 255},
	}
	for _, tt := range tests {
		if got := channel(tt.in); got != tt.want {
			t.Errorf("channel(%g) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		name string
		want Policy
	}{
		{"", DefaultGrowth()},
		{"growth", DefaultGrowth()},
		{"saturation", SaturationPolicy{}},
		{"hue", HuePolicy{Frequency: 0.02}},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.name)
		if err != nil {
			t.Fatalf("ParsePolicy(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %#v, want %#v", tt.name, got, tt.want)
		}
	}

	if _, err := ParsePolicy("rainbow"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("ParsePolicy(rainbow) err = %v, want ErrUnknownPolicy", err)
	}
}
