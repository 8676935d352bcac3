package render

import (
	"fmt"
	"math"
)

// Measure is the outcome of Escape: either the point stayed bounded for
// the whole iteration budget, or it escaped after a smoothed number of
// iterations.
type Measure struct {
	value   float64
	escaped bool
}

// Bounded returns the measure of a point that never escaped.
func Bounded() Measure { return Measure{} }

// Escaped returns the measure of a point that escaped after n smoothed
// iterations.
func Escaped(n float64) Measure { return Measure{value: n, escaped: true} }

// IsBounded reports whether the point never escaped.
func (m Measure) IsBounded() bool { return !m.escaped }

// Value returns the smoothed iteration count and true, or 0 and false for
// a bounded point.
func (m Measure) Value() (float64, bool) { return m.value, m.escaped }

func (m Measure) String() string {
	if !m.escaped {
		return "bounded"
	}
	return fmt.Sprintf("escaped(%g)", m.value)
}

// Escape iterates z ← z² + c from z = 0 for at most maxIterations steps.
// A point escapes once |z| exceeds the bailout radius; the returned count
// is smoothed so that neighbouring pixels vary continuously.
//
// The loop compares squared magnitudes; the square root is taken once, at
// the escaping step.
func Escape(c complex128, maxIterations int, bailout float64) Measure {
	cr, ci := real(c), imag(c)
	limit := bailout * bailout

	var a, b float64
	for n := 0; n < maxIterations; n++ {
		a, b = a*a-b*b+cr, 2*a*b+ci
		if m2 := a*a + b*b; m2 > limit {
			return Escaped(smooth(n, math.Sqrt(m2), bailout))
		}
	}
	return Bounded()
}

// smooth returns n - log2(log(dist) / log(bailout)), never below zero.
// It falls back to the raw step count whenever a logarithm would be
// non-positive or the result is not finite.
func smooth(n int, dist, bailout float64) float64 {
	if dist <= 1 || bailout <= 1 {
		return float64(n)
	}
	v := float64(n) - math.Log(math.Log(dist)/math.Log(bailout))/math.Ln2
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return float64(n)
	}
	// Points starting beyond the bailout radius escape at step 0 with
	// dist > bailout², which would push v below zero.
	return max(v, 0)
}
