package scale

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// Linear maps the numeric domain [Min, Max] onto the pixel range [r0, r1].
// r0 may be greater than r1, which is how charts put zero at the bottom.
//
// A degenerate domain (Min == Max) maps every value to the middle of the
// range, so bars built from an all-zero domain come out with zero height.
type Linear struct {
	s      scale.Linear
	r0, r1 float64
	round  bool
}

// NewLinear returns a linear scale with output rounded to whole pixels.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{s: scale.Linear{Min: d0, Max: d1}, r0: r0, r1: r1, round: true}
}

// NewLinearUnrounded returns a linear scale with continuous output.
func NewLinearUnrounded(d0, d1, r0, r1 float64) Linear {
	return Linear{s: scale.Linear{Min: d0, Max: d1}, r0: r0, r1: r1}
}

// Map returns the pixel position for v.
func (l Linear) Map(v float64) float64 {
	t := 0.5
	if l.s.Max != l.s.Min {
		t = l.s.Map(v)
	}
	y := l.r0 + t*(l.r1-l.r0)
	if l.round {
		y = math.Round(y)
	}
	return y
}

// Domain returns the domain bounds.
func (l Linear) Domain() (lo, hi float64) { return l.s.Min, l.s.Max }

// Range returns the range bounds in construction order.
func (l Linear) Range() (r0, r1 float64) { return l.r0, l.r1 }

// Ticks returns at most count "nice" values (multiples of 1, 2, or 5 times a
// power of ten) covering the domain, in increasing order.
func (l Linear) Ticks(count int) []float64 {
	return NiceTicks(l.s.Min, l.s.Max, count)
}

// NiceTicks returns at most count nice values in [lo, hi], increasing.
// A degenerate interval yields the single value lo.
func NiceTicks(lo, hi float64, count int) []float64 {
	if count < 1 || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return []float64{lo}
	}
	major, _ := scale.Linear{Min: lo, Max: hi}.Ticks(scale.TickOptions{Max: count})
	return major
}
