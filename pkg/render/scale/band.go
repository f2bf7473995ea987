// Package scale maps data values to pixel positions and colors.
//
// Three mappings are provided, all immutable values that are safe to share
// between goroutines:
//
//   - [Band]: a sorted numeric category domain to equal-width padded bands
//   - [Linear]: a continuous numeric domain to a (possibly inverted) pixel range
//   - [Ordinal]: string keys to colors with an explicit unknown color
package scale

import (
	"math"
	"slices"
)

// Band maps a discrete, ascending numeric domain onto contiguous bands of
// equal width. Padding is applied both between bands and at the outer edges,
// as a fraction of the step, and the bands are centered in the range.
type Band struct {
	domain    []float64
	index     map[float64]int
	lo, hi    float64
	padding   float64
	start     float64
	step      float64
	bandwidth float64
}

// NewBand builds a band scale over domain (sorted ascending and deduplicated
// on a copy) spanning the pixel range [lo, hi]. NaN and infinite values have
// no band and are dropped.
func NewBand(domain []float64, lo, hi, padding float64) Band {
	d := slices.DeleteFunc(slices.Clone(domain), func(v float64) bool {
		return math.IsNaN(v) || math.IsInf(v, 0)
	})
	slices.Sort(d)
	d = slices.Compact(d)

	padding = min(max(padding, 0), 1)
	n := float64(len(d))
	step := (hi - lo) / max(1, n-padding+padding*2)
	start := lo + (hi-lo-step*(n-padding))*0.5

	index := make(map[float64]int, len(d))
	for i, v := range d {
		index[v] = i
	}
	return Band{
		domain:    d,
		index:     index,
		lo:        lo,
		hi:        hi,
		padding:   padding,
		start:     start,
		step:      step,
		bandwidth: step * (1 - padding),
	}
}

// Map returns the left edge of the band for v. ok is false when v is not in
// the domain.
func (b Band) Map(v float64) (x float64, ok bool) {
	i, ok := b.index[v]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Center returns the horizontal center of the band for v.
func (b Band) Center(v float64) (float64, bool) {
	x, ok := b.Map(v)
	return x + b.bandwidth/2, ok
}

// Contains reports whether v is in the domain.
func (b Band) Contains(v float64) bool {
	_, ok := b.index[v]
	return ok
}

// Domain returns a copy of the sorted domain.
func (b Band) Domain() []float64 { return slices.Clone(b.domain) }

// Len returns the number of categories.
func (b Band) Len() int { return len(b.domain) }

// Range returns the pixel range the scale was built for.
func (b Band) Range() (lo, hi float64) { return b.lo, b.hi }

// Bandwidth returns the width of each band.
func (b Band) Bandwidth() float64 { return b.bandwidth }

// Step returns the distance between the starts of adjacent bands.
func (b Band) Step() float64 { return b.step }

// Padding returns the padding fraction.
func (b Band) Padding() float64 { return b.padding }

// Extent returns the smallest and largest domain values. ok is false for an
// empty domain.
func (b Band) Extent() (lo, hi float64, ok bool) {
	if len(b.domain) == 0 {
		return 0, 0, false
	}
	return b.domain[0], b.domain[len(b.domain)-1], true
}
