// Package axis selects and labels axis ticks.
//
// Band axes are discrete, so "nice" candidate values that fall between
// categories are dropped rather than snapped; see [SelectBandTicks].
package axis

import (
	"math"
	"strconv"

	"github.com/matzehuels/licensecharts/pkg/render/scale"
)

// DefaultSpacing is the target distance in pixels between band ticks.
const DefaultSpacing = 40

// DefaultCount is the target number of ticks on a linear axis.
const DefaultCount = 10

// Tick is a labeled tick position.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Pos   float64 `json:"pos"` // pixel position along the axis
}

// SelectBandTicks returns the category values of b to label, given a target
// pixel spacing between labels (DefaultSpacing when spacing <= 0).
//
// Candidates are nice numbers over the domain extent, about one per spacing
// pixels of the band range. Candidates not in the domain are discarded. The
// result is strictly increasing and every value is a domain member. If no
// candidate survives, the first and last domain values are returned. The
// result is empty only for an empty domain.
func SelectBandTicks(b scale.Band, spacing float64) []float64 {
	first, last, ok := b.Extent()
	if !ok {
		return nil
	}
	if first == last {
		return []float64{first}
	}
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	lo, hi := b.Range()
	count := max(1, int(math.Abs(hi-lo)/spacing))

	domain := b.Domain()
	var ticks []float64
	for _, c := range scale.NiceTicks(first, last, count) {
		v, ok := member(domain, c)
		if !ok {
			continue
		}
		if n := len(ticks); n > 0 && ticks[n-1] >= v {
			continue
		}
		ticks = append(ticks, v)
	}
	if len(ticks) == 0 {
		return []float64{first, last}
	}
	return ticks
}

// member finds c in the sorted domain, tolerating the rounding error of
// tick arithmetic.
func member(domain []float64, c float64) (float64, bool) {
	eps := 1e-9 * max(1, math.Abs(c))
	for _, d := range domain {
		if math.Abs(d-c) <= eps {
			return d, true
		}
		if d > c {
			break
		}
	}
	return 0, false
}

// BandTicks returns the ticks chosen by [SelectBandTicks], positioned at the
// band centers and labeled with the plain decimal value.
func BandTicks(b scale.Band, spacing float64) []Tick {
	values := SelectBandTicks(b, spacing)
	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		pos, _ := b.Center(v)
		ticks = append(ticks, Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64), Pos: pos})
	}
	return ticks
}

// LinearTicks returns at most count nice ticks over the domain of l
// (DefaultCount when count < 1), labeled with SI prefixes.
func LinearTicks(l scale.Linear, count int) []Tick {
	if count < 1 {
		count = DefaultCount
	}
	lo, hi := l.Domain()
	values := scale.NiceTicks(lo, hi, count)
	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, Tick{Value: v, Label: FormatSI(v), Pos: l.Map(v)})
	}
	return ticks
}
