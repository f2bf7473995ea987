// Package stacked computes the geometry of a stacked bar chart.
//
// [Build] groups records by a numeric category (the x axis) and a string
// stack key, stacks the per-key values bottom-up inside every category, and
// derives the three mappings the chart is drawn with: a band scale for the
// categories, a linear scale for the values, and an ordinal color scale for
// the stack keys.
//
//	l, err := stacked.Build(records, stacked.Accessors[Row]{
//	    X: func(r Row) float64 { return float64(r.Year) },
//	    Y: func(r Row) float64 { return r.Count },
//	    Z: func(r Row) string { return r.Status },
//	}, stacked.OptionsFromTheme(style.Default(), 1200, 500))
//
// Build is a pure function of its arguments. The caller's records are never
// modified and repeated calls with equal input produce equal layouts.
package stacked

import (
	"math"

	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/scale"
	"github.com/matzehuels/licensecharts/pkg/render/style"
)

// Accessors project a record of type R onto the three chart dimensions.
// All three must be pure.
type Accessors[R any] struct {
	X func(R) float64 // category (band axis)
	Y func(R) float64 // value (linear axis)
	Z func(R) string  // stack key (color)
}

// Options configure [Build].
type Options struct {
	Width   float64
	Height  float64
	Margins style.Margins
	Palette style.Palette // nil selects a Spectral palette sized to the key count
	Unknown string        // color for keys outside the color domain
	Padding float64       // band padding fraction
	XLabel  string
	YLabel  string
}

// OptionsFromTheme returns options for a width × height chart styled by t.
func OptionsFromTheme(t style.Theme, width, height float64) Options {
	return Options{
		Width:   width,
		Height:  height,
		Margins: t.Margins,
		Palette: t.Palette,
		Unknown: t.Unknown,
		Padding: t.Padding,
	}
}

// Interval is the vertical extent of one stack key inside one category, in
// data units. Missing is set when no record supplied a value for the pair, or
// the supplied value was NaN; such intervals have zero height and Value 0.
type Interval struct {
	Category float64
	Key      string
	Baseline float64
	Top      float64
	Value    float64
	Missing  bool
}

// Height returns Top - Baseline.
func (iv Interval) Height() float64 { return iv.Top - iv.Baseline }

// Layout is the result of [Build].
type Layout struct {
	Width   float64
	Height  float64
	Margins style.Margins

	// Categories are the distinct category values, ascending.
	Categories []float64
	// Keys are the distinct stack keys in first-seen order. This order is
	// the stacking order (bottom to top) and the color order.
	Keys []string
	// Intervals is indexed [key][category], parallel to Keys and Categories.
	Intervals [][]Interval

	Band   scale.Band
	Linear scale.Linear
	Color  scale.Ordinal

	XLabel string
	YLabel string
}

type groupKey struct {
	x float64
	z string
}

// Build computes the stacked layout of records.
//
// It fails with [errors.ErrCodeInvalidGeometry] when the margins leave no
// plot area and with [errors.ErrCodeInvalidInput] when records is empty, an
// accessor is nil or a record has no finite category value.
func Build[R any](records []R, acc Accessors[R], opts Options) (*Layout, error) {
	m := opts.Margins
	if err := errors.ValidateGeometry(opts.Width, opts.Height, m.Top, m.Right, m.Bottom, m.Left); err != nil {
		return nil, err
	}
	if acc.X == nil || acc.Y == nil || acc.Z == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "accessors X, Y and Z are required")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no records to lay out")
	}

	var (
		xs     = make([]float64, 0, len(records))
		keys   []string
		seen   = make(map[string]bool)
		values = make(map[groupKey]float64, len(records))
	)
	for i, r := range records {
		x, z := acc.X(r), acc.Z(r)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "record %d has no category value (got %v)", i, x)
		}
		xs = append(xs, x)
		if !seen[z] {
			seen[z] = true
			keys = append(keys, z)
		}
		values[groupKey{x, z}] = acc.Y(r) // later records win
	}

	band := scale.NewBand(xs, m.Left, opts.Width-m.Right, opts.Padding)
	categories := band.Domain()

	intervals := make([][]Interval, len(keys))
	for k := range keys {
		intervals[k] = make([]Interval, len(categories))
	}
	maxTop := 0.0
	for c, x := range categories {
		total := 0.0
		for k, z := range keys {
			v, ok := values[groupKey{x, z}]
			missing := !ok || math.IsNaN(v)
			if missing {
				v = 0
			}
			intervals[k][c] = Interval{
				Category: x,
				Key:      z,
				Baseline: total,
				Top:      total + v,
				Value:    v,
				Missing:  missing,
			}
			total += v
		}
		maxTop = max(maxTop, total)
	}

	palette := opts.Palette
	if len(palette) == 0 {
		palette = style.Spectral(len(keys))
	}
	unknown := opts.Unknown
	if unknown == "" {
		unknown = style.ColorUnknown
	}

	return &Layout{
		Width:      opts.Width,
		Height:     opts.Height,
		Margins:    m,
		Categories: categories,
		Keys:       keys,
		Intervals:  intervals,
		Band:       band,
		Linear:     scale.NewLinear(0, maxTop, opts.Height-m.Bottom, m.Top),
		Color:      scale.NewOrdinal(keys, palette, unknown),
		XLabel:     opts.XLabel,
		YLabel:     opts.YLabel,
	}, nil
}

// Series returns the intervals of key across all categories, or nil when key
// is not a stack key.
func (l *Layout) Series(key string) []Interval {
	for k, z := range l.Keys {
		if z == key {
			return l.Intervals[k]
		}
	}
	return nil
}

// Total returns the stacked total of category. ok is false when category is
// not in the layout.
func (l *Layout) Total(category float64) (total float64, ok bool) {
	for c, x := range l.Categories {
		if x != category {
			continue
		}
		if len(l.Intervals) == 0 {
			return 0, true
		}
		return l.Intervals[len(l.Intervals)-1][c].Top, true
	}
	return 0, false
}

// MaxTotal returns the largest category total, the upper end of the value
// domain.
func (l *Layout) MaxTotal() float64 {
	_, hi := l.Linear.Domain()
	return hi
}
