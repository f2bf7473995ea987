package scene

import (
	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/axis"
	"github.com/matzehuels/licensecharts/pkg/render/stacked"
	"github.com/matzehuels/licensecharts/pkg/render/style"
)

// AssembleStacked builds the scene of a stacked bar chart.
//
// Paint order: one group of rects per stack key in stacking order, then the
// bottom (category) axis, then the left (value) axis. The left axis has no
// domain line and SI-formatted labels; the bottom axis has no outer ticks.
func AssembleStacked(l *stacked.Layout, theme style.Theme) (Scene, error) {
	if l == nil {
		return Scene{}, errors.New(errors.ErrCodeInvalidInput, "nil stacked layout")
	}
	f := newFormatter()
	bw := l.Band.Bandwidth()

	prims := make([]Primitive, 0, len(l.Keys)*len(l.Categories)+2)
	for k, key := range l.Keys {
		fill := l.Color.Map(key)
		for _, iv := range l.Intervals[k] {
			x, ok := l.Band.Map(iv.Category)
			if !ok {
				continue
			}
			y0, y1 := l.Linear.Map(iv.Baseline), l.Linear.Map(iv.Top)
			cat := formatCategory(iv.Category)
			prims = append(prims, Primitive{
				Kind:  KindRect,
				Group: key,
				Rect:  Rect{X: x, Y: y1, Width: bw, Height: y0 - y1},
				Style: Style{Fill: fill},
				Datum: &Datum{
					Title:    title(cat, key, f.value(iv.Value, iv.Missing)),
					Category: cat,
					Series:   key,
					Value:    iv.Value,
					Missing:  iv.Missing,
				},
			})
		}
	}

	lo, hi := l.Band.Range()
	prims = append(prims, Primitive{
		Kind: KindAxis,
		Axis: &Axis{
			Orient:        OrientBottom,
			Offset:        l.Height - l.Margins.Bottom,
			RangeMin:      lo,
			RangeMax:      hi,
			Ticks:         axis.BandTicks(l.Band, theme.TickSpacing),
			TickSize:      theme.TickSize,
			TickSizeOuter: 0,
			DomainLine:    true,
			Label:         l.XLabel,
		},
		Style: Style{Stroke: style.ColorAxis, FontSize: theme.FontSize},
	})

	r0, r1 := l.Linear.Range()
	prims = append(prims, Primitive{
		Kind: KindAxis,
		Axis: &Axis{
			Orient:        OrientLeft,
			Offset:        l.Margins.Left,
			RangeMin:      min(r0, r1),
			RangeMax:      max(r0, r1),
			Ticks:         axis.LinearTicks(l.Linear, axis.DefaultCount),
			TickSize:      theme.TickSize,
			TickSizeOuter: theme.TickSize,
			DomainLine:    false,
			Label:         l.YLabel,
		},
		Style: Style{Stroke: style.ColorAxis, FontSize: theme.FontSize},
	})

	return Scene{Chart: ChartStacked, Width: l.Width, Height: l.Height, Primitives: prims}, nil
}
