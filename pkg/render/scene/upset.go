package scene

import (
	"strings"

	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/style"
	"github.com/matzehuels/licensecharts/pkg/render/upset"
)

// AssembleUpSet builds the scene of an UpSet plot.
//
// Paint order: bars, connector lines, dots, bar value labels, set labels.
func AssembleUpSet(l *upset.Layout, theme style.Theme) (Scene, error) {
	if l == nil {
		return Scene{}, errors.New(errors.ErrCodeInvalidInput, "nil upset layout")
	}
	f := newFormatter()
	u := theme.UpSet

	var bars, barLabels, connectors, dots, setLabels []Primitive
	for _, col := range l.Columns {
		name := strings.Join(col.Sets, " ∩ ")
		size := f.count(col.Size)
		bars = append(bars, Primitive{
			Kind:  KindRect,
			Group: "bars",
			Rect:  Rect{X: col.Bar.X, Y: col.Bar.Y, Width: col.Bar.Width, Height: col.Bar.Height},
			Style: Style{Fill: u.BarColor},
			Datum: &Datum{Title: name + "\n" + size, Series: name, Value: float64(col.Size)},
		})
		barLabels = append(barLabels, Primitive{
			Kind:  KindText,
			Group: "bar-labels",
			Text:  Text{X: col.LabelX, Y: col.LabelY, Content: size, Anchor: AnchorMiddle},
			Style: Style{Fill: style.ColorText, FontSize: u.FontSize},
		})
		for _, seg := range col.Connectors {
			connectors = append(connectors, Primitive{
				Kind:  KindLine,
				Group: "connectors",
				Line:  Line{X1: seg.X1, Y1: seg.Y1, X2: seg.X2, Y2: seg.Y2},
				Style: Style{Stroke: u.ActiveColor, StrokeWidth: u.ConnectorWidth},
			})
		}
		for _, d := range col.Dots {
			fill := u.InactiveColor
			if d.Active {
				fill = u.ActiveColor
			}
			dots = append(dots, Primitive{
				Kind:   KindCircle,
				Group:  "dots",
				Circle: Circle{CX: d.CX, CY: d.CY, R: d.R},
				Style:  Style{Fill: fill},
			})
		}
	}
	for _, sl := range l.Labels {
		setLabels = append(setLabels, Primitive{
			Kind:  KindText,
			Group: "set-labels",
			Text:  Text{X: sl.X, Y: sl.Y, Content: sl.Label, Anchor: AnchorEnd},
			Style: Style{Fill: style.ColorText, FontSize: u.FontSize},
		})
	}

	prims := make([]Primitive, 0, len(bars)+len(barLabels)+len(connectors)+len(dots)+len(setLabels))
	prims = append(prims, bars...)
	prims = append(prims, connectors...)
	prims = append(prims, dots...)
	prims = append(prims, barLabels...)
	prims = append(prims, setLabels...)

	return Scene{Chart: ChartUpSet, Width: l.Width, Height: l.Height, Primitives: prims}, nil
}
