// Package scene turns chart layouts into an ordered list of drawable
// primitives.
//
// A [Scene] is renderer-agnostic: it carries pixel geometry, style, and
// optional inspection data, and its order is the paint order (later
// primitives paint over earlier ones). Sinks such as SVG or JSON emitters
// walk the list front to back.
//
//	l, _ := stacked.Build(records, acc, opts)
//	s, _ := scene.AssembleStacked(l, style.Default())
//	for _, p := range s.Primitives { ... }
package scene

import (
	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/axis"
	"github.com/matzehuels/licensecharts/pkg/render/stacked"
	"github.com/matzehuels/licensecharts/pkg/render/style"
	"github.com/matzehuels/licensecharts/pkg/render/upset"
)

// Chart identifies the chart type of a scene.
type Chart string

const (
	ChartStacked Chart = "stacked"
	ChartUpSet   Chart = "upset"
)

// Kind identifies the geometry of a primitive.
type Kind string

const (
	KindRect   Kind = "rect"
	KindLine   Kind = "line"
	KindCircle Kind = "circle"
	KindText   Kind = "text"
	KindAxis   Kind = "axis"
)

// Kinds lists all primitive kinds in a fixed order.
var Kinds = []Kind{KindRect, KindLine, KindCircle, KindText, KindAxis}

// Rect geometry.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Line geometry.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Circle geometry.
type Circle struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
}

// Text anchors.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

// Text is a positioned string. Anchor is one of AnchorStart, AnchorMiddle,
// AnchorEnd.
type Text struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Content string  `json:"content"`
	Anchor  string  `json:"anchor"`
}

// Axis orientations.
const (
	OrientBottom = "bottom"
	OrientLeft   = "left"
)

// Axis is a tick axis. For a bottom axis Offset is the y of the axis line
// and tick positions are x values; for a left axis Offset is the x of the
// axis line and tick positions are y values.
type Axis struct {
	Orient        string      `json:"orient"`
	Offset        float64     `json:"offset"`
	RangeMin      float64     `json:"range_min"`
	RangeMax      float64     `json:"range_max"`
	Ticks         []axis.Tick `json:"ticks"`
	TickSize      float64     `json:"tick_size"`
	TickSizeOuter float64     `json:"tick_size_outer"`
	DomainLine    bool        `json:"domain_line"`
	Label         string      `json:"label,omitempty"`
}

// Style holds the paint attributes of a primitive.
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	FontSize    float64 `json:"font_size,omitempty"`
}

// Datum is inspection data attached to a primitive for hover display.
// Value is meaningful only when Missing is false.
type Datum struct {
	Title    string  `json:"title"`
	Category string  `json:"category,omitempty"`
	Series   string  `json:"series,omitempty"`
	Value    float64 `json:"value"`
	Missing  bool    `json:"missing,omitempty"`
}

// Primitive is one drawable unit. Exactly the geometry field matching Kind
// is set.
type Primitive struct {
	Kind   Kind   `json:"kind"`
	Group  string `json:"group,omitempty"`
	Rect   Rect   `json:"rect,omitzero"`
	Line   Line   `json:"line,omitzero"`
	Circle Circle `json:"circle,omitzero"`
	Text   Text   `json:"text,omitzero"`
	Axis   *Axis  `json:"axis,omitempty"`
	Style  Style  `json:"style,omitzero"`
	Datum  *Datum `json:"datum,omitempty"`
}

// Scene is an ordered list of primitives inside a Width × Height frame.
type Scene struct {
	Chart      Chart       `json:"chart"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Primitives []Primitive `json:"primitives"`
}

// Counts returns the number of primitives of each kind.
func (s Scene) Counts() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, p := range s.Primitives {
		counts[p.Kind]++
	}
	return counts
}

// Assemble dispatches to [AssembleStacked] or [AssembleUpSet]. l must be the
// layout type matching chart; anything else fails with
// [errors.ErrCodeInvalidChart].
func Assemble(l any, chart Chart, theme style.Theme) (Scene, error) {
	switch chart {
	case ChartStacked:
		sl, ok := l.(*stacked.Layout)
		if !ok {
			return Scene{}, errors.New(errors.ErrCodeInvalidChart, "stacked chart needs a *stacked.Layout, got %T", l)
		}
		return AssembleStacked(sl, theme)
	case ChartUpSet:
		ul, ok := l.(*upset.Layout)
		if !ok {
			return Scene{}, errors.New(errors.ErrCodeInvalidChart, "upset chart needs an *upset.Layout, got %T", l)
		}
		return AssembleUpSet(ul, theme)
	default:
		return Scene{}, errors.New(errors.ErrCodeInvalidChart, "unknown chart kind %q", chart)
	}
}

// ParseChart converts a chart name into a Chart.
func ParseChart(name string) (Chart, error) {
	switch Chart(name) {
	case ChartStacked, ChartUpSet:
		return Chart(name), nil
	}
	return "", errors.New(errors.ErrCodeInvalidChart, "unknown chart kind %q (want stacked or upset)", name)
}
