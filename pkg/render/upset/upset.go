// Package upset computes the geometry of an UpSet plot.
//
// An UpSet plot shows set intersections as columns. Each column has a bar
// whose height is the intersection's cardinality and, below it, a dot matrix
// with one row per set: a dot is active when the set takes part in the
// intersection, and consecutive active dots are joined by connector segments.
//
// Columns keep the order of [Data.Intersections] and rows keep the order of
// [Data.Sets]; nothing is sorted.
package upset

import (
	"slices"

	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/scale"
	"github.com/matzehuels/licensecharts/pkg/render/style"
)

// Data is the input of an UpSet plot, as served by the data source.
type Data struct {
	Sets          []string       `json:"sets" yaml:"sets" toml:"sets"`
	Intersections []Intersection `json:"intersections" yaml:"intersections" toml:"intersections"`
}

// Intersection is a combination of set labels and its cardinality.
type Intersection struct {
	Sets []string `json:"set" yaml:"set" toml:"set"`
	Size int      `json:"size" yaml:"size" toml:"size"`
}

// Options hold the plot geometry in pixels.
type Options struct {
	Height         float64
	Margins        style.Margins
	BarWidth       float64
	BarSpacing     float64
	BarHeadroom    float64
	DotRadius      float64
	DotSpacing     float64
	DotOffset      float64
	LabelGap       float64
	SetLabelOffset float64
}

// OptionsFromTheme copies the UpSet geometry out of t.
func OptionsFromTheme(t style.Theme) Options {
	u := t.UpSet
	return Options{
		Height:         u.Height,
		Margins:        u.Margins,
		BarWidth:       u.BarWidth,
		BarSpacing:     u.BarSpacing,
		BarHeadroom:    u.BarHeadroom,
		DotRadius:      u.DotRadius,
		DotSpacing:     u.DotSpacing,
		DotOffset:      u.DotOffset,
		LabelGap:       u.LabelGap,
		SetLabelOffset: u.SetLabelOffset,
	}
}

// Rect is an axis-aligned rectangle in frame pixels; Y grows downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Dot is one cell of the dot matrix.
type Dot struct {
	Set    string
	Row    int
	CX, CY float64
	R      float64
	Active bool
}

// Segment is a connector between two active dots of one column.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64
	From   int // row of the upper dot
	To     int // row of the lower dot
}

// Column is the geometry of one intersection.
type Column struct {
	Index      int
	Sets       []string
	Size       int
	Bar        Rect
	LabelX     float64 // anchor of the bar value label (middle)
	LabelY     float64
	Dots       []Dot
	Active     []int // rows of the active dots, top to bottom
	Connectors []Segment
}

// SetLabel places a set name at the left of its dot row.
type SetLabel struct {
	Label string
	Row   int
	X, Y  float64
}

// UnknownLabel records an intersection member that is not one of the sets.
// Such members are drawn as nothing: every dot of the column stays inactive
// for them.
type UnknownLabel struct {
	Column int
	Label  string
}

// Layout is the result of [Build].
type Layout struct {
	Width   float64
	Height  float64
	Margins style.Margins
	Sets    []string
	Columns []Column
	Labels  []SetLabel
	MaxSize int
	Unknown []UnknownLabel
}

// Build computes the UpSet geometry for data.
//
// The frame width follows from the number of columns. Build fails with
// [errors.ErrCodeInvalidGeometry] when the margins leave no room for the bar
// area and with [errors.ErrCodeInvalidInput] when a size is negative.
func Build(data Data, opts Options) (*Layout, error) {
	m := opts.Margins
	if opts.BarWidth <= 0 || opts.BarSpacing < 0 || opts.DotSpacing < 0 || opts.DotRadius < 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "bar width must be positive and spacings non-negative")
	}
	step := opts.BarWidth + opts.BarSpacing
	n := len(data.Intersections)
	width := float64(n)*step + m.Horizontal()
	if err := errors.ValidateGeometry(float64(max(n, 1))*step+m.Horizontal(), opts.Height, m.Top, m.Right, m.Bottom, m.Left); err != nil {
		return nil, err
	}
	chartHeight := opts.Height - m.Vertical()
	available := chartHeight - opts.BarHeadroom
	if available < 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "bar headroom %g exceeds chart height %g", opts.BarHeadroom, chartHeight)
	}

	maxSize := 0
	for i, in := range data.Intersections {
		if in.Size < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "intersection %d has negative size %d", i, in.Size)
		}
		maxSize = max(maxSize, in.Size)
	}
	barHeight := func(size int) float64 { return 0 }
	if maxSize > 0 {
		s := scale.NewLinearUnrounded(0, float64(maxSize), 0, available)
		barHeight = func(size int) float64 { return s.Map(float64(size)) }
	}

	rows := make(map[string]int, len(data.Sets))
	for j, label := range data.Sets {
		if _, dup := rows[label]; !dup {
			rows[label] = j
		}
	}
	baseline := m.Top + chartHeight
	rowY := func(j int) float64 { return baseline + opts.DotOffset + float64(j)*opts.DotSpacing }

	l := &Layout{
		Width:   width,
		Height:  opts.Height,
		Margins: m,
		Sets:    slices.Clone(data.Sets),
		Columns: make([]Column, 0, n),
		MaxSize: maxSize,
	}

	for i, in := range data.Intersections {
		x := m.Left + float64(i)*step
		cx := x + opts.BarWidth/2
		h := barHeight(in.Size)

		members := make(map[string]bool, len(in.Sets))
		for _, label := range in.Sets {
			members[label] = true
			if _, ok := rows[label]; !ok {
				l.Unknown = append(l.Unknown, UnknownLabel{Column: i, Label: label})
			}
		}

		col := Column{
			Index:  i,
			Sets:   slices.Clone(in.Sets),
			Size:   in.Size,
			Bar:    Rect{X: x, Y: baseline - h, Width: opts.BarWidth, Height: h},
			LabelX: cx,
			LabelY: baseline - h - opts.LabelGap,
			Dots:   make([]Dot, len(data.Sets)),
		}
		for j, label := range data.Sets {
			active := members[label]
			col.Dots[j] = Dot{Set: label, Row: j, CX: cx, CY: rowY(j), R: opts.DotRadius, Active: active}
			if active {
				col.Active = append(col.Active, j)
			}
		}
		for k := 1; k < len(col.Active); k++ {
			from, to := col.Active[k-1], col.Active[k]
			col.Connectors = append(col.Connectors, Segment{
				X1: cx, Y1: rowY(from),
				X2: cx, Y2: rowY(to),
				From: from, To: to,
			})
		}
		l.Columns = append(l.Columns, col)
	}

	for j, label := range data.Sets {
		l.Labels = append(l.Labels, SetLabel{Label: label, Row: j, X: m.Left - opts.SetLabelOffset, Y: rowY(j)})
	}
	return l, nil
}
