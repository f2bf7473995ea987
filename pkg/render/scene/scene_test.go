package scene

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/stacked"
	"github.com/matzehuels/licensecharts/pkg/render/style"
	"github.com/matzehuels/licensecharts/pkg/render/upset"
)

type row struct {
	Year   int
	Count  float64
	Status string
}

func buildStacked(t *testing.T, records []row) *stacked.Layout {
	t.Helper()
	opts := stacked.OptionsFromTheme(style.Default(), 1200, 500)
	opts.XLabel, opts.YLabel = "Year", "Licenses"
	l, err := stacked.Build(records, stacked.Accessors[row]{
		X: func(r row) float64 { return float64(r.Year) },
		Y: func(r row) float64 { return r.Count },
		Z: func(r row) string { return r.Status },
	}, opts)
	require.NoError(t, err)
	return l
}

func buildUpSet(t *testing.T) *upset.Layout {
	t.Helper()
	l, err := upset.Build(upset.Data{
		Sets: []string{"A", "B", "C"},
		Intersections: []upset.Intersection{
			{Sets: []string{"A", "B"}, Size: 4},
			{Sets: []string{"C"}, Size: 2},
		},
	}, upset.OptionsFromTheme(style.Default()))
	require.NoError(t, err)
	return l
}

var example = []row{
	{2020, 3, "A"},
	{2020, 5, "B"},
	{2021, 2, "A"},
}

func TestAssembleStacked(t *testing.T) {
	s, err := AssembleStacked(buildStacked(t, example), style.Default())
	require.NoError(t, err)

	assert.Equal(t, ChartStacked, s.Chart)
	assert.Equal(t, 1200.0, s.Width)
	assert.Equal(t, 500.0, s.Height)

	counts := s.Counts()
	assert.Equal(t, 4, counts[KindRect])
	assert.Equal(t, 2, counts[KindAxis])
	require.Len(t, s.Primitives, 6)

	// Rects are grouped by stack key in stacking order; axes come last.
	var groups []string
	for _, p := range s.Primitives[:4] {
		require.Equal(t, KindRect, p.Kind)
		groups = append(groups, p.Group)
	}
	assert.Equal(t, []string{"A", "A", "B", "B"}, groups)

	bottom, left := s.Primitives[4].Axis, s.Primitives[5].Axis
	require.NotNil(t, bottom)
	require.NotNil(t, left)
	assert.Equal(t, OrientBottom, bottom.Orient)
	assert.Equal(t, 480.0, bottom.Offset)
	assert.Equal(t, 0.0, bottom.TickSizeOuter)
	assert.True(t, bottom.DomainLine)
	assert.Equal(t, "Year", bottom.Label)
	require.Len(t, bottom.Ticks, 2)
	assert.Equal(t, "2020", bottom.Ticks[0].Label)

	assert.Equal(t, OrientLeft, left.Orient)
	assert.Equal(t, 40.0, left.Offset)
	assert.False(t, left.DomainLine)
	assert.Equal(t, "Licenses", left.Label)
	assert.Equal(t, 10.0, left.RangeMin)
	assert.Equal(t, 480.0, left.RangeMax)
}

func TestAssembleStackedGeometry(t *testing.T) {
	l := buildStacked(t, example)
	s, err := AssembleStacked(l, style.Default())
	require.NoError(t, err)

	a2020, b2020 := s.Primitives[0].Rect, s.Primitives[2].Rect
	assert.Equal(t, a2020.X, b2020.X)
	assert.Equal(t, l.Band.Bandwidth(), a2020.Width)
	assert.Equal(t, 480.0, a2020.Y+a2020.Height, "first key sits on the baseline")
	assert.Equal(t, a2020.Y, b2020.Y+b2020.Height, "second key sits on the first")
	assert.Equal(t, 10.0, b2020.Y, "tallest stack reaches the top margin")

	b2021 := s.Primitives[3].Rect
	assert.Equal(t, 0.0, b2021.Height)
}

func TestAssembleStackedHoverData(t *testing.T) {
	records := append([]row{{2019, 1234, "A"}}, example...)
	s, err := AssembleStacked(buildStacked(t, records), style.Default())
	require.NoError(t, err)

	byTitle := map[string]*Datum{}
	for _, p := range s.Primitives {
		if p.Datum != nil {
			byTitle[p.Datum.Title] = p.Datum
		}
	}

	require.Contains(t, byTitle, "2019 A\n1,234")
	require.Contains(t, byTitle, "2020 B\n5")
	require.Contains(t, byTitle, "2021 B\nN/A")
	assert.True(t, byTitle["2021 B\nN/A"].Missing)
	assert.Equal(t, "2021", byTitle["2021 B\nN/A"].Category)
	assert.Equal(t, 5.0, byTitle["2020 B\n5"].Value)
}

func TestAssembleUpSet(t *testing.T) {
	theme := style.Default()
	s, err := AssembleUpSet(buildUpSet(t), theme)
	require.NoError(t, err)

	assert.Equal(t, ChartUpSet, s.Chart)

	// 2 bars, 1 connector, 6 dots, 2 bar labels, 3 set labels.
	var kinds []Kind
	for _, p := range s.Primitives {
		kinds = append(kinds, p.Kind)
	}
	assert.Equal(t, []Kind{
		KindRect, KindRect,
		KindLine,
		KindCircle, KindCircle, KindCircle, KindCircle, KindCircle, KindCircle,
		KindText, KindText,
		KindText, KindText, KindText,
	}, kinds)

	dots := s.Primitives[3:9]
	var fills []string
	for _, d := range dots {
		fills = append(fills, d.Style.Fill)
	}
	active, inactive := theme.UpSet.ActiveColor, theme.UpSet.InactiveColor
	assert.Equal(t, []string{active, active, inactive, inactive, inactive, active}, fills)

	assert.Equal(t, "4", s.Primitives[9].Text.Content)
	assert.Equal(t, AnchorMiddle, s.Primitives[9].Text.Anchor)
	assert.Equal(t, "A", s.Primitives[11].Text.Content)
	assert.Equal(t, AnchorEnd, s.Primitives[11].Text.Anchor)
	assert.Equal(t, "A ∩ B\n4", s.Primitives[0].Datum.Title)

	line := s.Primitives[2]
	assert.Equal(t, theme.UpSet.ConnectorWidth, line.Style.StrokeWidth)
	assert.Equal(t, dots[0].Circle.CY, line.Line.Y1)
	assert.Equal(t, dots[1].Circle.CY, line.Line.Y2)
}

func TestAssembleIdempotent(t *testing.T) {
	encode := func(s Scene) []byte {
		b, err := json.Marshal(s)
		require.NoError(t, err)
		return b
	}

	s1, err := AssembleStacked(buildStacked(t, example), style.Default())
	require.NoError(t, err)
	s2, err := AssembleStacked(buildStacked(t, example), style.Default())
	require.NoError(t, err)
	assert.Equal(t, encode(s1), encode(s2))

	u1, err := AssembleUpSet(buildUpSet(t), style.Default())
	require.NoError(t, err)
	u2, err := AssembleUpSet(buildUpSet(t), style.Default())
	require.NoError(t, err)
	assert.Equal(t, encode(u1), encode(u2))
}

func TestAssembleDispatch(t *testing.T) {
	s, err := Assemble(buildStacked(t, example), ChartStacked, style.Default())
	require.NoError(t, err)
	assert.Equal(t, ChartStacked, s.Chart)

	s, err = Assemble(buildUpSet(t), ChartUpSet, style.Default())
	require.NoError(t, err)
	assert.Equal(t, ChartUpSet, s.Chart)

	_, err = Assemble(buildUpSet(t), ChartStacked, style.Default())
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidChart))

	_, err = Assemble(buildUpSet(t), Chart("pie"), style.Default())
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidChart))

	_, err = Assemble((*stacked.Layout)(nil), ChartStacked, style.Default())
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestParseChart(t *testing.T) {
	c, err := ParseChart("upset")
	require.NoError(t, err)
	assert.Equal(t, ChartUpSet, c)

	_, err = ParseChart("choropleth")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidChart))
}

func TestPrimitiveJSON(t *testing.T) {
	b, err := json.Marshal(Primitive{Kind: KindCircle, Circle: Circle{CX: 1, CY: 2, R: 3}, Style: Style{Fill: "red"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"circle","circle":{"cx":1,"cy":2,"r":3},"style":{"fill":"red"}}`, string(b))
}
