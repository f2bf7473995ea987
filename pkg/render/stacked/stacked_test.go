package stacked

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/style"
)

type row struct {
	Year   int
	Count  float64
	Status string
}

var rowAccessors = Accessors[row]{
	X: func(r row) float64 { return float64(r.Year) },
	Y: func(r row) float64 { return r.Count },
	Z: func(r row) string { return r.Status },
}

func defaultOptions() Options {
	return OptionsFromTheme(style.Default(), 1200, 500)
}

func TestBuildWorkedExample(t *testing.T) {
	records := []row{
		{2020, 3, "A"},
		{2020, 5, "B"},
		{2021, 2, "A"},
	}

	l, err := Build(records, rowAccessors, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []float64{2020, 2021}, l.Categories)
	assert.Equal(t, []string{"A", "B"}, l.Keys)

	a, b := l.Series("A"), l.Series("B")
	require.Len(t, a, 2)
	require.Len(t, b, 2)

	assert.Equal(t, 0.0, a[0].Baseline)
	assert.Equal(t, 3.0, a[0].Top)
	assert.Equal(t, 3.0, b[0].Baseline)
	assert.Equal(t, 8.0, b[0].Top)

	assert.Equal(t, 0.0, a[1].Baseline)
	assert.Equal(t, 2.0, a[1].Top)
	assert.Equal(t, 2.0, b[1].Baseline)
	assert.Equal(t, 2.0, b[1].Top, "absent value stacks with zero height")
	assert.True(t, b[1].Missing)
	assert.False(t, a[1].Missing)

	assert.Equal(t, 8.0, l.MaxTotal())
	total, ok := l.Total(2021)
	require.True(t, ok)
	assert.Equal(t, 2.0, total)
	_, ok = l.Total(1999)
	assert.False(t, ok)
	assert.Nil(t, l.Series("Z"))
}

func TestBuildConservationAndContiguity(t *testing.T) {
	records := []row{
		{2018, 4, "active"},
		{2019, 1, "expired"},
		{2018, 7, "expired"},
		{2020, 2, "pending"},
		{2019, 6, "active"},
		{2020, 3, "active"},
		{2018, 1, "pending"},
	}

	l, err := Build(records, rowAccessors, defaultOptions())
	require.NoError(t, err)

	sums := map[float64]float64{}
	for _, r := range records {
		sums[float64(r.Year)] += r.Count
	}

	for c, x := range l.Categories {
		height := 0.0
		for k := range l.Keys {
			iv := l.Intervals[k][c]
			assert.LessOrEqual(t, iv.Baseline, iv.Top)
			height += iv.Height()
			if k+1 < len(l.Keys) {
				assert.Equal(t, iv.Top, l.Intervals[k+1][c].Baseline, "intervals must be contiguous")
			} else {
				total, _ := l.Total(x)
				assert.Equal(t, total, iv.Top)
			}
		}
		assert.Equal(t, sums[x], height, "category %v", x)
	}
}

func TestBuildLastWriteWins(t *testing.T) {
	records := []row{
		{2020, 3, "A"},
		{2020, 9, "A"},
	}
	l, err := Build(records, rowAccessors, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 9.0, l.Series("A")[0].Top)
}

func TestBuildFirstSeenKeyOrder(t *testing.T) {
	records := []row{
		{2021, 1, "zeta"},
		{2020, 1, "alpha"},
		{2020, 1, "zeta"},
		{2022, 1, "mid"},
	}
	l, err := Build(records, rowAccessors, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, l.Keys)
	assert.Equal(t, []float64{2020, 2021, 2022}, l.Categories)
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	records := []row{
		{2021, 2, "A"},
		{2020, 3, "A"},
		{2020, 5, "B"},
	}
	before := append([]row(nil), records...)
	_, err := Build(records, rowAccessors, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, before, records)
}

func TestBuildAllZero(t *testing.T) {
	records := []row{
		{2020, 0, "A"},
		{2021, 0, "B"},
	}
	l, err := Build(records, rowAccessors, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 0.0, l.MaxTotal())
	for _, series := range l.Intervals {
		for _, iv := range series {
			y0, y1 := l.Linear.Map(iv.Baseline), l.Linear.Map(iv.Top)
			assert.False(t, math.IsNaN(y0))
			assert.Equal(t, y0, y1, "zero-height bar")
		}
	}
}

func TestBuildNaNValueIsMissing(t *testing.T) {
	records := []row{
		{2020, math.NaN(), "A"},
		{2020, 4, "B"},
	}
	l, err := Build(records, rowAccessors, defaultOptions())
	require.NoError(t, err)

	a := l.Series("A")[0]
	assert.True(t, a.Missing)
	assert.Equal(t, 0.0, a.Height())
	assert.Equal(t, 4.0, l.Series("B")[0].Top)
}

func TestBuildScales(t *testing.T) {
	records := []row{
		{2019, 1, "A"},
		{2020, 2, "A"},
		{2021, 3, "A"},
	}
	opts := defaultOptions()
	l, err := Build(records, rowAccessors, opts)
	require.NoError(t, err)

	lo, hi := l.Band.Range()
	assert.Equal(t, opts.Margins.Left, lo)
	assert.Equal(t, opts.Width-opts.Margins.Right, hi)
	for _, x := range l.Categories {
		px, ok := l.Band.Map(x)
		require.True(t, ok)
		assert.GreaterOrEqual(t, px, lo)
		assert.LessOrEqual(t, px+l.Band.Bandwidth(), hi)
	}

	assert.Equal(t, opts.Height-opts.Margins.Bottom, l.Linear.Map(0), "zero sits on the bottom edge")
	assert.Equal(t, opts.Margins.Top, l.Linear.Map(3))
}

func TestBuildColors(t *testing.T) {
	records := []row{
		{2020, 1, "A"},
		{2020, 1, "B"},
		{2020, 1, "C"},
	}
	opts := defaultOptions()
	opts.Palette = style.Palette{"red", "blue"}
	l, err := Build(records, rowAccessors, opts)
	require.NoError(t, err)

	assert.Equal(t, "red", l.Color.Map("A"))
	assert.Equal(t, "blue", l.Color.Map("B"))
	assert.Equal(t, "red", l.Color.Map("C"))
	assert.Equal(t, style.ColorUnknown, l.Color.Map("D"))

	opts.Palette = nil
	l, err = Build(records, rowAccessors, opts)
	require.NoError(t, err)
	assert.Len(t, l.Color.Colors(), 3)
}

func TestBuildDefaultThemeUsesSpectral(t *testing.T) {
	require.Nil(t, style.Default().Palette)

	records := []row{{2020, 1, "A"}, {2020, 1, "B"}, {2020, 1, "C"}, {2020, 1, "D"}}
	l, err := Build(records, rowAccessors, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string(style.Spectral(4)), l.Color.Colors())
}

func TestBuildInvalidGeometry(t *testing.T) {
	records := []row{{2020, 1, "A"}}

	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"width consumed by margins", func(o *Options) { o.Width = o.Margins.Left + o.Margins.Right }},
		{"height consumed by margins", func(o *Options) { o.Height = o.Margins.Top }},
		{"negative margin", func(o *Options) { o.Margins.Left = -1 }},
		{"zero size", func(o *Options) { o.Width, o.Height = 0, 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			tt.modify(&opts)
			l, err := Build(records, rowAccessors, opts)
			require.Error(t, err)
			assert.Nil(t, l)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidGeometry), "got %v", err)
		})
	}
}

func TestBuildInvalidInput(t *testing.T) {
	_, err := Build(nil, rowAccessors, defaultOptions())
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = Build([]row{{2020, 1, "A"}}, Accessors[row]{}, defaultOptions())
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestBuildRejectsMissingCategory(t *testing.T) {
	acc := rowAccessors
	acc.X = func(r row) float64 {
		if r.Year == 0 {
			return math.NaN()
		}
		return float64(r.Year)
	}
	records := []row{{2020, 3, "A"}, {0, 2, "A"}, {2021, 4, "A"}}

	_, err := Build(records, acc, defaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.Contains(t, err.Error(), "record 1")

	acc.X = func(row) float64 { return math.Inf(1) }
	_, err = Build(records, acc, defaultOptions())
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}
