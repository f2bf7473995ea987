package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/scene"
	"github.com/matzehuels/licensecharts/pkg/render/stacked"
	"github.com/matzehuels/licensecharts/pkg/render/style"
)

func TestLookup(t *testing.T) {
	ds, err := Lookup("license-age")
	require.NoError(t, err)
	assert.Equal(t, "license-age", ds.Endpoint)
	assert.True(t, ds.Stacked())
	assert.Equal(t, []string{"year", "count", "status"}, []string{ds.X, ds.Y, ds.Z})

	_, err = Lookup("nope")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	_, err = Lookup("Bad Name")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDataset))
}

func TestRegistry(t *testing.T) {
	names := Names()
	assert.Equal(t, len(All()), len(names))
	assert.Contains(t, names, "states")

	for _, ds := range ForChart(scene.ChartStacked) {
		assert.NotEmpty(t, ds.X, ds.Name)
		assert.NotEmpty(t, ds.Y, ds.Name)
		assert.NotEmpty(t, ds.Z, ds.Name)
	}
	require.Len(t, ForChart(scene.ChartUpSet), 1)

	all := All()
	all[0].Name = "changed"
	assert.Equal(t, "license-age", All()[0].Name, "All must return a copy")
}

func TestDecodeRecords(t *testing.T) {
	records, err := DecodeRecords([]byte(`[
		{"year": 2019, "count": 1234, "status": "active"},
		{"year": "2020", "count": null, "status": "expired"},
		{"year": 2021, "status": "active"}
	]`))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, 2019.0, records[0].Number("year"))
	assert.Equal(t, 2020.0, records[1].Number("year"), "numeric strings are accepted")
	assert.True(t, math.IsNaN(records[1].Number("count")), "null is missing")
	assert.True(t, math.IsNaN(records[2].Number("count")), "absent is missing")
	assert.Equal(t, "active", records[0].String("status"))
	assert.Equal(t, "", records[0].String("nope"))

	_, err = DecodeRecords([]byte(`{"year": 2019}`))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestCheckFields(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{"year": 2019, "count": 1}, {"year": 2020, "status": "a"}]`))
	require.NoError(t, err)

	assert.NoError(t, CheckFields(records, "year", "count", "status"))
	err = CheckFields(records, "year", "licenses")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "licenses")
}

func TestAccessorsBuildLayout(t *testing.T) {
	ds, err := Lookup("license-age")
	require.NoError(t, err)
	records, err := DecodeRecords([]byte(`[
		{"year": 2019, "count": 5, "status": "active"},
		{"year": 2019, "count": 3, "status": "expired"},
		{"year": 2020, "count": 7, "status": "active"}
	]`))
	require.NoError(t, err)

	l, err := stacked.Build(records, ds.Accessors(), stacked.OptionsFromTheme(style.Default(), 640, 400))
	require.NoError(t, err)
	assert.Equal(t, []float64{2019, 2020}, l.Categories)
	assert.Equal(t, []string{"active", "expired"}, l.Keys)

	total, ok := l.Total(2019)
	require.True(t, ok)
	assert.Equal(t, 8.0, total)
}

func TestDecodeUpSet(t *testing.T) {
	d, err := DecodeUpSet([]byte(`{
		"sets": ["CA", "NY"],
		"intersections": [{"set": ["CA"], "size": 10}, {"set": ["CA", "NY"], "size": 3}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"CA", "NY"}, d.Sets)
	require.Len(t, d.Intersections, 2)
	assert.Equal(t, []string{"CA", "NY"}, d.Intersections[1].Sets)
	assert.Equal(t, 3, d.Intersections[1].Size)

	_, err = DecodeUpSet([]byte(`[1, 2]`))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}
