// Package dataset describes the datasets served by the license data service
// and decodes them into chart input.
//
// Each [Dataset] names the endpoint it is fetched from and the chart it
// feeds. Stacked datasets carry the record fields used as category, value
// and stack key; [Dataset.Accessors] turns those into accessors for
// [stacked.Build].
//
//	ds, err := dataset.Lookup("license-age")
//	records, err := dataset.DecodeRecords(body)
//	layout, err := stacked.Build(records, ds.Accessors(), opts)
package dataset

import (
	"slices"

	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/scene"
	"github.com/matzehuels/licensecharts/pkg/render/stacked"
)

// Dataset is one endpoint of the data service.
type Dataset struct {
	Name        string
	Endpoint    string      // path below the service base URL
	Chart       scene.Chart // empty for datasets that are only relayed
	Description string

	// Stacked datasets only.
	X, Y, Z        string // record fields for category, value and stack key
	XLabel, YLabel string
}

var registry = []Dataset{
	{
		Name:        "license-age",
		Endpoint:    "license-age",
		Chart:       scene.ChartStacked,
		Description: "Licenses by year issued, stacked by status",
		X:           "year",
		Y:           "count",
		Z:           "status",
		XLabel:      "Year issued",
		YLabel:      "↑ Licenses",
	},
	{
		Name:        "licensees",
		Endpoint:    "licensees",
		Chart:       scene.ChartStacked,
		Description: "Licenses per licensee by year, stacked by state",
		X:           "year",
		Y:           "licenses",
		Z:           "state",
		XLabel:      "Year",
		YLabel:      "↑ Licensees",
	},
	{
		Name:        "license-overlap",
		Endpoint:    "license-overlap",
		Chart:       scene.ChartUpSet,
		Description: "Licensees holding licenses in several states",
	},
	{
		Name:        "states",
		Endpoint:    "states",
		Description: "License count and designation per state FIPS code",
	},
}

// All returns every known dataset in registry order.
func All() []Dataset {
	return slices.Clone(registry)
}

// Names returns the names of all known datasets.
func Names() []string {
	names := make([]string, len(registry))
	for i, ds := range registry {
		names[i] = ds.Name
	}
	return names
}

// ForChart returns the datasets that feed the given chart.
func ForChart(c scene.Chart) []Dataset {
	var out []Dataset
	for _, ds := range registry {
		if ds.Chart == c {
			out = append(out, ds)
		}
	}
	return out
}

// Lookup finds a dataset by name.
func Lookup(name string) (Dataset, error) {
	if err := errors.ValidateDatasetName(name); err != nil {
		return Dataset{}, err
	}
	for _, ds := range registry {
		if ds.Name == name {
			return ds, nil
		}
	}
	return Dataset{}, errors.New(errors.ErrCodeNotFound, "unknown dataset %q", name)
}

// Accessors returns stacked-chart accessors reading the dataset's fields.
func (d Dataset) Accessors() stacked.Accessors[Record] {
	return FieldAccessors(d.X, d.Y, d.Z)
}

// Stacked reports whether the dataset feeds a stacked chart.
func (d Dataset) Stacked() bool { return d.Chart == scene.ChartStacked }
