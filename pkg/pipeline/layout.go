package pipeline

import (
	"github.com/matzehuels/licensecharts/pkg/dataset"
	"github.com/matzehuels/licensecharts/pkg/render/scene"
	"github.com/matzehuels/licensecharts/pkg/render/stacked"
	"github.com/matzehuels/licensecharts/pkg/render/upset"
)

// Layout is the chart-specific result of the layout stage.
type Layout struct {
	Scene   scene.Scene
	Items   int
	Unknown []upset.UnknownLabel
}

// BuildLayout decodes data and computes the scene for opts.Chart.
// Options must have been validated.
func BuildLayout(data []byte, opts Options) (Layout, error) {
	if scene.Chart(opts.Chart) == scene.ChartUpSet {
		return buildUpSet(data, opts)
	}
	return buildStacked(data, opts)
}

func buildStacked(data []byte, opts Options) (Layout, error) {
	records, err := dataset.DecodeRecords(data)
	if err != nil {
		return Layout{}, err
	}
	if len(records) > 0 {
		if err := dataset.CheckFields(records, opts.X, opts.Y, opts.Z); err != nil {
			return Layout{}, err
		}
	}

	lopts := stacked.OptionsFromTheme(*opts.Theme, opts.Width, opts.Height)
	lopts.XLabel, lopts.YLabel = opts.XLabel, opts.YLabel
	l, err := stacked.Build(records, dataset.FieldAccessors(opts.X, opts.Y, opts.Z), lopts)
	if err != nil {
		return Layout{}, err
	}
	sc, err := scene.AssembleStacked(l, *opts.Theme)
	if err != nil {
		return Layout{}, err
	}
	return Layout{Scene: sc, Items: len(records)}, nil
}

func buildUpSet(data []byte, opts Options) (Layout, error) {
	d, err := dataset.DecodeUpSet(data)
	if err != nil {
		return Layout{}, err
	}

	uopts := upset.OptionsFromTheme(*opts.Theme)
	if opts.Height > 0 {
		uopts.Height = opts.Height
	}
	l, err := upset.Build(d, uopts)
	if err != nil {
		return Layout{}, err
	}
	sc, err := scene.AssembleUpSet(l, *opts.Theme)
	if err != nil {
		return Layout{}, err
	}
	return Layout{Scene: sc, Items: len(d.Intersections), Unknown: l.Unknown}, nil
}
