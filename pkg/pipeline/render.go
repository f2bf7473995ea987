package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/licensecharts/pkg/render/scene"
	"github.com/matzehuels/licensecharts/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, sc scene.Scene, runID string, opts Options) (map[string][]byte, error) {
	sinkOpts := sinkOptions(runID, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, name := range opts.Formats {
		format, err := sink.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		data, err := sink.Render(ctx, sc, format, sinkOpts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[name] = data
	}
	return artifacts, nil
}

// cacheable reports whether rendering format is worth caching. SVG and JSON
// are produced in microseconds; PNG and PDF shell out to rsvg-convert.
func cacheable(format string) bool {
	f, err := sink.ParseFormat(format)
	return err == nil && (f == sink.FormatPNG || f == sink.FormatPDF)
}

func sinkOptions(runID string, opts Options) sink.Options {
	var svgOpts []sink.SVGOption
	if opts.Legend {
		svgOpts = append(svgOpts, sink.WithLegend())
	}
	if opts.NoTitles {
		svgOpts = append(svgOpts, sink.WithoutTitles())
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	if opts.Theme != nil && opts.Theme.FontSize > 0 {
		svgOpts = append(svgOpts, sink.WithFontSize(opts.Theme.FontSize))
	}
	return sink.Options{
		SVG:      svgOpts,
		JSON:     []sink.JSONOption{sink.WithJSONDataset(opts.Name()), sink.WithJSONRunID(runID)},
		PNGScale: opts.PNGScale,
	}
}
