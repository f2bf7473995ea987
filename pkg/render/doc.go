// Package render turns chart data into drawable scenes and output files.
//
// # Overview
//
// Rendering runs in three steps, each in its own subpackage:
//
//  1. Layout ([stacked], [upset]): group, stack and measure the input data and
//     build the scales ([scale]) it is drawn with.
//  2. Assembly ([scene]): translate a layout into an ordered list of
//     primitives (rects, lines, circles, text, axes), with axis ticks chosen
//     by [axis].
//  3. Output ([sink]): write a scene as SVG or JSON, or as PNG/PDF through
//     the external rsvg-convert tool.
//
// Styling is explicit: every color and size comes from a [style.Theme].
//
//	l, err := stacked.Build(records, acc, stacked.OptionsFromTheme(theme, 1200, 500))
//	s, err := scene.AssembleStacked(l, theme)
//	svg := sink.RenderSVG(s, sink.WithLegend())
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// Steps 1 and 2 do no I/O and keep no state, so separate charts can be laid
// out concurrently.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
// [stacked]: github.com/matzehuels/licensecharts/pkg/render/stacked
// [upset]: github.com/matzehuels/licensecharts/pkg/render/upset
// [scale]: github.com/matzehuels/licensecharts/pkg/render/scale
// [scene]: github.com/matzehuels/licensecharts/pkg/render/scene
// [axis]: github.com/matzehuels/licensecharts/pkg/render/axis
// [sink]: github.com/matzehuels/licensecharts/pkg/render/sink
// [style.Theme]: github.com/matzehuels/licensecharts/pkg/render/style.Theme
package render
