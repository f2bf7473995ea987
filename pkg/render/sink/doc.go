// Package sink writes assembled scenes to output formats.
//
// # Overview
//
// A "sink" transforms a [scene.Scene] into a final output format:
//
//   - SVG: drawn with svgo, primitives in paint order, hover titles
//   - JSON: the scene graph itself, for external renderers
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # SVG Output
//
//	svg := sink.RenderSVG(s,
//	    sink.WithLegend(),
//	    sink.WithBackground("#fff"),
//	)
//
// Primitives that share a group (a stack key, the UpSet dots, ...) are
// wrapped in a <g class="..."> element so the output can be styled with CSS.
//
// # Format Selection
//
// [ParseFormat] maps a file extension or format name to a [Format]; [Render]
// dispatches on it.
//
// [scene.Scene]: github.com/matzehuels/licensecharts/pkg/render/scene.Scene
package sink
