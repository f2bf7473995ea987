// Package pkg holds the libraries behind the licensecharts command.
//
// # Overview
//
// Licensecharts draws two chart types from license data served by a JSON
// data service: stacked bar charts (licenses per year, stacked by status or
// state) and UpSet plots (licensees holding licenses in several states).
// Every chart is first built as a renderer-agnostic scene graph, then
// written as SVG, JSON, PNG or PDF.
//
// The data flow:
//
//	data service / local file
//	         ↓
//	    [source] (fetch, retry, cache)
//	         ↓
//	    [dataset] (decode records or sets)
//	         ↓
//	    [render/stacked], [render/upset] (layout)
//	         ↓
//	    [render/scene] (primitives, axis ticks from [render/axis])
//	         ↓
//	    [render/sink] (SVG, JSON, PNG, PDF)
//
// [pipeline] runs these stages for the CLI, with [cache] storing fetched
// bodies and rendered artifacts and [observability] reporting each stage.
//
// # Supporting Packages
//
//   - [config]: TOML configuration with environment overrides
//   - [errors]: coded errors shared by every package
//   - [httputil]: retry with backoff for transient failures
//   - [buildinfo]: version information set at build time
//
// [source]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/source
// [dataset]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/dataset
// [render/stacked]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/render/stacked
// [render/upset]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/render/upset
// [render/scene]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/render/scene
// [render/axis]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/render/axis
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/observability
// [config]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/licensecharts/pkg/buildinfo
package pkg
