// Package pipeline runs the fetch → layout → render pipeline for licensecharts.
//
// The CLI drives every chart through a [Runner] so that caching, logging
// and observability hooks behave the same for every command.
//
// # Stages
//
//  1. Fetch: read the dataset body from the data service or a local file
//  2. Layout: decode records, compute the chart layout and assemble the scene
//  3. Render: emit the scene in the requested formats (SVG, JSON, PNG, PDF)
//
// # Usage
//
//	runner := pipeline.NewRunner(provider, cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Dataset: "license-age",
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// Several charts can be rendered concurrently with [Runner.RenderAll]; the
// stages share no mutable state.
package pipeline

import (
	"cmp"
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licensecharts/pkg/cache"
	"github.com/matzehuels/licensecharts/pkg/dataset"
	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/scene"
	"github.com/matzehuels/licensecharts/pkg/render/sink"
	"github.com/matzehuels/licensecharts/pkg/render/style"
	"github.com/matzehuels/licensecharts/pkg/render/upset"
)

const (
	// DefaultWidth is the stacked chart frame width in pixels.
	DefaultWidth = 1200.0

	// DefaultHeight is the stacked chart frame height in pixels.
	DefaultHeight = 500.0

	// DefaultPNGScale is the raster scale factor for PNG output.
	DefaultPNGScale = 2.0

	// TTLArtifact is how long rendered PNG and PDF files stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = string(sink.FormatSVG)

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input: exactly one of Dataset and File.
	Dataset string `json:"dataset,omitempty"`
	File    string `json:"file,omitempty"`

	// Chart selects stacked or upset. Datasets imply their chart; files
	// default to stacked.
	Chart string `json:"chart,omitempty"`

	// Stacked field overrides and axis labels.
	X      string `json:"x,omitempty"`
	Y      string `json:"y,omitempty"`
	Z      string `json:"z,omitempty"`
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`

	// Frame size; Height also applies to UpSet plots when set.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Formats    []string `json:"formats,omitempty"`
	Legend     bool     `json:"legend,omitempty"`
	NoTitles   bool     `json:"no_titles,omitempty"`
	Background string   `json:"background,omitempty"`
	PNGScale   float64  `json:"png_scale,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Theme  *style.Theme `json:"-"`
	Logger *log.Logger  `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and JSON output.
	RunID string

	// Name is the dataset name or file path the chart was drawn from.
	Name string

	Chart scene.Chart

	// DataHash is the content hash of the fetched body.
	DataHash string

	Scene scene.Scene

	// Unknown lists intersection labels that name no set (UpSet only).
	Unknown []upset.UnknownLabel

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Bytes      int // size of the fetched body
	Items      int // records or intersections
	Primitives int
	FetchTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // whether every cacheable artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	_, err := sink.ParseFormat(format)
	return err
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the input selection, resolves dataset
// defaults and fills in frame size, formats and logger. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if (o.Dataset == "") == (o.File == "") {
		return errors.New(errors.ErrCodeInvalidInput, "exactly one of dataset and file is required")
	}

	if o.Dataset != "" {
		ds, err := dataset.Lookup(o.Dataset)
		if err != nil {
			return err
		}
		if ds.Chart == "" {
			return errors.New(errors.ErrCodeInvalidChart, "dataset %q has no chart; use fetch to download it", ds.Name)
		}
		if o.Chart != "" && o.Chart != string(ds.Chart) {
			return errors.New(errors.ErrCodeInvalidChart, "dataset %q draws a %s chart, not %s", ds.Name, ds.Chart, o.Chart)
		}
		o.Chart = string(ds.Chart)
		o.X = cmp.Or(o.X, ds.X)
		o.Y = cmp.Or(o.Y, ds.Y)
		o.Z = cmp.Or(o.Z, ds.Z)
		o.XLabel = cmp.Or(o.XLabel, ds.XLabel)
		o.YLabel = cmp.Or(o.YLabel, ds.YLabel)
	}
	if o.Chart == "" {
		o.Chart = string(scene.ChartStacked)
	}
	chart, err := scene.ParseChart(o.Chart)
	if err != nil {
		return err
	}
	if chart == scene.ChartStacked && (o.X == "" || o.Y == "" || o.Z == "") {
		return errors.New(errors.ErrCodeInvalidInput, "stacked charts from files need the x, y and z fields")
	}

	o.SetRenderDefaults()
	if !finite(o.Width) || !finite(o.Height) || o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "frame %vx%v must be finite and non-negative", o.Width, o.Height)
	}
	if !finite(o.PNGScale) || o.PNGScale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be a positive number, got %v", o.PNGScale)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// SetRenderDefaults sets default values for layout and rendering.
func (o *Options) SetRenderDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 && o.Chart != string(scene.ChartUpSet) {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Theme == nil {
		t := style.Default()
		o.Theme = &t
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Name returns the dataset name or file path of the run.
func (o *Options) Name() string {
	if o.File != "" {
		return o.File
	}
	return o.Dataset
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Chart:  o.Chart,
		Format: format,
		Width:  o.Width,
		Height: o.Height,
		Legend: o.Legend,
		Theme:  o.themeHash(),
	}
}

func (o *Options) themeHash() string {
	data, err := json.Marshal(struct {
		Theme      *style.Theme
		X, Y, Z    string
		XLabel     string
		YLabel     string
		NoTitles   bool
		Background string
		PNGScale   float64
	}{o.Theme, o.X, o.Y, o.Z, o.XLabel, o.YLabel, o.NoTitles, o.Background, o.PNGScale})
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
