package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/licensecharts/pkg/cache"
	"github.com/matzehuels/licensecharts/pkg/dataset"
	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/observability"
	"github.com/matzehuels/licensecharts/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for its collaborators; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Source source.Provider // datasets
	Files  source.Provider // local data files
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner fetching datasets from src.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(src source.Provider, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Source: src,
		Files:  source.NewFileProvider(),
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete fetch → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID: uuid.NewString(),
		Name:  opts.Name(),
	}
	logger := r.Logger.With("run", result.RunID[:8], "input", result.Name)

	// Stage 1: Fetch
	fetchStart := time.Now()
	data, err := r.Fetch(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.DataHash = cache.Hash(data)
	result.Stats.Bytes = len(data)
	result.Stats.FetchTime = time.Since(fetchStart)
	logger.Info("fetched data", "bytes", len(data), "duration", result.Stats.FetchTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Chart, len(data))
	l, err := BuildLayout(data, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Chart, len(l.Scene.Primitives), time.Since(layoutStart), err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Chart = l.Scene.Chart
	result.Scene = l.Scene
	result.Unknown = l.Unknown
	result.Stats.Items = l.Items
	result.Stats.Primitives = len(l.Scene.Primitives)
	result.Stats.LayoutTime = time.Since(layoutStart)

	for _, u := range l.Unknown {
		logger.Warn("intersection names an unknown set", "column", u.Column, "set", u.Label)
	}
	logger.Info("computed layout",
		"chart", result.Chart,
		"items", l.Items,
		"primitives", result.Stats.Primitives,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Fetch returns the raw body for opts: a local file when opts.File is set,
// the dataset's endpoint otherwise.
func (r *Runner) Fetch(ctx context.Context, opts Options) ([]byte, error) {
	name := opts.Name()
	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, name)
	start := time.Now()

	var (
		data []byte
		err  error
	)
	switch {
	case opts.File != "":
		data, err = r.Files.Fetch(ctx, opts.File)
	default:
		data, err = r.fetchDataset(ctx, opts.Dataset)
	}
	hooks.OnFetchComplete(ctx, name, len(data), time.Since(start), err)
	return data, err
}

// FetchDataset returns the unmodified body of a registered dataset,
// including datasets that feed no chart.
func (r *Runner) FetchDataset(ctx context.Context, name string) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, name)
	start := time.Now()
	data, err := r.fetchDataset(ctx, name)
	hooks.OnFetchComplete(ctx, name, len(data), time.Since(start), err)
	return data, err
}

func (r *Runner) fetchDataset(ctx context.Context, name string) ([]byte, error) {
	ds, err := dataset.Lookup(name)
	if err != nil {
		return nil, err
	}
	if r.Source == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no data source configured for dataset %q", name)
	}
	return r.Source.Fetch(ctx, ds.Endpoint)
}

// RenderWithCacheInfo renders result.Scene in every requested format.
// PNG and PDF artifacts are cached by data hash and render options.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, hit, err := r.render(ctx, result, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hit, err
}

func (r *Runner) render(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var pending []string
	cachedAny := false

	for _, format := range opts.Formats {
		if !cacheable(format) || opts.Refresh {
			pending = append(pending, format)
			continue
		}
		key := r.Keyer.ArtifactKey(result.DataHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, cache.KeyTypeArtifact)
			artifacts[format] = data
			cachedAny = true
			continue
		}
		cacheHooks.OnCacheMiss(ctx, cache.KeyTypeArtifact)
		pending = append(pending, format)
	}
	if len(pending) == 0 {
		return artifacts, cachedAny, nil
	}

	ropts := opts
	ropts.Formats = pending
	rendered, err := Render(ctx, result.Scene, result.RunID, ropts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if cacheable(format) {
			key := r.Keyer.ArtifactKey(result.DataHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, TTLArtifact); err == nil {
				cacheHooks.OnCacheSet(ctx, cache.KeyTypeArtifact, len(data))
			}
		}
	}
	return artifacts, false, nil
}

// RenderAll runs Execute for every option set concurrently. Results are
// returned in input order; a failed run leaves a nil entry and contributes
// its error to the joined error.
func (r *Runner) RenderAll(ctx context.Context, all []Options) ([]*Result, error) {
	results := make([]*Result, len(all))
	errs := make([]error, len(all))

	var wg sync.WaitGroup
	for i, opts := range all {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.Execute(ctx, opts)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", opts.Name(), err)
				return
			}
			results[i] = res
		}()
	}
	wg.Wait()

	return results, stderrors.Join(slices.DeleteFunc(errs, func(err error) bool { return err == nil })...)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
