// Package cli implements the licensecharts command-line interface.
//
// # Commands
//
//   - fetch: relay a dataset body from the data service unmodified
//   - stacked, upset: render one chart from a dataset or a local data file
//   - render: render every chart dataset concurrently
//   - inspect: summarize the scene of a chart without writing files
//   - pick: choose a dataset interactively, then render it
//   - datasets: list the known datasets
//   - config, cache, completion: housekeeping
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports pipeline, cache and HTTP events.
package cli

import (
	"cmp"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/licensecharts/pkg/buildinfo"
	"github.com/matzehuels/licensecharts/pkg/cache"
	"github.com/matzehuels/licensecharts/pkg/config"
	"github.com/matzehuels/licensecharts/pkg/observability"
	"github.com/matzehuels/licensecharts/pkg/pipeline"
	"github.com/matzehuels/licensecharts/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "licensecharts"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default config file location.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level every pipeline,
// cache and HTTP event is logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Install()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Licensecharts draws stacked bar charts and UpSet plots of license data",
		Long:         `Licensecharts fetches license datasets from the data service and renders them as stacked bar charts and UpSet plots in SVG, PNG, PDF or as a JSON scene graph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/licensecharts/config.toml)")

	// Register all subcommands
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.stackedCommand())
	root.AddCommand(c.upsetCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.datasetsCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the configuration selected by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newRunner creates a pipeline runner for CLI use. The caller must Close it.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache, refresh bool) (*pipeline.Runner, error) {
	store := cache.Cache(cache.NewNullCache())
	if !noCache {
		var err error
		if store, err = cache.Open(ctx, cfg.CacheOptions()); err != nil {
			return nil, err
		}
	}
	keyer := cfg.Keyer()
	src, err := source.NewHTTPProvider(cfg.Source.BaseURL,
		source.WithKeyer(keyer),
		source.WithHTTPClient(&http.Client{Timeout: cmp.Or(cfg.Source.Timeout, source.DefaultTimeout)}),
		source.WithCache(store, cfg.Cache.TTL),
		source.WithRetries(cfg.Source.Retries, time.Second),
		source.WithRefresh(refresh),
	)
	if err != nil {
		store.Close()
		return nil, err
	}
	c.Logger.Debug("data source", "url", src.BaseURL(), "cache", cfg.Cache.Backend, "no_cache", noCache)
	return pipeline.NewRunner(src, store, keyer, c.Logger), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, strings.ToLower(f))
		}
	}
	return formats
}
