// Package config loads licensecharts settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/licensecharts/config.toml (or the
// platform config directory) unless a path is given explicitly. Every key
// is optional: values absent from the file keep their defaults.
//
//	[source]
//	base_url = "http://localhost:8000"
//	timeout = "10s"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[stacked]
//	width = 1200
//	palette = ["#1b9e77", "#d95f02", "#7570b3"]
//
//	[upset]
//	dot_radius = 8
//
// Two environment variables override the file: LICENSECHARTS_SOURCE_URL and
// LICENSECHARTS_CACHE_BACKEND.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/licensecharts/pkg/cache"
	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/style"
	"github.com/matzehuels/licensecharts/pkg/source"
)

// Environment overrides.
const (
	EnvSourceURL    = "LICENSECHARTS_SOURCE_URL"
	EnvCacheBackend = "LICENSECHARTS_CACHE_BACKEND"
)

// Config is the full configuration.
type Config struct {
	Source  Source  `toml:"source"`
	Cache   Cache   `toml:"cache"`
	Stacked Stacked `toml:"stacked"`
	UpSet   UpSet   `toml:"upset"`
}

// Source configures the HTTP data service.
type Source struct {
	BaseURL string        `toml:"base_url"`
	Timeout time.Duration `toml:"timeout"`
	Retries int           `toml:"retries"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend         string        `toml:"backend"`
	Dir             string        `toml:"dir,omitempty"`
	TTL             time.Duration `toml:"ttl"`
	Prefix          string        `toml:"prefix,omitempty"` // key prefix for shared backends
	RedisURL        string        `toml:"redis_url,omitempty"`
	MongoURI        string        `toml:"mongo_uri,omitempty"`
	MongoDatabase   string        `toml:"mongo_database,omitempty"`
	MongoCollection string        `toml:"mongo_collection,omitempty"`
}

// Stacked holds stacked bar chart geometry and colors.
type Stacked struct {
	Width       float64       `toml:"width"`
	Height      float64       `toml:"height"`
	Margins     style.Margins `toml:"margins"`
	Padding     float64       `toml:"padding"`
	TickSpacing float64       `toml:"tick_spacing"`
	Palette     []string      `toml:"palette,omitempty"`
	Unknown     string        `toml:"unknown_color"`
}

// UpSet holds UpSet plot geometry and colors.
type UpSet struct {
	Height        float64       `toml:"height"`
	Margins       style.Margins `toml:"margins"`
	BarWidth      float64       `toml:"bar_width"`
	BarSpacing    float64       `toml:"bar_spacing"`
	DotRadius     float64       `toml:"dot_radius"`
	DotSpacing    float64       `toml:"dot_spacing"`
	BarColor      string        `toml:"bar_color"`
	ActiveColor   string        `toml:"active_color"`
	InactiveColor string        `toml:"inactive_color"`
}

// Default returns the built-in configuration.
func Default() Config {
	t := style.Default()
	return Config{
		Source: Source{
			BaseURL: source.DefaultBaseURL,
			Timeout: source.DefaultTimeout,
			Retries: source.DefaultRetries,
		},
		Cache: Cache{
			Backend: string(cache.BackendFile),
			TTL:     source.DefaultCacheTTL,
		},
		Stacked: Stacked{
			Width:       1200,
			Height:      500,
			Margins:     t.Margins,
			Padding:     t.Padding,
			TickSpacing: t.TickSpacing,
			Unknown:     t.Unknown,
		},
		UpSet: UpSet{
			Height:        t.UpSet.Height,
			Margins:       t.UpSet.Margins,
			BarWidth:      t.UpSet.BarWidth,
			BarSpacing:    t.UpSet.BarSpacing,
			DotRadius:     t.UpSet.DotRadius,
			DotSpacing:    t.UpSet.DotSpacing,
			BarColor:      t.UpSet.BarColor,
			ActiveColor:   t.UpSet.ActiveColor,
			InactiveColor: t.UpSet.InactiveColor,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/licensecharts/config.toml, falling
// back to the platform config directory.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	return filepath.Join(dir, "licensecharts", "config.toml"), nil
}

// Load reads the configuration at path on top of [Default]. An empty path
// selects [DefaultPath], where a missing file is not an error. Unknown keys
// are rejected so that typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			err := cfg.applyEnv()
			return cfg, err
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case os.IsNotExist(err) && !explicit:
		// defaults only
	case os.IsNotExist(err):
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	case err != nil:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvSourceURL); v != "" {
		c.Source.BaseURL = v
	}
	if v := os.Getenv(EnvCacheBackend); v != "" {
		c.Cache.Backend = v
	}
	return c.Validate()
}

// Validate checks values that would otherwise fail later in the pipeline.
func (c Config) Validate() error {
	if err := errors.ValidateURL(c.Source.BaseURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "source.base_url")
	}
	if c.Source.Timeout < 0 || c.Source.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "source.timeout and source.retries must not be negative")
	}
	switch cache.Backend(c.Cache.Backend) {
	case cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q (want file, redis, mongo or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	m := c.Stacked.Margins
	if err := errors.ValidateGeometry(c.Stacked.Width, c.Stacked.Height, m.Top, m.Right, m.Bottom, m.Left); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "stacked")
	}
	if c.Stacked.Padding < 0 || c.Stacked.Padding >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "stacked.padding must be in [0, 1)")
	}
	if c.Stacked.TickSpacing <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "stacked.tick_spacing must be positive")
	}
	if c.UpSet.BarWidth <= 0 || c.UpSet.DotRadius < 0 || c.UpSet.DotSpacing < 0 || c.UpSet.BarSpacing < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "upset bar and dot sizes must not be negative, bar_width must be positive")
	}
	return nil
}

// Theme returns the render theme described by the configuration.
func (c Config) Theme() style.Theme {
	t := style.Default()
	t.Margins = c.Stacked.Margins
	t.Padding = c.Stacked.Padding
	t.TickSpacing = c.Stacked.TickSpacing
	t.Palette = style.Palette(c.Stacked.Palette)
	t.Unknown = c.Stacked.Unknown
	t.UpSet.Height = c.UpSet.Height
	t.UpSet.Margins = c.UpSet.Margins
	t.UpSet.BarWidth = c.UpSet.BarWidth
	t.UpSet.BarSpacing = c.UpSet.BarSpacing
	t.UpSet.DotRadius = c.UpSet.DotRadius
	t.UpSet.DotSpacing = c.UpSet.DotSpacing
	t.UpSet.BarColor = c.UpSet.BarColor
	t.UpSet.ActiveColor = c.UpSet.ActiveColor
	t.UpSet.InactiveColor = c.UpSet.InactiveColor
	return t
}

// CacheOptions returns the options for [cache.Open].
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:         cache.Backend(c.Cache.Backend),
		Dir:             c.Cache.Dir,
		RedisURL:        c.Cache.RedisURL,
		MongoURI:        c.Cache.MongoURI,
		MongoDatabase:   c.Cache.MongoDatabase,
		MongoCollection: c.Cache.MongoCollection,
	}
}

// Keyer returns the cache key layout, scoped by the configured prefix.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Prefix)
}

// Encode writes the configuration as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
