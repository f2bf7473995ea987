// Package cache stores fetched datasets and rendered artifacts.
//
// All backends implement [Cache], a byte-oriented key/value store with
// per-entry TTL:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a Redis server, entries expire natively
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: stores nothing
//
// Keys are produced by a [Keyer] so that every component agrees on the key
// layout; [ScopedKeyer] adds a prefix for isolation.
//
//	c, err := cache.Open(ctx, cache.Options{Backend: cache.BackendFile, Dir: dir})
//	defer c.Close()
//	key := cache.NewDefaultKeyer().SourceKey("http://localhost:8000", "states")
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/httputil"
)

// connectPolicy retries the first PING of the Redis and Mongo backends, so
// a server that is still starting does not fail the run.
var connectPolicy = httputil.DefaultPolicy

// Cache is a key/value store for opaque bytes.
//
// Get reports a miss as (nil, false, nil); an error means the backend failed.
// A ttl of 0 passed to Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names a cache implementation.
type Backend string

const (
	BackendFile  Backend = "file"
	BackendRedis Backend = "redis"
	BackendMongo Backend = "mongo"
	BackendNone  Backend = "none"
)

// Options select and configure a backend for [Open].
type Options struct {
	Backend Backend

	// File backend
	Dir string

	// Redis backend, e.g. "redis://localhost:6379/0"
	RedisURL string

	// Mongo backend
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// DefaultDir returns ~/.cache/licensecharts, or the user cache directory of
// the platform when it is known.
func DefaultDir() (string, error) {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "licensecharts"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "licensecharts"), nil
}

// Open returns the backend described by opts. An empty backend selects the
// file cache in [DefaultDir].
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendFile, "":
		dir := opts.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve cache directory")
			}
			dir = d
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "create cache directory")
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis, mongo or none)", opts.Backend)
	}
}
