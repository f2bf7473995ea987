// Package source fetches raw dataset bodies for the chart pipeline.
//
// A [Provider] returns the JSON body of a dataset. Two providers exist:
//
//   - [HTTPProvider] GETs <base>/<endpoint> from the license data service,
//     retrying transient failures and caching bodies.
//   - [FileProvider] reads local JSON, YAML or TOML files and normalizes
//     them to JSON.
//
// Providers only move bytes; decoding into records happens in package
// dataset.
package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBaseURL is the address of a locally running data service.
const DefaultBaseURL = "http://localhost:8000"

// Provider fetches the JSON body of a dataset.
type Provider interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// IsFile reports whether ref names a local file rather than a dataset.
// Dataset names never contain a dot or a path separator.
func IsFile(ref string) bool {
	if strings.ContainsAny(ref, `./\`) {
		return true
	}
	_, err := os.Stat(ref)
	return err == nil
}

// ext returns the lowercase extension of path without the dot.
func ext(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
