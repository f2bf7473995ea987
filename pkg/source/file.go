package source

import (
	"context"
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/licensecharts/pkg/errors"
)

// FileProvider reads datasets from local files. The format follows the
// extension: .json is returned as is, .yaml/.yml and .toml are converted to
// JSON.
//
// TOML has no top-level arrays, so a TOML file holding records wraps them
// in a "records" array of tables; the wrapper is removed on conversion.
//
//	[[records]]
//	year = 2019
//	count = 12
//	status = "active"
type FileProvider struct{}

// NewFileProvider returns a file provider.
func NewFileProvider() *FileProvider { return &FileProvider{} }

// Fetch reads path and returns its content as JSON.
func (FileProvider) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}

	switch e := ext(path); e {
	case "json":
		if !json.Valid(data) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s is not valid JSON", path)
		}
		return data, nil
	case "yaml", "yml":
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
		}
		return toJSON(v, path)
	case "toml":
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
		}
		if records, ok := m["records"]; ok && len(m) == 1 {
			return toJSON(records, path)
		}
		return toJSON(m, path)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported data file extension %q (want json, yaml or toml)", e)
	}
}

func toJSON(v any, path string) ([]byte, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "convert %s to JSON", path)
	}
	return out, nil
}

var _ Provider = (*FileProvider)(nil)
