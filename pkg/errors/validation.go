package errors

import (
	"math"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// ValidateGeometry checks that a frame of width × height leaves a positive
// plot area after the four margins are removed. All values must be finite
// and non-negative.
func ValidateGeometry(width, height, top, right, bottom, left float64) error {
	for _, v := range []float64{width, height, top, right, bottom, left} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidGeometry, "dimensions must be finite")
		}
		if v < 0 {
			return New(ErrCodeInvalidGeometry, "dimensions and margins must be non-negative")
		}
	}
	if width <= left+right {
		return New(ErrCodeInvalidGeometry, "width %g leaves no plot area after margins %g+%g", width, left, right)
	}
	if height <= top+bottom {
		return New(ErrCodeInvalidGeometry, "height %g leaves no plot area after margins %g+%g", height, top, bottom)
	}
	return nil
}

// ValidateURL checks that rawURL is an absolute http or https URL with a
// host, as required for the data service base URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "parse URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}
	return nil
}

// datasetNameRegex matches dataset names such as "license-age".
var datasetNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateDatasetName validates a dataset name before it is used as a URL
// path segment or cache key.
func ValidateDatasetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDataset, "dataset name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidDataset, "dataset name too long (max 64 characters)")
	}
	if !datasetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidDataset, "invalid dataset name: %q", name)
	}
	return nil
}

const maxOutputPath = 500

// ValidateOutputPath rejects empty output paths, paths over 500 bytes and
// paths containing control characters.
func ValidateOutputPath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	case len(path) > maxOutputPath:
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxOutputPath)
	case strings.ContainsFunc(path, unicode.IsControl):
		return New(ErrCodeInvalidPath, "output path %q contains control characters", path)
	}
	return nil
}
