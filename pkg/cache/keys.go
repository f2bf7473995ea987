package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Key types reported to cache hooks.
const (
	KeyTypeSource   = "source"
	KeyTypeArtifact = "artifact"
)

// Keyer generates cache keys.
type Keyer interface {
	// SourceKey identifies the raw response for a dataset endpoint.
	SourceKey(baseURL, dataset string) string

	// ArtifactKey identifies a rendered output of a dataset payload.
	ArtifactKey(dataHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render parameters that change an artifact.
type ArtifactKeyOpts struct {
	Chart  string  `json:"chart"`
	Format string  `json:"format"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Legend bool    `json:"legend,omitempty"`
	Theme  string  `json:"theme,omitempty"` // hash of the theme
}

// DefaultKeyer produces keys of the form "<type>:<...>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SourceKey returns "source:<base>/<dataset>" with trailing slashes trimmed
// from base.
func (DefaultKeyer) SourceKey(baseURL, dataset string) string {
	return KeyTypeSource + ":" + strings.TrimRight(baseURL, "/") + "/" + dataset
}

// ArtifactKey hashes the payload hash together with opts.
func (DefaultKeyer) ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, dataHash, opts)
}

// Hash returns the hex SHA-256 of data. Pipeline runs use it to identify a
// fetched body, so unchanged data maps onto the same artifact keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "<prefix>:<hash>" over the JSON encoding of parts. Parts
// JSON cannot encode (NaN or infinite sizes) are hashed in their Go syntax
// instead.
func hashKey(prefix string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		data = fmt.Appendf(nil, "%#v", parts)
	}
	return prefix + ":" + Hash(data)
}
