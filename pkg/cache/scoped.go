package cache

// ScopedKeyer wraps a Keyer with a prefix, so several configurations (or
// users of a shared Redis or Mongo backend) keep separate key spaces.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "ci:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SourceKey generates a prefixed key for dataset responses.
func (k *ScopedKeyer) SourceKey(baseURL, dataset string) string {
	return k.prefix + k.inner.SourceKey(baseURL, dataset)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dataHash, opts)
}
