package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful when the server hosts several elections or organizations
// that need separate cache namespaces.
//
// Example usage:
//
//	// Organization-specific keys for private elections
//	orgKeyer := NewScopedKeyer(NewDefaultKeyer(), "org:abc123:")
//
//	// Global keys for public elections
//	globalKeyer := NewDefaultKeyer()
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

// ResultKey generates a prefixed key for tally result caching.
func (k *ScopedKeyer) ResultKey(ballotsHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(ballotsHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(resultHash, opts)
}
