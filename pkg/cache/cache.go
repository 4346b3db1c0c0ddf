// Package cache provides caching for tally results and rendered artifacts.
//
// The CLI uses a file-backed cache under the user's cache directory; the
// server can point at Redis instead. Both sit behind the same Cache
// interface, and a Keyer turns election content plus options into stable
// keys so identical requests hit the same entry regardless of backend.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTLs.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// ResultKeyOpts are the tally parameters that shape a result, beyond the
// ballots themselves. Two tallies with the same ballots but different
// options must not share a cache entry.
type ResultKeyOpts struct {
	Candidates   int
	MaxGroupSize int
}

// ArtifactKeyOpts identify a rendered artifact derived from a result.
type ArtifactKeyOpts struct {
	Format   string // "json", "dot", "svg", "png"
	Detailed bool   // margin labels on graph edges
}

// Keyer generates cache keys for the cacheable stages of a tally run.
type Keyer interface {
	// ResultKey generates a key for a computed winner set and its locked
	// graphs, from the hash of the canonical ballot encoding.
	ResultKey(ballotsHash string, opts ResultKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, from the hash of
	// the result it was rendered from.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResultKey generates a key for a tally result.
func (k *DefaultKeyer) ResultKey(ballotsHash string, opts ResultKeyOpts) string {
	return hashKey("result", ballotsHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}
