// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about tally execution and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries), keeps the core free of observability frameworks, and allows
// different backends (OpenTelemetry, Prometheus, plain logs).
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTallyHooks(&myTallyHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Tally().OnGroupStart(ctx, margin, size)
//	// ... branch over tie orders ...
//	observability.Tally().OnGroupComplete(ctx, margin, branches, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Tally Hooks
// =============================================================================

// TallyHooks receives events from tabulation and the branch-and-union tally.
type TallyHooks interface {
	// Tabulation events
	OnTabulateStart(ctx context.Context, ballots, candidates int)
	OnTabulateComplete(ctx context.Context, groups int, duration time.Duration, err error)

	// Per-margin-group events. size is the number of tied pairs in the
	// group; branches is the deduplicated working-set size afterwards.
	OnGroupStart(ctx context.Context, margin, size int)
	OnGroupComplete(ctx context.Context, margin, branches int, duration time.Duration)

	// OnTallyComplete fires once per tally with the terminal graph count
	// and the number of winners.
	OnTallyComplete(ctx context.Context, graphs, winners int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTallyHooks is a no-op implementation of TallyHooks.
type NoopTallyHooks struct{}

func (NoopTallyHooks) OnTabulateStart(context.Context, int, int)                     {}
func (NoopTallyHooks) OnTabulateComplete(context.Context, int, time.Duration, error) {}
func (NoopTallyHooks) OnGroupStart(context.Context, int, int)                        {}
func (NoopTallyHooks) OnGroupComplete(context.Context, int, int, time.Duration)      {}
func (NoopTallyHooks) OnTallyComplete(context.Context, int, int, time.Duration)      {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	tallyHooks TallyHooks = NoopTallyHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetTallyHooks registers custom tally hooks.
// This should be called once at application startup before any tallying.
func SetTallyHooks(h TallyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		tallyHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache use.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Tally returns the registered tally hooks.
func Tally() TallyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return tallyHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	tallyHooks = NoopTallyHooks{}
	cacheHooks = NoopCacheHooks{}
}
