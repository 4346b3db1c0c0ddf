package cache

import "time"

// Cache TTLs per entry kind. Entries are content-addressed, so they never
// go stale; the TTLs only bound cache growth.
const (
	// TTLResult is the lifetime of cached tally results.
	TTLResult = 30 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)
