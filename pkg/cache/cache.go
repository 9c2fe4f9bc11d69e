// Package cache provides the content-addressed byte cache behind the
// engine's expensive stages. Keys are derived from circuit content hashes,
// so cached CNF encodings and solve verdicts can never go stale; TTLs only
// bound storage growth.
//
// Backends: [FileCache] for the CLI, [RedisCache] for server deployments,
// [NullCache] to disable caching. All values are opaque bytes; callers own
// the serialization.
package cache

import (
	"context"
	"time"
)

// Cache is a byte cache with explicit hit reporting: a miss is a false
// second return, never an error.
type Cache interface {
	// Get retrieves the value stored under key.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs per artifact kind. Both artifacts are pure functions of circuit
// content; the bounds exist to cap disk and memory growth, not staleness.
const (
	// TTLFormula bounds cached DIMACS encodings.
	TTLFormula = 7 * 24 * time.Hour

	// TTLVerdict bounds cached solve outcomes.
	TTLVerdict = 30 * 24 * time.Hour
)
