// Package cache stores routing results between runs.
//
// # Backends
//
//   - [FileCache]: JSON files under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the API server
//   - [NullCache]: stores nothing, used with --no-cache and in tests
//
// # Keys
//
// A [Keyer] derives keys from the content hash of a problem plus every
// option that changes the routed result, so editing a problem file or
// changing the ordering strategy never returns a stale map:
//
//	key := cache.NewDefaultKeyer().ResultKey(cache.Hash(problemTOML), cache.ResultKeyOpts{Attempts: 4})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey identifies a routed result.
	ResultKey(problemHash string, opts ResultKeyOpts) string

	// ArtifactKey identifies a rendering of a cached result.
	ArtifactKey(resultKey string, format string) string
}

// ResultKeyOpts are the routing options that change a result.
type ResultKeyOpts struct {
	Attempts  int    `json:"attempts"`
	Order     string `json:"order"`
	Seed      uint64 `json:"seed"`
	MaxTunnel int    `json:"max_tunnel"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) ResultKey(problemHash string, opts ResultKeyOpts) string {
	return hashKey("result", problemHash, opts)
}

func (DefaultKeyer) ArtifactKey(resultKey string, format string) string {
	return hashKey("artifact", resultKey, format)
}
