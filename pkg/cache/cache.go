// Package cache stores raw source rows between runs.
//
// Only fetched input is cached: a spreadsheet export or a collection dump,
// keyed by source location. Graphs and layouts are always recomputed, since
// they are cheap and must reflect the current code.
//
// Implementations:
//
//   - [FileCache]: one JSON file per key under the user cache directory (CLI)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching (--no-cache)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value and whether it was found. Expired entries are
	// misses, not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey is the key of one HTTP response body.
	HTTPKey(namespace, key string) string
	// RowsKey is the key of the normalized input rows of one source.
	RowsKey(kind, location string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// RowsKey hashes the location so credentials in URLs never appear in keys.
func (DefaultKeyer) RowsKey(kind, location string) string {
	return hashKey("rows:"+kind, location)
}
