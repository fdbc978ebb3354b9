// Package cache provides content-addressed caching for layout computation.
//
// The Cache interface abstracts the storage backend:
//   - file: directory-based cache for CLI usage (XDG cache dir)
//   - redis: shared cache for multi-instance server deployments
//   - null: disabled caching for tests and --no-cache
//
// Keys are derived from content hashes via a Keyer, so identical inputs with
// identical options always map to the same entry regardless of where they
// were computed.
package cache

import (
	"context"
	"time"
)

// TTLs for the different entry kinds. Item sets and layouts are cheap to
// recompute, so these mainly bound disk/redis growth.
const (
	// TTLItems is the lifetime of cached item-set documents.
	TTLItems = 7 * 24 * time.Hour

	// TTLLayout is the lifetime of cached layout computations.
	TTLLayout = 30 * 24 * time.Hour
)

// Cache is the interface for cache storage backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ItemsKeyOpts captures the options that distinguish item-set cache entries.
type ItemsKeyOpts struct {
	Source string // Origin of the set (file path hash, API, store ID)
}

// LayoutKeyOpts captures every option that affects layout output. Two runs
// with the same item-set hash and identical LayoutKeyOpts are guaranteed to
// produce the same layout, which is what makes the cache sound.
type LayoutKeyOpts struct {
	MinFontSize  float64
	MaxFontSize  float64
	MaxAttempts  int
	Padding      float64
	SizeExponent float64
	OpacityBase  float64
	OpacitySprd  float64
	ScaleBase    float64
	ScaleSprd    float64
	Jitter       float64
	Seed         uint64
}

// Keyer generates cache keys for the different entry kinds.
type Keyer interface {
	// ItemsKey generates a key for a cached item set.
	ItemsKey(name string, opts ItemsKeyOpts) string

	// LayoutKey generates a key for a cached layout, derived from the
	// content hash of the input item set plus all layout options.
	LayoutKey(itemsHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ItemsKey generates a key for item-set caching.
func (k *DefaultKeyer) ItemsKey(name string, opts ItemsKeyOpts) string {
	return hashKey("items", name, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", itemsHash, opts)
}
