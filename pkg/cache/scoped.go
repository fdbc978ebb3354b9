package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Useful in shared deployments where different users or contexts need
// separate cache namespaces.
//
// Example usage:
//
//	// User-specific keys for private clouds
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for public item sets
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

// ItemsKey generates a prefixed key for item-set caching.
func (k *ScopedKeyer) ItemsKey(name string, opts ItemsKeyOpts) string {
	return k.prefix + k.inner.ItemsKey(name, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(itemsHash, opts)
}
