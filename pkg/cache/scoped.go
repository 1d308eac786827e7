package cache

// ScopedKeyer prefixes every key, so several configurations (or tenants of
// the HTTP server) can share one Redis database.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "kintree:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey returns the prefixed HTTP key.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// RowsKey returns the prefixed rows key.
func (k *ScopedKeyer) RowsKey(kind, location string) string {
	return k.prefix + k.inner.RowsKey(kind, location)
}
