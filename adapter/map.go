package adapter

import (
	perrors "github.com/inkwell-go/persist/errors"
	"github.com/inkwell-go/persist/hashmap"
)

// ReadOnlyMap is a read-only view over a HashMap. Every method that
// looks like a mutator panics with UnsupportedOperation instead of
// silently no-oping.
type ReadOnlyMap[K comparable, V any] struct {
	core hashmap.HashMap[K, V]
}

// FromHashMap wraps m in a read-only view.
func FromHashMap[K comparable, V any](m hashmap.HashMap[K, V]) ReadOnlyMap[K, V] {
	return ReadOnlyMap[K, V]{core: m}
}

// Len returns the number of entries.
func (r ReadOnlyMap[K, V]) Len() int {
	return r.core.Len()
}

// IsEmpty reports whether the view has no entries.
func (r ReadOnlyMap[K, V]) IsEmpty() bool {
	return r.core.IsEmpty()
}

// ContainsKey reports whether k is present, subject to the same NullKey
// contract as the wrapped core's ContainsKey.
func (r ReadOnlyMap[K, V]) ContainsKey(k K) bool {
	return r.core.ContainsKey(k)
}

// Get returns the value stored for k, or the zero value of V if absent.
func (r ReadOnlyMap[K, V]) Get(k K) V {
	return r.core.Get(k)
}

// GetOrDefault returns the value stored for k, or def if absent.
func (r ReadOnlyMap[K, V]) GetOrDefault(k K, def V) V {
	return r.core.GetOrDefault(k, def)
}

// Range calls f for every entry, stopping early if f returns false.
func (r ReadOnlyMap[K, V]) Range(f func(k K, v V) bool) {
	r.core.Range(f)
}

// Entries materializes every entry into a freshly allocated slice.
func (r ReadOnlyMap[K, V]) Entries() []hashmap.Entry[K, V] {
	return r.core.Entries()
}

// Keys materializes every key into a freshly allocated slice.
func (r ReadOnlyMap[K, V]) Keys() []K {
	return r.core.Keys()
}

// Put always panics with UnsupportedOperation: the view is read-only.
func (r ReadOnlyMap[K, V]) Put(K, V) {
	perrors.UnsupportedOperationf("adapter: Put called on a read-only map view")
}

// Remove always panics with UnsupportedOperation: the view is read-only.
func (r ReadOnlyMap[K, V]) Remove(K) {
	perrors.UnsupportedOperationf("adapter: Remove called on a read-only map view")
}
