package hashmap

import (
	"fmt"
	"reflect"
	"strings"

	perrors "github.com/inkwell-go/persist/errors"
)

// Hasher computes the 32-bit hash of a key. The map's own algorithm only
// requires that equal keys hash equally; it does not require a
// particular distribution, though a well-distributed hash is what keeps
// the trie shallow in practice.
type Hasher[K comparable] func(K) uint32

// Entry is an exported key/value pair, returned by Entries and accepted
// by PutAll.
type Entry[K comparable, V any] struct {
	Key K
	Val V
}

// HashMap is an immutable, persistent keyed associative container backed
// by a 32-wide HAMT. The zero value is not directly usable — construct
// with Empty, which attaches the Hasher every subsequent operation on
// the resulting value (and its descendants) uses.
type HashMap[K comparable, V any] struct {
	size       int
	root       *node[K, V]
	hash       Hasher[K]
	valueEqual func(V, V) bool
}

// Empty returns the empty HashMap, keyed by hash.
func Empty[K comparable, V any](hash Hasher[K]) HashMap[K, V] {
	return HashMap[K, V]{hash: hash}
}

// WithValueEqual attaches a value-equality function, enabling the
// "same instance" fast path on Put when re-storing a key with a value
// that compares equal to what's already there. Without it (the zero
// value's default), Put always allocates a fresh path even when the
// value is unchanged — still correct, just missing the optimization,
// since Go has no universal reference-identity test for an arbitrary V.
func (m HashMap[K, V]) WithValueEqual(eq func(V, V) bool) HashMap[K, V] {
	m.valueEqual = eq
	return m
}

// Len returns the number of entries.
func (m HashMap[K, V]) Len() int {
	return m.size
}

// IsEmpty reports whether the HashMap has no entries.
func (m HashMap[K, V]) IsEmpty() bool {
	return m.size == 0
}

// isNilKey reports whether k is the nil value of a nilable key type
// (pointer, interface, slice, map, channel, function). Non-nilable key
// types (string, int, struct, ...) never report true here, matching a
// host language where such types have no "absent" representation.
func isNilKey[K comparable](k K) bool {
	if any(k) == nil {
		return true
	}
	rv := reflect.ValueOf(k)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Chan, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// ContainsKey reports whether k is present. It panics with an
// errors.Error of Kind NullKey if k is the nil value of a nilable key
// type.
func (m HashMap[K, V]) ContainsKey(k K) bool {
	if isNilKey(k) {
		perrors.NullKeyf("hashmap: containsKey called with nil key")
	}
	if m.root == nil {
		return false
	}
	_, found := getNode[K, V](m.root, 0, m.hash(k), k)
	return found
}

// GetOrDefault returns the value stored for k, or def if k is absent. It
// panics with NullKey if k is the nil value of a nilable key type.
func (m HashMap[K, V]) GetOrDefault(k K, def V) V {
	if isNilKey(k) {
		perrors.NullKeyf("hashmap: getOrDefault called with nil key")
	}
	if m.root == nil {
		return def
	}
	v, found := getNode[K, V](m.root, 0, m.hash(k), k)
	if !found {
		return def
	}
	return v
}

// Get returns the value stored for k, or the zero value of V if absent.
// It panics with NullKey under the same condition as GetOrDefault.
func (m HashMap[K, V]) Get(k K) V {
	var zero V
	return m.GetOrDefault(k, zero)
}

// Put returns a new HashMap with k mapped to v. It panics with NullKey if
// k is the nil value of a nilable key type. If k is already mapped to a
// value that WithValueEqual's function reports as equal to v, Put
// returns m itself unchanged.
func (m HashMap[K, V]) Put(k K, v V) HashMap[K, V] {
	if isNilKey(k) {
		perrors.NullKeyf("hashmap: put called with nil key")
	}
	h := m.hash(k)
	if m.root == nil {
		tracer().Debugf("hashmap: put into empty map, creating root")
		root := &node[K, V]{kind: sparseKind, bitmap: 1 << idxFor(h, 0), packed: []slot[K, V]{entrySlot(entry[K, V]{key: k, val: v})}}
		return HashMap[K, V]{size: 1, root: root, hash: m.hash, valueEqual: m.valueEqual}
	}

	newRoot, added, changed := putNode(m.root, 0, h, entry[K, V]{key: k, val: v}, m.hash, m.valueEqual)
	if !changed {
		return m
	}
	size := m.size
	if added {
		size++
	}
	return HashMap[K, V]{size: size, root: newRoot, hash: m.hash, valueEqual: m.valueEqual}
}

// PutAll returns a new HashMap with every entry of es put in order.
func (m HashMap[K, V]) PutAll(es ...Entry[K, V]) HashMap[K, V] {
	for _, e := range es {
		m = m.Put(e.Key, e.Val)
	}
	return m
}

// Remove returns a new HashMap with k absent. It panics with NullKey if k
// is the nil value of a nilable key type. If k was already absent,
// Remove returns m itself unchanged.
func (m HashMap[K, V]) Remove(k K) HashMap[K, V] {
	if isNilKey(k) {
		perrors.NullKeyf("hashmap: remove called with nil key")
	}
	if m.root == nil {
		return m
	}
	h := m.hash(k)
	newRoot, solo, removed := removeNode(m.root, 0, h, k)
	if !removed {
		return m
	}
	perrors.AssertThat(solo == nil, "hashmap: root-level HashCollision collapse is unreachable, Put never constructs a collision root")
	return HashMap[K, V]{size: m.size - 1, root: newRoot, hash: m.hash, valueEqual: m.valueEqual}
}

// Range calls f for every entry, stopping early if f returns false.
// Iteration order depends on the current trie shape and is not a stable
// contract across versions, matching the data model.
func (m HashMap[K, V]) Range(f func(k K, v V) bool) {
	if m.root == nil {
		return
	}
	forEachNode(m.root, f)
}

// ForEach calls action for every entry. It is Range without the
// early-exit return value, matching the Map surface's forEach(action).
func (m HashMap[K, V]) ForEach(action func(k K, v V)) {
	m.Range(func(k K, v V) bool {
		action(k, v)
		return true
	})
}

// Entries materializes every entry into a freshly allocated slice.
func (m HashMap[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, m.size)
	m.Range(func(k K, v V) bool {
		out = append(out, Entry[K, V]{Key: k, Val: v})
		return true
	})
	return out
}

// Keys materializes every key into a freshly allocated slice.
func (m HashMap[K, V]) Keys() []K {
	out := make([]K, 0, m.size)
	m.Range(func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

// String renders the HashMap as "{k: v, k: v}", in iteration (not
// necessarily insertion) order.
func (m HashMap[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	m.Range(func(k K, v V) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %v", k, v)
		return true
	})
	b.WriteByte('}')
	return b.String()
}

// ContainsAll reports whether every key in ks is present in m.
func ContainsAll[K comparable, V any](m HashMap[K, V], ks ...K) bool {
	for _, k := range ks {
		if !m.ContainsKey(k) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b have the same size and, for every entry
// in a, b contains the same key with an equal value.
func Equal[K comparable, V comparable](a, b HashMap[K, V]) bool {
	if a.size != b.size {
		return false
	}
	equal := true
	a.Range(func(k K, v V) bool {
		if bv, found := b.lookup(k); !found || bv != v {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// lookup is an internal helper used by Equal that doesn't panic on nil
// keys — Equal is only ever called with keys already live in a, which by
// construction are never nil.
func (m HashMap[K, V]) lookup(k K) (V, bool) {
	if m.root == nil {
		var zero V
		return zero, false
	}
	return getNode[K, V](m.root, 0, m.hash(k), k)
}

// Hash computes the map's hash as the sum of per-entry pair hashes,
// hash(key) XOR hash(value), matching the equality/hash law every pair
// of equal maps must satisfy.
func Hash[K comparable, V any](m HashMap[K, V], hashKey func(K) int32, hashVal func(V) int32) int32 {
	var total int32
	m.Range(func(k K, v V) bool {
		total += hashKey(k) ^ hashVal(v)
		return true
	})
	return total
}
