package hashmap

import "math/bits"

// entry is a single key/value pair stored at a trie leaf position.
type entry[K comparable, V any] struct {
	key K
	val V
}

// slot is the tagged union stored at a physical position in a sparse or
// full node: either a leaf entry or a child node. A zero slot (present
// false) only ever appears in a full node's 32-wide array; sparse nodes
// never hold a zero slot — their packed array length tracks bitmap
// occupancy exactly.
type slot[K comparable, V any] struct {
	present bool
	isChild bool
	entry   entry[K, V]
	child   *node[K, V]
}

func entrySlot[K comparable, V any](e entry[K, V]) slot[K, V] {
	return slot[K, V]{present: true, entry: e}
}

func childSlot[K comparable, V any](n *node[K, V]) slot[K, V] {
	return slot[K, V]{present: true, isChild: true, child: n}
}

// kind tags which of the three HAMT node variants a node value is.
type kind int

const (
	sparseKind kind = iota
	fullKind
	collisionKind
)

// inflateThreshold is the packed-array length at which a sparse node
// inflates into a full node (17th entry, per the data model: "A Sparse
// with >= 17 entries becomes Full").
const inflateThreshold = 16

// deflateThreshold is the occupancy at or below which a full node
// deflates back into a sparse node ("a Full dropping to <= 8 entries
// becomes Sparse").
const deflateThreshold = 8

// node is a HAMT node. Sparse and Full nodes ("uniform addressing"
// nodes, per the design notes) share the get/set/insert/remove dispatch
// below by branching on kind inside each primitive; HashCollision nodes
// are addressed by linear scan over entries instead of by slot index and
// are handled separately by the top-level get/put/remove algorithms.
type node[K comparable, V any] struct {
	kind kind

	// sparseKind
	bitmap uint32
	packed []slot[K, V]

	// fullKind
	slots []slot[K, V]
	count int

	// collisionKind
	hash    uint32
	entries []entry[K, V]
}

func idxFor(hash uint32, level int) uint {
	return uint((hash >> uint(level)) & 31)
}

// --- Sparse primitives -------------------------------------------------

func (n *node[K, V]) sparseGet(idx uint) (slot[K, V], bool) {
	bit := uint32(1) << idx
	if n.bitmap&bit == 0 {
		return slot[K, V]{}, false
	}
	pos := bits.OnesCount32(n.bitmap & (bit - 1))
	return n.packed[pos], true
}

func (n *node[K, V]) sparseSet(idx uint, s slot[K, V]) *node[K, V] {
	bit := uint32(1) << idx
	pos := bits.OnesCount32(n.bitmap & (bit - 1))
	newPacked := make([]slot[K, V], len(n.packed))
	copy(newPacked, n.packed)
	newPacked[pos] = s
	return &node[K, V]{kind: sparseKind, bitmap: n.bitmap, packed: newPacked}
}

func (n *node[K, V]) sparseInsert(idx uint, s slot[K, V]) *node[K, V] {
	if len(n.packed) == inflateThreshold {
		return n.inflate(idx, s)
	}
	bit := uint32(1) << idx
	pos := bits.OnesCount32(n.bitmap & (bit - 1))
	newPacked := make([]slot[K, V], len(n.packed)+1)
	copy(newPacked, n.packed[:pos])
	newPacked[pos] = s
	copy(newPacked[pos+1:], n.packed[pos:])
	return &node[K, V]{kind: sparseKind, bitmap: n.bitmap | bit, packed: newPacked}
}

// inflate converts a 16-entry sparse node into a 32-slot full node,
// scattering the packed array back into its virtual positions per the
// bitmap, then placing the new entry at idx.
func (n *node[K, V]) inflate(idx uint, s slot[K, V]) *node[K, V] {
	tracer().Debugf("hashmap: inflating sparse node (16 entries) to full")
	full := make([]slot[K, V], 32)
	for i := uint(0); i < 32; i++ {
		bit := uint32(1) << i
		if n.bitmap&bit != 0 {
			pos := bits.OnesCount32(n.bitmap & (bit - 1))
			full[i] = n.packed[pos]
		}
	}
	full[idx] = s
	return &node[K, V]{kind: fullKind, slots: full, count: len(n.packed) + 1}
}

func (n *node[K, V]) sparseRemove(idx uint) *node[K, V] {
	if len(n.packed) == 1 {
		return nil
	}
	bit := uint32(1) << idx
	pos := bits.OnesCount32(n.bitmap & (bit - 1))
	newPacked := make([]slot[K, V], len(n.packed)-1)
	copy(newPacked, n.packed[:pos])
	copy(newPacked[pos:], n.packed[pos+1:])
	return &node[K, V]{kind: sparseKind, bitmap: n.bitmap &^ bit, packed: newPacked}
}

// --- Full primitives -----------------------------------------------------

func (n *node[K, V]) fullGet(idx uint) (slot[K, V], bool) {
	s := n.slots[idx]
	return s, s.present
}

func (n *node[K, V]) fullSet(idx uint, s slot[K, V]) *node[K, V] {
	newSlots := make([]slot[K, V], 32)
	copy(newSlots, n.slots)
	newSlots[idx] = s
	return &node[K, V]{kind: fullKind, slots: newSlots, count: n.count}
}

func (n *node[K, V]) fullInsert(idx uint, s slot[K, V]) *node[K, V] {
	newSlots := make([]slot[K, V], 32)
	copy(newSlots, n.slots)
	newSlots[idx] = s
	return &node[K, V]{kind: fullKind, slots: newSlots, count: n.count + 1}
}

func (n *node[K, V]) fullRemove(idx uint) *node[K, V] {
	if n.count-1 <= deflateThreshold {
		return n.deflate(idx)
	}
	newSlots := make([]slot[K, V], 32)
	copy(newSlots, n.slots)
	newSlots[idx] = slot[K, V]{}
	return &node[K, V]{kind: fullKind, slots: newSlots, count: n.count - 1}
}

// deflate converts a full node whose occupancy just dropped to <= 8 back
// into a sparse node, skipping idx (the slot being removed).
func (n *node[K, V]) deflate(idx uint) *node[K, V] {
	tracer().Debugf("hashmap: deflating full node (count=%d) to sparse", n.count)
	var bitmap uint32
	packed := make([]slot[K, V], 0, n.count-1)
	for i := uint(0); i < 32; i++ {
		if i == idx || !n.slots[i].present {
			continue
		}
		bitmap |= 1 << i
		packed = append(packed, n.slots[i])
	}
	return &node[K, V]{kind: sparseKind, bitmap: bitmap, packed: packed}
}

// --- Shared dispatch over the two uniform-addressing variants -----------

func (n *node[K, V]) getSlot(idx uint) (slot[K, V], bool) {
	if n.kind == fullKind {
		return n.fullGet(idx)
	}
	return n.sparseGet(idx)
}

func (n *node[K, V]) setSlot(idx uint, s slot[K, V]) *node[K, V] {
	if n.kind == fullKind {
		return n.fullSet(idx, s)
	}
	return n.sparseSet(idx, s)
}

func (n *node[K, V]) insertSlot(idx uint, s slot[K, V]) *node[K, V] {
	if n.kind == fullKind {
		return n.fullInsert(idx, s)
	}
	return n.sparseInsert(idx, s)
}

// removeSlot removes the occupant at idx, returning nil if the node
// becomes entirely empty as a result (sparse node with its last entry
// removed — a full node never empties directly, it deflates first).
func (n *node[K, V]) removeSlot(idx uint) *node[K, V] {
	if n.kind == fullKind {
		return n.fullRemove(idx)
	}
	return n.sparseRemove(idx)
}

// --- get/put/remove, uniform across node kinds --------------------------

// getNode implements the get(h, L, k, default) algorithm from the data
// model: descend by 5-bit hash slices, returning the stored value and
// true, or the zero value and false.
func getNode[K comparable, V any](n *node[K, V], level int, hash uint32, key K) (V, bool) {
	if n.kind == collisionKind {
		return collisionGet(n, hash, key)
	}
	s, found := n.getSlot(idxFor(hash, level))
	if !found {
		var zero V
		return zero, false
	}
	if !s.isChild {
		if s.entry.key == key {
			return s.entry.val, true
		}
		var zero V
		return zero, false
	}
	return getNode(s.child, level+5, hash, key)
}

func collisionGet[K comparable, V any](n *node[K, V], hash uint32, key K) (V, bool) {
	if hash != n.hash {
		var zero V
		return zero, false
	}
	for _, e := range n.entries {
		if e.key == key {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

// putNode implements put(h, L, entry): it returns the node to substitute
// for n, whether a new key was added (vs. an existing one overwritten),
// and whether anything changed at all (false lets the caller take the
// "same instance" fast path).
func putNode[K comparable, V any](n *node[K, V], level int, hash uint32, e entry[K, V], hashOf Hasher[K], valueEqual func(V, V) bool) (*node[K, V], bool, bool) {
	if n.kind == collisionKind {
		return collisionPut(n, level, hash, e, hashOf, valueEqual)
	}

	idx := idxFor(hash, level)
	existing, found := n.getSlot(idx)
	if !found {
		return n.insertSlot(idx, entrySlot(e)), true, true
	}

	if !existing.isChild {
		old := existing.entry
		if old.key == e.key {
			if valueEqual != nil && valueEqual(old.val, e.val) {
				return n, false, false
			}
			return n.setSlot(idx, entrySlot(e)), false, true
		}
		combined := createNode(level+5, old, hash, e, hashOf)
		return n.setSlot(idx, childSlot(combined)), true, true
	}

	newChild, added, changed := putNode(existing.child, level+5, hash, e, hashOf, valueEqual)
	if !changed {
		return n, false, false
	}
	return n.setSlot(idx, childSlot(newChild)), added, true
}

// createNode builds the node needed to hold both oldEntry (already
// present, at the slot being split) and the new entry, at the given
// level. If the two keys' hashes are equal at the full 32 bits, the
// result is a HashCollision node; otherwise the result is built by
// inserting both into a fresh Sparse node, which recurses through
// putNode/createNode until the hashes diverge (guaranteed within the
// remaining levels, since any two distinct 32-bit hashes differ in some
// 5-bit window covered by levels 0..30).
func createNode[K comparable, V any](level int, oldEntry entry[K, V], newHash uint32, newEntry entry[K, V], hashOf Hasher[K]) *node[K, V] {
	oldHash := hashOf(oldEntry.key)
	if oldHash == newHash {
		return &node[K, V]{kind: collisionKind, hash: newHash, entries: []entry[K, V]{oldEntry, newEntry}}
	}
	root := &node[K, V]{kind: sparseKind}
	root, _, _ = putNode(root, level, oldHash, oldEntry, hashOf, nil)
	root, _, _ = putNode(root, level, newHash, newEntry, hashOf, nil)
	return root
}

func collisionPut[K comparable, V any](n *node[K, V], level int, hash uint32, e entry[K, V], hashOf Hasher[K], valueEqual func(V, V) bool) (*node[K, V], bool, bool) {
	if hash != n.hash {
		// Wrap this collision node into a fresh sparse node at the slot
		// its shared hash occupies at this level, and redispatch.
		wrapper := &node[K, V]{kind: sparseKind}
		idx := idxFor(n.hash, level)
		wrapper = wrapper.sparseInsert(idx, childSlot(n))
		return putNode(wrapper, level, hash, e, hashOf, valueEqual)
	}
	for i, old := range n.entries {
		if old.key == e.key {
			if valueEqual != nil && valueEqual(old.val, e.val) {
				return n, false, false
			}
			newEntries := make([]entry[K, V], len(n.entries))
			copy(newEntries, n.entries)
			newEntries[i] = e
			return &node[K, V]{kind: collisionKind, hash: n.hash, entries: newEntries}, false, true
		}
	}
	newEntries := make([]entry[K, V], len(n.entries)+1)
	copy(newEntries, n.entries)
	newEntries[len(n.entries)] = e
	return &node[K, V]{kind: collisionKind, hash: n.hash, entries: newEntries}, true, true
}

// removeNode implements remove(h, L, k). It returns the replacement node
// (nil if n became empty), a non-nil solo entry if a HashCollision
// directly below collapsed to its single remaining entry (which the
// caller must splice in as a bare entry slot rather than a child node),
// and whether a removal happened at all.
func removeNode[K comparable, V any](n *node[K, V], level int, hash uint32, key K) (*node[K, V], *entry[K, V], bool) {
	if n.kind == collisionKind {
		return collisionRemove(n, level, hash, key)
	}

	idx := idxFor(hash, level)
	existing, found := n.getSlot(idx)
	if !found {
		return n, nil, false
	}

	if !existing.isChild {
		if existing.entry.key != key {
			return n, nil, false
		}
		return n.removeSlot(idx), nil, true
	}

	childNode, solo, removed := removeNode(existing.child, level+5, hash, key)
	if !removed {
		return n, nil, false
	}
	switch {
	case solo != nil:
		return n.setSlot(idx, entrySlot(*solo)), nil, true
	case childNode == nil:
		return n.removeSlot(idx), nil, true
	default:
		return n.setSlot(idx, childSlot(childNode)), nil, true
	}
}

func collisionRemove[K comparable, V any](n *node[K, V], level int, hash uint32, key K) (*node[K, V], *entry[K, V], bool) {
	if hash != n.hash {
		return n, nil, false
	}
	pos := -1
	for i, e := range n.entries {
		if e.key == key {
			pos = i
			break
		}
	}
	if pos < 0 {
		return n, nil, false
	}
	if len(n.entries) == 2 {
		remaining := n.entries[1-pos]
		return nil, &remaining, true
	}
	newEntries := make([]entry[K, V], 0, len(n.entries)-1)
	newEntries = append(newEntries, n.entries[:pos]...)
	newEntries = append(newEntries, n.entries[pos+1:]...)
	return &node[K, V]{kind: collisionKind, hash: n.hash, entries: newEntries}, nil, true
}

// forEachNode walks n depth-first over its non-empty slots, in physical
// (not virtual) order, delegating into child nodes as it goes. Iteration
// order over a HashMap is intentionally not a stable contract across
// versions, per the data model.
func forEachNode[K comparable, V any](n *node[K, V], f func(K, V) bool) bool {
	if n.kind == collisionKind {
		for _, e := range n.entries {
			if !f(e.key, e.val) {
				return false
			}
		}
		return true
	}
	arr := n.packed
	if n.kind == fullKind {
		arr = n.slots
	}
	for _, s := range arr {
		if !s.present {
			continue
		}
		if s.isChild {
			if !forEachNode(s.child, f) {
				return false
			}
			continue
		}
		if !f(s.entry.key, s.entry.val) {
			return false
		}
	}
	return true
}
