package vector

import (
	"fmt"
	"math"
	"strings"

	perrors "github.com/inkwell-go/persist/errors"
)

// Vector is an immutable, persistent indexed sequence of elements of type
// T. The zero value is the empty Vector.
type Vector[T any] struct {
	offset    int
	totalSize int
	root      *tnode[T]
	depth     int
	tail      []T
}

// config carries construction-time options; see WithTailCapacityHint.
type config struct {
	tailCapHint int
}

// Option configures an Empty Vector at construction time.
type Option struct {
	apply func(*config)
}

// WithTailCapacityHint preallocates the capacity (not length, at most 32)
// of the initial, empty tail buffer. Add always copies the tail into a
// freshly allocated slice, so the spare capacity is not reused by later
// Adds. The arity of the tree itself is fixed at 32 per the data model
// and is not configurable.
func WithTailCapacityHint(n int) Option {
	return Option{apply: func(c *config) {
		if n > 32 {
			n = 32
		}
		c.tailCapHint = n
	}}
}

// Empty returns the empty Vector. With no options this is the shared
// empty-singleton shape (0, 0, nil, 0, nil); passing WithTailCapacityHint
// produces a structurally equal but distinct value with spare tail
// capacity.
func Empty[T any](opts ...Option) Vector[T] {
	var c config
	for _, o := range opts {
		o.apply(&c)
	}
	v := Vector[T]{}
	if c.tailCapHint > 0 {
		v.tail = make([]T, 0, c.tailCapHint)
	}
	return v
}

// Len returns the number of elements visible through the public API.
func (v Vector[T]) Len() int {
	return v.totalSize - v.offset
}

// IsEmpty reports whether the Vector has no elements.
func (v Vector[T]) IsEmpty() bool {
	return v.Len() == 0
}

func (v Vector[T]) arrayFor(realIndex int) []T {
	if realIndex >= treeSize(v.totalSize) {
		return v.tail
	}
	return leafArrayFor(v.root, v.depth, realIndex)
}

// Get returns the element at logical index i. It panics with an
// errors.Error of Kind OutOfRange if i is outside [0, Len()).
func (v Vector[T]) Get(i int) T {
	if i < 0 || i >= v.Len() {
		perrors.OutOfRangef("vector: index %d out of range [0,%d)", i, v.Len())
	}
	real := i + v.offset
	arr := v.arrayFor(real)
	return arr[real&31]
}

// Add returns a new Vector with e appended. It panics with an
// errors.Error of Kind CapacityExhausted if the backing size would
// overflow a 32-bit representation.
func (v Vector[T]) Add(e T) Vector[T] {
	if v.totalSize == math.MaxInt32 {
		perrors.CapacityExhaustedf("vector: cannot grow past %d elements", math.MaxInt32)
	}

	if len(v.tail) < 32 {
		newTail := make([]T, len(v.tail)+1)
		copy(newTail, v.tail)
		newTail[len(v.tail)] = e
		tracer().Debugf("vector: tail not full (len=%d), appending", len(v.tail))
		return Vector[T]{offset: v.offset, totalSize: v.totalSize + 1, root: v.root, depth: v.depth, tail: newTail}
	}

	return v.pushAndAdd(e)
}

// pushAndAdd flushes a full tail into the tree and starts a fresh
// single-element tail holding e.
func (v Vector[T]) pushAndAdd(e T) Vector[T] {
	var newRoot *tnode[T]
	newDepth := v.depth

	switch {
	case v.root == nil:
		tracer().Debugf("vector: flushing first tail into tree root")
		newRoot = newLeaf(v.tail)
	case v.isTreeFull():
		tracer().Debugf("vector: tree full at depth %d, growing", v.depth)
		newRoot = grow(v.root, v.depth, v.tail)
		newDepth += 5
	default:
		newRoot = appendLeaf(v.root, v.depth, v.tail, v.totalSize-1)
	}

	return Vector[T]{
		offset:    v.offset,
		totalSize: v.totalSize + 1,
		root:      newRoot,
		depth:     newDepth,
		tail:      []T{e},
	}
}

func (v Vector[T]) isTreeFull() bool {
	requiredLeafNodes := v.totalSize >> 5
	maxLeafNodes := 1 << uint(v.depth)
	return requiredLeafNodes > maxLeafNodes
}

// Set returns a new Vector with the element at logical index i replaced
// by e. i == Len() is treated as an alias for Add(e); otherwise i must be
// in [0, Len()) or Set panics with OutOfRange.
func (v Vector[T]) Set(i int, e T) Vector[T] {
	if i < 0 || i > v.Len() {
		perrors.OutOfRangef("vector: index %d out of range [0,%d]", i, v.Len())
	}

	real := i + v.offset
	if real == v.totalSize {
		return v.Add(e)
	}

	if real >= treeSize(v.totalSize) {
		newTail := make([]T, len(v.tail))
		copy(newTail, v.tail)
		newTail[real&31] = e
		return Vector[T]{offset: v.offset, totalSize: v.totalSize, root: v.root, depth: v.depth, tail: newTail}
	}

	newRoot := setInTree(v.root, v.depth, e, real)
	return Vector[T]{offset: v.offset, totalSize: v.totalSize, root: newRoot, depth: v.depth, tail: v.tail}
}

// First returns the prefix of length n. It panics with OutOfRange if n is
// outside [0, Len()].
func (v Vector[T]) First(n int) Vector[T] {
	size := v.Len()
	if n < 0 || n > size {
		perrors.OutOfRangef("vector: first(%d) out of range [0,%d]", n, size)
	}
	if n == 0 {
		return Vector[T]{}
	}
	if n == size {
		return v
	}

	newSize := n + v.offset
	if newSize > treeSize(v.totalSize) {
		newTail := make([]T, newSize&31)
		copy(newTail, v.tail)
		return Vector[T]{offset: v.offset, totalSize: newSize, root: v.root, depth: v.depth, tail: newTail}
	}

	result := pruneRight(v.root, v.depth, newSize-1, true)
	return Vector[T]{offset: v.offset, totalSize: newSize, root: result.root, depth: result.depth, tail: result.tail}
}

// Last returns the suffix of length n. It panics with OutOfRange if n is
// outside [0, Len()].
func (v Vector[T]) Last(n int) Vector[T] {
	size := v.Len()
	if n < 0 || n > size {
		perrors.OutOfRangef("vector: last(%d) out of range [0,%d]", n, size)
	}
	if n == 0 {
		return Vector[T]{}
	}
	if n == size {
		return v
	}

	newOffset := v.offset + (size - n)
	if newOffset >= treeSize(v.totalSize) {
		var newTail []T
		if n == len(v.tail) {
			newTail = v.tail
		} else {
			newTail = make([]T, n)
			copy(newTail, v.tail[len(v.tail)-n:])
		}
		return Vector[T]{offset: 0, totalSize: n, root: nil, depth: 0, tail: newTail}
	}

	result := pruneLeft(v.root, v.depth, newOffset, true)
	return Vector[T]{
		offset:    result.offset,
		totalSize: result.offset + n,
		root:      result.root,
		depth:     result.depth,
		tail:      v.tail,
	}
}

// Remove returns Last(Len()-1): the Vector with its first element
// dropped. It panics with OutOfRange if the Vector is empty.
func (v Vector[T]) Remove() Vector[T] {
	return v.Last(v.Len() - 1)
}

// RemoveN returns Last(Len()-n): the Vector with its first n elements
// dropped.
func (v Vector[T]) RemoveN(n int) Vector[T] {
	return v.Last(v.Len() - n)
}

// Range calls f for every element in index order, stopping early if f
// returns false. It reads whole leaf blocks (tail or tree leaf) at a
// time, matching the amortized-cost iteration the data model specifies.
func (v Vector[T]) Range(f func(i int, e T) bool) {
	index := v.offset
	var arr []T
	if index&31 != 0 {
		arr = v.arrayFor(index)
	}
	for logical := 0; index < v.totalSize; logical, index = logical+1, index+1 {
		if index&31 == 0 {
			arr = v.arrayFor(index)
		}
		if !f(logical, arr[index&31]) {
			return
		}
	}
}

// Slice materializes the Vector's elements into a freshly allocated Go
// slice, for interop with APIs that want one.
func (v Vector[T]) Slice() []T {
	out := make([]T, 0, v.Len())
	v.Range(func(_ int, e T) bool {
		out = append(out, e)
		return true
	})
	return out
}

// String renders the Vector as "[a, b, c]".
func (v Vector[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	v.Range(func(i int, e T) bool {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", e)
		return true
	})
	b.WriteByte(']')
	return b.String()
}

// AddAll returns a new Vector with each of es appended, in order.
func AddAll[T any](v Vector[T], es ...T) Vector[T] {
	for _, e := range es {
		v = v.Add(e)
	}
	return v
}

// IndexOf returns the index of the first element equal to e, or -1.
func IndexOf[T comparable](v Vector[T], e T) int {
	idx := -1
	v.Range(func(i int, x T) bool {
		if x == e {
			idx = i
			return false
		}
		return true
	})
	return idx
}

// LastIndexOf returns the index of the last element equal to e, or -1.
func LastIndexOf[T comparable](v Vector[T], e T) int {
	for i := v.Len() - 1; i >= 0; i-- {
		if v.Get(i) == e {
			return i
		}
	}
	return -1
}

// Contains reports whether e appears anywhere in v.
func Contains[T comparable](v Vector[T], e T) bool {
	return IndexOf(v, e) >= 0
}

// ContainsAll reports whether every element of es appears in v.
func ContainsAll[T comparable](v Vector[T], es ...T) bool {
	for _, e := range es {
		if !Contains(v, e) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b have the same length and elementwise
// equal elements, in order.
func Equal[T comparable](a, b Vector[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.Get(i) != b.Get(i) {
			return false
		}
	}
	return true
}

// Hash folds hashElem over v's elements as 31*h + hashElem(e), starting
// from 1, matching the hash law equal Vectors must satisfy.
func Hash[T any](v Vector[T], hashElem func(T) int32) int32 {
	h := int32(1)
	v.Range(func(_ int, e T) bool {
		h = 31*h + hashElem(e)
		return true
	})
	return h
}
