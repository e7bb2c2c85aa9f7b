package adapter

import (
	perrors "github.com/inkwell-go/persist/errors"
	"github.com/inkwell-go/persist/stack"
	"github.com/inkwell-go/persist/vector"
)

// listCore is the common surface Vector and Stack both already satisfy;
// ReadOnlyList is built against this interface so one adapter type
// serves either core without duplicating the wrapper.
type listCore[T any] interface {
	Len() int
	IsEmpty() bool
	Get(i int) T
	Range(f func(i int, e T) bool)
}

// ReadOnlyList is a read-only view over a Vector or a Stack. It is
// itself immutable (the wrapped core is already immutable), but every
// method that looks like a mutator panics with UnsupportedOperation
// rather than silently doing nothing, so that misuse is caught at the
// call site instead of producing a value nobody asked for.
type ReadOnlyList[T any] struct {
	core listCore[T]
}

// FromVector wraps v in a read-only view.
func FromVector[T any](v vector.Vector[T]) ReadOnlyList[T] {
	return ReadOnlyList[T]{core: v}
}

// FromStack wraps s in a read-only view.
func FromStack[T any](s stack.Stack[T]) ReadOnlyList[T] {
	return ReadOnlyList[T]{core: s}
}

// Len returns the number of elements.
func (r ReadOnlyList[T]) Len() int {
	return r.core.Len()
}

// IsEmpty reports whether the view has no elements.
func (r ReadOnlyList[T]) IsEmpty() bool {
	return r.core.IsEmpty()
}

// Get returns the element at logical index i, subject to the same
// OutOfRange contract as the wrapped core's Get.
func (r ReadOnlyList[T]) Get(i int) T {
	return r.core.Get(i)
}

// Range calls f for every element in the wrapped core's iteration order,
// stopping early if f returns false.
func (r ReadOnlyList[T]) Range(f func(i int, e T) bool) {
	r.core.Range(f)
}

// Slice materializes the view's elements into a freshly allocated slice.
func (r ReadOnlyList[T]) Slice() []T {
	out := make([]T, 0, r.Len())
	r.Range(func(_ int, e T) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Set always panics with UnsupportedOperation: the view is read-only.
func (r ReadOnlyList[T]) Set(int, T) {
	perrors.UnsupportedOperationf("adapter: Set called on a read-only list view")
}

// Add always panics with UnsupportedOperation: the view is read-only.
func (r ReadOnlyList[T]) Add(T) {
	perrors.UnsupportedOperationf("adapter: Add called on a read-only list view")
}

// Remove always panics with UnsupportedOperation: the view is read-only.
func (r ReadOnlyList[T]) Remove() {
	perrors.UnsupportedOperationf("adapter: Remove called on a read-only list view")
}
