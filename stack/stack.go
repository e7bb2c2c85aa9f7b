package stack

import (
	"fmt"
	"strings"

	perrors "github.com/inkwell-go/persist/errors"
)

// node is one link of the chain. size is the number of elements in the
// chain starting at (and including) this node — the size of the suffix
// Stack this node is the head of. That invariant is what lets Last(n)
// share structure directly instead of cloning.
type node[T any] struct {
	head T
	tail *node[T]
	size int
}

// Stack is an immutable, persistent sequence supporting O(1) prepend
// ("push") and remove ("pop") at the head. The zero value is the empty
// Stack.
type Stack[T any] struct {
	n *node[T]
}

// Empty returns the empty Stack.
func Empty[T any]() Stack[T] {
	return Stack[T]{}
}

// Len returns the number of elements.
func (s Stack[T]) Len() int {
	if s.n == nil {
		return 0
	}
	return s.n.size
}

// IsEmpty reports whether the Stack has no elements.
func (s Stack[T]) IsEmpty() bool {
	return s.n == nil
}

// Push returns a new Stack with e prepended as the new head (top of
// stack).
func (s Stack[T]) Push(e T) Stack[T] {
	tracer().Debugf("stack: push, new size %d", s.Len()+1)
	return Stack[T]{n: &node[T]{head: e, tail: s.n, size: s.Len() + 1}}
}

// Add is an alias for Push, matching the List.Add contract (adds at the
// "end" of the list, which for a stack is the head).
func (s Stack[T]) Add(e T) Stack[T] {
	return s.Push(e)
}

// First returns the element at the head of the stack (alias: Peek). It
// panics with OutOfRange if the Stack is empty.
func (s Stack[T]) First() T {
	if s.n == nil {
		perrors.OutOfRangef("stack: first() on empty stack")
	}
	return s.n.head
}

// Peek is an alias for First.
func (s Stack[T]) Peek() T {
	return s.First()
}

// Remove returns the Stack with its head element dropped (alias: Pop).
// It panics with OutOfRange if the Stack is empty.
func (s Stack[T]) Remove() Stack[T] {
	if s.n == nil {
		perrors.OutOfRangef("stack: remove() on empty stack")
	}
	return Stack[T]{n: s.n.tail}
}

// Pop is an alias for Remove.
func (s Stack[T]) Pop() Stack[T] {
	return s.Remove()
}

// RemoveN returns the Stack with its first n elements (from the head)
// dropped; equivalent to Last(Len()-n).
func (s Stack[T]) RemoveN(n int) Stack[T] {
	return s.Last(s.Len() - n)
}

// Get returns the element at logical index i (0 = head). It panics with
// OutOfRange if i is outside [0, Len()).
func (s Stack[T]) Get(i int) T {
	if i < 0 || i >= s.Len() {
		perrors.OutOfRangef("stack: index %d out of range [0,%d)", i, s.Len())
	}
	cur := s.n
	for ; i > 0; i-- {
		cur = cur.tail
	}
	return cur.head
}

// FirstN returns the prefix of length n (the top n elements, in the same
// order). It panics with OutOfRange if n is outside [0, Len()].
func (s Stack[T]) FirstN(n int) Stack[T] {
	return s.prefixN(n)
}

// Last returns the suffix of length n (the bottom n elements, in the
// same order), sharing structure directly with s. It panics with
// OutOfRange if n is outside [0, Len()].
func (s Stack[T]) Last(n int) Stack[T] {
	size := s.Len()
	if n < 0 || n > size {
		perrors.OutOfRangef("stack: last(%d) out of range [0,%d]", n, size)
	}
	if n == 0 {
		return Stack[T]{}
	}
	if n == size {
		return s
	}
	cur := s.n
	for i := 0; i < size-n; i++ {
		cur = cur.tail
	}
	return Stack[T]{n: cur}
}

func (s Stack[T]) prefixN(n int) Stack[T] {
	size := s.Len()
	if n < 0 || n > size {
		perrors.OutOfRangef("stack: first(%d) out of range [0,%d]", n, size)
	}
	if n == 0 {
		return Stack[T]{}
	}
	if n == size {
		return s
	}

	elems := make([]T, n)
	cur := s.n
	for i := 0; i < n; i++ {
		elems[i] = cur.head
		cur = cur.tail
	}

	out := Stack[T]{}
	for i := n - 1; i >= 0; i-- {
		out = out.Push(elems[i])
	}
	return out
}

// Set returns a new Stack with the element at logical index i replaced
// by e, rebuilding the prefix [0, i) above a new node at i and sharing
// the unchanged tail from i onward.
func (s Stack[T]) Set(i int, e T) Stack[T] {
	size := s.Len()
	if i < 0 || i >= size {
		perrors.OutOfRangef("stack: index %d out of range [0,%d)", i, size)
	}

	prefix := make([]T, i)
	cur := s.n
	for k := 0; k < i; k++ {
		prefix[k] = cur.head
		cur = cur.tail
	}

	out := Stack[T]{n: &node[T]{head: e, tail: cur.tail, size: cur.size}}
	for k := i - 1; k >= 0; k-- {
		out = out.Push(prefix[k])
	}
	return out
}

// Range calls f for every element from head to tail, stopping early if f
// returns false.
func (s Stack[T]) Range(f func(i int, e T) bool) {
	i := 0
	for cur := s.n; cur != nil; cur = cur.tail {
		if !f(i, cur.head) {
			return
		}
		i++
	}
}

// Slice materializes the Stack's elements (head first) into a freshly
// allocated Go slice.
func (s Stack[T]) Slice() []T {
	out := make([]T, 0, s.Len())
	s.Range(func(_ int, e T) bool {
		out = append(out, e)
		return true
	})
	return out
}

// String renders the Stack as "[a, b, c]", head (top) first.
func (s Stack[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	s.Range(func(i int, e T) bool {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", e)
		return true
	})
	b.WriteByte(']')
	return b.String()
}

// PushAll prepends es, in order, such that the first element of es ends
// up as the new head (top of stack).
func PushAll[T any](s Stack[T], es ...T) Stack[T] {
	for i := len(es) - 1; i >= 0; i-- {
		s = s.Push(es[i])
	}
	return s
}

// IndexOf returns the index of the first element equal to e, or -1.
func IndexOf[T comparable](s Stack[T], e T) int {
	idx := -1
	s.Range(func(i int, x T) bool {
		if x == e {
			idx = i
			return false
		}
		return true
	})
	return idx
}

// LastIndexOf returns the index of the last element equal to e, or -1.
func LastIndexOf[T comparable](s Stack[T], e T) int {
	found := -1
	s.Range(func(i int, x T) bool {
		if x == e {
			found = i
		}
		return true
	})
	return found
}

// Contains reports whether e appears anywhere in s.
func Contains[T comparable](s Stack[T], e T) bool {
	return IndexOf(s, e) >= 0
}

// ContainsAll reports whether every element of es appears in s.
func ContainsAll[T comparable](s Stack[T], es ...T) bool {
	for _, e := range es {
		if !Contains(s, e) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b have the same length and elementwise
// equal elements, head to tail.
func Equal[T comparable](a, b Stack[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	ca, cb := a.n, b.n
	for ca != nil {
		if ca.head != cb.head {
			return false
		}
		ca, cb = ca.tail, cb.tail
	}
	return true
}

// Hash folds hashElem over s's elements (head to tail) as
// 31*h + hashElem(e), starting from 1.
func Hash[T any](s Stack[T], hashElem func(T) int32) int32 {
	h := int32(1)
	s.Range(func(_ int, e T) bool {
		h = 31*h + hashElem(e)
		return true
	})
	return h
}
