package stack

import (
	"testing"

	perrors "github.com/inkwell-go/persist/errors"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func setup(t *testing.T) func() {
	return gotestingadapter.QuickConfig(t, "persist.stack")
}

func TestEmptyStack(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	s := Empty[int]()
	if s.Len() != 0 || !s.IsEmpty() {
		t.Errorf("expected empty stack to have length 0, has %d", s.Len())
	}
}

func TestPushPopIdentity(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	s := Empty[string]()
	s = s.Push("a").Push("b").Push("c")
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	if got := s.Peek(); got != "c" {
		t.Fatalf("Peek() = %q, want %q", got, "c")
	}
	s = s.Pop()
	if got := s.Peek(); got != "b" {
		t.Fatalf("Peek() = %q, want %q", got, "b")
	}
	s = s.Pop()
	if got := s.Peek(); got != "a" {
		t.Fatalf("Peek() = %q, want %q", got, "a")
	}
	s = s.Pop()
	if !s.IsEmpty() {
		t.Fatalf("expected stack to be empty after popping all elements")
	}
}

func TestPersistence(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	s1 := Empty[int]().Push(1).Push(2).Push(3)
	s2 := s1.Push(4)
	s3 := s2.Pop()

	if s1.Len() != 3 || s1.Peek() != 3 {
		t.Fatalf("s1 mutated: Len()=%d Peek()=%d", s1.Len(), s1.Peek())
	}
	if s2.Len() != 4 || s2.Peek() != 4 {
		t.Fatalf("s2 wrong: Len()=%d Peek()=%d", s2.Len(), s2.Peek())
	}
	if s3.Len() != 3 || s3.Peek() != 3 {
		t.Fatalf("s3 wrong: Len()=%d Peek()=%d", s3.Len(), s3.Peek())
	}
}

func TestSetGetProperty(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	var s Stack[int]
	for i := 0; i < 200; i++ {
		s = s.Push(i * 2)
	}

	for i := 0; i < s.Len(); i++ {
		s2 := s.Set(i, -1)
		if s2.Get(i) != -1 {
			t.Fatalf("s.Set(%d,-1).Get(%d) = %d, want -1", i, i, s2.Get(i))
		}
		for j := 0; j < s.Len(); j++ {
			if j == i {
				continue
			}
			if s2.Get(j) != s.Get(j) {
				t.Fatalf("s.Set(%d,-1).Get(%d) = %d, want %d (unchanged)", i, j, s2.Get(j), s.Get(j))
			}
		}
		if s.Get(i) == -1 {
			t.Fatalf("original stack mutated by Set at %d", i)
		}
	}
}

func TestSlicingMatrix(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	for n := 0; n <= 620; n += 23 {
		var s Stack[int]
		for i := 0; i < n; i++ {
			s = s.Push(i)
		}
		// Get(0) is the most recently pushed element, i.e. n-1.
		for k := 0; k <= n; k++ {
			first := s.FirstN(k)
			if first.Len() != k {
				t.Fatalf("n=%d: FirstN(%d).Len() = %d, want %d", n, k, first.Len(), k)
			}
			for i := 0; i < k; i++ {
				if first.Get(i) != s.Get(i) {
					t.Fatalf("n=%d: FirstN(%d).Get(%d) = %d, want %d", n, k, i, first.Get(i), s.Get(i))
				}
			}

			last := s.Last(k)
			if last.Len() != k {
				t.Fatalf("n=%d: Last(%d).Len() = %d, want %d", n, k, last.Len(), k)
			}
			for i := 0; i < k; i++ {
				if want := s.Get(n - k + i); last.Get(i) != want {
					t.Fatalf("n=%d: Last(%d).Get(%d) = %d, want %d", n, k, i, last.Get(i), want)
				}
			}
		}
	}
}

func TestLastSharesStructure(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	var s Stack[int]
	for i := 0; i < 10; i++ {
		s = s.Push(i)
	}
	suffix := s.Last(4)
	if suffix.n != s.n.tail.tail.tail.tail.tail.tail {
		t.Error("Last(n) should share its node chain with the original stack")
	}
}

func TestOutOfRange(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	s := Empty[int]().Push(1).Push(2)
	assertPanicsOutOfRange(t, func() { s.Get(-1) })
	assertPanicsOutOfRange(t, func() { s.Get(2) })
	assertPanicsOutOfRange(t, func() { s.Set(3, 0) })
	assertPanicsOutOfRange(t, func() { s.FirstN(-1) })
	assertPanicsOutOfRange(t, func() { s.FirstN(3) })
	assertPanicsOutOfRange(t, func() { s.Last(3) })

	empty := Empty[int]()
	assertPanicsOutOfRange(t, func() { empty.Peek() })
	assertPanicsOutOfRange(t, func() { empty.Pop() })
}

func assertPanicsOutOfRange(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic, got none")
		}
		if err, ok := r.(*perrors.Error); !ok || err.Kind != perrors.OutOfRange {
			t.Fatalf("expected OutOfRange panic, got %v", r)
		}
	}()
	f()
}

func TestIndexOfAndContains(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	var s Stack[int]
	for i := 0; i < 50; i++ {
		s = s.Push(i % 5)
	}
	if !Contains(s, 4) {
		t.Error("expected Contains(4) to be true")
	}
	if Contains(s, 99) {
		t.Error("expected Contains(99) to be false")
	}
	if !ContainsAll(s, 0, 1, 2, 3, 4) {
		t.Error("expected ContainsAll(0..4) to be true")
	}
	// top of stack is the last pushed element, i=49 -> 49%5 == 4
	if IndexOf(s, 4) != 0 {
		t.Errorf("IndexOf(4) = %d, want 0", IndexOf(s, 4))
	}
}

func TestHashLaw(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	s := Empty[int]().Push(1).Push(2).Push(3)
	h := Hash(s, func(e int) int32 { return int32(e) })

	want := int32(1)
	for _, e := range []int{3, 2, 1} {
		want = 31*want + int32(e)
	}
	if h != want {
		t.Errorf("Hash() = %d, want %d", h, want)
	}
}

func TestEqual(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	a := Empty[int]().Push(1).Push(2).Push(3)
	b := Empty[int]().Push(1).Push(2).Push(3)
	c := Empty[int]().Push(1).Push(2)

	if !Equal(a, b) {
		t.Error("expected a and b to be equal")
	}
	if Equal(a, c) {
		t.Error("expected a and c to differ")
	}
}

func TestString(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	s := Empty[int]().Push(1).Push(2).Push(3)
	if got, want := s.String(), "[3, 2, 1]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPushAllOrder(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	s := PushAll(Empty[int](), 1, 2, 3)
	if got, want := s.String(), "[1, 2, 3]"; got != want {
		t.Errorf("PushAll: String() = %q, want %q", got, want)
	}
}
