package adapter

import (
	"testing"

	perrors "github.com/inkwell-go/persist/errors"
	"github.com/inkwell-go/persist/hashmap"
	"github.com/inkwell-go/persist/stack"
	"github.com/inkwell-go/persist/vector"
)

func expectUnsupported(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic, got none")
		}
		err, ok := r.(*perrors.Error)
		if !ok || err.Kind != perrors.UnsupportedOperation {
			t.Fatalf("expected UnsupportedOperation panic, got %v", r)
		}
	}()
	f()
}

func TestReadOnlyVectorView(t *testing.T) {
	v := vector.Empty[int]()
	v = v.Add(1).Add(2).Add(3)
	view := FromVector(v)

	if view.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", view.Len())
	}
	if view.Get(1) != 2 {
		t.Fatalf("Get(1) = %d, want 2", view.Get(1))
	}
	if got := view.Slice(); len(got) != 3 || got[2] != 3 {
		t.Fatalf("Slice() = %v", got)
	}

	expectUnsupported(t, func() { view.Set(0, 99) })
	expectUnsupported(t, func() { view.Add(4) })
	expectUnsupported(t, func() { view.Remove() })
}

func TestReadOnlyStackView(t *testing.T) {
	s := stack.Empty[string]()
	s = s.Push("a").Push("b")
	view := FromStack(s)

	if view.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", view.Len())
	}
	if view.Get(0) != "b" {
		t.Fatalf("Get(0) = %q, want %q", view.Get(0), "b")
	}

	expectUnsupported(t, func() { view.Add("c") })
}

func TestReadOnlyMapView(t *testing.T) {
	m := hashmap.Empty[string, int](func(s string) uint32 {
		var h uint32 = 2166136261
		for i := 0; i < len(s); i++ {
			h ^= uint32(s[i])
			h *= 16777619
		}
		return h
	})
	m = m.Put("a", 1).Put("b", 2)
	view := FromHashMap(m)

	if view.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", view.Len())
	}
	if !view.ContainsKey("a") {
		t.Fatalf("expected containsKey(a) = true")
	}
	if view.Get("b") != 2 {
		t.Fatalf("Get(b) = %d, want 2", view.Get("b"))
	}

	expectUnsupported(t, func() { view.Put("c", 3) })
	expectUnsupported(t, func() { view.Remove("a") })
}
