package stack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptySingletonShape(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	a := Empty[int]()
	b := Stack[int]{}
	require.Equal(t, a, b, "Empty() must produce the same zero-value shape as the zero Stack")
	require.Equal(t, 0, a.Len())

	s := PushAll(Empty[int](), 1, 2, 3)
	require.True(t, Equal(s.Last(0), Empty[int]()), "Last(0) must equal the empty singleton shape")
}

func TestEqualFunc(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	a := PushAll(Empty[int](), 1, 2, 3)
	b := PushAll(Empty[int](), 1, 2, 3)
	c := PushAll(Empty[int](), 1, 2, 4)

	require.True(t, Equal(a, b))
	require.False(t, Equal(a, c))
}
