package vector

// tnode is a node of the 32-ary tree a Vector is built from. A leaf node
// holds exactly 32 elements (leafs != nil); an interior node holds
// between 1 and 32 child pointers (children != nil). The two are never
// both set and never both unset on a live node.
type tnode[T any] struct {
	children []*tnode[T]
	leafs    []T
}

func (n *tnode[T]) isLeaf() bool {
	return n.leafs != nil
}

// treeSize returns the number of elements stored in the tree portion of a
// Vector of the given total size; the remainder lives in the tail.
// treeSize(n) = 0 if n <= 32, else (n-1) with the low 5 bits cleared.
func treeSize(totalSize int) int {
	if totalSize <= 32 {
		return 0
	}
	return (totalSize - 1) &^ 31
}

// nodeIndex extracts the 5-bit slice of index relevant at the given tree
// depth (0 = leaf level).
func nodeIndex(index, depth int) int {
	return (index >> uint(depth)) & 31
}

// newLeaf allocates a fresh, always-32-slot leaf from block (which itself
// always has length 32 by the time it's flushed from a full tail).
func newLeaf[T any](block []T) *tnode[T] {
	leafs := make([]T, 32)
	copy(leafs, block)
	return &tnode[T]{leafs: leafs}
}

// newPath builds a chain of single-child interior nodes of the given
// depth (a multiple of 5), terminating in leaf as a 32-slot leaf node.
func newPath[T any](depth int, leaf []T) *tnode[T] {
	node := newLeaf(leaf)
	for d := 0; d < depth; d += 5 {
		node = &tnode[T]{children: []*tnode[T]{node}}
	}
	return node
}

// grow pushes root up one level: the new root has the old root as its
// left child and a freshly built path to leaf as its right child.
func grow[T any](root *tnode[T], depth int, leaf []T) *tnode[T] {
	return &tnode[T]{children: []*tnode[T]{root, newPath[T](depth, leaf)}}
}

// appendLeaf grafts leaf into the tree rooted at root, which must have
// room (the caller is responsible for calling grow first if not). index
// is the real index of the last element in leaf.
func appendLeaf[T any](root *tnode[T], depth int, leaf []T, index int) *tnode[T] {
	idx := nodeIndex(index, depth)

	var newChildren []*tnode[T]
	if idx == len(root.children) {
		newChildren = make([]*tnode[T], len(root.children)+1)
	} else {
		newChildren = make([]*tnode[T], len(root.children))
	}
	copy(newChildren, root.children)

	var toInsert *tnode[T]
	switch {
	case depth == 5:
		toInsert = newLeaf(leaf)
	case idx == len(root.children):
		toInsert = newPath[T](depth-5, leaf)
	default:
		toInsert = appendLeaf(root.children[idx], depth-5, leaf, index)
	}

	newChildren[idx] = toInsert
	return &tnode[T]{children: newChildren}
}

// leafArrayFor walks from root to the leaf array containing the element
// at the given real index.
func leafArrayFor[T any](root *tnode[T], depth, index int) []T {
	if depth == 0 {
		return root.leafs
	}
	idx := nodeIndex(index, depth)
	return leafArrayFor(root.children[idx], depth-5, index)
}

// setInTree clones the path from root to the leaf holding index and
// writes value at that slot.
func setInTree[T any](root *tnode[T], depth int, value T, index int) *tnode[T] {
	if depth == 0 {
		newLeafs := make([]T, len(root.leafs))
		copy(newLeafs, root.leafs)
		newLeafs[index&31] = value
		return &tnode[T]{leafs: newLeafs}
	}
	idx := nodeIndex(index, depth)
	newChildren := make([]*tnode[T], len(root.children))
	copy(newChildren, root.children)
	newChildren[idx] = setInTree(root.children[idx], depth-5, value, index)
	return &tnode[T]{children: newChildren}
}

// pruneRightResult is the outcome of pruning the tree from the right as
// part of First(n): either a reduced tree (root/depth) or, if the entire
// tree was consumed, just a new tail.
type pruneRightResult[T any] struct {
	root  *tnode[T]
	depth int
	tail  []T
}

// pruneRight recursively discards everything after the real index, as
// part of First(n). leftEdge is true while every ancestor visited so far
// took child index 0 (i.e. we're still tracking the left spine).
func pruneRight[T any](root *tnode[T], depth, index int, leftEdge bool) pruneRightResult[T] {
	if depth == 0 {
		newSize := (index & 31) + 1
		newTail := make([]T, newSize)
		copy(newTail, root.leafs[:newSize])
		return pruneRightResult[T]{tail: newTail}
	}

	idx := nodeIndex(index, depth)
	childOnLeftEdge := leftEdge && idx == 0

	result := pruneRight(root.children[idx], depth-5, index, childOnLeftEdge)

	if childOnLeftEdge {
		// This node is redundant: its only surviving child is the result.
		return result
	}
	return finishPruneRight(root, idx, result)
}

func finishPruneRight[T any](root *tnode[T], idx int, result pruneRightResult[T]) pruneRightResult[T] {
	if result.root == nil {
		if idx == 0 {
			// Our only child vanished entirely into the tail.
			result.depth += 5
			return result
		}
		newChildren := make([]*tnode[T], idx)
		copy(newChildren, root.children[:idx])
		result.root = &tnode[T]{children: newChildren}
		result.depth += 5
		return result
	}

	newChildren := make([]*tnode[T], idx+1)
	copy(newChildren, root.children[:idx+1])
	newChildren[idx] = result.root
	result.root = &tnode[T]{children: newChildren}
	result.depth += 5
	return result
}

// pruneLeftResult is the outcome of pruning the tree from the left as
// part of Last(n): a reduced tree plus the offset of the first live
// element in it.
type pruneLeftResult[T any] struct {
	root   *tnode[T]
	depth  int
	offset int
}

// pruneLeft recursively nulls out everything before index, as part of
// Last(n). rightEdge is true while every ancestor visited so far took the
// last child slot (i.e. we're still tracking the right spine), in which
// case the node can be collapsed away or shifted rather than nulled.
func pruneLeft[T any](root *tnode[T], depth, index int, rightEdge bool) pruneLeftResult[T] {
	if depth == 0 {
		idx := index & 31
		if idx == 0 {
			return pruneLeftResult[T]{root: root, offset: 0}
		}
		newLeafs := make([]T, len(root.leafs))
		copy(newLeafs, root.leafs)
		var zero T
		for i := 0; i < idx; i++ {
			newLeafs[i] = zero
		}
		return pruneLeftResult[T]{root: &tnode[T]{leafs: newLeafs}, offset: idx}
	}

	idx := nodeIndex(index, depth)
	childOnRightEdge := rightEdge && idx == len(root.children)-1

	child := root.children[idx]
	result := pruneLeft(child, depth-5, index, childOnRightEdge)

	if childOnRightEdge {
		return result
	}

	if idx == 0 && result.root == child {
		// Pruned exactly on a boundary; nothing to clone.
		result.root = root
		result.depth += 5
		return result
	}

	if rightEdge {
		// Safe to shift left: the untouched subtrees to the right of idx
		// are still intact in their original positions.
		newChildren := make([]*tnode[T], len(root.children)-idx)
		copy(newChildren, root.children[idx:])
		newChildren[0] = result.root
		result.root = &tnode[T]{children: newChildren}
		result.depth += 5
		return result
	}

	// Can't shift without disturbing an untouched right subtree; null out
	// the pruned prefix and record the offset it represents.
	newChildren := make([]*tnode[T], len(root.children))
	copy(newChildren, root.children)
	for i := 0; i < idx; i++ {
		newChildren[i] = nil
	}
	newChildren[idx] = result.root
	result.root = &tnode[T]{children: newChildren}
	result.depth += 5
	result.offset += idx * (1 << uint(depth))
	return result
}
