package hashmap

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// DebugTree renders the HashMap's internal HAMT shape — node kind
// (sparse/full/hash-collision) at every level down to its entries — for
// use while debugging structural sharing between versions. It is not
// part of the contract any testable property depends on.
func (m HashMap[K, V]) DebugTree() string {
	header := fmt.Sprintf("hashmap(size=%d)\n", m.size)
	printer := tp.New()
	if m.root == nil {
		printer.AddNode("(empty)")
	} else {
		printDebugNode(printer, m.root)
	}
	return header + printer.String()
}

func printDebugNode[K comparable, V any](printer tp.Tree, n *node[K, V]) {
	switch n.kind {
	case collisionKind:
		branch := printer.AddBranch(fmt.Sprintf("collision(hash=%#x, %d entries)", n.hash, len(n.entries)))
		for _, e := range n.entries {
			branch.AddNode(fmt.Sprintf("%v -> %v", e.key, e.val))
		}
	case fullKind:
		branch := printer.AddBranch(fmt.Sprintf("full(count=%d)", n.count))
		for i, s := range n.slots {
			if !s.present {
				continue
			}
			printDebugSlot(branch, i, s)
		}
	default:
		branch := printer.AddBranch(fmt.Sprintf("sparse(bitmap=%#032b, %d entries)", n.bitmap, len(n.packed)))
		for _, s := range n.packed {
			printDebugSlot(branch, -1, s)
		}
	}
}

func printDebugSlot[K comparable, V any](printer tp.Tree, idx int, s slot[K, V]) {
	label := ""
	if idx >= 0 {
		label = fmt.Sprintf("[%d] ", idx)
	}
	if s.isChild {
		child := printer.AddBranch(label + "child")
		printDebugNode(child, s.child)
		return
	}
	printer.AddNode(fmt.Sprintf("%s%v -> %v", label, s.entry.key, s.entry.val))
}
