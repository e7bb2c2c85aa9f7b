package vector

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// DebugTree renders the Vector's internal tree shape — tail, depth, and
// every interior/leaf node down to its slot contents — for use while
// debugging structural sharing between versions. It is not part of the
// contract any testable property depends on.
func (v Vector[T]) DebugTree() string {
	header := fmt.Sprintf("vector(len=%d, offset=%d, totalSize=%d, depth=%d)\n", v.Len(), v.offset, v.totalSize, v.depth)
	printer := tp.New()
	if v.root == nil {
		printer.AddNode("(no tree)")
	} else {
		printTreeNode(printer, v.root, v.depth)
	}
	printer.AddNode(fmt.Sprintf("tail %v", v.tail))
	return header + printer.String()
}

func printTreeNode[T any](printer tp.Tree, n *tnode[T], depth int) {
	if n.isLeaf() {
		printer.AddNode(fmt.Sprintf("leaf %v", n.leafs))
		return
	}
	branch := printer.AddBranch(fmt.Sprintf("node[%d] (%d children)", depth, len(n.children)))
	for _, ch := range n.children {
		if ch == nil {
			branch.AddNode("(pruned)")
			continue
		}
		printTreeNode(branch, ch, depth-5)
	}
}
