/*
Package stack implements an immutable persistent stack: a sequence
supporting O(1) head prepend/remove ("push"/"pop") and O(k) k-suffix/
k-prefix slicing, backed by a singly-linked list of nodes.

Because each node already carries the size of the chain starting at it,
popping (or taking any suffix) shares structure with the original stack
directly — no node is ever copied to produce a suffix.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package stack

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'persist.stack'.
func tracer() tracing.Trace {
	return tracing.Select("persist.stack")
}
