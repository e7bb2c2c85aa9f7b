/*
Package vector implements an immutable persistent vector: an indexed
sequence supporting effectively O(1) append, random access, update, and
prefix/suffix slicing, modeled on Clojure's PersistentVector.

Every "modification" (Add, Set, First, Last, Remove) returns a new Vector
value; the receiver is left observably unchanged. Most of the internal
32-ary tree is shared between the original and the result — only the
nodes on the path being modified are cloned.

Status

Requires Go 1.18+ for generics.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package vector

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'persist.vector'.
func tracer() tracing.Trace {
	return tracing.Select("persist.vector")
}
