/*
Package hashmap implements an immutable persistent hash map: a keyed
associative container supporting effectively O(1) insert, lookup, and
delete, backed by a 32-wide Hash Array Mapped Trie (HAMT).

Every "modification" (Put, Remove) returns a new HashMap value; the
receiver is left observably unchanged. Interior trie nodes are shared
between the original and the result — only the nodes on the path being
modified are cloned.

Keys are addressed by a caller-supplied Hasher; Go has no universal
hashCode, so the map is constructed with a hash function for its key
type, the same way this module's vector and stack packages take a
caller-supplied element hash function for their package-level Hash
helper rather than assuming one.

Status

Requires Go 1.18+ for generics.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package hashmap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'persist.hashmap'.
func tracer() tracing.Trace {
	return tracing.Select("persist.hashmap")
}
