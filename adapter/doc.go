/*
Package adapter wraps Vector, Stack, and HashMap behind a minimal
read-only view, for callers that want to hand out a collection without
exposing its mutators. Every read method delegates directly to the
wrapped core; every method that would mutate the underlying value
instead panics with an errors.Error of Kind UnsupportedOperation,
mirroring the contract of a read-only view onto a standard collection
protocol.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package adapter
