// Package reflection provides schema-driven access to flatbuffers
// tables and structs without generated accessor code: typed and
// coerced field reads and writes, in-place buffer resizing for strings
// and vectors, and a schema-driven deep copy into a fresh Builder.
//
// A Schema (see schema.go) is built once by the caller and held
// read-only; every other entry point in this package takes a *Schema
// alongside a flatbuffers.Table and a *Field/*Object describing where
// to look. None of it touches the schema compiler, the wire builder's
// low-level primitives, or file I/O — those stay in the flatbuffers
// package this one is built on top of.
package reflection
