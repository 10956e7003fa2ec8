// Package tag defines the fixed-length binary metadata blob attached to
// bindings by taggers, together with the read and write contracts that tag
// stores implement.
//
// # Bounds
//
// A Tag's length is fixed when it is created and never changes. Every access
// is bounds-checked against [0, Len()). An access that falls outside the
// buffer never panics: single-byte reads return ok=false, range reads return
// ok=false, and writes return false without touching any byte. Tag access sits
// on a hot path, so failures are reported through return values only.
//
// # Contracts
//
//   - View: read access to one tag.
//   - Writable: a View that can also be written in place.
//   - Reader: lookup of one or all tags of a binding.
//   - Writer: creation of writable tags and bulk replacement of a tag set.
//   - Store: a Reader and a Writer at once; every per-binding store is one.
package tag
