// Package registry provides the central "glue" between tagger definitions and
// the Go code implementing them.
//
// The Catalog maps the factory names used in definition files (e.g.
// "visibility") to compiled Go factories. Modules register their factories
// into a Catalog during startup.
//
// The Registry holds one tagger.Descriptor per registered tagger id and
// dispatches "compute tag X for binding B" and "compute all tags for binding
// B" requests. It is built once at startup and never mutated afterwards, so
// lookups take no lock; all mutable state lives inside the descriptors.
package registry
