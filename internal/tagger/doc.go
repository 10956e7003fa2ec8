// Package tagger holds the per-tagger descriptor: the tagger's id, its
// enablement condition with a cached decision, and its lazily constructed
// processor.
//
// # Lifecycle
//
// A Descriptor starts with an unknown enablement decision unless its
// configuration already settles it: no condition means always enabled, and a
// configuration error (several conditions, an invalid id, an uncompilable
// condition) means never enabled. The first evaluation against a real context
// fixes the decision for the lifetime of the descriptor. Without a context
// (synthetic or built-in bindings) every tagger is optimistically enabled and
// nothing is cached.
//
// The processor is built at most once, on first use. If the factory fails or
// panics, a no-op stand-in is installed permanently so the failing plugin is
// attempted exactly once. A processor that panics while producing a tag is
// demoted to the same stand-in.
//
// No failure escapes a Descriptor: problems are logged and handed to the
// optional error handler as *Error values.
package tagger
