// Package tagstore provides the two in-memory tag store strategies for a
// single binding.
//
// # Strategies
//
//   - CachingStore: keeps every tag it creates. Once a tag exists for an id it
//     is never replaced; concurrent creators of the same id share one tag.
//   - EphemeralStore: keeps nothing. Every lookup re-runs the registry against
//     the binding and the result is discarded by the store immediately.
//
// A store's strategy is fixed when it is constructed.
//
// # Concurrency Model
//
// CachingStore uses sync.Map for lock-free reads. Creation takes a store-wide
// mutex so that exactly one caller allocates a tag for a given id; the rest
// observe the winner's tag. Tags themselves guard their bytes independently.
//
// EphemeralStore resolves its subject node once per store instance and is
// otherwise stateless; its safety follows from the registry's.
package tagstore
