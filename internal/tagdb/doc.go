// Package tagdb is a durable tag store backed by SQL. Each binding is
// addressed by a caller-chosen key; its tags live in the binding_tags table
// and are written through on every change.
//
// # Characteristics
//
//   - **Write-through:** tags returned by a BindingTags persist every
//     successful PutByte/PutBytes immediately. A failed write leaves both the
//     row and the in-memory bytes unchanged.
//   - **Transactional replace:** SetTags swaps a binding's whole tag set in one
//     transaction.
//   - **Error containment:** the tag.Store contract has no error returns, so
//     database errors are logged and surface as "no tag" or false.
//
// Use Binding to give a host binding a durable store that tag resolution
// prefers over the ephemeral default.
package tagdb
