// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model declares the slice of the host language-analysis model that
// the tag subsystem depends on. The model itself (parsers, ASTs, indexes) lives
// elsewhere; this package only names the queries the tag core needs.
//
// # Core Concepts
//
//   - Binding: an entity metadata can be attached to. The core asks it for its
//     defining node and, failing that, its declaring nodes.
//
//   - Node: an AST node. The core only needs the translation unit it belongs
//     to, and it recognises three shapes: Name, TypeSpecifier and Declarator.
//
//   - TranslationUnit / SourceUnit / Project: the chain from an AST back to the
//     source file it was parsed from, that file's language, and the natures of
//     the project owning it. Enablement predicates are evaluated against this
//     chain.
//
// # Capabilities
//
// A binding may carry its own tag storage, for example when it is backed by a
// durable index. It advertises that by implementing TagStoreProvider and/or
// TagReaderProvider. Resolution code checks these capabilities first and only
// falls back to a default in-memory store when they are absent.
package model
