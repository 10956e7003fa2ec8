// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "github.com/specialistvlad/bindtags/internal/tag"

// Binding is an entity of the analysis model that tags are attached to.
type Binding interface {
	// Name returns the binding's simple name, possibly empty for anonymous entities.
	Name() string
	// Definition returns the defining node, or nil if the binding has no
	// definition in the current AST.
	Definition() Node
	// Declarations returns the declaring nodes in source order.
	Declarations() []Node
}

// Kind classifies bindings for taggers that care about it.
type Kind string

const (
	KindVariable Kind = "variable"
	KindFunction Kind = "function"
	KindType     Kind = "type"
	KindMacro    Kind = "macro"
	KindField    Kind = "field"
)

// Kinded is implemented by bindings that know their kind.
type Kinded interface {
	Kind() Kind
}

// Node is an AST node.
type Node interface {
	// TranslationUnit returns the unit the node was parsed into, or nil for
	// synthetic nodes.
	TranslationUnit() TranslationUnit
}

// Name is a name node, the preferred enablement context.
type Name interface {
	Node
	SimpleID() string
}

// TypeSpecifier is a composite type specifier that carries a name.
type TypeSpecifier interface {
	Node
	SpecifierName() Name
}

// Declarator is a declarator that carries a name.
type Declarator interface {
	Node
	DeclaratorName() Name
}

// TranslationUnit is the root of one parsed AST.
type TranslationUnit interface {
	// SourceUnit returns the source unit the AST was parsed from, or nil if
	// the AST did not originate from one.
	SourceUnit() SourceUnit
}

// SourceUnit is a source file known to the project model.
type SourceUnit interface {
	// Project returns the owning project, or nil.
	Project() Project
	// LanguageID returns the id of the language the unit was parsed as.
	LanguageID() string
}

// Project is the unit that owns source files and declares natures.
type Project interface {
	// Natures returns the project's nature ids. It fails when the project
	// description is not (yet) available.
	Natures() ([]string, error)
}

// TagStoreProvider is implemented by bindings that supply their own store.
type TagStoreProvider interface {
	TagStore() tag.Store
}

// TagReaderProvider is implemented by bindings that supply their own tag reader.
type TagReaderProvider interface {
	TagReader() tag.Reader
}
