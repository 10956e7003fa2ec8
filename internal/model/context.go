// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

// ContextNode returns the node used as the enablement context of b: the name
// of its definition or, without a definition, of its first declaration. A name
// node is used directly; type specifiers and declarators contribute the name
// they carry. It returns nil when nothing suitable exists, in which case
// taggers are evaluated without context.
func ContextNode(b Binding) Node {
	if b == nil {
		return nil
	}

	n := b.Definition()
	if n == nil {
		if decls := b.Declarations(); len(decls) > 0 {
			n = decls[0]
		}
	}
	if n == nil {
		return nil
	}

	switch v := n.(type) {
	case Name:
		return v
	case TypeSpecifier:
		if name := v.SpecifierName(); name != nil {
			return name
		}
	case Declarator:
		if name := v.DeclaratorName(); name != nil {
			return name
		}
	}
	return nil
}

// SourceOf walks from a context node to its originating source unit. It
// returns nil if any link of the chain is missing.
func SourceOf(n Node) SourceUnit {
	if n == nil {
		return nil
	}
	tu := n.TranslationUnit()
	if tu == nil {
		return nil
	}
	return tu.SourceUnit()
}
