// Package symbol provides small concrete implementations of the host model
// interfaces. The CLI builds synthetic bindings from them, and tests use them
// as fixtures.
package symbol

import (
	"sort"

	"github.com/specialistvlad/bindtags/internal/model"
)

// Project is a project with a fixed set of natures. If Err is set, Natures
// fails with it, which models a project whose description is not loaded yet.
type Project struct {
	natures []string
	Err     error
}

// NewProject returns a project declaring the given natures.
func NewProject(natures ...string) *Project {
	ns := append([]string(nil), natures...)
	sort.Strings(ns)
	return &Project{natures: ns}
}

func (p *Project) Natures() ([]string, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return append([]string(nil), p.natures...), nil
}

// SourceUnit is a source file of a project.
type SourceUnit struct {
	Owner    *Project
	Language string
}

func (s *SourceUnit) Project() model.Project {
	if s.Owner == nil {
		return nil
	}
	return s.Owner
}

func (s *SourceUnit) LanguageID() string { return s.Language }

// TranslationUnit is an AST root. A nil Source models an AST built from a
// buffer rather than a file.
type TranslationUnit struct {
	Source *SourceUnit
}

// NewTranslationUnit returns a unit parsed from a file of language in project.
func NewTranslationUnit(project *Project, language string) *TranslationUnit {
	return &TranslationUnit{Source: &SourceUnit{Owner: project, Language: language}}
}

func (tu *TranslationUnit) SourceUnit() model.SourceUnit {
	if tu.Source == nil {
		return nil
	}
	return tu.Source
}

// node holds the translation unit link shared by every node shape.
type node struct {
	TU *TranslationUnit
}

func (n node) TranslationUnit() model.TranslationUnit {
	if n.TU == nil {
		return nil
	}
	return n.TU
}

// Name is a name node.
type Name struct {
	node
	ID string
}

// NewName returns a name node in tu, which may be nil.
func NewName(id string, tu *TranslationUnit) *Name {
	return &Name{node: node{TU: tu}, ID: id}
}

func (n *Name) SimpleID() string { return n.ID }

// Declarator is a declarator carrying a name.
type Declarator struct {
	node
	Name *Name
}

// NewDeclarator returns a declarator named id in tu.
func NewDeclarator(id string, tu *TranslationUnit) *Declarator {
	return &Declarator{node: node{TU: tu}, Name: NewName(id, tu)}
}

func (d *Declarator) DeclaratorName() model.Name {
	if d.Name == nil {
		return nil
	}
	return d.Name
}

// TypeSpecifier is a composite type specifier carrying a name.
type TypeSpecifier struct {
	node
	Name *Name
}

// NewTypeSpecifier returns a type specifier named id in tu.
func NewTypeSpecifier(id string, tu *TranslationUnit) *TypeSpecifier {
	return &TypeSpecifier{node: node{TU: tu}, Name: NewName(id, tu)}
}

func (s *TypeSpecifier) SpecifierName() model.Name {
	if s.Name == nil {
		return nil
	}
	return s.Name
}

// Opaque is a node of a shape the tag core does not know how to take a name from.
type Opaque struct {
	node
}

// NewOpaque returns an opaque node in tu.
func NewOpaque(tu *TranslationUnit) *Opaque {
	return &Opaque{node: node{TU: tu}}
}

// Binding is a named, kinded binding with optional definition and declarations.
type Binding struct {
	name  string
	kind  model.Kind
	def   model.Node
	decls []model.Node
}

// NewBinding returns a binding without definition or declarations, like a
// built-in entity.
func NewBinding(name string, kind model.Kind) *Binding {
	return &Binding{name: name, kind: kind}
}

// Define sets the defining node and returns b.
func (b *Binding) Define(n model.Node) *Binding {
	b.def = n
	return b
}

// Declare appends declaring nodes and returns b.
func (b *Binding) Declare(ns ...model.Node) *Binding {
	b.decls = append(b.decls, ns...)
	return b
}

func (b *Binding) Name() string               { return b.name }
func (b *Binding) Kind() model.Kind           { return b.kind }
func (b *Binding) Definition() model.Node     { return b.def }
func (b *Binding) Declarations() []model.Node { return b.decls }
