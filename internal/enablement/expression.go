package enablement

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Expression is a compiled HCL enablement condition.
type Expression struct {
	expr       hcl.Expression
	references []hcl.Traversal
	functions  []string
}

// Compile parses src as an enablement expression. filename is only used in
// diagnostics.
func Compile(src, filename string) (*Expression, hcl.Diagnostics) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), filename, hcl.Pos{Line: 1, Column: 1, Byte: 0})
	if diags.HasErrors() {
		return nil, diags
	}
	return FromHCL(expr)
}

// FromHCL validates an already parsed expression, typically the value of a
// "when" attribute in a tagger definition file.
func FromHCL(expr hcl.Expression) (*Expression, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	if expr == nil {
		return nil, diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing enablement expression",
		})
	}

	refs, funcs := extractReferencesAndFunctions(expr)

	for _, t := range refs {
		if !knownTraversal(t) {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown enablement variable",
				Detail:   fmt.Sprintf("%q is not available; use project.natures or language.id.", TraversalKey(t)),
				Subject:  t.SourceRange().Ptr(),
			})
		}
	}
	for _, name := range funcs {
		if _, ok := functions[name]; !ok {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown enablement function",
				Detail:   fmt.Sprintf("Function %q is not available in enablement expressions.", name),
				Subject:  expr.Range().Ptr(),
			})
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	return &Expression{expr: expr, references: refs, functions: funcs}, diags
}

func knownTraversal(t hcl.Traversal) bool {
	attr, ok := variables[t.RootName()]
	if !ok || len(t) < 2 {
		return false
	}
	step, ok := t[1].(hcl.TraverseAttr)
	return ok && step.Name == attr
}

// Evaluate implements Predicate. Evaluation fails if the expression does not
// produce a known, non-null value convertible to bool.
func (x *Expression) Evaluate(env Env) (bool, error) {
	val, diags := x.expr.Value(env.evalContext())
	if diags.HasErrors() {
		return false, diags
	}
	if val.IsNull() {
		return false, errors.New("enablement expression evaluated to null")
	}
	if !val.IsKnown() {
		return false, errors.New("enablement expression evaluated to an unknown value")
	}

	b, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("enablement expression must produce a bool, got %s: %w", val.Type().FriendlyName(), err)
	}
	return b.True(), nil
}

// References returns the variable traversals used by the expression, sorted.
func (x *Expression) References() []string {
	keys := make([]string, 0, len(x.references))
	for _, t := range x.references {
		keys = append(keys, TraversalKey(t))
	}
	return keys
}

// Functions returns the functions called by the expression, sorted.
func (x *Expression) Functions() []string {
	return append([]string(nil), x.functions...)
}

// Range returns the source range of the expression.
func (x *Expression) Range() hcl.Range {
	return x.expr.Range()
}
