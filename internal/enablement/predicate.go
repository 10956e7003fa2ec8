package enablement

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Env is the context a predicate is evaluated against.
type Env struct {
	ProjectNatures []string
	LanguageID     string
}

// Predicate decides whether a tagger is enabled in an Env.
type Predicate interface {
	Evaluate(env Env) (bool, error)
}

// PredicateFunc adapts a plain function to Predicate.
type PredicateFunc func(env Env) (bool, error)

func (f PredicateFunc) Evaluate(env Env) (bool, error) { return f(env) }

// variables maps each root variable to the single attribute it exposes.
var variables = map[string]string{
	"project":  "natures",
	"language": "id",
}

var functions = map[string]function.Function{
	"contains": stdlib.ContainsFunc,
	"length":   stdlib.LengthFunc,
	"lower":    stdlib.LowerFunc,
	"upper":    stdlib.UpperFunc,
}

// evalContext builds the HCL evaluation context for env.
func (env Env) evalContext() *hcl.EvalContext {
	natures := cty.ListValEmpty(cty.String)
	if ns := uniqueSorted(env.ProjectNatures); len(ns) > 0 {
		vals := make([]cty.Value, 0, len(ns))
		for _, n := range ns {
			vals = append(vals, cty.StringVal(n))
		}
		natures = cty.ListVal(vals)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"project": cty.ObjectVal(map[string]cty.Value{
				"natures": natures,
			}),
			"language": cty.ObjectVal(map[string]cty.Value{
				"id": cty.StringVal(env.LanguageID),
			}),
		},
		Functions: functions,
	}
}

func uniqueSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
