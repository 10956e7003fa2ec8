package enablement_test

import (
	"errors"
	"testing"

	"github.com/specialistvlad/bindtags/internal/enablement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) *enablement.Expression {
	t.Helper()
	x, diags := enablement.Compile(src, "test.hcl")
	require.False(t, diags.HasErrors(), "Expression compile failed: %s", diags.Error())
	require.NotNil(t, x)
	return x
}

func TestExpression_Evaluate(t *testing.T) {
	cEnv := enablement.Env{ProjectNatures: []string{"cnature", "ccnature"}, LanguageID: "c"}
	bare := enablement.Env{}

	testCases := []struct {
		name string
		src  string
		env  enablement.Env
		want bool
	}{
		{"nature present", `contains(project.natures, "cnature")`, cEnv, true},
		{"nature absent", `contains(project.natures, "javanature")`, cEnv, false},
		{"empty natures", `contains(project.natures, "cnature")`, bare, false},
		{"language match", `language.id == "c"`, cEnv, true},
		{"language mismatch", `language.id == "cpp"`, cEnv, false},
		{"conjunction", `contains(project.natures, "cnature") && language.id == "c"`, cEnv, true},
		{"case folding", `upper(language.id) == "C"`, cEnv, true},
		{"lower", `lower("CNature") == "cnature"`, cEnv, true},
		{"count natures", `length(project.natures) == 2`, cEnv, true},
		{"literal", `true`, bare, true},
		{"string bool converts", `"false"`, bare, false},
		{"conditional", `language.id == "c" ? contains(project.natures, "x") : true`, bare, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := compile(t, tc.src).Evaluate(tc.env)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExpression_DuplicateNatures(t *testing.T) {
	x := compile(t, `length(project.natures) == 1`)
	got, err := x.Evaluate(enablement.Env{ProjectNatures: []string{"a", "a"}})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestExpression_EvaluationErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"not a bool", `length(project.natures)`},
		{"null", `null`},
		{"type error in function", `contains(language.id, "c")`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := compile(t, tc.src).Evaluate(enablement.Env{LanguageID: "c"})
			require.Error(t, err)
		})
	}
}

func TestCompile_Rejects(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		summary string
	}{
		{"syntax error", `contains(project.natures`, ""},
		{"unknown root", `workspace.name == "x"`, "Unknown enablement variable"},
		{"unknown attribute", `project.name == "x"`, "Unknown enablement variable"},
		{"bare root", `project == null`, "Unknown enablement variable"},
		{"unknown function", `startswith(language.id, "c")`, "Unknown enablement function"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			x, diags := enablement.Compile(tc.src, "test.hcl")
			require.True(t, diags.HasErrors())
			assert.Nil(t, x)
			if tc.summary != "" {
				assert.Equal(t, tc.summary, diags[0].Summary)
			}
		})
	}
}

func TestFromHCL_Nil(t *testing.T) {
	x, diags := enablement.FromHCL(nil)
	require.True(t, diags.HasErrors())
	assert.Nil(t, x)
}

func TestExpression_Analysis(t *testing.T) {
	x := compile(t, `contains(project.natures, lower(language.id)) || upper(language.id) == "C"`)
	assert.Equal(t, []string{"language.id", "project.natures"}, x.References())
	assert.Equal(t, []string{"contains", "lower", "upper"}, x.Functions())
	assert.Equal(t, "test.hcl", x.Range().Filename)
}

func TestPredicateFunc(t *testing.T) {
	boom := errors.New("boom")
	p := enablement.PredicateFunc(func(env enablement.Env) (bool, error) {
		if env.LanguageID == "" {
			return false, boom
		}
		return env.LanguageID == "c", nil
	})

	ok, err := p.Evaluate(enablement.Env{LanguageID: "c"})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = p.Evaluate(enablement.Env{})
	assert.ErrorIs(t, err, boom)
}
