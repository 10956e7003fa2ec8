package symbol

import (
	"errors"
	"testing"

	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_Natures(t *testing.T) {
	p := NewProject("cnature", "ccnature")
	natures, err := p.Natures()
	require.NoError(t, err)
	assert.Equal(t, []string{"ccnature", "cnature"}, natures)

	natures[0] = "changed"
	again, _ := p.Natures()
	assert.Equal(t, "ccnature", again[0])

	p.Err = errors.New("not loaded")
	_, err = p.Natures()
	assert.EqualError(t, err, "not loaded")
}

func TestNilLinksAreUntypedNil(t *testing.T) {
	tu := &TranslationUnit{}
	assert.Nil(t, tu.SourceUnit())
	assert.Nil(t, (&SourceUnit{Language: "c"}).Project())
	assert.Nil(t, NewName("x", nil).TranslationUnit())
	assert.Nil(t, (&Declarator{}).DeclaratorName())
	assert.Nil(t, (&TypeSpecifier{}).SpecifierName())
}

func TestBinding(t *testing.T) {
	tu := NewTranslationUnit(NewProject(), "c")
	def := NewName("x", tu)
	decl := NewDeclarator("x", tu)

	b := NewBinding("x", model.KindFunction).Define(def).Declare(decl)
	assert.Equal(t, "x", b.Name())
	assert.Equal(t, model.KindFunction, b.Kind())
	assert.Same(t, def, b.Definition())
	require.Len(t, b.Declarations(), 1)
	assert.Equal(t, "c", b.Definition().TranslationUnit().SourceUnit().LanguageID())
}
