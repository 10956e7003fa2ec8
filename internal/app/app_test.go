package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/bindtags/internal/config"
	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/specialistvlad/bindtags/internal/symbol"
	"github.com/specialistvlad/bindtags/internal/tag"
	"github.com/specialistvlad/bindtags/internal/tagger"
	"github.com/specialistvlad/bindtags/internal/testutil"
	"github.com/specialistvlad/bindtags/modules/kind"
	"github.com/specialistvlad/bindtags/modules/visibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptors = `
tagger "org.example.visibility" {
  factory = "visibility"
  enablement {
    when = contains(project.natures, "cnature") && language.id == "c"
  }
}

tagger "org.example.kind" {
  factory = "kind"
}

tagger "org.example.broken" {
  factory = "does-not-exist"
}
`

func setupApp(t *testing.T) (*App, *testutil.SafeBuffer) {
	t.Helper()
	dir := testutil.WriteFiles(t, map[string]string{"taggers/main.hcl": descriptors})

	cfg := &config.Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "text"
	cfg.Taggers.Path = filepath.Join(dir, "taggers")
	cfg.DB.Driver = "sqlite3"
	cfg.DB.DSN = filepath.Join(dir, "bindtags.db")

	logs := &testutil.SafeBuffer{}
	a, err := New(context.Background(), logs, cfg)
	require.NoError(t, err)
	return a, logs
}

func cBinding(name string) *symbol.Binding {
	tu := symbol.NewTranslationUnit(symbol.NewProject("cnature"), "c")
	return symbol.NewBinding(name, model.KindFunction).Define(symbol.NewDeclarator(name, tu))
}

func TestNew_LoadsDescriptors(t *testing.T) {
	a, logs := setupApp(t)

	assert.Equal(t, []string{"kind", "namehash", "visibility"}, a.Catalog().Names())
	assert.Equal(t, []TaggerInfo{
		{ID: "org.example.visibility", Decision: tagger.DecisionUnknown},
		{ID: "org.example.kind", Decision: tagger.DecisionYes},
		{ID: "org.example.broken", Decision: tagger.DecisionYes},
	}, a.Taggers())
	assert.Contains(t, logs.String(), "Tagger registry ready.")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(context.Background(), &testutil.SafeBuffer{}, nil)
	require.Error(t, err)

	dir := testutil.WriteFiles(t, map[string]string{"bad.hcl": `tagger "a" {`})
	cfg := &config.Config{Log: config.Log{Level: "info", Format: "yaml"}}
	cfg.Taggers.Path = dir
	_, err = New(context.Background(), &testutil.SafeBuffer{}, cfg)
	assert.ErrorContains(t, err, "unknown log format")

	cfg.Log.Format = "text"
	_, err = New(context.Background(), &testutil.SafeBuffer{}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load tagger descriptors")
}

func TestCompute(t *testing.T) {
	a, _ := setupApp(t)

	tags := a.Compute(cBinding("_helper"))
	require.Len(t, tags, 2)
	assert.Equal(t, "org.example.visibility", tags[0].TaggerID())
	assert.Equal(t, []byte{visibility.Internal}, tag.Contents(tags[0]))
	assert.Equal(t, "org.example.kind", tags[1].TaggerID())
	assert.Equal(t, []byte{kind.Code(model.KindFunction)}, tag.Contents(tags[1]))

	require.Len(t, a.Failures(), 1)
	var terr *tagger.Error
	require.ErrorAs(t, a.Failures()[0], &terr)
	assert.Equal(t, "org.example.broken", terr.TaggerID)
	assert.Equal(t, tagger.KindConstruction, terr.Kind)
}

func TestCheck(t *testing.T) {
	a, _ := setupApp(t)

	tu := symbol.NewTranslationUnit(symbol.NewProject("javanature"), "java")
	got := a.Check(symbol.NewName("x", tu))
	assert.Equal(t, []Enablement{
		{ID: "org.example.visibility", Enabled: false},
		{ID: "org.example.kind", Enabled: true},
		{ID: "org.example.broken", Enabled: true},
	}, got)
}

func TestPersist(t *testing.T) {
	a, _ := setupApp(t)
	ctx := context.Background()

	store, closeDB, err := a.OpenStore(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeDB() })

	require.True(t, a.Persist(ctx, store, "main.c#counter", cBinding("counter")))

	// A binding backed by the durable store resolves to it.
	durable := store.Bind(ctx, "main.c#counter", symbol.NewBinding("counter", model.KindFunction))
	stored := a.Service().ResolveStore(durable).Tags()
	require.Len(t, stored, 2)
	assert.Equal(t, "org.example.kind", stored[0].TaggerID())
	assert.Equal(t, "org.example.visibility", stored[1].TaggerID())
	assert.Equal(t, []byte{visibility.Public}, tag.Contents(stored[1]))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.c#counter"}, keys)
}
