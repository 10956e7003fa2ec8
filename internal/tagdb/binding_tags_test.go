package tagdb

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/specialistvlad/bindtags/internal/tag"
	"github.com/specialistvlad/bindtags/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ tag.Store = (*BindingTags)(nil)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(testutil.NewTestDB(t), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func TestBindingTags_FreshBindingIsEmpty(t *testing.T) {
	s := newTestStore(t)
	bt := s.ForBinding(context.Background(), "k1")

	assert.Nil(t, bt.Tag("A"))
	assert.Empty(t, bt.Tags())
}

func TestBindingTags_CreateTagIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	bt := s.ForBinding(context.Background(), "k1")

	first := bt.CreateTag("A", 3)
	require.NotNil(t, first)
	require.True(t, first.PutBytes(0, []byte{1, 2, 3}, -1))

	second := bt.CreateTag("A", 3)
	require.NotNil(t, second)
	assert.Equal(t, []byte{1, 2, 3}, tag.Contents(second), "same-length create keeps stored bytes")

	resized := bt.CreateTag("A", 2)
	require.NotNil(t, resized)
	assert.Equal(t, []byte{0, 0}, tag.Contents(resized))
	assert.Equal(t, []byte{0, 0}, tag.Contents(bt.Tag("A")))
}

func TestBindingTags_WriteThrough(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	w := s.ForBinding(ctx, "k1").CreateTag("A", 5)
	require.NotNil(t, w)

	require.True(t, w.PutBytes(2, []byte{1, 2, 3}, -1))
	require.True(t, w.PutByte(0, 9))
	assert.False(t, w.PutBytes(3, []byte{1, 2, 3}, -1))
	assert.False(t, w.PutByte(5, 1))

	// A second handle on the same key sees the persisted bytes.
	v := s.ForBinding(ctx, "k1").Tag("A")
	require.NotNil(t, v)
	assert.Equal(t, []byte{9, 0, 1, 2, 3}, tag.Contents(v))
}

func TestBindingTags_StaleHandleRejectsWrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	bt := s.ForBinding(ctx, "k1")

	deleted := bt.CreateTag("A", 2)
	require.NotNil(t, deleted)
	require.NoError(t, s.Delete(ctx, "k1"))
	assert.False(t, deleted.PutByte(0, 7))
	assert.Equal(t, []byte{0, 0}, tag.Contents(deleted), "failed write leaves the buffer unchanged")
	assert.Nil(t, bt.Tag("A"))

	resized := bt.CreateTag("B", 2)
	require.NotNil(t, resized)
	require.NotNil(t, bt.CreateTag("B", 3))
	assert.False(t, resized.PutBytes(0, []byte{1, 1}, -1))
	assert.Equal(t, []byte{0, 0, 0}, tag.Contents(bt.Tag("B")))
}

func TestBindingTags_NilStoreIsEmpty(t *testing.T) {
	var bt *BindingTags

	assert.Equal(t, "", bt.Key())
	assert.Nil(t, bt.Tag("A"))
	assert.Empty(t, bt.Tags())
	assert.Nil(t, bt.CreateTag("A", 1))
	assert.False(t, bt.SetTags([]tag.View{tag.New("A", 1)}))
}

func TestBindingTags_KeysAreIsolated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.ForBinding(ctx, "k1").CreateTag("A", 1)
	s.ForBinding(ctx, "k2").CreateTag("B", 1)

	assert.Equal(t, []string{"A"}, ids(s.ForBinding(ctx, "k1").Tags()))
	assert.Equal(t, []string{"B"}, ids(s.ForBinding(ctx, "k2").Tags()))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, keys)

	require.NoError(t, s.Delete(ctx, "k1"))
	assert.Empty(t, s.ForBinding(ctx, "k1").Tags())
	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k2"}, keys)
}

func TestBindingTags_SetTagsReplaces(t *testing.T) {
	s := newTestStore(t)
	bt := s.ForBinding(context.Background(), "k1")
	bt.CreateTag("old", 1)

	a := tag.FromBytes("a", []byte{0xFF, 0xFF})
	empty := tag.New("empty", 0)
	require.True(t, bt.SetTags([]tag.View{a, nil, empty}))

	tags := bt.Tags()
	require.Len(t, tags, 2)
	assert.Equal(t, "a", tags[0].TaggerID())
	assert.Equal(t, []byte{0xFF, 0xFF}, tag.Contents(tags[0]))
	assert.Equal(t, "empty", tags[1].TaggerID())
	assert.Equal(t, 0, tags[1].Len())
	assert.Nil(t, bt.Tag("old"))
}

func TestBindingTags_ConcurrentWrites(t *testing.T) {
	s := newTestStore(t)
	w := s.ForBinding(context.Background(), "k1").CreateTag("A", 10)
	require.NotNil(t, w)

	numGoroutines := 10
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			assert.True(t, w.PutByte(i, byte(i+1)))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, tag.Contents(s.ForBinding(context.Background(), "k1").Tag("A")))
}

func ids(views []tag.View) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.TaggerID()
	}
	return out
}
