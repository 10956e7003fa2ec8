package tagstore

import (
	"sort"
	"sync"

	"github.com/specialistvlad/bindtags/internal/tag"
)

// CachingStore is a tag.Store that keeps the tags it creates for the lifetime
// of the store.
type CachingStore struct {
	tags sync.Map // Key: tagger id, Value: *tag.Tag
	mu   sync.Mutex
}

// NewCaching creates a new, empty caching store.
func NewCaching() *CachingStore {
	return &CachingStore{}
}

// GetOrCreateTag returns the tag stored for id, creating a zero-filled tag of
// length n if there is none. A tag that already exists keeps its length.
func (s *CachingStore) GetOrCreateTag(id string, n int) *tag.Tag {
	if t, ok := s.tags.Load(id); ok {
		return t.(*tag.Tag)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tags.Load(id); ok {
		return t.(*tag.Tag)
	}
	t := tag.New(id, n)
	s.tags.Store(id, t)
	return t
}

// CreateTag implements tag.Writer.
func (s *CachingStore) CreateTag(id string, n int) tag.Writable {
	return s.GetOrCreateTag(id, n)
}

// Tag returns the stored tag for id without computing anything.
func (s *CachingStore) Tag(id string) tag.View {
	t, ok := s.tags.Load(id)
	if !ok {
		return nil
	}
	return t.(*tag.Tag)
}

// Tags returns a snapshot of the stored tags ordered by tagger id.
func (s *CachingStore) Tags() []tag.View {
	var tags []*tag.Tag
	s.tags.Range(func(_, v any) bool {
		tags = append(tags, v.(*tag.Tag))
		return true
	})
	sort.Slice(tags, func(i, j int) bool { return tags[i].TaggerID() < tags[j].TaggerID() })

	views := make([]tag.View, len(tags))
	for i, t := range tags {
		views[i] = t
	}
	return views
}

// Len returns the number of stored tags.
func (s *CachingStore) Len() int {
	n := 0
	s.tags.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// SetTags accepts and ignores the replacement set; a caching store
// regenerates its tags on demand.
func (s *CachingStore) SetTags([]tag.View) bool {
	return true
}
