package tagstore

import (
	"sync"

	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/specialistvlad/bindtags/internal/tag"
)

// Computer runs taggers against a binding. *registry.Registry satisfies it.
type Computer interface {
	ComputeOne(id string, w tag.Writer, b model.Binding, ctx model.Node) tag.View
	ComputeAll(w tag.Writer, b model.Binding, ctx model.Node) []tag.View
}

// EphemeralStore is a tag.Store that recomputes on every query and retains no
// tags between calls.
type EphemeralStore struct {
	computer Computer
	binding  model.Binding
	subject  func() model.Node
}

// NewEphemeral creates a store for b backed by c.
func NewEphemeral(c Computer, b model.Binding) *EphemeralStore {
	return &EphemeralStore{
		computer: c,
		binding:  b,
		subject:  sync.OnceValue(func() model.Node { return model.ContextNode(b) }),
	}
}

// Subject returns the node used as enablement context, or nil if the binding
// has none.
func (s *EphemeralStore) Subject() model.Node {
	return s.subject()
}

// Tag computes the tag for id.
func (s *EphemeralStore) Tag(id string) tag.View {
	if s.computer == nil {
		return nil
	}
	return s.computer.ComputeOne(id, s, s.binding, s.subject())
}

// Tags computes all tags for the binding.
func (s *EphemeralStore) Tags() []tag.View {
	if s.computer == nil {
		return nil
	}
	return s.computer.ComputeAll(s, s.binding, s.subject())
}

// CreateTag returns a fresh zero-filled tag that the store does not keep.
func (s *EphemeralStore) CreateTag(id string, n int) tag.Writable {
	return tag.New(id, n)
}

// SetTags accepts trivially; there is nothing to replace.
func (s *EphemeralStore) SetTags([]tag.View) bool {
	return true
}
