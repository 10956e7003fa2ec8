// Package tagservice is the entry point hosts use to reach a binding's tags.
// It decides which store backs a binding and copies tags between bindings.
package tagservice

import (
	"log/slog"
	"reflect"

	"github.com/specialistvlad/bindtags/internal/metrics"
	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/specialistvlad/bindtags/internal/registry"
	"github.com/specialistvlad/bindtags/internal/tag"
	"github.com/specialistvlad/bindtags/internal/tagstore"
)

// Service resolves tag stores for bindings against one registry.
type Service struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// New creates a service over reg. logger may be nil.
func New(reg *registry.Registry, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{registry: reg, logger: logger}
}

// Registry returns the registry the service computes with.
func (s *Service) Registry() *registry.Registry { return s.registry }

// ResolveStore returns the store for b. A binding that supplies its own store
// always gets that store; any other binding gets a fresh ephemeral store.
func (s *Service) ResolveStore(b model.Binding) tag.Store {
	if p, ok := b.(model.TagStoreProvider); ok {
		if st := p.TagStore(); !absent(st) {
			return st
		}
	}
	var c tagstore.Computer
	if s.registry != nil {
		c = s.registry
	}
	return tagstore.NewEphemeral(c, b)
}

// ResolveReader returns the reader for b, preferring a reader the binding
// supplies, then its own store, then an ephemeral store.
func (s *Service) ResolveReader(b model.Binding) tag.Reader {
	if p, ok := b.(model.TagReaderProvider); ok {
		if r := p.TagReader(); r != nil {
			return r
		}
	}
	return s.ResolveStore(b)
}

// Sync replaces the tags of dst with all tags of src. It does nothing when
// dst or src is missing or when no taggers are registered. It reports whether
// dst accepted the tags.
func (s *Service) Sync(dst tag.Writer, src model.Binding) bool {
	if absent(dst) || src == nil || s.registry == nil || s.registry.Len() == 0 {
		metrics.SyncsTotal.WithLabelValues(metrics.SyncSkipped).Inc()
		return true
	}

	tags := s.ResolveReader(src).Tags()
	if !dst.SetTags(tags) {
		metrics.SyncsTotal.WithLabelValues(metrics.SyncRejected).Inc()
		s.logger.Warn("Destination rejected synced tags.", "binding", src.Name(), "tags", len(tags))
		return false
	}
	metrics.SyncsTotal.WithLabelValues(metrics.SyncOK).Inc()
	s.logger.Debug("Tags synced.", "binding", src.Name(), "tags", len(tags))
	return true
}

// SyncBinding syncs src into the store resolved for dst.
func (s *Service) SyncBinding(dst, src model.Binding) bool {
	if dst == nil {
		return true
	}
	return s.Sync(s.ResolveStore(dst), src)
}

// absent reports whether w is nil, including a nil pointer behind the
// interface.
func absent(w tag.Writer) bool {
	if w == nil {
		return true
	}
	v := reflect.ValueOf(w)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
