package registry

import (
	"log/slog"

	"github.com/specialistvlad/bindtags/internal/metrics"
	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/specialistvlad/bindtags/internal/tag"
	"github.com/specialistvlad/bindtags/internal/tagger"
)

// Registry holds the descriptors of all registered taggers for a single
// application instance.
type Registry struct {
	descriptors []*tagger.Descriptor
	index       map[string]int
	logger      *slog.Logger
}

type options struct {
	logger *slog.Logger
	report func(error)
}

// Option configures a Registry.
type Option func(*options)

// WithLogger sets the logger used by the registry and its descriptors.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithErrorHandler installs the host's error channel. It receives every
// contained tagger failure as a *tagger.Error.
func WithErrorHandler(f func(error)) Option {
	return func(o *options) { o.report = f }
}

// New builds a registry from tagger records. Records are kept in the given
// order. A record whose id was already seen replaces the earlier one in place.
func New(configs []tagger.Config, opts ...Option) *Registry {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		index:  make(map[string]int, len(configs)),
		logger: o.logger,
	}
	for _, cfg := range configs {
		d := tagger.NewDescriptor(cfg, o.logger, o.report)
		if i, exists := r.index[cfg.ID]; exists {
			r.logger.Warn("Tagger id registered twice, last definition wins.", "tagger_id", cfg.ID)
			r.descriptors[i] = d
			continue
		}
		r.index[cfg.ID] = len(r.descriptors)
		r.descriptors = append(r.descriptors, d)
	}

	r.logger.Debug("Tagger registry built.", "taggers", len(r.descriptors))
	return r
}

// Len returns the number of registered taggers.
func (r *Registry) Len() int { return len(r.descriptors) }

// IDs returns the registered tagger ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.descriptors))
	for i, d := range r.descriptors {
		ids[i] = d.ID()
	}
	return ids
}

// Descriptor returns the descriptor registered under id.
func (r *Registry) Descriptor(id string) (*tagger.Descriptor, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.descriptors[i], true
}

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []*tagger.Descriptor {
	return append([]*tagger.Descriptor(nil), r.descriptors...)
}

// ComputeOne runs the tagger registered under id for b, writing through w.
// It returns nil if no such tagger exists, the tagger is not enabled for ctx,
// or the tagger declines.
func (r *Registry) ComputeOne(id string, w tag.Writer, b model.Binding, ctx model.Node) tag.View {
	d, ok := r.Descriptor(id)
	if !ok || !d.Matches(ctx) {
		return nil
	}
	return produced(d, d.Process(w, b, ctx))
}

// ComputeAll runs every enabled tagger for b in registration order and returns
// the tags they produced. Each call computes afresh.
func (r *Registry) ComputeAll(w tag.Writer, b model.Binding, ctx model.Node) []tag.View {
	var tags []tag.View
	for _, d := range r.descriptors {
		if !d.Matches(ctx) {
			continue
		}
		if v := produced(d, d.Process(w, b, ctx)); v != nil {
			tags = append(tags, v)
		}
	}
	return tags
}

// produced normalises v and counts it against d when present.
func produced(d *tagger.Descriptor, v tag.View) tag.View {
	v = present(v)
	if v != nil {
		metrics.TagsComputedTotal.WithLabelValues(d.ID()).Inc()
	}
	return v
}

// present normalises typed nil tags to a nil View.
func present(v tag.View) tag.View {
	if t, ok := v.(*tag.Tag); ok && t == nil {
		return nil
	}
	return v
}
