// Package metrics holds the Prometheus collectors of the tagging core. They
// register with the default registry, so an embedding host exposes them with
// its usual handler.
package metrics

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

var (
	TagsComputedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bindtags_tags_computed_total",
		Help: "Tags produced by taggers.",
	}, []string{"tagger_id"})

	TaggerFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bindtags_tagger_failures_total",
		Help: "Contained tagger failures by kind.",
	}, []string{"kind"})

	SyncsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bindtags_syncs_total",
		Help: "Tag sync attempts by result.",
	}, []string{"result"})
)

// Sync results.
const (
	SyncOK       = "ok"
	SyncRejected = "rejected"
	SyncSkipped  = "skipped"
)

// WriteCounters writes the bindtags metric families of g in the Prometheus
// text format.
func WriteCounters(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "bindtags_") {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
