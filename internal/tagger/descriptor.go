package tagger

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/specialistvlad/bindtags/internal/enablement"
	"github.com/specialistvlad/bindtags/internal/metrics"
	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/specialistvlad/bindtags/internal/tag"
)

// Config is one tagger record as produced by a definition loader.
type Config struct {
	ID string
	// Enablement holds the declared conditions. Zero means always enabled;
	// more than one is a configuration error.
	Enablement []enablement.Predicate
	Factory    Factory
	// Err records a problem the loader found in the record, such as an
	// uncompilable condition. A non-nil Err disables the tagger.
	Err error
}

// Decision is the cached enablement decision.
type Decision int32

const (
	DecisionUnknown Decision = iota
	DecisionYes
	DecisionNo
)

func (d Decision) String() string {
	switch d {
	case DecisionYes:
		return "yes"
	case DecisionNo:
		return "no"
	default:
		return "unknown"
	}
}

// Descriptor is the runtime handle of one registered tagger. It is safe for
// concurrent use; its enablement cache and processor cell are guarded
// independently of every other descriptor.
type Descriptor struct {
	id        string
	predicate enablement.Predicate
	decision  atomic.Int32

	processor func() Processor
	demoted   atomic.Bool

	logger *slog.Logger
	report func(error)
}

// NewDescriptor builds a descriptor from cfg. logger may be nil; report, if
// set, receives every contained failure.
func NewDescriptor(cfg Config, logger *slog.Logger, report func(error)) *Descriptor {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Descriptor{
		id:     cfg.ID,
		logger: logger.With("tagger_id", cfg.ID),
		report: report,
	}
	d.processor = sync.OnceValue(func() Processor { return d.construct(cfg.Factory) })

	switch err := ValidateID(cfg.ID); {
	case err != nil:
		d.configError(err)
	case cfg.Err != nil:
		d.configError(cfg.Err)
	case len(cfg.Enablement) == 0:
		d.decision.Store(int32(DecisionYes))
	case len(cfg.Enablement) > 1:
		d.configError(fmt.Errorf("%d enablement conditions declared, at most one is allowed", len(cfg.Enablement)))
	case cfg.Enablement[0] == nil:
		d.configError(errors.New("enablement condition is nil"))
	default:
		d.predicate = cfg.Enablement[0]
	}
	return d
}

// ValidateID reports whether id can identify a tagger.
func ValidateID(id string) error {
	if id == "" {
		return errors.New("tagger id is empty")
	}
	if strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return fmt.Errorf("tagger id %q contains whitespace", id)
	}
	return nil
}

// ID returns the tagger id.
func (d *Descriptor) ID() string { return d.id }

// Decision returns the cached enablement decision.
func (d *Descriptor) Decision() Decision { return Decision(d.decision.Load()) }

// Matches reports whether the tagger is enabled for the context node ctx.
func (d *Descriptor) Matches(ctx model.Node) bool {
	if v := d.Decision(); v != DecisionUnknown {
		return v == DecisionYes
	}

	src := model.SourceOf(ctx)
	if src == nil {
		// Deferring is impossible without a context; let the tagger try.
		return true
	}

	env := enablement.Env{LanguageID: src.LanguageID()}
	enabled, err := d.evaluate(src, &env)
	if err != nil {
		// Only the goroutine that settles the decision reports the failure.
		if d.decision.CompareAndSwap(int32(DecisionUnknown), int32(DecisionNo)) {
			d.fail(KindEvaluation, err)
		}
		return d.Decision() == DecisionYes
	}
	if enabled {
		return d.settle(DecisionYes)
	}
	return d.settle(DecisionNo)
}

func (d *Descriptor) evaluate(src model.SourceUnit, env *enablement.Env) (enabled bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("enablement condition panicked: %v", r)
		}
	}()

	if project := src.Project(); project != nil {
		natures, err := project.Natures()
		if err != nil {
			return false, fmt.Errorf("read project natures: %w", err)
		}
		env.ProjectNatures = natures
	}
	return d.predicate.Evaluate(*env)
}

// settle moves the decision out of unknown. If another goroutine settled it
// first, the earlier value wins.
func (d *Descriptor) settle(v Decision) bool {
	d.decision.CompareAndSwap(int32(DecisionUnknown), int32(v))
	return d.Decision() == DecisionYes
}

// Processor returns the tagger's processor, constructing it on first use.
// Concurrent first callers block until construction completes and then share
// the result.
func (d *Descriptor) Processor() Processor {
	if d.demoted.Load() {
		return Noop
	}
	return d.processor()
}

func (d *Descriptor) construct(factory Factory) (p Processor) {
	defer func() {
		if r := recover(); r != nil {
			d.fail(KindConstruction, fmt.Errorf("factory panicked: %v", r))
			p = Noop
		}
	}()

	if factory == nil {
		d.fail(KindConstruction, errors.New("no factory"))
		return Noop
	}
	p, err := factory(d.id)
	if err != nil {
		d.fail(KindConstruction, err)
		return Noop
	}
	if p == nil {
		d.fail(KindConstruction, errors.New("factory returned no processor"))
		return Noop
	}
	d.logger.Debug("Tagger processor constructed.")
	return p
}

// Process runs the processor for b. A panicking processor is demoted to Noop
// and the call yields no tag.
func (d *Descriptor) Process(w tag.Writer, b model.Binding, ctx model.Node) (v tag.View) {
	p := d.Processor()
	defer func() {
		if r := recover(); r != nil {
			d.demoted.Store(true)
			d.fail(KindProcessing, fmt.Errorf("processor panicked: %v", r))
			v = nil
		}
	}()
	return p.Process(w, b, ctx)
}

func (d *Descriptor) configError(err error) {
	d.decision.Store(int32(DecisionNo))
	d.fail(KindConfig, err)
}

func (d *Descriptor) fail(kind ErrorKind, err error) {
	terr := &Error{TaggerID: d.id, Kind: kind, Err: err}
	metrics.TaggerFailuresTotal.WithLabelValues(kind.String()).Inc()
	d.logger.Error("Tagger disabled by contained failure.", "kind", kind.String(), "error", err)
	if d.report != nil {
		d.report(terr)
	}
}
