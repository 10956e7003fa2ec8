package tagger

import (
	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/specialistvlad/bindtags/internal/tag"
)

// Processor computes a tag for a binding. It obtains the tag to fill from w
// and returns it, or returns nil to decline. ctx is the enablement context
// node and may be nil.
type Processor interface {
	Process(w tag.Writer, b model.Binding, ctx model.Node) tag.View
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc func(w tag.Writer, b model.Binding, ctx model.Node) tag.View

func (f ProcessorFunc) Process(w tag.Writer, b model.Binding, ctx model.Node) tag.View {
	return f(w, b, ctx)
}

// Factory builds the processor for the tagger registered under id. Processors
// create their tags under that id.
type Factory func(id string) (Processor, error)

type noopProcessor struct{}

func (noopProcessor) Process(tag.Writer, model.Binding, model.Node) tag.View { return nil }

// Noop is the stand-in installed for taggers whose processor failed. It never
// produces a tag.
var Noop Processor = noopProcessor{}
