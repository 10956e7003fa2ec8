// Package visibility tags bindings with whether their name marks them as
// internal.
package visibility

import (
	"strings"

	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/specialistvlad/bindtags/internal/registry"
	"github.com/specialistvlad/bindtags/internal/tag"
	"github.com/specialistvlad/bindtags/internal/tagger"
)

// Name is the factory name of this tagger.
const Name = "visibility"

const (
	Internal byte = 0x00
	Public   byte = 0x01
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the factory with the catalog.
func (m *Module) Register(c *registry.Catalog) {
	c.Register(Name, func(id string) (tagger.Processor, error) {
		return &processor{id: id}, nil
	})
}

type processor struct {
	id string
}

// Process writes a one-byte tag: Internal for names starting with an
// underscore, Public otherwise. Anonymous bindings get no tag.
func (p *processor) Process(w tag.Writer, b model.Binding, _ model.Node) tag.View {
	if b == nil || b.Name() == "" {
		return nil
	}
	t := w.CreateTag(p.id, 1)
	if t == nil {
		return nil
	}

	v := Public
	if strings.HasPrefix(b.Name(), "_") {
		v = Internal
	}
	if !t.PutByte(0, v) {
		return nil
	}
	return t
}
