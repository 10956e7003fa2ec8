// Package kind tags bindings with a one-byte code for their kind.
package kind

import (
	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/specialistvlad/bindtags/internal/registry"
	"github.com/specialistvlad/bindtags/internal/tag"
	"github.com/specialistvlad/bindtags/internal/tagger"
)

// Name is the factory name of this tagger.
const Name = "kind"

// Other is the code of bindings whose kind is unknown.
const Other byte = 0xFF

var codes = map[model.Kind]byte{
	model.KindVariable: 0x01,
	model.KindFunction: 0x02,
	model.KindType:     0x03,
	model.KindMacro:    0x04,
	model.KindField:    0x05,
}

// Code returns the tag byte for k.
func Code(k model.Kind) byte {
	if c, ok := codes[k]; ok {
		return c
	}
	return Other
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the factory with the catalog.
func (m *Module) Register(c *registry.Catalog) {
	c.Register(Name, func(id string) (tagger.Processor, error) {
		return tagger.ProcessorFunc(func(w tag.Writer, b model.Binding, _ model.Node) tag.View {
			if b == nil {
				return nil
			}
			code := Other
			if k, ok := b.(model.Kinded); ok {
				code = Code(k.Kind())
			}

			t := w.CreateTag(id, 1)
			if t == nil || !t.PutByte(0, code) {
				return nil
			}
			return t
		}), nil
	})
}
