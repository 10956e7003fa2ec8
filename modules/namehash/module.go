// Package namehash tags bindings with a stable hash of their name, so that
// tools can bucket bindings without storing names.
package namehash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/specialistvlad/bindtags/internal/registry"
	"github.com/specialistvlad/bindtags/internal/tag"
	"github.com/specialistvlad/bindtags/internal/tagger"
)

// Name is the factory name of this tagger.
const Name = "namehash"

// Size is the tag length in bytes.
const Size = 8

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the factory with the catalog.
func (m *Module) Register(c *registry.Catalog) {
	c.Register(Name, func(id string) (tagger.Processor, error) {
		return tagger.ProcessorFunc(func(w tag.Writer, b model.Binding, _ model.Node) tag.View {
			return process(id, w, b)
		}), nil
	})
}

// Sum returns the tag contents for name: its 64-bit xxHash, big-endian.
func Sum(name string) []byte {
	return binary.BigEndian.AppendUint64(nil, xxhash.Sum64String(name))
}

func process(id string, w tag.Writer, b model.Binding) tag.View {
	if b == nil {
		return nil
	}
	t := w.CreateTag(id, Size)
	if t == nil || !t.PutBytes(0, Sum(b.Name()), -1) {
		return nil
	}
	return t
}
