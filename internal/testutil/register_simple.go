package testutil

import (
	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/specialistvlad/bindtags/internal/registry"
	"github.com/specialistvlad/bindtags/internal/tag"
	"github.com/specialistvlad/bindtags/internal/tagger"
)

// SimpleModule is a test helper for easily creating a module that registers
// a single factory.
type SimpleModule struct {
	Name    string
	Factory tagger.Factory
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(c *registry.Catalog) {
	if m.Name != "" && m.Factory != nil {
		c.Register(m.Name, m.Factory)
	}
}

// FillModule returns a module registering name as a factory whose processor
// writes an n-byte tag filled with value.
func FillModule(name string, n int, value byte) *SimpleModule {
	return &SimpleModule{
		Name: name,
		Factory: func(id string) (tagger.Processor, error) {
			return tagger.ProcessorFunc(func(w tag.Writer, _ model.Binding, _ model.Node) tag.View {
				t := w.CreateTag(id, n)
				if t == nil {
					return nil
				}
				for i := 0; i < n; i++ {
					t.PutByte(i, value)
				}
				return t
			}), nil
		},
	}
}
