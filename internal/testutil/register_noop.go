package testutil

import (
	"github.com/specialistvlad/bindtags/internal/registry"
	"github.com/specialistvlad/bindtags/internal/tagger"
)

// NoOpModule registers a single "noop" factory whose processor never
// produces a tag. It's useful for descriptor files that must resolve but
// whose output does not matter.
type NoOpModule struct{}

// Register implements the registry.Module interface.
func (m *NoOpModule) Register(c *registry.Catalog) {
	c.Register("noop", func(string) (tagger.Processor, error) {
		return tagger.Noop, nil
	})
}
