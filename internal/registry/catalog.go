package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/bindtags/internal/tagger"
)

// Module is the interface that all tagger modules must implement to be registered.
type Module interface {
	Register(c *Catalog)
}

// Catalog holds the registered tagger factories by name.
type Catalog struct {
	all map[string]tagger.Factory
}

// NewCatalog creates a catalog and registers every module into it.
func NewCatalog(modules ...Module) *Catalog {
	c := &Catalog{all: make(map[string]tagger.Factory)}
	for _, m := range modules {
		m.Register(c)
	}
	return c
}

// Register registers a factory under name. Registering a name twice is a
// programming error and panics.
func (c *Catalog) Register(name string, f tagger.Factory) {
	if _, exists := c.all[name]; exists {
		panic(fmt.Sprintf("tagger factory with name '%s' already registered", name))
	}
	if f == nil {
		panic(fmt.Sprintf("tagger factory '%s' is nil", name))
	}
	slog.Debug("Registering tagger factory.", "name", name)
	c.all[name] = f
}

// Lookup returns the factory registered under name.
func (c *Catalog) Lookup(name string) (tagger.Factory, bool) {
	f, ok := c.all[name]
	return f, ok
}

// Factory returns the factory registered under name, or one that always fails
// if there is none. The failure surfaces when the tagger is first used.
func (c *Catalog) Factory(name string) tagger.Factory {
	if f, ok := c.all[name]; ok {
		return f
	}
	return func(string) (tagger.Processor, error) {
		return nil, fmt.Errorf("no tagger factory registered under name %q", name)
	}
}

// Names returns the registered factory names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.all))
	for n := range c.all {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
