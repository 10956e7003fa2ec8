package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/specialistvlad/bindtags/internal/config"
	"github.com/specialistvlad/bindtags/internal/ctxlog"
	"github.com/specialistvlad/bindtags/internal/db"
	"github.com/specialistvlad/bindtags/internal/loader"
	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/specialistvlad/bindtags/internal/registry"
	"github.com/specialistvlad/bindtags/internal/tag"
	"github.com/specialistvlad/bindtags/internal/tagdb"
	"github.com/specialistvlad/bindtags/internal/tagger"
	"github.com/specialistvlad/bindtags/internal/tagservice"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	config   *config.Config
	logger   *slog.Logger
	catalog  *registry.Catalog
	registry *registry.Registry
	service  *tagservice.Service

	mu       sync.Mutex
	failures []error
}

// TaggerInfo describes one registered tagger.
type TaggerInfo struct {
	ID       string
	Decision tagger.Decision
}

// Enablement is the enablement result of one tagger for a context.
type Enablement struct {
	ID      string
	Enabled bool
}

// New builds an App with its own logger writing to logW. Without modules the
// built-in tagger modules are registered.
func New(ctx context.Context, logW io.Writer, cfg *config.Config, modules ...registry.Module) (*App, error) {
	if cfg == nil {
		return nil, errors.New("no configuration")
	}
	logger, err := newLogger(cfg.Log, logW)
	if err != nil {
		return nil, err
	}
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	a := &App{
		config:  cfg,
		logger:  logger,
		catalog: registry.NewCatalog(modules...),
	}
	logger.Debug("Tagger modules registered.", "count", len(modules), "factories", a.catalog.Names())

	configs, err := loader.Load(ctx, a.catalog, cfg.Taggers.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tagger descriptors: %w", err)
	}

	a.registry = registry.New(configs,
		registry.WithLogger(logger),
		registry.WithErrorHandler(a.recordFailure))
	a.service = tagservice.New(a.registry, logger)
	logger.Debug("Tagger registry ready.", "taggers", a.registry.Len())
	return a, nil
}

func (a *App) recordFailure(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures = append(a.failures, err)
}

// Failures returns the contained tagger failures reported so far.
func (a *App) Failures() []error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]error(nil), a.failures...)
}

// Registry returns the application's registry.
func (a *App) Registry() *registry.Registry { return a.registry }

// Catalog returns the application's factory catalog.
func (a *App) Catalog() *registry.Catalog { return a.catalog }

// Service returns the application's tag resolution service.
func (a *App) Service() *tagservice.Service { return a.service }

// Taggers lists the registered taggers in registry order.
func (a *App) Taggers() []TaggerInfo {
	ds := a.registry.Descriptors()
	infos := make([]TaggerInfo, len(ds))
	for i, d := range ds {
		infos[i] = TaggerInfo{ID: d.ID(), Decision: d.Decision()}
	}
	return infos
}

// Check reports which taggers are enabled for the context node ctx.
func (a *App) Check(ctx model.Node) []Enablement {
	ds := a.registry.Descriptors()
	out := make([]Enablement, len(ds))
	for i, d := range ds {
		out[i] = Enablement{ID: d.ID(), Enabled: d.Matches(ctx)}
	}
	return out
}

// Compute returns all tags of b through its resolved store.
func (a *App) Compute(b model.Binding) []tag.View {
	return a.service.ResolveStore(b).Tags()
}

// OpenStore opens the configured database, applies pending migrations and
// returns the durable store together with a function that closes it.
func (a *App) OpenStore(ctx context.Context) (*tagdb.Store, func() error, error) {
	conn, err := db.New(a.config.DB.Driver, a.config.DB.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(conn, a.config.DB.Driver, a.logger); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	ctxlog.FromContext(ctx).Debug("Database ready.", "driver", a.config.DB.Driver)
	return tagdb.New(conn, a.logger), conn.Close, nil
}

// Persist syncs all tags of b into the durable store under key. It reports
// whether the store accepted them.
func (a *App) Persist(ctx context.Context, store *tagdb.Store, key string, b model.Binding) bool {
	return a.service.Sync(store.ForBinding(ctx, key), b)
}
