package tagdb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/specialistvlad/bindtags/internal/model"
	"github.com/specialistvlad/bindtags/internal/tag"
)

// Store provides durable tag storage for many bindings.
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// New creates a Store over db. logger may be nil.
func New(db *sqlx.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// ForBinding returns the tag store for the binding identified by key. ctx
// bounds every database call made through the returned store.
func (s *Store) ForBinding(ctx context.Context, key string) *BindingTags {
	return &BindingTags{
		store:  s,
		ctx:    ctx,
		key:    key,
		logger: s.logger.With("binding_key", key),
	}
}

// Bind wraps b so that tag resolution uses the durable store under key.
func (s *Store) Bind(ctx context.Context, key string, b model.Binding) *Binding {
	return &Binding{Binding: b, tags: s.ForBinding(ctx, key)}
}

// Keys returns the keys of all bindings that have stored tags, sorted.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := sqlx.SelectContext(ctx, s.db, &keys,
		`SELECT DISTINCT binding_key FROM binding_tags ORDER BY binding_key`)
	if err != nil {
		return nil, fmt.Errorf("list binding keys: %w", err)
	}
	return keys, nil
}

// Delete removes every tag stored for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind(`DELETE FROM binding_tags WHERE binding_key = ?`), key)
	if err != nil {
		return fmt.Errorf("delete tags for %q: %w", key, err)
	}
	return nil
}

// Binding is a host binding backed by durable tag storage.
type Binding struct {
	model.Binding
	tags *BindingTags
}

// TagStore implements model.TagStoreProvider.
func (b *Binding) TagStore() tag.Store {
	if b == nil || b.tags == nil {
		return nil
	}
	return b.tags
}
