package tagdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/specialistvlad/bindtags/internal/tag"
)

type row struct {
	TaggerID string `db:"tagger_id"`
	Data     []byte `db:"data"`
}

// BindingTags is the durable tag.Store of one binding. A nil *BindingTags is
// an empty store that accepts no writes.
type BindingTags struct {
	store  *Store
	ctx    context.Context
	key    string
	logger *slog.Logger
}

// Key returns the binding key.
func (b *BindingTags) Key() string {
	if b == nil {
		return ""
	}
	return b.key
}

// Tag returns the stored tag for id, or nil if there is none.
func (b *BindingTags) Tag(id string) tag.View {
	if b == nil {
		return nil
	}
	var data []byte
	err := sqlx.GetContext(b.ctx, b.store.db, &data, b.store.db.Rebind(
		`SELECT data FROM binding_tags WHERE binding_key = ? AND tagger_id = ?`), b.key, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		b.logger.Error("Failed to read tag.", "tagger_id", id, "error", err)
		return nil
	}
	return b.bind(b.store.db, tag.FromBytes(id, data))
}

// Tags returns all stored tags ordered by tagger id.
func (b *BindingTags) Tags() []tag.View {
	if b == nil {
		return nil
	}
	var rows []row
	err := sqlx.SelectContext(b.ctx, b.store.db, &rows, b.store.db.Rebind(
		`SELECT tagger_id, data FROM binding_tags WHERE binding_key = ? ORDER BY tagger_id`), b.key)
	if err != nil {
		b.logger.Error("Failed to read tags.", "error", err)
		return nil
	}

	tags := make([]tag.View, len(rows))
	for i, r := range rows {
		tags[i] = b.bind(b.store.db, tag.FromBytes(r.TaggerID, r.Data))
	}
	return tags
}

// CreateTag returns the stored tag for id if it has length n. Otherwise it
// stores a zero-filled tag of length n, replacing any other, and returns it.
// It returns nil if the database cannot be reached.
func (b *BindingTags) CreateTag(id string, n int) tag.Writable {
	if b == nil {
		return nil
	}
	t, err := b.createTag(b.store.db, id, n)
	if err != nil {
		b.logger.Error("Failed to create tag.", "tagger_id", id, "error", err)
		return nil
	}
	return t
}

// SetTags replaces the binding's tags with tags in one transaction. On any
// failure nothing changes and it returns false.
func (b *BindingTags) SetTags(tags []tag.View) bool {
	if b == nil {
		return false
	}
	if err := b.setTags(tags); err != nil {
		b.logger.Error("Failed to replace tags.", "tags", len(tags), "error", err)
		return false
	}
	return true
}

func (b *BindingTags) setTags(tags []tag.View) (err error) {
	tx, err := b.store.db.BeginTxx(b.ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(b.ctx, tx.Rebind(
		`DELETE FROM binding_tags WHERE binding_key = ?`), b.key); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	for _, v := range tags {
		if v == nil {
			continue
		}
		var t *persistedTag
		if t, err = b.createTag(tx, v.TaggerID(), v.Len()); err != nil {
			return err
		}
		if t.Len() == 0 {
			continue
		}
		if err = t.write(func(buf *tag.Tag) bool { return buf.PutBytes(0, tag.Contents(v), -1) }); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (b *BindingTags) createTag(ext sqlx.ExtContext, id string, n int) (*persistedTag, error) {
	if err := tagIDError(id); err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}

	var data []byte
	err := sqlx.GetContext(b.ctx, ext, &data, ext.Rebind(
		`SELECT data FROM binding_tags WHERE binding_key = ? AND tagger_id = ?`), b.key, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		fresh := make([]byte, n)
		if _, err := ext.ExecContext(b.ctx, ext.Rebind(
			`INSERT INTO binding_tags (binding_key, tagger_id, data) VALUES (?, ?, ?)`), b.key, id, fresh); err != nil {
			return nil, fmt.Errorf("insert tag %q: %w", id, err)
		}
		return b.bind(ext, tag.New(id, n)), nil
	case err != nil:
		return nil, fmt.Errorf("read tag %q: %w", id, err)
	case len(data) == n:
		return b.bind(ext, tag.FromBytes(id, data)), nil
	default:
		fresh := make([]byte, n)
		if _, err := ext.ExecContext(b.ctx, ext.Rebind(
			`UPDATE binding_tags SET data = ? WHERE binding_key = ? AND tagger_id = ?`), fresh, b.key, id); err != nil {
			return nil, fmt.Errorf("resize tag %q: %w", id, err)
		}
		return b.bind(ext, tag.New(id, n)), nil
	}
}

func (b *BindingTags) bind(ext sqlx.ExtContext, t *tag.Tag) *persistedTag {
	return &persistedTag{owner: b, ext: ext, buf: t}
}

func tagIDError(id string) error {
	if id == "" {
		return errors.New("tag has no tagger id")
	}
	return nil
}
