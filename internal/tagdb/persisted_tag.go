package tagdb

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/specialistvlad/bindtags/internal/tag"
)

var (
	errOutOfBounds = errors.New("write out of bounds")
	// errRowMissing means the row behind a tag was deleted or replaced after
	// the tag was handed out.
	errRowMissing = errors.New("tag row no longer exists")
)

// persistedTag is a tag whose writes go through to the binding_tags row.
type persistedTag struct {
	owner *BindingTags
	ext   sqlx.ExtContext

	mu  sync.Mutex // serialises write-through
	buf *tag.Tag
}

func (p *persistedTag) TaggerID() string { return p.buf.TaggerID() }
func (p *persistedTag) Len() int         { return p.buf.Len() }

func (p *persistedTag) GetByte(off int) (byte, bool) { return p.buf.GetByte(off) }

func (p *persistedTag) GetBytes(off, n int) ([]byte, bool) { return p.buf.GetBytes(off, n) }

func (p *persistedTag) PutByte(off int, v byte) bool {
	return p.put(func(t *tag.Tag) bool { return t.PutByte(off, v) })
}

func (p *persistedTag) PutBytes(off int, data []byte, n int) bool {
	return p.put(func(t *tag.Tag) bool { return t.PutBytes(off, data, n) })
}

func (p *persistedTag) put(mutate func(*tag.Tag) bool) bool {
	err := p.write(mutate)
	if err == nil {
		return true
	}
	if !errors.Is(err, errOutOfBounds) {
		p.owner.logger.Error("Failed to write tag.", "tagger_id", p.TaggerID(), "error", err)
	}
	return false
}

// write applies mutate to the buffer and persists the result. If persisting
// fails the buffer is restored.
func (p *persistedTag) write(mutate func(*tag.Tag) bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev := tag.Contents(p.buf)
	if !mutate(p.buf) {
		return errOutOfBounds
	}

	res, err := p.ext.ExecContext(p.owner.ctx, p.ext.Rebind(
		`UPDATE binding_tags SET data = ? WHERE binding_key = ? AND tagger_id = ? AND LENGTH(data) = ?`),
		tag.Contents(p.buf), p.owner.key, p.TaggerID(), p.Len())
	if err == nil {
		err = rowUpdated(res)
	}
	if err != nil {
		p.buf.PutBytes(0, prev, -1)
		return fmt.Errorf("persist tag %q: %w", p.TaggerID(), err)
	}
	return nil
}

func rowUpdated(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return errRowMissing
	}
	return nil
}
