package tag

import (
	"fmt"
	"sync"
)

// View is read access to a single tag.
type View interface {
	// TaggerID returns the id of the tagger that produced the tag.
	TaggerID() string
	// Len returns the fixed length of the tag's buffer.
	Len() int
	// GetByte returns the byte at offset, or ok=false if offset is out of bounds.
	GetByte(offset int) (b byte, ok bool)
	// GetBytes returns a copy of n bytes starting at offset. A negative n means
	// "to the end of the buffer". It returns ok=false if the range is out of bounds.
	GetBytes(offset, n int) (data []byte, ok bool)
}

// Writable is a tag that can be modified in place.
type Writable interface {
	View
	// PutByte writes one byte. It returns false, with no effect, if offset is
	// out of bounds.
	PutByte(offset int, b byte) bool
	// PutBytes writes n bytes of data starting at offset, or all of data when
	// n is negative. It returns false, without a partial write, if the range is
	// out of bounds or n exceeds len(data).
	PutBytes(offset int, data []byte, n int) bool
}

// Tag is the in-memory Writable implementation. It is safe for concurrent use.
type Tag struct {
	taggerID string

	mu   sync.RWMutex
	data []byte
}

// New returns a zero-filled tag of the given length. A negative length
// yields an empty tag.
func New(taggerID string, length int) *Tag {
	if length < 0 {
		length = 0
	}
	return &Tag{taggerID: taggerID, data: make([]byte, length)}
}

// FromBytes returns a tag whose buffer is a copy of data.
func FromBytes(taggerID string, data []byte) *Tag {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Tag{taggerID: taggerID, data: buf}
}

func (t *Tag) TaggerID() string { return t.taggerID }

// Len is constant for the lifetime of the tag, so no lock is taken.
func (t *Tag) Len() int { return len(t.data) }

// inBounds reports whether [offset, offset+n) lies inside the buffer. The
// offset itself must address an existing byte, so nothing is in bounds for an
// empty tag.
func (t *Tag) inBounds(offset, n int) bool {
	return offset >= 0 && offset < len(t.data) && n >= 0 && n <= len(t.data)-offset
}

func (t *Tag) PutByte(offset int, b byte) bool {
	if !t.inBounds(offset, 1) {
		return false
	}
	t.mu.Lock()
	t.data[offset] = b
	t.mu.Unlock()
	return true
}

func (t *Tag) PutBytes(offset int, data []byte, n int) bool {
	if n < 0 {
		n = len(data)
	}
	if n > len(data) || !t.inBounds(offset, n) {
		return false
	}
	t.mu.Lock()
	copy(t.data[offset:offset+n], data[:n])
	t.mu.Unlock()
	return true
}

func (t *Tag) GetByte(offset int) (byte, bool) {
	if !t.inBounds(offset, 1) {
		return 0, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.data[offset], true
}

func (t *Tag) GetBytes(offset, n int) ([]byte, bool) {
	if n < 0 {
		n = len(t.data) - offset
	}
	if !t.inBounds(offset, n) {
		return nil, false
	}
	out := make([]byte, n)
	t.mu.RLock()
	copy(out, t.data[offset:offset+n])
	t.mu.RUnlock()
	return out, true
}

// String renders the tag as "id[len]:hex", which is what the CLI prints.
func (t *Tag) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return fmt.Sprintf("%s[%d]:%x", t.taggerID, len(t.data), t.data)
}

// Contents returns a full copy of a tag's buffer. Unlike GetBytes(0, -1) it
// succeeds for empty tags, returning an empty slice.
func Contents(v View) []byte {
	if v.Len() == 0 {
		return []byte{}
	}
	data, ok := v.GetBytes(0, -1)
	if !ok {
		return []byte{}
	}
	return data
}
