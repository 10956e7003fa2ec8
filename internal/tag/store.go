package tag

// Reader is the read contract of a binding's tag store. Both methods are pure
// from the caller's perspective; an ephemeral implementation recomputes on
// every call.
type Reader interface {
	// Tag returns the tag produced by taggerID, or nil if there is none.
	Tag(taggerID string) View
	// Tags returns a snapshot of all tags. The slice is owned by the caller
	// and calling Tags again yields a fresh snapshot.
	Tags() []View
}

// Writer is the write contract of a binding's tag store.
type Writer interface {
	// CreateTag returns a writable tag of the given length for taggerID, or nil
	// if the store cannot provide one. Caching stores return the existing tag
	// when one is already present.
	CreateTag(taggerID string, length int) Writable
	// SetTags replaces the store's tags with tags. Stores that hold nothing or
	// regenerate on demand accept trivially.
	SetTags(tags []View) bool
}

// Store is a per-binding tag container.
type Store interface {
	Reader
	Writer
}
