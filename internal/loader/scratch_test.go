package loader

import "github.com/specialistvlad/bindtags/internal/tag"

// scratch is a Writer handing out fresh tags.
type scratch struct{}

func (scratch) CreateTag(id string, n int) tag.Writable { return tag.New(id, n) }
func (scratch) SetTags([]tag.View) bool                 { return true }
