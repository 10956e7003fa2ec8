package app

import (
	"github.com/specialistvlad/bindtags/internal/registry"
	"github.com/specialistvlad/bindtags/modules/kind"
	"github.com/specialistvlad/bindtags/modules/namehash"
	"github.com/specialistvlad/bindtags/modules/visibility"
)

// coreModules is the definitive list of all tagger modules that are compiled
// into the bindtags binary.
var coreModules = []registry.Module{
	&visibility.Module{},
	&namehash.Module{},
	&kind.Module{},
}
