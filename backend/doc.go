// Package backend provides the pluggable rendering backends for
// termframe and the registry through which they are selected.
//
// A backend consumes one [termframe.Payload] per frame and turns it into
// actual drawing operations. Backends register themselves from init()
// functions; [Default] picks the best available one by priority
// (gpu > software), so importing a backend package for side effects is
// enough to make it selectable:
//
//	import (
//	    "github.com/gogpu/termframe/backend"
//	    _ "github.com/gogpu/termframe/backend/gpu"
//	)
//
//	b, err := backend.InitDefault()
//
// The software backend in this package is the reference implementation
// of the contract: it paints everything the payload itself fully
// describes (cell backgrounds, selection, gridlines, cursor) into a CPU
// pixmap, restricted to the payload's dirty rectangle. Glyph painting
// requires the rasterizing collaborator and is left to real backends.
package backend
