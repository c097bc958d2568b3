// Package termframe is the shared frame-state model for a GPU-accelerated
// terminal text renderer.
//
// # Overview
//
// termframe tracks what must be redrawn between frames, owns the per-frame
// glyph and row data, and hands a consistent snapshot (the [Payload]) to a
// pluggable rendering backend once per frame. It is the bookkeeping half of
// a terminal renderer: it does not shape glyphs and it does not issue GPU
// commands. Those jobs belong to external collaborators that plug in
// through the [RowShaper] and [Backend] seams.
//
// The central problem is incremental invalidation. A terminal redraws
// dozens of times per second but typically only a handful of rows or
// settings change per frame, so termframe:
//
//   - detects exactly what changed since the previous frame using
//     generation counters ([Versioned]) instead of deep comparison,
//   - reorders rows on scroll by rotating pointers ([Payload.RotateRows])
//     instead of copying shaped glyph data,
//   - aggregates a minimal dirty pixel rectangle and invalidated row range
//     for the backend to repaint,
//
// all without per-frame heap churn: row buffers are fixed-capacity
// ([Buffer]) and row slices keep their capacity across [ShapedRow.Clear].
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/termframe"
//	    "github.com/gogpu/termframe/backend"
//	)
//
//	r := termframe.NewRenderer()
//	r.SetCellCount(80, 24)
//	r.SetTargetSize(640, 480)
//	r.SetRowShaper(myShaper)
//
//	b, err := backend.InitDefault()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	for running {
//	    // ... mutate settings, write cell colors, scroll ...
//	    if err := r.Render(ctx, b); err != nil {
//	        log.Printf("frame dropped: %v", err)
//	    }
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Renderer, Payload, Settings, ShapedRow, Buffer, FontFace
//   - backend/: the Backend registry and the reference software backend
//   - shape/: a monospace-grid row shaper built on go-text/typesetting
//   - cache/: a sharded LRU used for shaped-run caching
//
// # Concurrency
//
// termframe follows a single-writer model: one producer goroutine mutates
// settings, shapes rows, and calls Backend.Render synchronously. The
// Payload is never locked internally; callers must not mutate it from
// another goroutine while a render call is executing.
package termframe

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
