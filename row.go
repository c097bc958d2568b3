package termframe

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// FontMapping assigns a face to a contiguous run of glyphs in a row.
// GlyphsFrom/GlyphsTo index into the row's glyph slices, half-open.
type FontMapping struct {
	Face       FontFace
	EmSize     float32
	GlyphsFrom uint32
	GlyphsTo   uint32
}

// GridLineRange marks a run of cells [From, To) decorated with the given
// line set in the given color.
type GridLineRange struct {
	Lines GridLines
	Color uint32
	From  uint16
	To    uint16
}

// LineRendition is the per-row width/height doubling mode (DECDWL/DECDHL).
type LineRendition uint8

const (
	LineRenditionSingleWidth LineRendition = iota
	LineRenditionDoubleWidth
	LineRenditionDoubleHeightTop
	LineRenditionDoubleHeightBottom
)

// ShapedRow is the per-terminal-line output of the external shaping step,
// ready for painting. The four glyph slices are parallel: element i of
// GlyphIndices, GlyphAdvances, GlyphOffsets and Colors all describe the
// same glyph.
//
// Rows are reused frame to frame: Clear empties the slices but keeps
// their capacity, so steady-state shaping allocates nothing.
type ShapedRow struct {
	Mappings       []FontMapping
	GlyphIndices   []uint16
	GlyphAdvances  []float32         // same length as GlyphIndices
	GlyphOffsets   []fixed.Point26_6 // same length as GlyphIndices
	Colors         []uint32          // same length as GlyphIndices
	GridLineRanges []GridLineRange

	LineRendition LineRendition
	SelectionFrom uint16
	SelectionTo   uint16

	// DirtyTop/DirtyBottom bound the vertical pixel span this row
	// occupies on the target surface.
	DirtyTop    int
	DirtyBottom int
}

// Clear resets the row for re-shaping as row y of a grid with the given
// cell height in pixels. This is the only transition from "holds the
// previous frame's glyphs" to "ready to be re-shaped"; the shaping
// collaborator repopulates the row afterward.
func (r *ShapedRow) Clear(y, cellHeight int) {
	r.Mappings = r.Mappings[:0]
	r.GlyphIndices = r.GlyphIndices[:0]
	r.GlyphAdvances = r.GlyphAdvances[:0]
	r.GlyphOffsets = r.GlyphOffsets[:0]
	r.Colors = r.Colors[:0]
	r.GridLineRanges = r.GridLineRanges[:0]
	r.LineRendition = LineRenditionSingleWidth
	r.SelectionFrom = 0
	r.SelectionTo = 0
	r.DirtyTop = y * cellHeight
	r.DirtyBottom = r.DirtyTop + cellHeight
}

// GlyphCount returns the number of glyphs in the row.
func (r *ShapedRow) GlyphCount() int {
	return len(r.GlyphIndices)
}

// validate panics if the parallel-slice invariant is broken. Violations
// are programmer errors in the shaping collaborator, never user-facing
// conditions; tests call this after shaping.
func (r *ShapedRow) validate() {
	n := len(r.GlyphIndices)
	if len(r.GlyphAdvances) != n || len(r.GlyphOffsets) != n || len(r.Colors) != n {
		panic(fmt.Sprintf(
			"termframe: shaped row slice lengths diverged: indices=%d advances=%d offsets=%d colors=%d",
			n, len(r.GlyphAdvances), len(r.GlyphOffsets), len(r.Colors)))
	}
}
