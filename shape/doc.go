// Package shape provides a monospace-grid row shaper for termframe.
//
// It implements [termframe.RowShaper] on top of go-text/typesetting's
// HarfBuzz shaper: glyph selection, ligatures and complex-script forms
// come from real OpenType shaping, while placement is forced onto the
// terminal cell grid — every cluster advances by its cell width
// (go-runewidth), not by its typographic advance. This keeps columns
// aligned the way a terminal requires while still rendering correct
// glyph forms.
//
// shape is deliberately not a general-purpose text layout engine: no
// wrapping, no justification, no free-form positioning. It exists so the
// full frame pipeline (settings -> shaped rows -> payload -> backend)
// can run without an external shaping engine.
package shape
