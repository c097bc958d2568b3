package termframe

import "fmt"

// backgroundBitmapAlign over-aligns the background bitmap so backends can
// upload or scan it with full-width vector loads.
const backgroundBitmapAlign = 32

// Payload is the aggregate frame snapshot handed to a backend each frame.
// It is constructed once at startup, mutated in place by the single
// producer goroutine every frame, and destroyed at shutdown; backends
// receive it by pointer for the duration of one Render call and must not
// retain it.
//
// Rows is always a permutation of pointers into UnorderedRows: every
// backing slot appears exactly once. RowsScratch has no defined content
// outside an in-progress rotation.
type Payload struct {
	// Settings changes seldom relative to the frame rate; consumers diff
	// the category generations to decide how much work a frame needs.
	Settings Versioned[Settings]

	// UnorderedRows is the backing store for the shaped rows.
	UnorderedRows Buffer[ShapedRow]
	// RowsScratch is scratch space used only while rotating.
	RowsScratch Buffer[*ShapedRow]
	// Rows is the current top-to-bottom visual order.
	Rows Buffer[*ShapedRow]

	// BackgroundBitmap holds one packed color per cell, row-major.
	// BackgroundBitmapStride is a count of uint32 per row, not bytes.
	BackgroundBitmapStride int
	BackgroundBitmap       Buffer[uint32]
	// BackgroundBitmapGeneration starts at 1 so backends redraw the
	// background on their first frame even though a fresh bitmap is all
	// zero, just like the bitmap's contents after creation.
	BackgroundBitmapGeneration Generation

	CursorRect Rect

	// DirtyRect is the accumulated dirty pixel rectangle for this frame.
	DirtyRect Rect
	// InvalidatedRows is the accumulated invalidated row index range.
	InvalidatedRows RowRange
	// ScrollOffset is the signed row delta since the last frame:
	// positive means content moved toward the top (rows entered at the
	// bottom).
	ScrollOffset int

	// WarningCallback receives non-fatal backend errors. Fire-and-forget;
	// may be nil.
	WarningCallback func(error)
	// SurfaceChangedCallback receives the new presentation surface handle
	// when a backend recreates it. Fire-and-forget; may be nil.
	SurfaceChangedCallback func(any)
}

// NewPayload returns a payload with dirty settings (every category at
// generation 1) and no rows; call Resize before the first frame.
func NewPayload() *Payload {
	return &Payload{
		Settings:                   NewVersioned(NewDirtySettings()),
		BackgroundBitmapGeneration: 1,
	}
}

// CellSize returns the current cell size in pixels.
func (p *Payload) CellSize() Size {
	return p.Settings.Ptr().Font.Ptr().CellSize
}

// RowCount returns the number of visible rows.
func (p *Payload) RowCount() int {
	return p.Rows.Len()
}

// Row returns the shaped row at visual position i (0 = top).
func (p *Payload) Row(i int) *ShapedRow {
	return *p.Rows.At(i)
}

// Resize rebuilds the per-frame buffers for the given surface and grid
// dimensions and marks everything dirty. Prior row contents are
// discarded; nothing from before a resize can be trusted anyway.
func (p *Payload) Resize(targetSize, cellCount Size) {
	p.Settings.Update(func(s *Settings) {
		s.TargetSize = targetSize
		s.CellCount = cellCount
	})

	rows := cellCount.Height
	p.UnorderedRows = NewBuffer[ShapedRow](rows)
	p.Rows = NewBuffer[*ShapedRow](rows)
	p.RowsScratch = NewBuffer[*ShapedRow](rows)
	cellHeight := p.CellSize().Height
	for i := 0; i < rows; i++ {
		row := p.UnorderedRows.At(i)
		row.Clear(i, cellHeight)
		*p.Rows.At(i) = row
	}

	p.BackgroundBitmapStride = cellCount.Width
	p.BackgroundBitmap = NewAlignedBuffer[uint32](cellCount.Width*rows, backgroundBitmapAlign)
	p.BackgroundBitmapGeneration++

	p.MarkAllAsDirty()

	Logger().Info("payload resized",
		"targetWidth", targetSize.Width, "targetHeight", targetSize.Height,
		"columns", cellCount.Width, "rows", cellCount.Height)
}

// MarkAllAsDirty sets the dirty rectangle to the full target surface, the
// invalidated-row range to all rows, and resets the scroll offset. Used
// on the first frame, on resize, after switching backends, and after any
// error recovery that cannot trust prior state.
func (p *Payload) MarkAllAsDirty() {
	s := p.Settings.Ptr()
	p.DirtyRect = RectFromSize(s.TargetSize)
	p.InvalidatedRows = RowRange{Start: 0, End: s.CellCount.Height}
	p.ScrollOffset = 0
}

// InvalidateRows unions r into the accumulated invalidated-row range,
// clamped to the grid. Out-of-range indices from callers tracking a
// larger scrollback must not widen the range past the visible rows.
func (p *Payload) InvalidateRows(r RowRange) {
	if r.Start < 0 {
		r.Start = 0
	}
	if n := p.Rows.Len(); r.End > n {
		r.End = n
	}
	p.InvalidatedRows = p.InvalidatedRows.Union(r)
}

// UnionDirtyRect unions r into the accumulated dirty pixel rectangle.
// Rows contributing to r must already be shaped for the frame: a row's
// dirty span is recomputed by Clear and refined by shaping, so unioning
// before re-shaping would record a stale span.
func (p *Payload) UnionDirtyRect(r Rect) {
	p.DirtyRect = p.DirtyRect.Union(r)
}

// RotateRows reorders the row pointers to reflect a scroll of delta rows
// without copying any glyph data: positive delta moves the top delta
// pointers to the bottom, negative the reverse. Rows entering at the
// vacated end are cleared and their indices unioned into
// InvalidatedRows — a different text line now maps to those positions,
// so their previous glyph content is stale.
//
// Cost is O(rows) pointer moves through RowsScratch, allocation-free.
// A |delta| >= RowCount degenerates to a full invalidation.
func (p *Payload) RotateRows(delta int) {
	count := p.Rows.Len()
	if delta == 0 || count == 0 {
		return
	}
	if delta >= count || delta <= -count {
		cellHeight := p.CellSize().Height
		for i := 0; i < count; i++ {
			p.Row(i).Clear(i, cellHeight)
		}
		p.MarkAllAsDirty()
		return
	}

	rows := p.Rows.Data()
	scratch := p.RowsScratch.Data()
	if delta > 0 {
		copy(scratch, rows[delta:])
		copy(scratch[count-delta:], rows[:delta])
	} else {
		copy(scratch, rows[count+delta:])
		copy(scratch[-delta:], rows[:count+delta])
	}
	p.Rows.MoveFrom(&p.RowsScratch)
	p.RowsScratch = Buffer[*ShapedRow]{data: rows}

	var entered RowRange
	if delta > 0 {
		entered = RowRange{Start: count - delta, End: count}
	} else {
		entered = RowRange{Start: 0, End: -delta}
	}
	cellHeight := p.CellSize().Height
	for i := entered.Start; i < entered.End; i++ {
		p.Row(i).Clear(i, cellHeight)
	}
	p.InvalidateRows(entered)
	p.ScrollOffset += delta
}

// SetCellColor writes the packed background color of the cell at column
// x, row y and bumps the bitmap generation so backends re-upload it.
//
// The packed value 0 is the "unset" sentinel: backends render such cells
// with the MiscSettings background color. Transparent black is therefore
// not representable per cell; use the global background for it.
func (p *Payload) SetCellColor(x, y int, bg uint32) {
	cell := p.BackgroundBitmap.At(y*p.BackgroundBitmapStride + x)
	if *cell != bg {
		*cell = bg
		p.BackgroundBitmapGeneration++
	}
}

// checkRowPermutation panics unless Rows is a permutation of pointers to
// the UnorderedRows slots. Violations are programmer errors in rotation
// logic; tests call this after every rotation sequence.
func (p *Payload) checkRowPermutation() {
	count := p.Rows.Len()
	if count != p.UnorderedRows.Len() {
		panic(fmt.Sprintf("termframe: rows length %d != backing store length %d",
			count, p.UnorderedRows.Len()))
	}
	seen := make(map[*ShapedRow]bool, count)
	for i := 0; i < count; i++ {
		seen[p.Row(i)] = true
	}
	for i := 0; i < count; i++ {
		if !seen[p.UnorderedRows.At(i)] {
			panic(fmt.Sprintf("termframe: backing row %d missing from rows permutation", i))
		}
	}
}
