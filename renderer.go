package termframe

import (
	"context"
	"fmt"
)

// Backend turns one frame payload into actual drawing operations.
//
// Lifecycle per instance: Uninitialized -> Ready -> Rendering -> Ready ->
// ... -> Torn down. Construction and teardown are owned by the backend
// package's registry; this interface covers only the per-frame surface.
type Backend interface {
	// Render consumes one frame payload. It must either fully paint every
	// dirty region the payload describes or return an error for the
	// frame. It must not retain the payload beyond the call.
	Render(payload *Payload) error

	// RequiresContinuousRedraw reports whether the producer should keep
	// scheduling frames even when nothing changed (e.g. an animated
	// shader effect).
	RequiresContinuousRedraw() bool

	// WaitUntilCanRender blocks until the backend's presentation pipeline
	// has a free slot. It is the sole backpressure mechanism between
	// frame production and presentation, is called from the producer
	// goroutine, and must not deadlock against Render.
	WaitUntilCanRender()
}

// RowShaper is the seam to the external font-shaping engine. ShapeRow
// repopulates a cleared row for visual position y; the row's dirty span
// is pre-set by Clear and may be widened (never narrowed) for glyphs
// that overhang their cells.
type RowShaper interface {
	ShapeRow(row *ShapedRow, y int, settings *Settings) error
}

// RowShaperFunc adapts a function to the RowShaper interface.
type RowShaperFunc func(row *ShapedRow, y int, settings *Settings) error

func (f RowShaperFunc) ShapeRow(row *ShapedRow, y int, settings *Settings) error {
	return f(row, y, settings)
}

// renderedGenerations caches the generations observed by the last
// successful render, one per settings category plus the background
// bitmap. The zero value (all zero) never matches a live payload, whose
// generations start at 1, so the first frame is always a full redraw.
type renderedGenerations struct {
	target Generation
	font   Generation
	cursor Generation
	misc   Generation
	bitmap Generation
}

// Renderer is the frame producer. It owns the Payload, applies settings
// mutations with per-category generation bumps, rotates rows on scroll,
// drives re-shaping of invalidated rows, and hands the payload to exactly
// one backend per frame.
//
// Renderer is single-writer: all methods must be called from the one
// producer goroutine. Render is synchronous and the payload must not be
// mutated while it runs.
type Renderer struct {
	payload  *Payload
	shaper   RowShaper
	rendered renderedGenerations

	targetSize Size
	cellCount  Size

	// lastBackend detects backend switches: a new backend has no
	// prior-frame state to diff against, so everything is re-marked
	// dirty before it renders.
	lastBackend Backend
}

// NewRenderer returns a renderer with a fresh, fully-dirty payload.
// Call SetTargetSize and SetCellCount before the first Render.
func NewRenderer() *Renderer {
	return &Renderer{payload: NewPayload()}
}

// Payload returns the frame payload owned by this renderer. Callers may
// read it freely between frames; mutation goes through Renderer methods.
func (r *Renderer) Payload() *Payload {
	return r.payload
}

// SetRowShaper installs the external shaping collaborator. Without one,
// invalidated rows stay cleared and only backgrounds, cursor and
// gridlines render.
func (r *Renderer) SetRowShaper(s RowShaper) {
	r.shaper = s
}

// SetWarningCallback installs the fire-and-forget callback for non-fatal
// backend errors.
func (r *Renderer) SetWarningCallback(fn func(error)) {
	r.payload.WarningCallback = fn
}

// SetSurfaceChangedCallback installs the fire-and-forget callback invoked
// when a backend recreates its presentation surface.
func (r *Renderer) SetSurfaceChangedCallback(fn func(any)) {
	r.payload.SurfaceChangedCallback = fn
}

// SetTargetSettings replaces the target category and bumps its
// generation.
func (r *Renderer) SetTargetSettings(t TargetSettings) {
	r.payload.Settings.Update(func(s *Settings) {
		s.Target.Set(t)
	})
}

// SetFontSettings replaces the font category and bumps its generation.
// The next frame re-shapes every row.
func (r *Renderer) SetFontSettings(f FontSettings) {
	r.payload.Settings.Update(func(s *Settings) {
		s.Font.Set(f)
	})
}

// SetCursorSettings replaces the cursor category. The generation bump is
// skipped when nothing changed, so cursor-only consumers stay idle.
func (r *Renderer) SetCursorSettings(c CursorSettings) {
	if r.payload.Settings.Ptr().Cursor.Get() == c {
		return
	}
	r.payload.Settings.Update(func(s *Settings) {
		s.Cursor.Set(c)
	})
}

// SetMiscSettings replaces the miscellaneous category and bumps its
// generation.
func (r *Renderer) SetMiscSettings(m MiscSettings) {
	r.payload.Settings.Update(func(s *Settings) {
		s.Misc.Set(m)
	})
}

// SetTargetSize sets the surface size in pixels, rebuilding the payload
// buffers once both dimensions and the cell count are known.
func (r *Renderer) SetTargetSize(width, height int) {
	size := Size{Width: width, Height: height}
	if r.targetSize == size {
		return
	}
	r.targetSize = size
	r.resize()
}

// SetCellCount sets the grid size in cells, rebuilding the payload
// buffers once both the cell count and the target size are known.
func (r *Renderer) SetCellCount(columns, rows int) {
	count := Size{Width: columns, Height: rows}
	if r.cellCount == count {
		return
	}
	r.cellCount = count
	r.resize()
}

func (r *Renderer) resize() {
	if r.targetSize.IsEmpty() || r.cellCount.IsEmpty() {
		return
	}
	r.payload.Resize(r.targetSize, r.cellCount)
}

// Scroll notifies the renderer that the terminal content moved by delta
// rows since the last frame: positive when content moved up (new rows
// enter at the bottom). Row pointers rotate immediately; re-shaping of
// the entered rows happens in the next Render.
func (r *Renderer) Scroll(delta int) {
	r.payload.RotateRows(delta)
}

// SetCellBackground writes the packed background color of one cell.
func (r *Renderer) SetCellBackground(x, y int, bg uint32) {
	r.payload.SetCellColor(x, y, bg)
}

// InvalidateRows marks a row range for re-shaping in the next frame,
// e.g. after the text content or selection of those rows changed.
func (r *Renderer) InvalidateRows(start, end int) {
	r.payload.InvalidateRows(RowRange{Start: start, End: end})
}

// Render produces one frame: it waits for a free presentation slot,
// prepares the payload (settings diff, re-shaping, dirty aggregation),
// and hands it to the backend synchronously.
//
// The preparation order is fixed: rows are re-shaped strictly before
// their dirty spans are unioned into the dirty rectangle, so the
// rectangle always reflects post-shaping spans. Once the backend's
// Render begins there is no cancellation; ctx is only consulted between
// frames.
//
// A backend render failure is reported through the payload's warning
// callback and returned; the caller decides whether to retry, fall back
// to another backend, or mark everything dirty and continue.
func (r *Renderer) Render(ctx context.Context, backend Backend) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.payload.RowCount() == 0 {
		return fmt.Errorf("termframe: render before SetTargetSize/SetCellCount")
	}

	if backend != r.lastBackend {
		// A fresh backend has no prior frame to diff against.
		r.payload.MarkAllAsDirty()
		r.rendered = renderedGenerations{}
		r.lastBackend = backend
	}

	backend.WaitUntilCanRender()

	r.prepare()

	if err := backend.Render(r.payload); err != nil {
		Logger().Warn("backend render failed", "error", err)
		if cb := r.payload.WarningCallback; cb != nil {
			cb(err)
		}
		return fmt.Errorf("termframe: render: %w", err)
	}

	r.finishFrame()
	return nil
}

// prepare brings the payload from "mutated since last frame" to "ready
// for the backend": settings generation diffing, row re-shaping, then
// dirty aggregation, in that order.
func (r *Renderer) prepare() {
	p := r.payload
	s := p.Settings.Ptr()

	// Font or target changes invalidate every glyph on screen.
	if s.Font.Generation() != r.rendered.font || s.Target.Generation() != r.rendered.target {
		p.MarkAllAsDirty()
	}
	// A background or selection color swap repaints everything but does
	// not require re-shaping.
	if s.Misc.Generation() != r.rendered.misc {
		p.UnionDirtyRect(RectFromSize(s.TargetSize))
	}
	if s.Cursor.Generation() != r.rendered.cursor {
		p.UnionDirtyRect(p.CursorRect)
	}
	// Background bitmap writes dirty whole cells; the bitmap does not
	// record which ones, so the whole surface repaints.
	if p.BackgroundBitmapGeneration != r.rendered.bitmap {
		p.UnionDirtyRect(RectFromSize(s.TargetSize))
	}
	// Scrolled pixels are not unioned into the dirty rectangle: the
	// backend applies ScrollOffset as a blit of the surviving region and
	// the dirty rectangle only covers what must actually be repainted.

	r.shapeInvalidatedRows()

	rows := p.InvalidatedRows
	if !rows.Empty() {
		for y := rows.Start; y < rows.End && y < p.RowCount(); y++ {
			row := p.Row(y)
			p.UnionDirtyRect(Rect{
				Left:   0,
				Top:    row.DirtyTop,
				Right:  s.TargetSize.Width,
				Bottom: row.DirtyBottom,
			})
		}
	}
}

// shapeInvalidatedRows clears and re-shapes every invalidated row. Rows
// are re-shaped before the dirty rectangle is unioned; see prepare.
func (r *Renderer) shapeInvalidatedRows() {
	p := r.payload
	rows := p.InvalidatedRows
	if rows.Empty() {
		return
	}
	s := p.Settings.Ptr()
	cellHeight := p.CellSize().Height

	for y := rows.Start; y < rows.End && y < p.RowCount(); y++ {
		row := p.Row(y)
		row.Clear(y, cellHeight)
		if r.shaper == nil {
			continue
		}
		if err := r.shaper.ShapeRow(row, y, s); err != nil {
			// A row that failed to shape renders as background only;
			// dropping the whole frame for it would be worse.
			Logger().Warn("row shaping failed", "row", y, "error", err)
			if cb := p.WarningCallback; cb != nil {
				cb(err)
			}
			row.Clear(y, cellHeight)
		}
	}
}

// finishFrame resets the per-frame accumulators after a successful
// render; the generation caches advance so the next frame diffs against
// what the backend actually saw.
func (r *Renderer) finishFrame() {
	p := r.payload
	s := p.Settings.Ptr()
	r.rendered = renderedGenerations{
		target: s.Target.Generation(),
		font:   s.Font.Generation(),
		cursor: s.Cursor.Generation(),
		misc:   s.Misc.Generation(),
		bitmap: p.BackgroundBitmapGeneration,
	}
	p.DirtyRect = Rect{}
	p.InvalidatedRows = RowRange{}
	p.ScrollOffset = 0
}
