package backend

import (
	"fmt"
	"image/color"

	"github.com/gogpu/termframe"
)

// SoftwareBackend is the CPU-based reference backend. It paints the
// payload-described state (cell backgrounds, selection tint, gridlines,
// cursor) into a PixmapTarget, restricted to the payload's dirty
// rectangle. Glyphs are not painted: that requires the rasterizing
// collaborator, and nothing in the payload carries rasterized glyph
// bitmaps.
type SoftwareBackend struct {
	initialized bool
	target      *PixmapTarget
	continuous  bool
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() RenderBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software rendering backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init initializes the backend.
func (b *SoftwareBackend) Init() error {
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	b.target = nil
	b.initialized = false
}

// Target returns the pixmap the backend last rendered into, or nil
// before the first frame.
func (b *SoftwareBackend) Target() *PixmapTarget {
	return b.target
}

// RequiresContinuousRedraw reports true only while the retro terminal
// effect is enabled, which animates independently of content changes.
func (b *SoftwareBackend) RequiresContinuousRedraw() bool {
	return b.continuous
}

// WaitUntilCanRender returns immediately: a CPU target always has a
// free slot.
func (b *SoftwareBackend) WaitUntilCanRender() {}

// Render paints every dirty region described by the payload.
func (b *SoftwareBackend) Render(p *termframe.Payload) error {
	if !b.initialized {
		return ErrNotInitialized
	}
	if p == nil {
		return ErrNilPayload
	}

	s := p.Settings.Ptr()
	size := s.TargetSize
	if size.IsEmpty() {
		return fmt.Errorf("%w: empty target size", ErrRenderFailed)
	}
	if b.target == nil || b.target.Width() != size.Width || b.target.Height() != size.Height {
		b.target = NewPixmapTarget(size.Width, size.Height)
	}

	misc := s.Misc.Ptr()
	b.continuous = misc.RetroTerminalEffect

	// Apply the scroll as a blit of the surviving pixels; the dirty
	// rectangle only covers the rows that actually changed.
	if shift := p.ScrollOffset * s.Font.Ptr().CellSize.Height; shift != 0 {
		b.scrollPixels(shift)
	}

	dirty := p.DirtyRect.Intersect(termframe.RectFromSize(size))
	if dirty.Empty() {
		return nil
	}

	b.paintBackground(p, dirty)
	b.paintRowDecorations(p, dirty)
	b.paintCursor(p, dirty)

	termframe.Logger().Debug("software frame",
		"dirtyLeft", dirty.Left, "dirtyTop", dirty.Top,
		"dirtyRight", dirty.Right, "dirtyBottom", dirty.Bottom,
		"scroll", p.ScrollOffset)
	return nil
}

// scrollPixels moves the target's pixel rows up by shift pixels
// (positive shift: content scrolled toward the top). The vacated band is
// left as-is; it lies inside the payload's dirty rectangle and gets
// repainted right after.
func (b *SoftwareBackend) scrollPixels(shift int) {
	img := b.target.Image()
	h := b.target.Height()
	stride := b.target.Stride()
	if shift >= h || -shift >= h {
		return
	}
	if shift > 0 {
		for y := 0; y < h-shift; y++ {
			copy(img.Pix[y*stride:(y+1)*stride], img.Pix[(y+shift)*stride:(y+shift+1)*stride])
		}
	} else {
		for y := h - 1; y >= -shift; y-- {
			copy(img.Pix[y*stride:(y+1)*stride], img.Pix[(y+shift)*stride:(y+shift+1)*stride])
		}
	}
}

// paintBackground fills the dirty region from the background bitmap.
// A packed value of 0 is the bitmap's "unset" sentinel and falls back to
// the global background color; see Payload.SetCellColor.
func (b *SoftwareBackend) paintBackground(p *termframe.Payload, dirty termframe.Rect) {
	s := p.Settings.Ptr()
	base := s.Misc.Ptr().BackgroundColor
	cell := s.Font.Ptr().CellSize

	if cell.IsEmpty() || p.BackgroundBitmap.IsEmpty() {
		b.fillRect(dirty, base)
		return
	}

	bitmap := p.BackgroundBitmap.Data()
	stride := p.BackgroundBitmapStride
	count := s.CellCount

	for y := 0; y < count.Height; y++ {
		rowRect := termframe.Rect{
			Top:    y * cell.Height,
			Bottom: (y + 1) * cell.Height,
			Right:  s.TargetSize.Width,
		}
		if rowRect.Intersect(dirty).Empty() {
			continue
		}
		for x := 0; x < count.Width; x++ {
			bg := bitmap[y*stride+x]
			if bg == 0 {
				bg = base
			}
			cellRect := termframe.Rect{
				Left:   x * cell.Width,
				Top:    y * cell.Height,
				Right:  (x + 1) * cell.Width,
				Bottom: (y + 1) * cell.Height,
			}
			b.fillRect(cellRect.Intersect(dirty), bg)
		}
		// Pixels right of the last full cell column.
		tail := termframe.Rect{
			Left:   count.Width * cell.Width,
			Top:    rowRect.Top,
			Right:  s.TargetSize.Width,
			Bottom: rowRect.Bottom,
		}
		b.fillRect(tail.Intersect(dirty), base)
	}
}

// paintRowDecorations draws selection tint and gridline ranges for every
// row whose vertical span intersects the dirty region.
func (b *SoftwareBackend) paintRowDecorations(p *termframe.Payload, dirty termframe.Rect) {
	s := p.Settings.Ptr()
	font := s.Font.Ptr()
	cell := font.CellSize
	if cell.IsEmpty() {
		return
	}
	selection := s.Misc.Ptr().SelectionColor

	for y := 0; y < p.RowCount(); y++ {
		row := p.Row(y)
		top := y * cell.Height
		if top >= dirty.Bottom || top+cell.Height <= dirty.Top {
			continue
		}

		if row.SelectionTo > row.SelectionFrom {
			sel := termframe.Rect{
				Left:   int(row.SelectionFrom) * cell.Width,
				Top:    top,
				Right:  int(row.SelectionTo) * cell.Width,
				Bottom: top + cell.Height,
			}
			b.blendRect(sel.Intersect(dirty), selection)
		}

		for _, gr := range row.GridLineRanges {
			b.paintGridLines(gr, font, top, dirty)
		}
	}
}

// paintGridLines draws one gridline range of one row.
func (b *SoftwareBackend) paintGridLines(gr termframe.GridLineRange, font *termframe.FontSettings, top int, dirty termframe.Rect) {
	cell := font.CellSize
	left := int(gr.From) * cell.Width
	right := int(gr.To) * cell.Width
	thin := max(font.ThinLineWidth, 1)

	hline := func(y, width int) {
		r := termframe.Rect{Left: left, Top: y, Right: right, Bottom: y + max(width, 1)}
		b.fillRect(r.Intersect(dirty), gr.Color)
	}

	if termframe.AnyFlag(gr.Lines, termframe.GridLinesTop) {
		hline(top, thin)
	}
	if termframe.AnyFlag(gr.Lines, termframe.GridLinesBottom) {
		hline(top+cell.Height-thin, thin)
	}
	if termframe.AnyFlag(gr.Lines, termframe.GridLinesUnderline) {
		hline(top+font.UnderlinePos, font.UnderlineWidth)
	}
	if termframe.AnyFlag(gr.Lines, termframe.GridLinesDoubleUnderline) {
		hline(top+font.DoubleUnderlinePos[0], thin)
		hline(top+font.DoubleUnderlinePos[1], thin)
	}
	if termframe.AnyFlag(gr.Lines, termframe.GridLinesStrikethrough) {
		hline(top+font.StrikethroughPos, font.StrikethroughWidth)
	}
	if termframe.AnyFlag(gr.Lines, termframe.GridLinesLeft) {
		r := termframe.Rect{Left: left, Top: top, Right: left + thin, Bottom: top + cell.Height}
		b.fillRect(r.Intersect(dirty), gr.Color)
	}
	if termframe.AnyFlag(gr.Lines, termframe.GridLinesRight) {
		r := termframe.Rect{Left: right - thin, Top: top, Right: right, Bottom: top + cell.Height}
		b.fillRect(r.Intersect(dirty), gr.Color)
	}
}

// paintCursor fills the cursor rectangle last so it stays visible over
// backgrounds and decorations.
func (b *SoftwareBackend) paintCursor(p *termframe.Payload, dirty termframe.Rect) {
	r := p.CursorRect.Intersect(dirty)
	if r.Empty() {
		return
	}
	b.fillRect(r, p.Settings.Ptr().Cursor.Ptr().Color)
}

// fillRect overwrites a rectangle with a packed color. Empty rects are
// a no-op.
func (b *SoftwareBackend) fillRect(r termframe.Rect, packed uint32) {
	if r.Empty() {
		return
	}
	cr, cg, cb, ca := termframe.UnpackRGBA(packed)
	c := color.RGBA{R: cr, G: cg, B: cb, A: ca}
	img := b.target.Image()
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// blendRect source-over blends a packed color onto a rectangle, used for
// the translucent selection tint.
func (b *SoftwareBackend) blendRect(r termframe.Rect, packed uint32) {
	if r.Empty() {
		return
	}
	sr, sg, sb, sa := termframe.UnpackRGBA(packed)
	a := uint32(sa)
	img := b.target.Image()
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			d := img.RGBAAt(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8((uint32(sr)*a + uint32(d.R)*(255-a)) / 255),
				G: uint8((uint32(sg)*a + uint32(d.G)*(255-a)) / 255),
				B: uint8((uint32(sb)*a + uint32(d.B)*(255-a)) / 255),
				A: uint8((a*255 + uint32(d.A)*(255-a)) / 255),
			})
		}
	}
}
