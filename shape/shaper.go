package shape

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	runewidth "github.com/mattn/go-runewidth"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/termframe"
	"github.com/gogpu/termframe/cache"
)

// Soft font glyphs (DRCS downloadable character sets) are addressed
// through this private use area range; a rune inside it selects the
// soft-font sentinel face and its glyph index is the offset into the
// pattern table.
const (
	softFontFirst = 0xEF20
	softFontLast  = 0xEF7F
)

// Cell is one terminal cell as the shaper consumes it. A zero Char marks
// the continuation cell of a preceding wide character and produces no
// glyphs of its own.
type Cell struct {
	Char rune
	FG   uint32
	Attr termframe.FontAttr

	// Lines and LineColor carry per-cell decorations (underlines,
	// strikethrough); equal adjacent values coalesce into one
	// GridLineRange.
	Lines     termframe.GridLines
	LineColor uint32
}

// LineSource supplies the text content of each row. Line returns the
// cells of visual row y; a nil or empty slice renders as background
// only.
type LineSource interface {
	Line(y int) []Cell
}

// SelectionSource is optionally implemented by a LineSource to report
// the selected cell span [from, to) of a row.
type SelectionSource interface {
	Selection(y int) (from, to int)
}

// runKey identifies a cached shaped run. Color is applied after the
// cache, so runs differing only in color share an entry. The FontFace
// handle keeps the key one word per face; this is why the handle must
// stay pointer-sized.
type runKey struct {
	face termframe.FontFace
	text string
	size fixed.Int26_6
	rtl  bool
}

// runGlyph is one glyph of a cached shaped run, independent of where on
// the grid it lands.
type runGlyph struct {
	gid     uint16
	offset  fixed.Point26_6
	cluster int
}

func hashRunKey(k runKey) uint64 {
	h := cache.StringHasher(k.text)
	word := uint64(uint32(k.size)) << 1
	if k.rtl {
		word |= 1
	}
	return cache.Mix(h, word)
}

// Shaper shapes terminal rows against a single font source, caching
// shaped runs. It implements [termframe.RowShaper].
//
// Shaper is safe for concurrent use; per-call HarfbuzzShaper instances
// are pooled because they carry mutable buffers.
type Shaper struct {
	source *Source
	face   termframe.FontFace
	lines  LineSource

	// shaperPool pools HarfbuzzShaper instances; they are not safe for
	// concurrent use but cheap to reuse sequentially.
	shaperPool sync.Pool
	runs       *cache.ShardedCache[runKey, []runGlyph]
}

// NewShaper creates a shaper over the given font source and line
// content. The shaper holds one FontFace reference on the source until
// Close.
func NewShaper(source *Source, lines LineSource) *Shaper {
	return &Shaper{
		source: source,
		face:   termframe.NewFontFace(source),
		lines:  lines,
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		runs: cache.NewSharded[runKey, []runGlyph](0, hashRunKey),
	}
}

// Close releases the shaper's font face reference and drops the run
// cache.
func (s *Shaper) Close() {
	s.face.Close()
	s.runs.Clear()
}

// CacheStats reports shaped-run cache statistics.
func (s *Shaper) CacheStats() cache.Stats {
	return s.runs.Stats()
}

// ShapeRow populates row y from the line source. The row must be
// cleared; ShapeRow only appends.
func (s *Shaper) ShapeRow(row *termframe.ShapedRow, y int, settings *termframe.Settings) error {
	cells := s.lines.Line(y)
	if len(cells) == 0 {
		return nil
	}
	fs := settings.Font.Ptr()
	if fs.CellSize.IsEmpty() {
		return nil
	}

	if sel, ok := s.lines.(SelectionSource); ok {
		from, to := sel.Selection(y)
		if to > from {
			row.SelectionFrom = uint16(from)
			row.SelectionTo = uint16(to)
		}
	}

	// Split the row into maximal runs of cells shaped together: soft
	// font cells go to the sentinel face, everything else groups by
	// font-relevant attributes.
	start := 0
	for start < len(cells) {
		end := start + 1
		soft := isSoftFontCell(cells[start])
		for end < len(cells) {
			c := cells[end]
			if c.Char != 0 && (isSoftFontCell(c) != soft || c.Attr != cells[start].Attr) {
				break
			}
			end++
		}
		if soft {
			s.appendSoftRun(row, cells, start, end, fs)
		} else if err := s.appendShapedRun(row, cells, start, end, fs); err != nil {
			return err
		}
		start = end
	}

	appendGridLineRanges(row, cells)
	return nil
}

func isSoftFontCell(c Cell) bool {
	return c.Char >= softFontFirst && c.Char <= softFontLast
}

// appendSoftRun emits one glyph per soft-font cell; the glyph index is
// the offset into the soft font pattern table.
func (s *Shaper) appendSoftRun(row *termframe.ShapedRow, cells []Cell, start, end int, fs *termframe.FontSettings) {
	from := uint32(len(row.GlyphIndices))
	cellWidth := float32(fs.CellSize.Width)

	for i := start; i < end; i++ {
		c := cells[i]
		if c.Char == 0 {
			continue
		}
		row.GlyphIndices = append(row.GlyphIndices, uint16(c.Char-softFontFirst))
		row.GlyphAdvances = append(row.GlyphAdvances, cellWidth*float32(cellSpan(c.Char)))
		row.GlyphOffsets = append(row.GlyphOffsets, fixed.Point26_6{})
		row.Colors = append(row.Colors, c.FG)
	}

	row.Mappings = append(row.Mappings, termframe.FontMapping{
		Face:       termframe.SoftFontFace(),
		EmSize:     fs.Size,
		GlyphsFrom: from,
		GlyphsTo:   uint32(len(row.GlyphIndices)),
	})
}

// appendShapedRun shapes cells [start, end) with HarfBuzz and lays the
// resulting glyphs onto the cell grid.
func (s *Shaper) appendShapedRun(row *termframe.ShapedRow, cells []Cell, start, end int, fs *termframe.FontSettings) error {
	// Collect the run text; runeCell maps rune index back to the owning
	// cell so clusters can find their color and grid position.
	runes := make([]rune, 0, end-start)
	runeCell := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		if cells[i].Char == 0 {
			continue
		}
		runes = append(runes, cells[i].Char)
		runeCell = append(runeCell, i)
	}
	if len(runes) == 0 {
		return nil
	}

	from := uint32(len(row.GlyphIndices))
	size := fixed.Int26_6(fs.Size * 64)

	for _, seg := range segmentByDirection(runes) {
		glyphs := s.shapeRun(runes[seg.start:seg.end], size, seg.rtl)

		cellWidth := float32(fs.CellSize.Width)
		lastCluster := -1
		for _, g := range glyphs {
			cellIdx := runeCell[seg.start+g.cluster]
			var advance float32
			if g.cluster != lastCluster {
				// Only the first glyph of a cluster advances the pen;
				// marks and ligature components ride along.
				advance = cellWidth * float32(cellSpan(cells[cellIdx].Char))
				lastCluster = g.cluster
			}
			row.GlyphIndices = append(row.GlyphIndices, g.gid)
			row.GlyphAdvances = append(row.GlyphAdvances, advance)
			row.GlyphOffsets = append(row.GlyphOffsets, g.offset)
			row.Colors = append(row.Colors, cells[cellIdx].FG)
		}
	}

	if to := uint32(len(row.GlyphIndices)); to > from {
		row.Mappings = append(row.Mappings, termframe.FontMapping{
			// Borrowed from the shaper; the mapping does not own a
			// reference because rows never outlive the shaper.
			Face:       s.face,
			EmSize:     fs.Size,
			GlyphsFrom: from,
			GlyphsTo:   to,
		})
	}
	return nil
}

// shapeRun returns the shaped glyphs for a directional run, consulting
// the run cache first.
func (s *Shaper) shapeRun(runes []rune, size fixed.Int26_6, rtl bool) []runGlyph {
	key := runKey{face: s.face, text: string(runes), size: size, rtl: rtl}
	return s.runs.GetOrCreate(key, func() []runGlyph {
		dir := di.DirectionLTR
		if rtl {
			dir = di.DirectionRTL
		}
		input := shaping.Input{
			Text:      runes,
			RunStart:  0,
			RunEnd:    len(runes),
			Direction: dir,
			// font.Face is not safe for concurrent use; NewFace is a
			// cheap wrapper over the shared thread-safe *Font.
			Face:     font.NewFace(s.source.Font()),
			Size:     size,
			Script:   detectScript(runes),
			Language: language.NewLanguage("en"),
		}

		hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
		output := hb.Shape(input)
		s.shaperPool.Put(hb)

		glyphs := make([]runGlyph, len(output.Glyphs))
		for i, g := range output.Glyphs {
			glyphs[i] = runGlyph{
				gid:     uint16(g.GlyphID),
				offset:  fixed.Point26_6{X: g.XOffset, Y: g.YOffset},
				cluster: g.ClusterIndex,
			}
		}
		return glyphs
	})
}

// detectScript inspects the runes and returns the script of the first
// non-space character. Terminal runs are short and rarely mix scripts
// within one attribute run, so the first hit is good enough.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// cellSpan returns how many cells a rune occupies on the grid.
func cellSpan(r rune) int {
	if w := runewidth.RuneWidth(r); w > 1 {
		return w
	}
	return 1
}

// appendGridLineRanges run-length encodes the cells' decoration flags
// into GridLineRanges.
func appendGridLineRanges(row *termframe.ShapedRow, cells []Cell) {
	i := 0
	for i < len(cells) {
		c := cells[i]
		if c.Lines == 0 {
			i++
			continue
		}
		j := i + 1
		for j < len(cells) && cells[j].Lines == c.Lines && cells[j].LineColor == c.LineColor {
			j++
		}
		row.GridLineRanges = append(row.GridLineRanges, termframe.GridLineRange{
			Lines: c.Lines,
			Color: c.LineColor,
			From:  uint16(i),
			To:    uint16(j),
		})
		i = j
	}
}
