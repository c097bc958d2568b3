package termframe

// Settings are split into four independently versioned categories so a
// backend can react only to the categories it cares about: a cursor color
// change must not force text re-shaping, and a font change must. The
// split mirrors the granularity of generation bumps — one bump per
// category mutation, never per field.

// AntialiasingMode selects how glyphs are antialiased by the backend.
type AntialiasingMode uint8

const (
	AntialiasingModeGrayscale AntialiasingMode = iota
	AntialiasingModeSubpixel
	AntialiasingModeAliased
)

// DefaultAntialiasingMode is used when TargetSettings never specify one.
const DefaultAntialiasingMode = AntialiasingModeSubpixel

// CursorType selects the cursor shape drawn by the backend.
type CursorType uint16

const (
	CursorTypeLegacy CursorType = iota
	CursorTypeVerticalBar
	CursorTypeUnderscore
	CursorTypeEmptyBox
	CursorTypeFullBox
	CursorTypeDoubleUnderscore
)

// TargetSettings describe the presentation surface.
type TargetSettings struct {
	// Surface is an opaque handle to the window or view being rendered
	// into. termframe never dereferences it; backends cast it to their
	// platform type.
	Surface any

	TransparentBackground bool
	SoftwareRendering     bool
}

// FontSettings describe the resolved font and the cell metrics derived
// from it. All pixel metrics are in device pixels at DPI.
type FontSettings struct {
	// Faces holds the resolved face handles in fallback order.
	// Faces[0] is the primary face.
	Faces []FontFace

	Name         string
	Size         float32
	AdvanceScale float32

	CellSize           Size
	Weight             uint16
	Baseline           int
	Descender          int
	UnderlinePos       int
	UnderlineWidth     int
	StrikethroughPos   int
	StrikethroughWidth int
	DoubleUnderlinePos [2]int
	ThinLineWidth      int

	DPI              uint16
	AntialiasingMode AntialiasingMode

	// Soft font glyph bitmaps for DRCS character sets, one row of bits
	// per pattern entry. Glyphs shaped against these use the soft-font
	// sentinel FontFace.
	SoftFontPattern       []uint16
	SoftFontCellSize      Size
	SoftFontCenteringHint int
}

// CursorSettings describe cursor appearance. The struct is comparable so
// producers can skip the generation bump when nothing changed.
type CursorSettings struct {
	Color            uint32
	Type             CursorType
	HeightPercentage uint16
}

// DefaultCursorSettings returns the cursor appearance used before the
// producer supplies one.
func DefaultCursorSettings() CursorSettings {
	return CursorSettings{
		Color:            0xffffffff,
		Type:             CursorTypeLegacy,
		HeightPercentage: 20,
	}
}

// MiscSettings collect the remaining rendering knobs.
type MiscSettings struct {
	BackgroundColor     uint32
	SelectionColor      uint32
	CustomShaderPath    string
	RetroTerminalEffect bool
}

// DefaultMiscSettings returns the miscellaneous settings used before the
// producer supplies them.
func DefaultMiscSettings() MiscSettings {
	return MiscSettings{SelectionColor: 0x7fffffff}
}

// Settings aggregates the four versioned categories plus the target and
// grid dimensions, which are versioned through the top-level
// Versioned[Settings] wrapper held by the Payload.
type Settings struct {
	Target Versioned[TargetSettings]
	Font   Versioned[FontSettings]
	Cursor Versioned[CursorSettings]
	Misc   Versioned[MiscSettings]

	// TargetSize is the surface size in pixels.
	TargetSize Size
	// CellCount is the grid size in cells.
	CellCount Size
}

// NewDirtySettings returns Settings with every category at generation 1,
// so a consumer that has never rendered sees every category as changed
// and performs a first full redraw.
func NewDirtySettings() Settings {
	return Settings{
		Target: NewVersioned(TargetSettings{}),
		Font:   NewVersioned(FontSettings{}),
		Cursor: NewVersioned(DefaultCursorSettings()),
		Misc:   NewVersioned(DefaultMiscSettings()),
	}
}
