package termframe

// unsignedEnum constrains the flag helpers to unsigned enumeration types.
type unsignedEnum interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// HasFlag reports whether every bit of flag is set in v.
func HasFlag[E unsignedEnum](v, flag E) bool {
	return v&flag == flag
}

// AnyFlag reports whether at least one bit of flag is set in v.
func AnyFlag[E unsignedEnum](v, flag E) bool {
	return v&flag != 0
}

// SetFlag returns v with all bits of flag set.
func SetFlag[E unsignedEnum](v, flag E) E {
	return v | flag
}

// ClearFlag returns v with all bits of flag cleared.
func ClearFlag[E unsignedEnum](v, flag E) E {
	return v &^ flag
}

// ToggleFlag returns v with all bits of flag inverted.
func ToggleFlag[E unsignedEnum](v, flag E) E {
	return v ^ flag
}

// FontAttr describes the attributes of a styled cell that are relevant
// for selecting a font face variant.
type FontAttr uint8

const (
	FontAttrNone   FontAttr = 0
	FontAttrBold   FontAttr = 0b01
	FontAttrItalic FontAttr = 0b10
)

// GridLines is a bitmask of decoration lines drawn across a run of cells.
type GridLines uint16

const (
	GridLinesTop GridLines = 1 << iota
	GridLinesBottom
	GridLinesLeft
	GridLinesRight
	GridLinesUnderline
	GridLinesDoubleUnderline
	GridLinesCurlyUnderline
	GridLinesDottedUnderline
	GridLinesDashedUnderline
	GridLinesStrikethrough
)
