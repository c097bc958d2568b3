package termframe

// Packed colors throughout the payload (background bitmap, gridline and
// cursor colors, per-glyph colors) use little-endian RGBA byte order:
// 0xAABBGGRR. This matches the memory layout GPU backends upload
// directly, so no per-frame swizzling is needed.

// PackRGBA packs the four channels into the payload color format.
func PackRGBA(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// UnpackRGBA splits a packed payload color into its four channels.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}
