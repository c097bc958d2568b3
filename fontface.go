package termframe

// FaceRef is the reference-counting surface of an externally-owned font
// face resource. termframe never inspects the face; it only balances
// Retain/Release calls so the external owner can reclaim the face when
// the last handle drops.
type FaceRef interface {
	Retain()
	Release()
}

// softFontRef is the reserved sentinel standing in for a synthetically
// rendered ("soft") font, used for DRCS-style downloadable character
// sets. It is not a real face and participates in no reference counting.
type softFontRef struct{}

func (*softFontRef) Retain()  {}
func (*softFontRef) Release() {}

var softFont = &softFontRef{}

// FontFace is a handle to a font face. It is in exactly one of three
// states: null (the zero value), the soft-font sentinel, or a counted
// reference to a real external face.
//
// The handle is a single interface word so it stays cheap as part of
// composite hash-map keys (glyph caches key on FontFace plus size and
// attributes). IsProperFont is two pointer compares with no side effects.
//
// Copying the struct copies the reference without retaining; use Clone
// when both copies will be Closed independently.
type FontFace struct {
	ref FaceRef
}

// NewFontFace returns a handle to ref, retaining it. A nil ref yields
// the null handle.
func NewFontFace(ref FaceRef) FontFace {
	f := FontFace{ref: ref}
	f.retain()
	return f
}

// SoftFontFace returns the soft-font sentinel handle.
func SoftFontFace() FontFace {
	return FontFace{ref: softFont}
}

// Clone returns a new handle to the same face, retaining it.
// Cloning null or soft-font handles is a plain copy.
func (f FontFace) Clone() FontFace {
	f.retain()
	return f
}

// Close releases the handle's reference and resets it to null.
// Closing an already-null handle is a no-op, so Close is idempotent.
func (f *FontFace) Close() {
	f.release()
	f.ref = nil
}

// Attach adopts ref without retaining it, releasing any prior reference.
// Use it to take over a reference the caller already owns.
func (f *FontFace) Attach(ref FaceRef) {
	f.release()
	f.ref = ref
}

// Detach surrenders the reference to the caller without releasing it
// and resets the handle to null.
func (f *FontFace) Detach() FaceRef {
	ref := f.ref
	f.ref = nil
	return ref
}

// Get returns the underlying reference. For the soft-font sentinel and
// the null state it returns a value that fails IsProperFont.
func (f FontFace) Get() FaceRef {
	return f.ref
}

// IsSoftFont reports whether the handle is the soft-font sentinel.
func (f FontFace) IsSoftFont() bool {
	return f.ref == FaceRef(softFont)
}

// IsProperFont reports whether the handle references a genuine external
// face: false for both the null state and the soft-font sentinel.
func (f FontFace) IsProperFont() bool {
	return f.ref != nil && f.ref != FaceRef(softFont)
}

func (f FontFace) retain() {
	if f.IsProperFont() {
		f.ref.Retain()
	}
}

func (f FontFace) release() {
	if f.IsProperFont() {
		f.ref.Release()
	}
}
