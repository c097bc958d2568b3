package termframe

import "testing"

// TestRectEmpty tests emptiness of degenerate rectangles.
func TestRectEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"zero", Rect{}, true},
		{"inverted", Rect{Left: 10, Top: 10, Right: 5, Bottom: 5}, true},
		{"line", Rect{Left: 0, Top: 0, Right: 10, Bottom: 0}, true},
		{"normal", Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}, false},
	}
	for _, tt := range tests {
		if got := tt.r.Empty(); got != tt.want {
			t.Errorf("%s: Empty() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestRectUnion tests that union ignores empty operands and otherwise
// covers both.
func TestRectUnion(t *testing.T) {
	a := Rect{Left: 0, Top: 40, Right: 100, Bottom: 60}
	b := Rect{Left: 50, Top: 0, Right: 120, Bottom: 20}

	got := a.Union(b)
	want := Rect{Left: 0, Top: 0, Right: 120, Bottom: 60}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}

	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union with empty = %+v, want %+v", got, a)
	}
	if got := (Rect{}).Union(a); got != a {
		t.Errorf("empty Union a = %+v, want %+v", got, a)
	}
}

// TestRectIntersect tests clipping behavior.
func TestRectIntersect(t *testing.T) {
	a := Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}
	b := Rect{Left: 50, Top: 50, Right: 150, Bottom: 150}

	got := a.Intersect(b)
	want := Rect{Left: 50, Top: 50, Right: 100, Bottom: 100}
	if got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}

	c := Rect{Left: 200, Top: 200, Right: 300, Bottom: 300}
	if got := a.Intersect(c); !got.Empty() {
		t.Errorf("disjoint Intersect = %+v, want empty", got)
	}
}

// TestRowRange tests union and containment of row ranges.
func TestRowRange(t *testing.T) {
	a := RowRange{Start: 2, End: 5}
	b := RowRange{Start: 10, End: 12}

	got := a.Union(b)
	want := RowRange{Start: 2, End: 12}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}

	if got := a.Union(RowRange{}); got != a {
		t.Errorf("Union with empty = %+v, want %+v", got, a)
	}
	if !a.Contains(2) || a.Contains(5) {
		t.Error("Contains bounds wrong for half-open range")
	}
	if got := a.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

// TestFlagOps tests the generic bitmask helpers over a real flag enum.
func TestFlagOps(t *testing.T) {
	v := GridLinesUnderline | GridLinesStrikethrough

	if !HasFlag(v, GridLinesUnderline) {
		t.Error("HasFlag(underline) = false, want true")
	}
	if HasFlag(v, GridLinesUnderline|GridLinesTop) {
		t.Error("HasFlag requires all bits, got true with one missing")
	}
	if !AnyFlag(v, GridLinesUnderline|GridLinesTop) {
		t.Error("AnyFlag = false, want true with one bit present")
	}

	v = SetFlag(v, GridLinesTop)
	if !HasFlag(v, GridLinesTop) {
		t.Error("SetFlag did not set the bit")
	}
	v = ClearFlag(v, GridLinesUnderline)
	if AnyFlag(v, GridLinesUnderline) {
		t.Error("ClearFlag did not clear the bit")
	}
	v = ToggleFlag(v, GridLinesTop)
	if AnyFlag(v, GridLinesTop) {
		t.Error("ToggleFlag did not flip the bit off")
	}

	if got := ClearFlag(FontAttrBold|FontAttrItalic, FontAttrItalic); got != FontAttrBold {
		t.Errorf("ClearFlag = %b, want %b", got, FontAttrBold)
	}
}

// TestPackRGBA tests the packed color round trip.
func TestPackRGBA(t *testing.T) {
	c := PackRGBA(0x11, 0x22, 0x33, 0x44)
	if c != 0x44332211 {
		t.Errorf("PackRGBA = %#x, want 0x44332211", c)
	}
	r, g, b, a := UnpackRGBA(c)
	if r != 0x11 || g != 0x22 || b != 0x33 || a != 0x44 {
		t.Errorf("UnpackRGBA = %#x %#x %#x %#x, want 11 22 33 44", r, g, b, a)
	}
}
