package termframe

import "testing"

// newTestPayload builds a payload with an 80x24 grid of 8x20 pixel
// cells, the dimensions used throughout these tests.
func newTestPayload(t *testing.T) *Payload {
	t.Helper()
	p := NewPayload()
	p.Settings.Update(func(s *Settings) {
		s.Font.Update(func(f *FontSettings) {
			f.CellSize = Size{Width: 8, Height: 20}
		})
	})
	p.Resize(Size{Width: 640, Height: 480}, Size{Width: 80, Height: 24})
	return p
}

// rowOrder captures the current visual order as indices into the
// backing store.
func rowOrder(p *Payload) []int {
	index := make(map[*ShapedRow]int, p.UnorderedRows.Len())
	for i := 0; i < p.UnorderedRows.Len(); i++ {
		index[p.UnorderedRows.At(i)] = i
	}
	order := make([]int, p.RowCount())
	for i := range order {
		order[i] = index[p.Row(i)]
	}
	return order
}

// TestPayloadResize tests that Resize builds an identity permutation,
// sizes the bitmap, and marks everything dirty.
func TestPayloadResize(t *testing.T) {
	p := newTestPayload(t)

	if got := p.RowCount(); got != 24 {
		t.Fatalf("RowCount() = %d, want 24", got)
	}
	p.checkRowPermutation()

	for i, idx := range rowOrder(p) {
		if idx != i {
			t.Fatalf("row %d points at backing slot %d, want identity order", i, idx)
		}
	}

	if got := p.BackgroundBitmap.Len(); got != 80*24 {
		t.Errorf("BackgroundBitmap.Len() = %d, want %d", got, 80*24)
	}
	if got := p.BackgroundBitmapStride; got != 80 {
		t.Errorf("BackgroundBitmapStride = %d, want 80", got)
	}

	wantRect := Rect{Right: 640, Bottom: 480}
	if p.DirtyRect != wantRect {
		t.Errorf("DirtyRect = %+v, want %+v", p.DirtyRect, wantRect)
	}
	wantRows := RowRange{Start: 0, End: 24}
	if p.InvalidatedRows != wantRows {
		t.Errorf("InvalidatedRows = %+v, want %+v", p.InvalidatedRows, wantRows)
	}
}

// TestMarkAllAsDirty tests the postconditions regardless of prior state.
func TestMarkAllAsDirty(t *testing.T) {
	p := newTestPayload(t)

	// Dirty some arbitrary prior state first.
	p.DirtyRect = Rect{Left: 5, Top: 5, Right: 6, Bottom: 6}
	p.InvalidatedRows = RowRange{Start: 3, End: 4}
	p.ScrollOffset = 7

	p.MarkAllAsDirty()

	if want := (Rect{Right: 640, Bottom: 480}); p.DirtyRect != want {
		t.Errorf("DirtyRect = %+v, want %+v", p.DirtyRect, want)
	}
	if want := (RowRange{Start: 0, End: 24}); p.InvalidatedRows != want {
		t.Errorf("InvalidatedRows = %+v, want %+v", p.InvalidatedRows, want)
	}
	if p.ScrollOffset != 0 {
		t.Errorf("ScrollOffset = %d, want 0", p.ScrollOffset)
	}
}

// TestRotateRowsScrollDown tests the 80x24 scenario: scrolling by +2
// relocates the top two pointers to the bottom and invalidates [22, 24).
func TestRotateRowsScrollDown(t *testing.T) {
	p := newTestPayload(t)
	p.InvalidatedRows = RowRange{}
	top0, top1 := p.Row(0), p.Row(1)

	p.RotateRows(2)

	p.checkRowPermutation()
	if p.Row(22) != top0 || p.Row(23) != top1 {
		t.Error("top two row pointers did not relocate to the bottom")
	}
	if want := (RowRange{Start: 22, End: 24}); p.InvalidatedRows != want {
		t.Errorf("InvalidatedRows = %+v, want %+v", p.InvalidatedRows, want)
	}
	if p.ScrollOffset != 2 {
		t.Errorf("ScrollOffset = %d, want 2", p.ScrollOffset)
	}

	// The entered rows were cleared for their new positions.
	if p.Row(22).DirtyTop != 22*20 || p.Row(22).DirtyBottom != 23*20 {
		t.Errorf("row 22 dirty span = [%d, %d), want [440, 460)",
			p.Row(22).DirtyTop, p.Row(22).DirtyBottom)
	}
}

// TestRotateRowsRoundTrip tests that scrolling down by k then up by k
// restores the original order.
func TestRotateRowsRoundTrip(t *testing.T) {
	for _, k := range []int{1, 2, 11, 23} {
		p := newTestPayload(t)
		before := rowOrder(p)

		p.RotateRows(k)
		p.RotateRows(-k)

		p.checkRowPermutation()
		after := rowOrder(p)
		for i := range before {
			if before[i] != after[i] {
				t.Errorf("k=%d: row %d = slot %d after round trip, want %d",
					k, i, after[i], before[i])
			}
		}
	}
}

// TestRotateRowsPermutation tests that arbitrary rotation sequences
// never duplicate or drop a row pointer.
func TestRotateRowsPermutation(t *testing.T) {
	p := newTestPayload(t)
	deltas := []int{1, -3, 5, 20, -20, 7, -1, 2, -11, 13}
	for _, d := range deltas {
		p.RotateRows(d)
		p.checkRowPermutation()
	}
}

// TestRotateRowsScrollUp tests the negative direction: bottom pointers
// relocate to the top and the entered range is at the top.
func TestRotateRowsScrollUp(t *testing.T) {
	p := newTestPayload(t)
	p.InvalidatedRows = RowRange{}
	bottom := p.Row(23)

	p.RotateRows(-3)

	p.checkRowPermutation()
	if p.Row(2) != bottom {
		t.Error("bottom row pointer did not relocate to the top block")
	}
	if want := (RowRange{Start: 0, End: 3}); p.InvalidatedRows != want {
		t.Errorf("InvalidatedRows = %+v, want %+v", p.InvalidatedRows, want)
	}
	if p.ScrollOffset != -3 {
		t.Errorf("ScrollOffset = %d, want -3", p.ScrollOffset)
	}
}

// TestRotateRowsFullPage tests that a whole-page scroll degenerates to a
// full invalidation.
func TestRotateRowsFullPage(t *testing.T) {
	p := newTestPayload(t)
	p.InvalidatedRows = RowRange{}

	p.RotateRows(24)

	p.checkRowPermutation()
	if want := (RowRange{Start: 0, End: 24}); p.InvalidatedRows != want {
		t.Errorf("InvalidatedRows = %+v, want %+v", p.InvalidatedRows, want)
	}
	if p.ScrollOffset != 0 {
		t.Errorf("ScrollOffset = %d, want 0 after full-page scroll", p.ScrollOffset)
	}
}

// TestRotateRowsZero tests that a zero delta changes nothing.
func TestRotateRowsZero(t *testing.T) {
	p := newTestPayload(t)
	p.InvalidatedRows = RowRange{}
	before := rowOrder(p)

	p.RotateRows(0)

	after := rowOrder(p)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("row order changed on zero-delta rotation")
		}
	}
	if !p.InvalidatedRows.Empty() {
		t.Errorf("InvalidatedRows = %+v, want empty", p.InvalidatedRows)
	}
}

// TestInvalidateRowsClamps tests that out-of-range row indices clamp to
// the grid instead of widening the range past the visible rows.
func TestInvalidateRowsClamps(t *testing.T) {
	p := newTestPayload(t)
	p.InvalidatedRows = RowRange{}

	p.InvalidateRows(RowRange{Start: -5, End: 2})
	if want := (RowRange{Start: 0, End: 2}); p.InvalidatedRows != want {
		t.Errorf("InvalidatedRows = %+v, want %+v", p.InvalidatedRows, want)
	}

	p.InvalidatedRows = RowRange{}
	p.InvalidateRows(RowRange{Start: 20, End: 99})
	if want := (RowRange{Start: 20, End: 24}); p.InvalidatedRows != want {
		t.Errorf("InvalidatedRows = %+v, want %+v", p.InvalidatedRows, want)
	}

	// A range entirely outside the grid clamps to empty.
	p.InvalidatedRows = RowRange{}
	p.InvalidateRows(RowRange{Start: 30, End: 40})
	if !p.InvalidatedRows.Empty() {
		t.Errorf("InvalidatedRows = %+v, want empty", p.InvalidatedRows)
	}
}

// TestSetCellColor tests that the bitmap generation bumps only on
// actual color changes.
func TestSetCellColor(t *testing.T) {
	p := newTestPayload(t)
	gen := p.BackgroundBitmapGeneration

	p.SetCellColor(5, 3, 0xff112233)
	if got := p.BackgroundBitmapGeneration; got != gen+1 {
		t.Errorf("generation = %d after change, want %d", got, gen+1)
	}
	if got := p.BackgroundBitmap.Data()[3*80+5]; got != 0xff112233 {
		t.Errorf("bitmap cell = %#x, want 0xff112233", got)
	}

	// Writing the same color again is not an observable mutation.
	p.SetCellColor(5, 3, 0xff112233)
	if got := p.BackgroundBitmapGeneration; got != gen+1 {
		t.Errorf("generation = %d after no-op write, want %d", got, gen+1)
	}
}
