package termframe

import (
	"testing"
	"unsafe"
)

// TestBufferZeroSize tests that a zero-size buffer is empty with a nil
// backing slice.
func TestBufferZeroSize(t *testing.T) {
	b := NewBuffer[int](0)
	if got := b.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
	if !b.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
	if b.Data() != nil {
		t.Error("Data() != nil, want nil")
	}
}

// TestBufferDefaultConstruction tests that elements start zero-valued.
func TestBufferDefaultConstruction(t *testing.T) {
	b := NewBuffer[int](8)
	if got := b.Len(); got != 8 {
		t.Fatalf("Len() = %d, want 8", got)
	}
	for i := 0; i < b.Len(); i++ {
		if got := *b.At(i); got != 0 {
			t.Errorf("element %d = %d, want 0", i, got)
		}
	}
}

// TestBufferFromCopies tests that the copying constructor does not alias
// the source slice.
func TestBufferFromCopies(t *testing.T) {
	src := []int{1, 2, 3}
	b := NewBufferFrom(src)
	src[0] = 99
	if got := *b.At(0); got != 1 {
		t.Errorf("element 0 = %d after source mutation, want 1", got)
	}
}

// TestBufferTake tests that a move leaves the source valid but empty and
// that repeated moves stay safe.
func TestBufferTake(t *testing.T) {
	b := NewBufferFrom([]int{1, 2, 3})
	moved := b.Take()

	if got := moved.Len(); got != 3 {
		t.Errorf("moved Len() = %d, want 3", got)
	}
	if !b.IsEmpty() || b.Data() != nil {
		t.Error("source not reset to the empty state after Take")
	}

	// A second take from the moved-from buffer must yield empty again.
	again := b.Take()
	if !again.IsEmpty() {
		t.Error("Take() from moved-from buffer yielded elements")
	}
}

// TestBufferMoveFromSelf tests that a self-move does not lose contents.
func TestBufferMoveFromSelf(t *testing.T) {
	b := NewBufferFrom([]int{4, 5})
	b.MoveFrom(&b)
	if got := b.Len(); got != 2 {
		t.Errorf("Len() = %d after self-move, want 2", got)
	}
}

// TestBufferMoveFrom tests ownership transfer between two buffers.
func TestBufferMoveFrom(t *testing.T) {
	a := NewBufferFrom([]int{1})
	b := NewBufferFrom([]int{2, 3})
	a.MoveFrom(&b)
	if got := a.Len(); got != 2 {
		t.Errorf("target Len() = %d, want 2", got)
	}
	if !b.IsEmpty() {
		t.Error("source not empty after MoveFrom")
	}
}

// TestAlignedBufferAlignment tests that the data pointer honors the
// requested over-alignment.
func TestAlignedBufferAlignment(t *testing.T) {
	for _, align := range []int{8, 32, 64} {
		b := NewAlignedBuffer[uint32](100, align)
		if got := b.Len(); got != 100 {
			t.Fatalf("align %d: Len() = %d, want 100", align, got)
		}
		addr := uintptr(unsafe.Pointer(unsafe.SliceData(b.Data())))
		if addr%uintptr(align) != 0 {
			t.Errorf("align %d: data address %#x not aligned", align, addr)
		}
	}
}

// TestAlignedBufferInvalidAlignment tests that bogus alignments are
// treated as programmer errors.
func TestAlignedBufferInvalidAlignment(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic for non-power-of-two alignment")
		}
	}()
	NewAlignedBuffer[uint32](4, 24)
}
