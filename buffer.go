package termframe

import "unsafe"

// Buffer is an owning, fixed-capacity block of T. It deliberately has no
// append or resize operation: per-frame arrays (row pointers, background
// bitmap) hold a fixed element count decided at resize time, and a
// growable container would only invite misuse. Ownership is singular —
// transfer it with Take or MoveFrom; the moved-from buffer is left valid
// but empty and may be moved from again.
//
// The zero value is an empty buffer with a nil backing slice.
//
// Allocation failure is fatal (the runtime panics), matching the contract
// that per-frame buffers are always constructible under normal operation.
type Buffer[T any] struct {
	data []T
}

// NewBuffer allocates a buffer of size zero-valued elements.
// A size of 0 yields an empty buffer with a nil backing slice.
func NewBuffer[T any](size int) Buffer[T] {
	if size <= 0 {
		return Buffer[T]{}
	}
	return Buffer[T]{data: make([]T, size)}
}

// NewBufferFrom allocates a buffer holding a copy of src. This is the
// only way to duplicate buffer contents; Buffer itself has no Clone.
func NewBufferFrom[T any](src []T) Buffer[T] {
	if len(src) == 0 {
		return Buffer[T]{}
	}
	data := make([]T, len(src))
	copy(data, src)
	return Buffer[T]{data: data}
}

// NewAlignedBuffer allocates a buffer of size zero-valued elements whose
// first element sits at an address that is a multiple of alignment bytes.
// Over-aligning bulk pixel data (e.g. the background bitmap to 32 bytes)
// keeps wide loads on cache-line boundaries.
//
// alignment must be a power of two and a multiple of the element size;
// anything else is a programmer error and panics.
func NewAlignedBuffer[T any](size, alignment int) Buffer[T] {
	if size <= 0 {
		return Buffer[T]{}
	}
	elem := int(unsafe.Sizeof(*new(T)))
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		panic("termframe: buffer alignment must be a power of two")
	}
	if alignment%elem != 0 {
		panic("termframe: buffer alignment must be a multiple of the element size")
	}

	pad := alignment / elem
	raw := make([]T, size+pad)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	off := 0
	if rem := addr % uintptr(alignment); rem != 0 {
		// addr is always elem-aligned, so the byte offset divides evenly.
		off = (alignment - int(rem)) / elem
	}
	// The sub-slice keeps the base allocation reachable for the GC.
	return Buffer[T]{data: raw[off : off+size : off+size]}
}

// Len returns the fixed element count.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// IsEmpty reports whether the buffer holds no elements.
func (b *Buffer[T]) IsEmpty() bool {
	return len(b.data) == 0
}

// At returns a pointer to element i. Out-of-range indices panic via the
// usual slice bounds check.
func (b *Buffer[T]) At(i int) *T {
	return &b.data[i]
}

// Data returns the backing slice. The slice aliases the buffer's storage;
// it must not be retained past the buffer's Reset or a move.
func (b *Buffer[T]) Data() []T {
	return b.data
}

// Take transfers ownership of the contents to the returned buffer,
// leaving the receiver valid but empty. Repeated takes on the same
// buffer are safe and yield empty buffers.
func (b *Buffer[T]) Take() Buffer[T] {
	out := Buffer[T]{data: b.data}
	b.data = nil
	return out
}

// MoveFrom releases the receiver's current contents and adopts other's,
// leaving other valid but empty. A self-move is a no-op.
func (b *Buffer[T]) MoveFrom(other *Buffer[T]) {
	if b == other {
		return
	}
	b.data = other.data
	other.data = nil
}

// Reset releases the contents, returning the buffer to the empty state.
func (b *Buffer[T]) Reset() {
	b.data = nil
}
