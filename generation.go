package termframe

// Generation identifies a specific version of a value. It increases
// strictly on every observable mutation, so two equal generations imply
// (and are implied by) "nothing changed in between" — no deep comparison
// needed. Generation 0 is reserved to mean "never initialized", which is
// why dirty constructors start at 1: a consumer that caches generation 0
// is guaranteed to see the first real value as a change.
type Generation uint32

// Versioned wraps a value with a generation counter.
//
// The zero value holds a zero T at generation 0 ("never initialized").
// Use NewVersioned to start at generation 1, forcing any consumer that
// diffs generations to treat the initial value as dirty.
//
// Generation bumps are per-category, not per-field: Set and Update bump
// once regardless of how much of T changed. Callers needing finer change
// detection should split their state into multiple Versioned values, the
// way Settings splits into four independent categories.
type Versioned[T any] struct {
	value T
	gen   Generation
}

// NewVersioned returns a Versioned holding v at generation 1.
func NewVersioned[T any](v T) Versioned[T] {
	return Versioned[T]{value: v, gen: 1}
}

// Get returns the current value. It never changes the generation.
func (v *Versioned[T]) Get() T {
	return v.value
}

// Ptr returns a pointer to the current value for read access without
// copying. Mutating through the pointer bypasses generation tracking;
// use Set or Update instead.
func (v *Versioned[T]) Ptr() *T {
	return &v.value
}

// Generation returns the current generation. It never changes it.
func (v *Versioned[T]) Generation() Generation {
	return v.gen
}

// Set replaces the value and bumps the generation by exactly one.
func (v *Versioned[T]) Set(value T) {
	v.value = value
	v.gen++
}

// Update mutates the value in place via fn and bumps the generation by
// exactly one, whether or not fn changed anything.
func (v *Versioned[T]) Update(fn func(*T)) {
	fn(&v.value)
	v.gen++
}
