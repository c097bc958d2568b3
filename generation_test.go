package termframe

import "testing"

// TestVersionedZeroValue tests that the zero value reports the reserved
// "never initialized" generation.
func TestVersionedZeroValue(t *testing.T) {
	var v Versioned[int]
	if got := v.Generation(); got != 0 {
		t.Errorf("Generation() = %d, want 0", got)
	}
	if got := v.Get(); got != 0 {
		t.Errorf("Get() = %d, want 0", got)
	}
}

// TestVersionedDirtyConstructor tests that NewVersioned starts at
// generation 1 to force a first full redraw.
func TestVersionedDirtyConstructor(t *testing.T) {
	v := NewVersioned("hello")
	if got := v.Generation(); got != 1 {
		t.Errorf("Generation() = %d, want 1", got)
	}
	if got := v.Get(); got != "hello" {
		t.Errorf("Get() = %q, want %q", got, "hello")
	}
}

// TestVersionedMonotonicity tests that n mutations yield exactly n
// generation bumps, one each.
func TestVersionedMonotonicity(t *testing.T) {
	v := NewVersioned(0)
	prev := v.Generation()
	for i := 1; i <= 100; i++ {
		if i%2 == 0 {
			v.Set(i)
		} else {
			v.Update(func(p *int) { *p = i })
		}
		got := v.Generation()
		if got != prev+1 {
			t.Fatalf("after mutation %d: Generation() = %d, want %d", i, got, prev+1)
		}
		prev = got
	}
}

// TestVersionedReadDoesNotBump tests that reads never change the
// generation.
func TestVersionedReadDoesNotBump(t *testing.T) {
	v := NewVersioned(42)
	gen := v.Generation()
	for i := 0; i < 10; i++ {
		_ = v.Get()
		_ = v.Ptr()
		_ = v.Generation()
	}
	if got := v.Generation(); got != gen {
		t.Errorf("Generation() after reads = %d, want %d", got, gen)
	}
}

// TestVersionedUpdateBumpsEvenWithoutChange tests that Update bumps the
// generation whether or not the function changed anything: bumps are
// per-category, not per-field.
func TestVersionedUpdateBumpsEvenWithoutChange(t *testing.T) {
	v := NewVersioned(7)
	gen := v.Generation()
	v.Update(func(*int) {})
	if got := v.Generation(); got != gen+1 {
		t.Errorf("Generation() = %d, want %d", got, gen+1)
	}
}

// TestDirtySettingsGenerations tests that every category of fresh
// settings starts at generation 1.
func TestDirtySettingsGenerations(t *testing.T) {
	s := NewDirtySettings()
	if got := s.Target.Generation(); got != 1 {
		t.Errorf("Target generation = %d, want 1", got)
	}
	if got := s.Font.Generation(); got != 1 {
		t.Errorf("Font generation = %d, want 1", got)
	}
	if got := s.Cursor.Generation(); got != 1 {
		t.Errorf("Cursor generation = %d, want 1", got)
	}
	if got := s.Misc.Generation(); got != 1 {
		t.Errorf("Misc generation = %d, want 1", got)
	}
}

// TestSettingsCategoryIndependence tests that mutating one category
// leaves the other categories' generations untouched.
func TestSettingsCategoryIndependence(t *testing.T) {
	s := NewDirtySettings()
	fontGen := s.Font.Generation()
	targetGen := s.Target.Generation()

	s.Cursor.Set(CursorSettings{Color: 0xff0000ff, Type: CursorTypeFullBox, HeightPercentage: 100})

	if got := s.Font.Generation(); got != fontGen {
		t.Errorf("Font generation = %d after cursor change, want %d", got, fontGen)
	}
	if got := s.Target.Generation(); got != targetGen {
		t.Errorf("Target generation = %d after cursor change, want %d", got, targetGen)
	}
	if got := s.Cursor.Generation(); got != 2 {
		t.Errorf("Cursor generation = %d, want 2", got)
	}
}
