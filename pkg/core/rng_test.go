package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d differs: %d != %d", i, x, y)
		}
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("float draw %d differs: %v != %v", i, x, y)
		}
	}
}

func TestBetweenRange(t *testing.T) {
	r := NewRNG(1)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := Between(r, -2, 3)
		if v < -2 || v >= 3 {
			t.Fatalf("Between(-2, 3) = %d out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Fatalf("expected all 5 values to appear, saw %v", seen)
	}
	if got := Between(r, 4, 4); got != 4 {
		t.Fatalf("empty range should return lo, got %d", got)
	}
}

func TestIntNNonPositive(t *testing.T) {
	r := NewRNG(3)
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d, want 0", got)
	}
	if got := r.IntN(-5); got != 0 {
		t.Fatalf("IntN(-5) = %d, want 0", got)
	}
}

func TestChanceExtremes(t *testing.T) {
	r := NewRNG(11)
	for i := 0; i < 100; i++ {
		if Chance(r, 0) {
			t.Fatal("Chance(0) must never fire")
		}
		if !Chance(r, 1) {
			t.Fatal("Chance(1) must always fire")
		}
	}
}
