package rnd

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %f vs %f", i, x, y)
		}
	}
}

func TestFloatRange(t *testing.T) {
	rng := New(7)
	for i := 0; i < 1000; i++ {
		v := Float(rng, -2.0, 3.0)
		if v < -2 || v >= 3 {
			t.Fatalf("value %f out of range", v)
		}
	}
}

func TestProbAtBounds(t *testing.T) {
	rng := New(1)
	for i := 0; i < 100; i++ {
		if Prob(rng, 0) {
			t.Fatal("probability 0 must never hit")
		}
		if !Prob(rng, 1) {
			t.Fatal("probability 1 must always hit")
		}
	}
}

func TestChoose(t *testing.T) {
	rng := New(3)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[Choose(rng, "a", "b")] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("expected both values over 200 draws, got %v", seen)
	}
}
