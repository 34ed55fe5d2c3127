package geo

import "testing"

func TestIntersectLines(t *testing.T) {
	got := IntersectLines(Pt(0, 5), Pt(10, 0), Pt(5, 0), Pt(0, 10))
	if !got.IsValid() {
		t.Fatal("expected an intersection")
	}
	if !approxEqual(got.X, 0.5, tolerance) || !approxEqual(got.Y, 0.5, tolerance) {
		t.Errorf("expected parameters (0.5,0.5), got %v", got)
	}
	if IntersectLines(Pt(0, 0), Pt(1, 0), Pt(0, 1), Pt(2, 0)).IsValid() {
		t.Error("parallel lines must be reported invalid")
	}
}

func TestCutSquareInHalf(t *testing.T) {
	halves := square(10).Cut(Pt(5, -1), Pt(5, 11), 0)
	if len(halves) != 2 {
		t.Fatalf("expected 2 halves, got %d", len(halves))
	}
	for i, h := range halves {
		if !approxEqual(h.Area(), 50, tolerance) {
			t.Errorf("half %d: expected area 50, got %f", i, h.Area())
		}
	}
	// Walking upwards, the first half is on the left.
	if halves[0].Center().X >= 5 {
		t.Errorf("expected first half left of the cut, center %v", halves[0].Center())
	}
}

func TestCutWithGap(t *testing.T) {
	halves := square(10).Cut(Pt(5, -1), Pt(5, 11), 2)
	if len(halves) != 2 {
		t.Fatalf("expected 2 halves, got %d", len(halves))
	}
	for i, h := range halves {
		if !approxEqual(h.Area(), 40, tolerance) {
			t.Errorf("half %d: expected area 40, got %f", i, h.Area())
		}
	}
}

func TestCutMissReturnsInput(t *testing.T) {
	got := square(10).Cut(Pt(20, 0), Pt(20, 10), 0)
	if len(got) != 1 {
		t.Fatalf("expected the polygon back, got %d pieces", len(got))
	}
	if !approxEqual(got[0].Area(), 100, tolerance) {
		t.Errorf("expected area 100, got %f", got[0].Area())
	}
}

func TestBisect(t *testing.T) {
	halves := square(10).Bisect(Pt(0, 0), 0.3, 0, 0)
	if len(halves) != 2 {
		t.Fatalf("expected 2 halves, got %d", len(halves))
	}
	total := halves[0].Area() + halves[1].Area()
	if !approxEqual(total, 100, tolerance) {
		t.Errorf("halves should cover the square, got %f", total)
	}
	small := min(halves[0].Area(), halves[1].Area())
	if !approxEqual(small, 30, tolerance) {
		t.Errorf("expected a 30/70 split, smaller half %f", small)
	}
}

func TestPeel(t *testing.T) {
	got := square(10).Peel(Pt(0, 0), 2)
	if !approxEqual(got.Area(), 80, tolerance) {
		t.Errorf("expected area 80, got %f", got.Area())
	}
}

func TestShrinkZeroIsIdentity(t *testing.T) {
	poly := NewPolygon(Pt(0, 0), Pt(12, 1), Pt(9, 8), Pt(3, 11), Pt(-2, 5))
	got := poly.Shrink(make([]float64, poly.Len()))
	if got.Len() != poly.Len() {
		t.Fatalf("expected %d vertices, got %d", poly.Len(), got.Len())
	}
	for i, v := range poly.Vertices {
		if !v.Near(got.Vertices[i], tolerance) {
			t.Errorf("vertex %d moved: %v -> %v", i, v, got.Vertices[i])
		}
	}
}

func TestShrinkSquare(t *testing.T) {
	got := square(10).ShrinkEq(1)
	if !approxEqual(got.Area(), 64, tolerance) {
		t.Errorf("expected area 64, got %f", got.Area())
	}
	one := square(10).Shrink([]float64{1, 0, 0, 0})
	if !approxEqual(one.Area(), 90, tolerance) {
		t.Errorf("expected area 90 when only one edge moves, got %f", one.Area())
	}
}

func TestBufferSquare(t *testing.T) {
	got := square(10).BufferEq(1)
	if !approxEqual(got.Area(), 64, tolerance) {
		t.Errorf("expected area 64, got %f", got.Area())
	}
}

func TestBufferConcave(t *testing.T) {
	ell := NewPolygon(Pt(0, 0), Pt(20, 0), Pt(20, 10), Pt(10, 10), Pt(10, 20), Pt(0, 20))
	got := ell.BufferEq(1)
	if got.IsEmpty() {
		t.Fatal("expected a buffered outline")
	}
	if got.Area() >= ell.Area() || got.Area() <= 0 {
		t.Errorf("buffer should shrink the L shape: %f vs %f", got.Area(), ell.Area())
	}
	for _, v := range got.Vertices {
		if !ell.Contains(v) {
			t.Errorf("buffered vertex %v lies outside the input", v)
		}
	}
}
