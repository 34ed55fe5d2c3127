package geo

import (
	"math"
	"testing"
)

func TestPolylineLength(t *testing.T) {
	pl := NewPolyline(Pt(0, 0), Pt(100, 0), Pt(100, 100))
	expected := 200.0
	if math.Abs(pl.Length()-expected) > 0.01 {
		t.Errorf("expected length %.1f, got %.1f", expected, pl.Length())
	}
}

func TestPolylineSmoothKeepsEndpoints(t *testing.T) {
	pl := NewPolyline(Pt(0, 0), Pt(10, 10), Pt(20, 0))
	got := pl.Smooth(3)
	if got.Points[0] != pl.Points[0] || got.Points[2] != pl.Points[2] {
		t.Errorf("endpoints moved: %v", got.Points)
	}
	if !approxEqual(got.Points[1].Y, 6, tolerance) {
		t.Errorf("expected interior point pulled to y=6, got %v", got.Points[1])
	}
	if pl.Points[1] != Pt(10, 10) {
		t.Error("Smooth must not modify the receiver")
	}
}

func TestPolylineDistanceTo(t *testing.T) {
	pl := NewPolyline(Pt(0, 0), Pt(100, 0))
	if d := pl.DistanceTo(Pt(50, 10)); math.Abs(d-10) > 0.01 {
		t.Errorf("expected distance 10, got %.2f", d)
	}
	if d := pl.DistanceTo(Pt(-3, 4)); math.Abs(d-5) > 0.01 {
		t.Errorf("expected distance 5 past the end, got %.2f", d)
	}
}

func TestPolylineEdges(t *testing.T) {
	if got := NewPolyline(Pt(0, 0)).Edges(); len(got) != 0 {
		t.Errorf("single point has no edges, got %d", len(got))
	}
	if got := NewPolyline(Pt(0, 0), Pt(1, 0), Pt(1, 1)).Edges(); len(got) != 2 {
		t.Errorf("expected 2 edges, got %d", len(got))
	}
}
