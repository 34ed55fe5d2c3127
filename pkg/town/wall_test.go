package town

import (
	"errors"
	"testing"

	"github.com/ChicagoDave/towngen/pkg/geo"
)

func square(x, y float64) *Patch {
	return &Patch{Shape: geo.NewPolygon(geo.Pt(x, y), geo.Pt(x+10, y), geo.Pt(x+10, y+10), geo.Pt(x, y+10))}
}

func TestFindCircumferenceOfGrid(t *testing.T) {
	patches := []*Patch{square(0, 0), square(10, 0), square(0, 10), square(10, 10)}
	loop := FindCircumference(patches)
	if len(loop) != 8 {
		t.Fatalf("expected 8 outline corners, got %d: %v", len(loop), loop)
	}
	if geo.ContainsPoint(loop, geo.Pt(10, 10)) {
		t.Error("the shared middle corner is not on the outline")
	}
	if area := (geo.Polygon{Vertices: loop}).SignedArea(); area <= 0 {
		t.Errorf("outline should keep the patches' winding, got area %.1f", area)
	}
}

func TestFindCircumferencePicksLongestLoop(t *testing.T) {
	patches := []*Patch{square(0, 0), square(10, 0), square(100, 100)}
	if loop := FindCircumference(patches); len(loop) != 6 {
		t.Errorf("expected the 6-corner outline of the pair, got %d", len(loop))
	}
}

func TestWallBordersAndEdges(t *testing.T) {
	w := &Wall{Circumference: []geo.Point2D{geo.Pt(0, 0), geo.Pt(1, 0), geo.Pt(1, 1), geo.Pt(0, 1)}}
	if !w.Borders(geo.Pt(1, 0), geo.Pt(0, 0)) {
		t.Error("consecutive corners border")
	}
	if w.Borders(geo.Pt(0, 0), geo.Pt(0, 1)) {
		t.Error("an open wall does not join its ends")
	}
	if len(w.Edges()) != 3 {
		t.Errorf("expected 3 open segments, got %d", len(w.Edges()))
	}

	w.Closed = true
	if !w.Borders(geo.Pt(0, 0), geo.Pt(0, 1)) {
		t.Error("a closed wall joins its ends")
	}
	if len(w.Edges()) != 4 {
		t.Errorf("expected 4 closed segments, got %d", len(w.Edges()))
	}
}

func TestWallReplacePointAndDemote(t *testing.T) {
	w := &Wall{
		Circumference: []geo.Point2D{geo.Pt(0, 0), geo.Pt(1, 0), geo.Pt(1, 1)},
		Gates:         []geo.Point2D{geo.Pt(1, 0)},
		Towers:        []geo.Point2D{geo.Pt(0, 0), geo.Pt(1, 1)},
	}
	w.ReplacePoint(geo.Pt(1, 0), geo.Pt(2, 0))
	if !w.Circumference[1].Equal(geo.Pt(2, 0)) || !w.Gates[0].Equal(geo.Pt(2, 0)) {
		t.Errorf("gate not moved: %v %v", w.Circumference, w.Gates)
	}
	w.demote(geo.Pt(2, 0))
	if len(w.Gates) != 0 || len(w.Towers) != 3 {
		t.Errorf("expected the gate to become a tower, got gates %v towers %v", w.Gates, w.Towers)
	}
}

func TestRotateToShore(t *testing.T) {
	pts := []geo.Point2D{geo.Pt(0, 0), geo.Pt(1, 0), geo.Pt(2, 0), geo.Pt(3, 0), geo.Pt(4, 0)}
	// The lake lies between corners 2 and 3.
	got := rotateToShore(pts, geo.Pt(2, 0), geo.Pt(3, 0))
	if !got[0].Equal(geo.Pt(3, 0)) || !got[len(got)-1].Equal(geo.Pt(2, 0)) {
		t.Errorf("expected the run 3..2, got %v", got)
	}
	got = rotateToShore(pts, geo.Pt(3, 0), geo.Pt(2, 0))
	if !got[0].Equal(geo.Pt(3, 0)) || !got[len(got)-1].Equal(geo.Pt(2, 0)) {
		t.Errorf("argument order must not matter, got %v", got)
	}
}

func patchOf(inCity bool, pts ...geo.Point2D) *Patch {
	return &Patch{Shape: geo.NewPolygon(pts...), WithinCity: inCity}
}

func TestSplitAtGate(t *testing.T) {
	gate := geo.Pt(10, 0)
	wall := []geo.Point2D{geo.Pt(0, 0), gate, geo.Pt(20, 0)}

	tests := []struct {
		name    string
		outside *Patch
		wall    []geo.Point2D
		wantErr bool
		// Corners both fragments must share, and the fragment sizes.
		diagonal geo.Point2D
		sizes    [2]int
	}{
		{
			name:     "furthest corner",
			outside:  patchOf(false, geo.Pt(0, -10), geo.Pt(20, -10), geo.Pt(20, 0), gate, geo.Pt(0, 0)),
			wall:     wall,
			diagonal: geo.Pt(0, -10),
			sizes:    [2]int{4, 3},
		},
		{
			// The best corner follows the gate, so the first cut is a sliver
			// and the corner after it is used instead.
			name:     "adjacent corner retried",
			outside:  patchOf(false, geo.Pt(0, -10), geo.Pt(20, -10), geo.Pt(20, 0), gate, geo.Pt(6, -5)),
			wall:     []geo.Point2D{geo.Pt(20, 0), gate, geo.Pt(20, -10)},
			diagonal: geo.Pt(0, -10),
			sizes:    [2]int{4, 3},
		},
		{
			name:    "only a sliver",
			outside: patchOf(false, geo.Pt(20, -10), gate, geo.Pt(0, 0), geo.Pt(0, -10)),
			wall:    []geo.Point2D{geo.Pt(0, 0), gate, geo.Pt(0, -10)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.outside.Water = true
			left := patchOf(true, geo.Pt(0, 0), gate, geo.Pt(10, 10), geo.Pt(0, 10))
			right := patchOf(true, gate, geo.Pt(20, 0), geo.Pt(20, 10), geo.Pt(10, 10))
			town := &Town{Patches: []*Patch{left, right, tt.outside}}

			err := town.splitAtGate(gate, tt.wall)
			if tt.wantErr {
				if !errors.Is(err, geo.ErrInvalidOperation) {
					t.Fatalf("expected ErrInvalidOperation, got %v", err)
				}
				if len(town.Patches) != 3 || town.Patches[2] != tt.outside {
					t.Error("a failed split must leave the patches alone")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(town.Patches) != 4 || containsPatch(town.Patches, tt.outside) {
				t.Fatalf("expected the outside patch replaced by two fragments, got %d patches", len(town.Patches))
			}
			a, b := town.Patches[2], town.Patches[3]
			if a.Shape.DistinctCount() != tt.sizes[0] || b.Shape.DistinctCount() != tt.sizes[1] {
				t.Errorf("expected fragments of %v corners, got %d and %d", tt.sizes, a.Shape.DistinctCount(), b.Shape.DistinctCount())
			}
			for _, f := range []*Patch{a, b} {
				if !f.Shape.HasVertex(gate) || !f.Shape.HasVertex(tt.diagonal) {
					t.Errorf("fragment %v does not run along the cut %v-%v", f.Shape.Vertices, gate, tt.diagonal)
				}
				if !f.Water || f.WithinCity {
					t.Error("fragments keep the flags of the split patch")
				}
			}
		})
	}
}

func TestSplitAtGateArea(t *testing.T) {
	gate := geo.Pt(10, 0)
	outside := patchOf(false, geo.Pt(0, -10), geo.Pt(20, -10), geo.Pt(20, 0), gate, geo.Pt(0, 0))
	town := &Town{Patches: []*Patch{outside}}
	if err := town.splitAtGate(gate, []geo.Point2D{geo.Pt(0, 0), gate, geo.Pt(20, 0)}); err != nil {
		t.Fatal(err)
	}
	total := 0.0
	for _, p := range town.Patches {
		total += p.Shape.Area()
	}
	if !approxEqual(total, 200, tolerance) {
		t.Errorf("fragments should cover the patch area 200, got %.2f", total)
	}
}

// cityGrid lays out n x n city squares with the castle in the middle.
func cityGrid(n int) *Town {
	town := &Town{}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			p := square(float64(x*10), float64(y*10))
			p.WithinCity = true
			town.Patches = append(town.Patches, p)
		}
	}
	town.Castle = &Castle{Patch: town.Patches[len(town.Patches)/2]}
	return town
}

func TestPlaceWallGateCount(t *testing.T) {
	tests := []struct {
		min, max int
		want     int
	}{
		{2, 10, 3},
		{2, 2, 2},
		{1, 1, 1},
	}
	for _, tt := range tests {
		town := cityGrid(3)
		outline := FindCircumference(town.cityPatches())
		w := town.placeWall(outline, tt.min, tt.max, town.Castle.Patch.Shape.Vertices, true)

		if len(w.Gates) != tt.want {
			t.Errorf("min %d max %d: expected %d gates, got %d", tt.min, tt.max, tt.want, len(w.Gates))
		}
		if len(w.Gates) < tt.min || len(w.Gates) > tt.max {
			t.Errorf("min %d max %d: gate count %d out of range", tt.min, tt.max, len(w.Gates))
		}
		if len(w.Gates)+len(w.Towers) != len(outline) {
			t.Errorf("gates and towers must partition the %d corners", len(outline))
		}
		for i, g := range w.Gates {
			if len(town.PatchesAt(g)) < 2 {
				t.Errorf("gate %v is a corner of a single patch", g)
			}
			for _, h := range w.Gates[i+1:] {
				if g.Equal(h) {
					t.Errorf("gate %v placed twice", g)
				}
			}
		}
	}
}
