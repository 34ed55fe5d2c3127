package scene

import (
	"bytes"
	"testing"

	geojson "github.com/paulmach/go.geojson"

	"github.com/ChicagoDave/towngen/pkg/geo"
	"github.com/ChicagoDave/towngen/pkg/layout"
	"github.com/ChicagoDave/towngen/pkg/town"
	"github.com/ChicagoDave/towngen/pkg/validation"
)

func testGeometry() *town.Geometry {
	square := geo.NewPolygon(geo.Pt(0, 0), geo.Pt(4, 0), geo.Pt(4, 4), geo.Pt(0, 4))
	return &town.Geometry{
		Buildings: []layout.Building{
			{ID: "b-1", PatchID: 1, District: layout.DistrictTown, Description: "Home", Shape: square},
		},
		Walls: []geo.Edge{
			{A: geo.Pt(-10, -10), B: geo.Pt(10, -10)},
			{A: geo.Pt(10, -10), B: geo.Pt(10, 10)},
		},
		Towers:  []geo.Point2D{geo.Pt(-10, -10), geo.Pt(10, 10)},
		Gates:   []geo.Point2D{geo.Pt(10, -10)},
		Roads:   [][]geo.Point2D{{geo.Pt(20, -20), geo.Pt(10, -10)}},
		Streets: [][]geo.Point2D{{geo.Pt(10, -10), geo.Pt(0, 0)}},
	}
}

func TestAssembleKinds(t *testing.T) {
	counts := Count(Assemble(testGeometry()))
	want := map[Kind]int{KindBuilding: 1, KindWall: 2, KindTower: 2, KindGate: 1, KindRoad: 1, KindStreet: 1}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("expected %d %s features, got %d", n, k, counts[k])
		}
	}
	if counts[KindWaterBorder] != 0 {
		t.Error("no water border expected")
	}
}

func TestAssembleClosesRings(t *testing.T) {
	fc := Assemble(testGeometry())
	ring := fc.Features[0].Geometry.Polygon[0]
	if len(ring) != 5 {
		t.Fatalf("expected a closed 5-point ring, got %d", len(ring))
	}
	if ring[0][0] != ring[4][0] || ring[0][1] != ring[4][1] {
		t.Error("ring is not closed")
	}
}

// ringArea is the shoelace sum of a closed GeoJSON ring; positive means
// counter-clockwise.
func ringArea(ring [][]float64) float64 {
	sum := 0.0
	for i := 1; i < len(ring); i++ {
		sum += ring[i-1][0]*ring[i][1] - ring[i][0]*ring[i-1][1]
	}
	return sum / 2
}

func TestAssembleRingsCounterClockwise(t *testing.T) {
	g := testGeometry()
	clockwise := geo.NewPolygon(geo.Pt(0, 0), geo.Pt(0, 4), geo.Pt(4, 4), geo.Pt(4, 0))
	g.Buildings[0].Shape = clockwise
	g.Water = []geo.Polygon{geo.NewPolygon(geo.Pt(20, 0), geo.Pt(30, 0), geo.Pt(30, 10), geo.Pt(20, 10))}

	fc := Assemble(g)
	polygons := 0
	for _, f := range fc.Features {
		if !f.Geometry.IsPolygon() {
			continue
		}
		polygons++
		if a := ringArea(f.Geometry.Polygon[0]); a <= 0 {
			t.Errorf("%s ring is clockwise (signed area %.1f)", KindOf(f), a)
		}
	}
	if polygons != 2 {
		t.Errorf("expected a building and a water polygon, got %d polygons", polygons)
	}
	if clockwise.SignedArea() >= 0 {
		t.Error("export must not reorder the building itself")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testGeometry(), true); err != nil {
		t.Fatal(err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	if err != nil {
		t.Fatalf("output is not GeoJSON: %v", err)
	}
	if got := Count(fc)[KindBuilding]; got != 1 {
		t.Errorf("expected 1 building after decoding, got %d", got)
	}
}

func TestValidateGeometry(t *testing.T) {
	r := Validate(testGeometry())
	if !r.Valid {
		t.Errorf("expected valid geometry, got %v", r.Errors)
	}
}

func TestValidateNil(t *testing.T) {
	if Validate(nil).Valid {
		t.Error("nil geometry is invalid")
	}
}

func TestValidateFindsProblems(t *testing.T) {
	g := testGeometry()
	g.Gates = append(g.Gates, geo.Pt(3, 3), geo.Pt(10, -10))
	g.Roads = nil
	g.Buildings = append(g.Buildings, layout.Building{ID: "b-1", Shape: geo.NewPolygon(geo.Pt(0, 0), geo.Pt(1, 1))})

	r := Validate(g)
	if r.Valid {
		t.Fatal("expected errors")
	}
	// Off-wall gate, repeated gate, missing roads, duplicate ID, sliver.
	if len(r.Errors) != 5 {
		t.Errorf("expected 5 errors, got %d: %v", len(r.Errors), r.Errors)
	}
}

func TestValidateOverlappingBuildings(t *testing.T) {
	g := testGeometry()
	g.Buildings = append(g.Buildings,
		layout.Building{ID: "b-2", Description: "Home", Shape: geo.NewPolygon(geo.Pt(2, 2), geo.Pt(6, 2), geo.Pt(6, 6), geo.Pt(2, 6))},
		layout.Building{ID: "b-3", Description: "Home", Shape: geo.NewPolygon(geo.Pt(4, 0), geo.Pt(8, 0), geo.Pt(8, -4), geo.Pt(4, -4))},
	)
	r := Validate(g)
	if !r.Valid {
		t.Fatalf("overlaps are warnings, got %v", r.Errors)
	}
	// b-1 and b-2 share a 2x2 corner; b-3 only touches b-1 at a point.
	if len(r.Warnings) != 1 {
		t.Fatalf("expected 1 overlap warning, got %v", r.Warnings)
	}
	w := r.Warnings[0]
	if w.Subject != "b-1" || w.ConflictWith != validation.Buildings.Index(1) {
		t.Errorf("expected b-1 against buildings[1], got %q against %q", w.Subject, w.ConflictWith)
	}
	if got := r.At(validation.Buildings.Index(0)); len(got) != 1 {
		t.Errorf("expected the overlap filed under buildings[0], got %v", got)
	}
}

func TestValidateGeneratedTown(t *testing.T) {
	tw, err := town.Generate(town.Options{Seed: 42, Patches: 20, Walls: true, MaxAttempts: 50})
	if err != nil {
		t.Fatal(err)
	}
	if r := Validate(tw.Geometry()); !r.Valid {
		t.Errorf("generated town should validate, got %v", r.Errors)
	}
}
