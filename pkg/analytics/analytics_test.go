package analytics

import (
	"math"
	"testing"

	"github.com/ChicagoDave/towngen/pkg/geo"
	"github.com/ChicagoDave/towngen/pkg/layout"
	"github.com/ChicagoDave/towngen/pkg/town"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func rect(x, y, w, h float64) geo.Polygon {
	return geo.NewPolygon(geo.Pt(x, y), geo.Pt(x+w, y), geo.Pt(x+w, y+h), geo.Pt(x, y+h))
}

func smallTown() *town.Geometry {
	return &town.Geometry{
		Seed: 9,
		Buildings: []layout.Building{
			{ID: "b-1", District: layout.DistrictTown, Description: "Home", Shape: rect(0, 0, 4, 4)},
			{ID: "b-2", District: layout.DistrictTown, Description: "Home", Shape: rect(10, 0, 2, 3)},
			{ID: "b-3", District: layout.DistrictRich, Description: "Shoemakers", Shape: rect(20, 0, 5, 2)},
		},
		Walls: []geo.Edge{
			{A: geo.Pt(0, 0), B: geo.Pt(30, 0)},
			{A: geo.Pt(30, 0), B: geo.Pt(30, 40)},
		},
		Towers:  []geo.Point2D{geo.Pt(0, 0)},
		Gates:   []geo.Point2D{geo.Pt(30, 0)},
		Roads:   [][]geo.Point2D{{geo.Pt(60, 0), geo.Pt(30, 0)}},
		Streets: [][]geo.Point2D{{geo.Pt(30, 0), geo.Pt(30, 10), geo.Pt(20, 10)}},
		Overlay: []town.PatchOutline{
			{ID: 1, District: layout.DistrictTown},
			{ID: 2, District: layout.DistrictTown},
			{ID: 3, District: layout.DistrictFarm},
			{ID: 4, District: layout.DistrictMarket},
		},
		Water: []geo.Polygon{rect(-50, -50, 10, 10)},
	}
}

func TestSummarizeTotals(t *testing.T) {
	s, _ := Summarize(smallTown())

	if s.Seed != 9 {
		t.Errorf("expected seed 9, got %d", s.Seed)
	}
	if s.Buildings != 3 {
		t.Errorf("expected 3 buildings, got %d", s.Buildings)
	}
	if !approxEqual(s.BuiltArea, 32, tolerance) {
		t.Errorf("expected built area 32, got %f", s.BuiltArea)
	}
	if !approxEqual(s.AvgBuildingArea, 32.0/3, tolerance) {
		t.Errorf("expected average area %.2f, got %f", 32.0/3, s.AvgBuildingArea)
	}
	if s.EstimatedPopulation != layout.EstimatedPopulation(3) {
		t.Errorf("expected population %d, got %d", layout.EstimatedPopulation(3), s.EstimatedPopulation)
	}
	if !approxEqual(s.WallLength, 70, tolerance) {
		t.Errorf("expected wall length 70, got %f", s.WallLength)
	}
	if !approxEqual(s.RoadLength, 30, tolerance) {
		t.Errorf("expected road length 30, got %f", s.RoadLength)
	}
	if !approxEqual(s.StreetLength, 20, tolerance) {
		t.Errorf("expected street length 20, got %f", s.StreetLength)
	}
	if !approxEqual(s.WaterArea, 100, tolerance) {
		t.Errorf("expected water area 100, got %f", s.WaterArea)
	}
	if s.Towers != 1 || s.Gates != 1 {
		t.Errorf("expected 1 tower and 1 gate, got %d and %d", s.Towers, s.Gates)
	}
}

func TestSummarizeDistrictOrder(t *testing.T) {
	s, _ := Summarize(smallTown())
	want := []layout.District{layout.DistrictMarket, layout.DistrictRich, layout.DistrictTown, layout.DistrictFarm}
	if len(s.Districts) != len(want) {
		t.Fatalf("expected %d districts, got %+v", len(want), s.Districts)
	}
	for i, d := range want {
		if s.Districts[i].District != d {
			t.Errorf("row %d: expected %s, got %s", i, d, s.Districts[i].District)
		}
	}
	townRow := s.Districts[2]
	if townRow.Patches != 2 || townRow.Buildings != 2 || !approxEqual(townRow.BuiltArea, 22, tolerance) {
		t.Errorf("unexpected town row %+v", townRow)
	}
}

func TestSummarizeArchetypes(t *testing.T) {
	s, _ := Summarize(smallTown())
	if len(s.Archetypes) != 2 {
		t.Fatalf("expected 2 archetypes, got %+v", s.Archetypes)
	}
	if s.Archetypes[0].Description != "Home" || s.Archetypes[0].Count != 2 {
		t.Errorf("expected Home x2 first, got %+v", s.Archetypes[0])
	}
}

func TestSummarizeReport(t *testing.T) {
	_, report := Summarize(smallTown())
	if !report.Valid {
		t.Errorf("expected valid report, got %v", report.Errors)
	}
	if len(report.Warnings) != 1 {
		t.Errorf("expected a small-settlement warning, got %v", report.Warnings)
	}
	// Farm patch without buildings.
	if len(report.Info) != 1 {
		t.Errorf("expected 1 info, got %v", report.Info)
	}
}

func TestSummarizeEmptyTown(t *testing.T) {
	g := &town.Geometry{Walls: []geo.Edge{{A: geo.Pt(0, 0), B: geo.Pt(1, 0)}}}
	s, report := Summarize(g)
	if s.AvgBuildingArea != 0 {
		t.Errorf("expected zero average, got %f", s.AvgBuildingArea)
	}
	if report.Valid {
		t.Fatal("a town without buildings is invalid")
	}
	if len(report.Errors) != 2 {
		t.Errorf("expected missing buildings and missing gate, got %v", report.Errors)
	}
}

func TestSummarizeGeneratedTown(t *testing.T) {
	tw, err := town.Generate(town.Options{Seed: 42, Patches: 20, Walls: true, MaxAttempts: 50})
	if err != nil {
		t.Fatal(err)
	}
	s, _ := Summarize(tw.Geometry())
	if s.Buildings != len(tw.Buildings) {
		t.Errorf("expected %d buildings, got %d", len(tw.Buildings), s.Buildings)
	}
	if s.WallLength <= 0 || s.RoadLength <= 0 {
		t.Errorf("expected walls and roads, got %f and %f", s.WallLength, s.RoadLength)
	}
}
