package scene

import (
	"fmt"

	"github.com/ChicagoDave/towngen/pkg/geo"
	"github.com/ChicagoDave/towngen/pkg/town"
	"github.com/ChicagoDave/towngen/pkg/validation"
)

// Validate performs structural checks on a town snapshot: ids, polygon
// shapes, gates against the wall and the road network.
func Validate(g *town.Geometry) *validation.Report {
	r := validation.NewReport()

	if g == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelGeometry,
			Message: "town geometry is nil",
		})
		return r
	}

	validateBuildings(g, r)
	validateOverlaps(g, r)
	validateWater(g, r)
	validateGates(g, r)
	validateRoads(g, r)

	return r
}

func validateBuildings(g *town.Geometry, r *validation.Report) {
	seen := make(map[string]int, len(g.Buildings))
	for i, b := range g.Buildings {
		path := validation.Buildings.Index(i)
		if b.ID == "" {
			r.AddError(validation.Result{
				Level:    validation.LevelGeometry,
				Message:  fmt.Sprintf("building at index %d has empty ID", i),
				Path:     path.Field("id"),
				Expected: "non-empty string",
			})
		} else if prev, exists := seen[b.ID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelGeometry,
				Message:     fmt.Sprintf("duplicate building ID %q at indices %d and %d", b.ID, prev, i),
				Path:        path.Field("id"),
				Subject:     b.ID,
				ActualValue: b.ID,
			})
		} else {
			seen[b.ID] = i
		}

		if n := b.Shape.DistinctCount(); n < 3 {
			r.AddError(validation.Result{
				Level:       validation.LevelGeometry,
				Message:     fmt.Sprintf("building %q has %d distinct corners", b.ID, n),
				Path:        path.Field("shape"),
				Subject:     b.ID,
				ActualValue: n,
				Expected:    ">= 3",
			})
			continue
		}
		if a := b.Shape.Area(); a <= 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelGeometry,
				Message:     fmt.Sprintf("building %q has no area", b.ID),
				Path:        path.Field("shape"),
				Subject:     b.ID,
				ActualValue: a,
				Expected:    "> 0",
			})
		}
		if b.Description == "" {
			r.AddWarning(validation.Result{
				Level:   validation.LevelGeometry,
				Message: fmt.Sprintf("building %q has no description", b.ID),
				Path:    path.Field("description"),
				Subject: b.ID,
			})
		}
	}
}

// overlapTolerance is the shared area below which two footprints are
// considered to touch rather than overlap.
const overlapTolerance = 0.5

func validateOverlaps(g *town.Geometry, r *validation.Report) {
	type box struct{ lo, hi geo.Point2D }
	boxes := make([]box, len(g.Buildings))
	for i, b := range g.Buildings {
		boxes[i].lo, boxes[i].hi = b.Shape.BoundingBox()
	}
	for i, a := range g.Buildings {
		for j := i + 1; j < len(g.Buildings); j++ {
			if boxes[i].hi.X <= boxes[j].lo.X || boxes[j].hi.X <= boxes[i].lo.X ||
				boxes[i].hi.Y <= boxes[j].lo.Y || boxes[j].hi.Y <= boxes[i].lo.Y {
				continue
			}
			b := g.Buildings[j]
			shared := a.Shape.Area() - a.Shape.Subtract(b.Shape).Area
			if shared > overlapTolerance {
				r.AddWarning(validation.Result{
					Level:        validation.LevelGeometry,
					Message:      fmt.Sprintf("buildings %q and %q overlap by %.1f", a.ID, b.ID, shared),
					Path:         validation.Buildings.Index(i).Field("shape"),
					Subject:      a.ID,
					ActualValue:  shared,
					ConflictWith: validation.Buildings.Index(j),
				})
			}
		}
	}
}

func validateWater(g *town.Geometry, r *validation.Report) {
	for i, w := range g.Water {
		if n := w.DistinctCount(); n < 3 {
			r.AddError(validation.Result{
				Level:       validation.LevelGeometry,
				Message:     fmt.Sprintf("water polygon %d has %d distinct corners", i, n),
				Path:        validation.Water.Index(i),
				ActualValue: n,
				Expected:    ">= 3",
			})
		}
	}
	if len(g.Water) > 0 && g.WaterBorder.Len() < 3 {
		r.AddWarning(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     "town has water but no water border",
			Path:        validation.WaterBorder,
			ActualValue: g.WaterBorder.Len(),
		})
	}
}

func validateGates(g *town.Geometry, r *validation.Report) {
	var corners []geo.Point2D
	for _, w := range g.Walls {
		corners = append(corners, w.A, w.B)
	}
	for i, gate := range g.Gates {
		if !geo.ContainsPoint(corners, gate) {
			r.AddError(validation.Result{
				Level:        validation.LevelGeometry,
				Message:      fmt.Sprintf("gate %d at (%.2f, %.2f) is not on a wall", i, gate.X, gate.Y),
				Path:         validation.Gates.Index(i),
				ActualValue:  gate,
				ConflictWith: validation.Walls,
			})
		}
		for j := i + 1; j < len(g.Gates); j++ {
			if gate.Equal(g.Gates[j]) {
				r.AddError(validation.Result{
					Level:        validation.LevelGeometry,
					Message:      fmt.Sprintf("gates %d and %d coincide", i, j),
					Path:         validation.Gates.Index(j),
					ConflictWith: validation.Gates.Index(i),
				})
			}
		}
	}
	for i, tower := range g.Towers {
		if geo.ContainsPoint(g.Gates, tower) {
			r.AddWarning(validation.Result{
				Level:        validation.LevelGeometry,
				Message:      fmt.Sprintf("tower %d stands in a gate", i),
				Path:         validation.Towers.Index(i),
				ConflictWith: validation.Gates,
			})
		}
	}
}

func validateRoads(g *town.Geometry, r *validation.Report) {
	if len(g.Roads) == 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     "town has no roads",
			Path:        validation.Roads,
			ActualValue: 0,
			Expected:    ">= 1",
			Suggestions: []string{"Regenerate with another seed or more patches"},
		})
	}
	check := func(name string, root validation.Path, lines [][]geo.Point2D) {
		for i, l := range lines {
			if len(l) < 2 {
				r.AddError(validation.Result{
					Level:       validation.LevelGeometry,
					Message:     fmt.Sprintf("%s %d has %d points", name, i, len(l)),
					Path:        root.Index(i),
					ActualValue: len(l),
					Expected:    ">= 2",
				})
			}
		}
	}
	check("road", validation.Roads, g.Roads)
	check("street", validation.Streets, g.Streets)

	r.AddInfo(validation.Result{
		Level:   validation.LevelGeometry,
		Message: fmt.Sprintf("%d buildings, %d gates, %d roads, %d streets", len(g.Buildings), len(g.Gates), len(g.Roads), len(g.Streets)),
	})
}
