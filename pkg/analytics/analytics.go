// Package analytics computes summary statistics over a generated town.
package analytics

import (
	"sort"

	"github.com/ChicagoDave/towngen/pkg/geo"
	"github.com/ChicagoDave/towngen/pkg/layout"
	"github.com/ChicagoDave/towngen/pkg/town"
	"github.com/ChicagoDave/towngen/pkg/validation"
)

// districtOrder fixes the row order of the district table.
var districtOrder = []layout.District{
	layout.DistrictCastle,
	layout.DistrictMarket,
	layout.DistrictRich,
	layout.DistrictTown,
	layout.DistrictPoor,
	layout.DistrictOutsideWall,
	layout.DistrictFarm,
	layout.DistrictEmpty,
}

// Summarize measures a town snapshot and checks the result for towns that
// came out implausibly sparse.
func Summarize(g *town.Geometry) (*Summary, *validation.Report) {
	report := validation.NewReport()
	s := &Summary{Seed: g.Seed}

	// 1. Buildings and districts
	byDistrict := make(map[layout.District]*DistrictStats)
	stats := func(d layout.District) *DistrictStats {
		ds, ok := byDistrict[d]
		if !ok {
			ds = &DistrictStats{District: d}
			byDistrict[d] = ds
		}
		return ds
	}
	archetypes := make(map[string]int)
	for _, b := range g.Buildings {
		area := b.Shape.Area()
		s.Buildings++
		s.BuiltArea += area
		ds := stats(b.District)
		ds.Buildings++
		ds.BuiltArea += area
		archetypes[b.Description]++
	}
	for _, p := range g.Overlay {
		stats(p.District).Patches++
	}
	if s.Buildings > 0 {
		s.AvgBuildingArea = s.BuiltArea / float64(s.Buildings)
	}
	s.EstimatedPopulation = layout.EstimatedPopulation(s.Buildings)
	s.Districts = sortDistricts(byDistrict)
	s.Archetypes = sortArchetypes(archetypes)

	// 2. Fortifications
	for _, e := range g.Walls {
		s.WallLength += e.Length()
	}
	s.Towers = len(g.Towers)
	s.Gates = len(g.Gates)

	// 3. Roads
	s.RoadLength = pathLength(g.Roads)
	s.StreetLength = pathLength(g.Streets)

	// 4. Water
	for _, w := range g.Water {
		s.WaterArea += w.Area()
	}

	validateSummary(s, report)
	return s, report
}

func pathLength(paths [][]geo.Point2D) float64 {
	total := 0.0
	for _, p := range paths {
		total += geo.NewPolyline(p...).Length()
	}
	return total
}

func sortDistricts(m map[layout.District]*DistrictStats) []DistrictStats {
	out := make([]DistrictStats, 0, len(m))
	for _, d := range districtOrder {
		if ds, ok := m[d]; ok {
			out = append(out, *ds)
			delete(m, d)
		}
	}
	// Unlabelled leftovers go last.
	var rest []DistrictStats
	for _, ds := range m {
		rest = append(rest, *ds)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].District < rest[j].District })
	return append(out, rest...)
}

func sortArchetypes(m map[string]int) []ArchetypeCount {
	out := make([]ArchetypeCount, 0, len(m))
	for desc, n := range m {
		out = append(out, ArchetypeCount{Description: desc, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Description < out[j].Description
	})
	return out
}
