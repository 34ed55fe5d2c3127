package town

import (
	"github.com/ChicagoDave/towngen/pkg/geo"
	"github.com/ChicagoDave/towngen/pkg/layout"
)

// Geometry is the flat, read-only output of a generated town.
type Geometry struct {
	Seed        int64             `json:"seed"`
	Buildings   []layout.Building `json:"buildings"`
	Walls       []geo.Edge        `json:"walls"`
	Towers      []geo.Point2D     `json:"towers"`
	Gates       []geo.Point2D     `json:"gates"`
	Roads       [][]geo.Point2D   `json:"roads"`
	Streets     [][]geo.Point2D   `json:"streets"`
	Overlay     []PatchOutline    `json:"overlay,omitempty"`
	Water       []geo.Polygon     `json:"water"`
	WaterBorder geo.Polygon       `json:"water_border"`
}

// PatchOutline is a patch as drawn by the debug overlay.
type PatchOutline struct {
	ID          int             `json:"id"`
	District    layout.District `json:"district"`
	Shape       geo.Polygon     `json:"shape"`
	WithinCity  bool            `json:"within_city"`
	WithinWalls bool            `json:"within_walls"`
	Water       bool            `json:"water"`
	HasCastle   bool            `json:"has_castle"`
}

// Geometry copies the town into a snapshot. Without walls only the castle
// keeps its fortifications.
func (t *Town) Geometry() *Geometry {
	g := &Geometry{
		Seed:        t.Options.Seed,
		Buildings:   append([]layout.Building(nil), t.Buildings...),
		Roads:       clonePaths(t.Roads),
		Streets:     clonePaths(t.Streets),
		WaterBorder: geo.Polygon{Vertices: append([]geo.Point2D(nil), t.WaterBorder...)},
	}

	walls := geo.DistinctEdges(append(t.CityWall.Edges(), t.Castle.Wall.Edges()...))
	towers := unionPoints(t.CityWall.Towers, t.Castle.Wall.Towers)
	gates := unionPoints(t.CityWall.Gates, t.Castle.Wall.Gates)
	if t.Options.Walls {
		g.Walls, g.Towers, g.Gates = walls, towers, gates
	} else {
		keep := t.Castle.Patch.Shape
		for _, e := range walls {
			if keep.HasVertex(e.A) && keep.HasVertex(e.B) {
				g.Walls = append(g.Walls, e)
			}
		}
		g.Towers = filterPoints(towers, keep.HasVertex)
		g.Gates = filterPoints(gates, keep.HasVertex)
	}

	for _, p := range t.Patches {
		if p.Water {
			g.Water = append(g.Water, p.Shape.Clone())
		}
		if t.Options.Overlay {
			g.Overlay = append(g.Overlay, PatchOutline{
				ID:          p.ID,
				District:    p.District,
				Shape:       p.Shape.Clone(),
				WithinCity:  p.WithinCity,
				WithinWalls: p.WithinWalls,
				Water:       p.Water,
				HasCastle:   p.HasCastle,
			})
		}
	}
	return g
}

func clonePaths(paths [][]geo.Point2D) [][]geo.Point2D {
	out := make([][]geo.Point2D, len(paths))
	for i, p := range paths {
		out[i] = append([]geo.Point2D(nil), p...)
	}
	return out
}

func unionPoints(a, b []geo.Point2D) []geo.Point2D {
	var out []geo.Point2D
	for _, list := range [][]geo.Point2D{a, b} {
		for _, v := range list {
			if !geo.ContainsPoint(out, v) {
				out = append(out, v)
			}
		}
	}
	return out
}

func filterPoints(pts []geo.Point2D, keep func(geo.Point2D) bool) []geo.Point2D {
	var out []geo.Point2D
	for _, v := range pts {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
