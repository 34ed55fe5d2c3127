package town

import (
	"github.com/quasilyte/gmath"

	"github.com/ChicagoDave/towngen/pkg/geo"
	"github.com/ChicagoDave/towngen/pkg/routing"
)

const (
	roadSmoothing = 3.0
	roadReach     = 100000.0
)

// topology builds the road graph. The castle, the wall except its gates and
// all water are impassable.
func (t *Town) topology() *routing.Topology {
	var blocked []geo.Point2D
	blocked = append(blocked, t.Castle.Patch.Shape.Vertices...)
	blocked = append(blocked, t.CityWall.Circumference...)
	open := blocked[:0]
	for _, v := range blocked {
		if !geo.ContainsPoint(t.Gates, v) {
			open = append(open, v)
		}
	}
	blocked = open
	for _, p := range t.waterPatches() {
		blocked = append(blocked, p.Shape.Vertices...)
	}

	parcels := make([]routing.Parcel, len(t.Patches))
	for i, p := range t.Patches {
		parcels[i] = routing.Parcel{Shape: p.Shape, InCity: p.WithinCity}
	}
	return routing.NewTopology(parcels, blocked, t.CityWall.Circumference)
}

// buildRoads runs a street from every gate to the market through the city
// and a road from the countryside to every city gate. A city gate no road
// can reach becomes a tower.
func (t *Town) buildRoads() error {
	topo := t.topology()

	var roads, streets [][]geo.Point2D
	for _, gate := range append([]geo.Point2D(nil), t.Gates...) {
		end := geo.Nearest(t.Market.Shape.Vertices, gate)
		street := topo.BuildPath(gate, end, topo.Outer)
		if street == nil {
			continue
		}
		streets = append(streets, street)

		if !geo.ContainsPoint(t.CityWall.Gates, gate) {
			continue
		}
		out := gmath.Vec{X: gate.X - t.Center.X, Y: gate.Y - t.Center.Y}.Mulf(roadReach)
		start, ok := topo.NearestPoint(t.Center.Add(geo.Pt(out.X, out.Y)))
		var road []geo.Point2D
		if ok {
			road = topo.BuildPath(start, gate, topo.Inner)
		}
		if road == nil {
			t.CityWall.demote(gate)
			t.Gates = removePoint(t.Gates, gate)
			continue
		}
		roads = append(roads, road)
	}
	if len(roads) == 0 {
		return ErrNoRoads
	}

	t.Roads = t.tidyUp(roads)
	t.Streets = t.tidyUp(streets)
	for i, road := range t.Roads {
		t.Roads[i] = t.pruneRoad(road)
	}
	return nil
}

func (t *Town) inMarket(v geo.Point2D) bool {
	return t.Market.Shape.HasVertex(v) || t.Market.Shape.Contains(v)
}

// tidyUp merges paths into polylines, smooths them and moves the smoothed
// corners everywhere they are shared.
func (t *Town) tidyUp(paths [][]geo.Point2D) [][]geo.Point2D {
	arteries := routing.MergePaths(paths, func(e geo.Edge) bool {
		return t.inMarket(e.A) && t.inMarket(e.B)
	})
	out := make([][]geo.Point2D, 0, len(arteries))
	for _, artery := range arteries {
		smoothed := geo.NewPolyline(artery...).Smooth(roadSmoothing).Points
		for i, v := range artery {
			if !v.Equal(smoothed[i]) {
				t.movePoint(v, smoothed[i])
			}
		}
		out = append(out, smoothed)
	}
	return out
}

// pruneRoad drops the corners of a road that lie only in city patches,
// keeping gates. A road that would lose its ends is left alone.
func (t *Town) pruneRoad(road []geo.Point2D) []geo.Point2D {
	kept := make([]geo.Point2D, 0, len(road))
	for _, v := range road {
		if geo.ContainsPoint(t.Gates, v) || !t.insideCity(v) {
			kept = append(kept, v)
		}
	}
	if len(kept) < 2 {
		return road
	}
	return kept
}

func (t *Town) insideCity(v geo.Point2D) bool {
	found := false
	for _, p := range t.Patches {
		if !p.Shape.HasVertex(v) && !p.Shape.Contains(v) {
			continue
		}
		if !p.WithinCity {
			return false
		}
		found = true
	}
	return found
}

func removePoint(pts []geo.Point2D, v geo.Point2D) []geo.Point2D {
	if i := geo.IndexOf(pts, v); i >= 0 {
		return append(pts[:i], pts[i+1:]...)
	}
	return pts
}
