package town

import (
	"fmt"
	"sort"

	"github.com/ChicagoDave/towngen/pkg/geo"
)

// Wall is a run of fortified corners. Gates and Towers partition
// Circumference.
type Wall struct {
	Circumference []geo.Point2D `json:"circumference"`
	Gates         []geo.Point2D `json:"gates"`
	Towers        []geo.Point2D `json:"towers"`
	// Closed walls also join the last corner to the first.
	Closed bool `json:"closed"`
}

// Borders reports whether a and b are consecutive wall corners.
func (w *Wall) Borders(a, b geo.Point2D) bool {
	i := geo.IndexOf(w.Circumference, a)
	if i < 0 {
		return false
	}
	n := len(w.Circumference)
	if i+1 < n && w.Circumference[i+1].Equal(b) {
		return true
	}
	if i > 0 && w.Circumference[i-1].Equal(b) {
		return true
	}
	if w.Closed && n > 2 {
		return (i == n-1 && w.Circumference[0].Equal(b)) || (i == 0 && w.Circumference[n-1].Equal(b))
	}
	return false
}

// Edges returns the wall segments.
func (w *Wall) Edges() []geo.Edge {
	edges := geo.EdgesOf(w.Circumference)
	if w.Closed && len(w.Circumference) > 2 {
		edges = append(edges, geo.Edge{A: w.Circumference[len(w.Circumference)-1], B: w.Circumference[0]})
	}
	return edges
}

// ReplacePoint moves a corner, keeping gates and towers in step.
func (w *Wall) ReplacePoint(old, v geo.Point2D) {
	replaceAll(w.Circumference, old, v)
	replaceAll(w.Gates, old, v)
	replaceAll(w.Towers, old, v)
}

func (w *Wall) demote(gate geo.Point2D) {
	if i := geo.IndexOf(w.Gates, gate); i >= 0 {
		w.Gates = append(w.Gates[:i], w.Gates[i+1:]...)
		w.Towers = append(w.Towers, gate)
	}
}

func (t *Town) buildWalls() error {
	circumference := FindCircumference(t.cityPatches())
	if len(circumference) < 3 {
		return fmt.Errorf("%w: city outline has %d corners", ErrDegenerate, len(circumference))
	}
	castleCorners := t.Castle.Patch.Shape.Clone().Vertices

	// Shoreline corners carry no wall, except where the shore meets dry land.
	allowed := make([]geo.Point2D, 0, len(circumference))
	for _, v := range circumference {
		if geo.ContainsPoint(t.WaterBorder, v) && !t.touchesDryOutside(v) {
			continue
		}
		allowed = append(allowed, v)
	}

	closed := true
	if t.Options.Water {
		var sea []geo.Point2D
		for _, v := range allowed {
			for _, p := range t.PatchesAt(v) {
				if p.Water {
					sea = append(sea, v)
					break
				}
			}
		}
		if len(sea) >= 2 {
			allowed = rotateToShore(allowed, sea[0], sea[1])
			closed = false
		}
	}
	t.CityWall = t.placeWall(allowed, 2, 10, castleCorners, closed)

	// The castle wall runs along the castle's inner side, from one city
	// wall corner to the next.
	n := len(castleCorners)
	start := -1
	for k, v := range castleCorners {
		if geo.ContainsPoint(allowed, v) && !geo.ContainsPoint(allowed, castleCorners[(k+1)%n]) {
			start = k
			break
		}
	}
	if start < 0 {
		return fmt.Errorf("%w: castle does not meet the city wall", ErrDegenerate)
	}
	run := []geo.Point2D{castleCorners[start]}
	for k := 1; k < n; k++ {
		v := castleCorners[(start+k)%n]
		run = append(run, v)
		if geo.ContainsPoint(allowed, v) {
			break
		}
	}

	t.Castle.Wall = t.placeWall(run, 1, 1, circumference, false)
	return nil
}

func (t *Town) touchesDryOutside(v geo.Point2D) bool {
	for _, p := range t.PatchesAt(v) {
		if !p.WithinCity && !p.Water {
			return true
		}
	}
	return false
}

// rotateToShore reorders a wall loop so it runs from one shore end to the
// other without crossing the lake between them.
func rotateToShore(pts []geo.Point2D, a, b geo.Point2D) []geo.Point2D {
	n := len(pts)
	i, j := geo.IndexOf(pts, a), geo.IndexOf(pts, b)
	start := j
	if (j+1)%n == i {
		start = i
	}
	out := make([]geo.Point2D, 0, n)
	out = append(out, pts[start:]...)
	return append(out, pts[:start]...)
}

// placeWall picks gates among corners shared by several city patches, far
// from the castle first, skipping the two candidates after each pick. The
// single outside patch at a gate is split so a road can leave through it.
// Corners that do not become gates are towers.
func (t *Town) placeWall(corners []geo.Point2D, minGates, maxGates int, illegal []geo.Point2D, closed bool) *Wall {
	w := &Wall{Circumference: append([]geo.Point2D(nil), corners...), Closed: closed}

	var candidates []geo.Point2D
	for _, v := range corners {
		if geo.ContainsPoint(illegal, v) {
			continue
		}
		owners := 0
		for _, p := range t.PatchesAt(v) {
			if p.WithinCity {
				owners++
			}
		}
		if owners > 1 {
			candidates = append(candidates, v)
		}
	}
	keep := t.Castle.Patch.Center()
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance(keep) > candidates[j].Distance(keep)
	})

	towers := append([]geo.Point2D(nil), w.Circumference...)
	var gates []geo.Point2D
	for attempts := 0; (len(gates) < minGates || attempts < 4) && len(candidates) > 0 && len(gates) < maxGates; attempts++ {
		gate := candidates[0]
		candidates = candidates[1:]
		for k := 0; k < 2 && len(candidates) > 0; k++ {
			candidates = candidates[1:]
		}

		if err := t.splitAtGate(gate, w.Circumference); err != nil {
			continue
		}
		gates = append(gates, gate)
		if i := geo.IndexOf(towers, gate); i >= 0 {
			towers = append(towers[:i], towers[i+1:]...)
		}
	}

	w.Gates = gates
	w.Towers = towers
	t.Gates = append(t.Gates, gates...)
	return w
}

// splitAtGate cuts the outside patch at gate from the gate to its corner
// lying furthest into it, so a road can run straight out.
func (t *Town) splitAtGate(gate geo.Point2D, wall []geo.Point2D) error {
	var outside []*Patch
	for _, p := range t.PatchesAt(gate) {
		if !p.WithinCity {
			outside = append(outside, p)
		}
	}
	if len(outside) != 1 {
		return nil
	}
	neighbour := outside[0]
	shape := neighbour.Shape

	inward := shape.Next(gate).Sub(shape.Prev(gate)).Perp()
	target := geo.Invalid
	best := 0.0
	for _, v := range shape.Vertices {
		if geo.ContainsPoint(wall, v) || v.Equal(gate) {
			continue
		}
		dir := v.Sub(gate)
		score := dir.Dot(inward) / dir.Length()
		if !target.IsValid() || score > best {
			target, best = v, score
		}
	}
	if !target.IsValid() {
		return fmt.Errorf("gate %v: %w", gate, geo.ErrInvalidOperation)
	}

	a, b, err := shape.SplitAt(gate, target)
	if err != nil {
		return err
	}
	if a.DistinctCount() < 3 || b.DistinctCount() < 3 {
		target = shape.Next(target)
		if a, b, err = shape.SplitAt(gate, target); err != nil {
			return err
		}
		if a.DistinctCount() < 3 || b.DistinctCount() < 3 {
			return fmt.Errorf("gate %v: split leaves a sliver: %w", gate, geo.ErrInvalidOperation)
		}
	}

	pa, pb := t.newPatch(a), t.newPatch(b)
	pa.Water, pb.Water = neighbour.Water, neighbour.Water
	t.replacePatch(neighbour, pa, pb)
	return nil
}
