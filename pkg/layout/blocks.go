package layout

import (
	"math"
	"math/rand/v2"

	"github.com/ChicagoDave/towngen/internal/rnd"
	"github.com/ChicagoDave/towngen/pkg/geo"
)

// maxDepth is the deepest subdivision level that may still be split.
const maxDepth = 5

// CityBlock insets a patch outline by a street half-width per edge. Convex
// outlines are cut edge by edge; others go through the general buffer.
func CityBlock(shape geo.Polygon, insets []float64) geo.Polygon {
	if shape.IsConvex() {
		return shape.Shrink(insets)
	}
	return shape.Buffer(insets)
}

// CreateAlleys recursively bisects block into lots, starting each cut from
// the longest edge. With split set the first cut leaves an alley.
func CreateAlleys(rng *rand.Rand, block geo.Polygon, p Params, split bool) []geo.Polygon {
	return createAlleys(rng, block, p, split, 0)
}

func createAlleys(rng *rand.Rand, block geo.Polygon, p Params, split bool, level int) []geo.Polygon {
	anchor, _, _ := block.LongestEdge()

	spread := 0.8 * p.GridChaos
	ratio := (1-spread)/2 + rng.Float64()*spread

	// Small blocks stay rectangular.
	angleSpread := math.Pi / 6 * p.GridChaos
	if block.Area() < p.MinArea*4 {
		angleSpread = 0
	}
	angle := (rng.Float64() - 0.5) * angleSpread

	gap := 0.0
	if split {
		gap = Alley
	}

	var lots []geo.Polygon
	for _, half := range block.Bisect(anchor, ratio, angle, gap) {
		area := half.Area()
		if half.IsEmpty() || area <= 0 {
			continue
		}
		limit := p.MinArea * math.Pow(2, 4*p.SizeChaos*(rng.Float64()-0.5))
		if area < limit || level > maxDepth {
			if !rnd.Prob(rng, p.Empty(half)) {
				lots = append(lots, half)
			}
			continue
		}
		again := area > p.MinArea/(rng.Float64()*rng.Float64())
		lots = append(lots, createAlleys(rng, half, p, again, level+1)...)
	}
	return lots
}

// IsNarrow reports whether a lot, turned to lie along its longest edge, is
// too thin in either direction.
func IsNarrow(lot geo.Polygon) bool {
	a, b, _ := lot.LongestEdge()
	aligned := lot.Rotate(-b.Sub(a).Angle())
	lo, hi := aligned.BoundingBox()
	w, h := hi.X-lo.X, hi.Y-lo.Y
	if w <= 0 || h <= 0 {
		return true
	}
	return h/w <= NarrowBuilding || w/h <= NarrowBuilding
}

// Footprints subdivides a block and returns the finished building outlines.
func Footprints(rng *rand.Rand, block geo.Polygon, p Params) []geo.Polygon {
	var out []geo.Polygon
	for _, lot := range CreateAlleys(rng, block, p, true) {
		if IsNarrow(lot) {
			continue
		}
		shape := lot.SortClockwise().RemoveSharpEdges()
		if shape.Len() > 3 && shape.Area() > 0 {
			out = append(out, shape)
		}
	}
	return out
}
