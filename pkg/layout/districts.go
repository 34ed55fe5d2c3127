package layout

import (
	"math"
	"math/rand/v2"

	"github.com/fogleman/ease"

	"github.com/ChicagoDave/towngen/pkg/geo"
)

// District classifies a patch and decides how it is built up.
type District string

const (
	DistrictTown        District = "town"
	DistrictCastle      District = "castle"
	DistrictRich        District = "rich"
	DistrictPoor        District = "poor"
	DistrictOutsideWall District = "outside_wall"
	DistrictFarm        District = "farm"
	DistrictMarket      District = "market"
	DistrictEmpty       District = "empty"
)

// Street and lot dimensions.
const (
	MainStreet     = 5.0
	RegularStreet  = 3.0
	Alley          = 2.0
	NarrowBuilding = 0.3
)

// HasBuildings reports whether the district is subdivided into lots.
func (d District) HasBuildings() bool {
	switch d {
	case DistrictMarket, DistrictEmpty, "":
		return false
	}
	return true
}

// Params drive the recursive subdivision of one block.
type Params struct {
	MinArea   float64
	GridChaos float64
	SizeChaos float64
	// Empty returns the chance that a finished lot is left unbuilt.
	Empty func(lot geo.Polygon) float64
}

func constant(p float64) func(geo.Polygon) float64 {
	return func(geo.Polygon) float64 { return p }
}

// WallProximity locates an outside-wall patch relative to the wall.
type WallProximity struct {
	PatchCenter geo.Point2D
	NearestWall geo.Point2D
}

// emptiness of outside-wall lots grows with the cube of their distance from
// the nearest wall point, relative to the patch center's distance.
func (w WallProximity) emptiness(lot geo.Polygon) float64 {
	reach := w.PatchCenter.Distance(w.NearestWall) * 1.5
	if reach <= 0 {
		return 0.95
	}
	p := ease.InCubic(lot.Center().Distance(w.NearestWall) / reach)
	return math.Max(0.05, math.Min(0.95, p))
}

// ParamsFor draws the subdivision parameters of district d. It reports
// false for districts without buildings.
func ParamsFor(d District, rng *rand.Rand, wall WallProximity) (Params, bool) {
	r := rng.Float64
	switch d {
	case DistrictCastle:
		return Params{MinArea: 200 + 200*r()*r(), Empty: constant(0.8)}, true
	case DistrictPoor:
		return Params{MinArea: 10 + 30*r()*r(), GridChaos: 0.2 + r()*0.02, SizeChaos: 1, Empty: constant(0.01)}, true
	case DistrictOutsideWall:
		return Params{MinArea: 5 + 30*r()*r(), GridChaos: 0.4 + r()*0.02, SizeChaos: 1, Empty: wall.emptiness}, true
	case DistrictRich:
		return Params{MinArea: 60 + 160*r()*r(), GridChaos: 0.05 + r()*0.02, SizeChaos: 0.2, Empty: constant(0.2)}, true
	case DistrictTown:
		return Params{MinArea: 10 + 80*r()*r(), GridChaos: 0.05 + r()*0.02, SizeChaos: 0.06, Empty: constant(0.02)}, true
	case DistrictFarm:
		return Params{MinArea: 10 + 80*r()*r(), GridChaos: 0.05 + r()*0.02, SizeChaos: 2, Empty: constant(0.99)}, true
	}
	return Params{}, false
}
