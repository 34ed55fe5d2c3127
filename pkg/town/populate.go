package town

import (
	"fmt"

	"github.com/ChicagoDave/towngen/pkg/geo"
	"github.com/ChicagoDave/towngen/pkg/layout"
)

// populate assigns a district to every patch and fills the districts that
// carry buildings with labelled footprints.
func (t *Town) populate() {
	for _, p := range t.Patches {
		p.District = t.classify(p)
	}
	t.Market.District = layout.DistrictMarket
	t.Castle.Patch.District = layout.DistrictCastle

	for _, p := range t.Patches {
		if !p.District.HasBuildings() {
			continue
		}
		block := layout.CityBlock(p.Shape, t.blockInsets(p))
		if block.Len() < 3 || block.Area() <= 0 {
			continue
		}
		params, ok := layout.ParamsFor(p.District, t.rng, t.wallProximity(p))
		if !ok {
			continue
		}
		for _, shape := range layout.Footprints(t.rng, block, params) {
			t.Buildings = append(t.Buildings, layout.Building{
				ID:       fmt.Sprintf("b-%d", len(t.Buildings)+1),
				PatchID:  p.ID,
				District: p.District,
				Shape:    shape,
			})
		}
	}
	layout.PlaceBuildings(t.Buildings)
}

func (t *Town) classify(p *Patch) layout.District {
	if p.WithinCity {
		d := layout.DistrictTown
		for _, n := range t.Neighbours(p) {
			if n.HasCastle {
				d = layout.DistrictRich
				break
			}
		}
		for _, n := range t.Neighbours(p) {
			if n.Water {
				d = layout.DistrictPoor
				break
			}
		}
		return d
	}
	if p.Water {
		return layout.DistrictEmpty
	}
	for _, v := range p.Shape.Vertices {
		if geo.ContainsPoint(t.CityWall.Circumference, v) {
			return layout.DistrictOutsideWall
		}
	}
	return layout.DistrictFarm
}

// blockInsets returns the street half-width to keep clear along each edge.
// Edges on the wall, on a street or around the market face a main street.
func (t *Town) blockInsets(p *Patch) []float64 {
	var onStreet []geo.Point2D
	for _, s := range t.Streets {
		onStreet = append(onStreet, s...)
	}

	insets := make([]float64, p.Shape.Len())
	for i := range insets {
		a, b := p.Shape.Edge(i)
		main := (t.Options.Walls && t.CityWall.Borders(a, b)) ||
			(geo.ContainsPoint(onStreet, a) && geo.ContainsPoint(onStreet, b)) ||
			t.Market.Shape.HasEdge(a, b)
		if main {
			insets[i] = layout.MainStreet / 2
		} else {
			insets[i] = layout.RegularStreet / 2
		}
	}
	return insets
}

func (t *Town) wallProximity(p *Patch) layout.WallProximity {
	center := p.Center()
	return layout.WallProximity{
		PatchCenter: center,
		NearestWall: geo.Nearest(t.CityWall.Circumference, center),
	}
}
