package town

import (
	"github.com/ChicagoDave/towngen/pkg/geo"
	"github.com/ChicagoDave/towngen/pkg/layout"
)

// Patch is one parcel of the town.
type Patch struct {
	ID          int             `json:"id"`
	Shape       geo.Polygon     `json:"shape"`
	WithinCity  bool            `json:"within_city"`
	WithinWalls bool            `json:"within_walls"`
	Water       bool            `json:"water"`
	HasCastle   bool            `json:"has_castle"`
	District    layout.District `json:"district"`
}

// Center returns the mean of the patch corners.
func (p *Patch) Center() geo.Point2D {
	return p.Shape.Center()
}

// Neighbours reports whether p and other share a corner.
func (p *Patch) Neighbours(other *Patch) bool {
	if p == other {
		return false
	}
	for _, v := range p.Shape.Vertices {
		if other.Shape.HasVertex(v) {
			return true
		}
	}
	return false
}

// Castle is the fortified patch and its inner wall.
type Castle struct {
	Patch *Patch
	Wall  *Wall
}

func (t *Town) newPatch(shape geo.Polygon) *Patch {
	t.nextID++
	return &Patch{ID: t.nextID, Shape: shape}
}

// Neighbours returns every patch sharing a corner with p.
func (t *Town) Neighbours(p *Patch) []*Patch {
	var out []*Patch
	for _, o := range t.Patches {
		if p.Neighbours(o) {
			out = append(out, o)
		}
	}
	return out
}

// PatchesAt returns every patch with a corner at v.
func (t *Town) PatchesAt(v geo.Point2D) []*Patch {
	var out []*Patch
	for _, p := range t.Patches {
		if p.Shape.HasVertex(v) {
			out = append(out, p)
		}
	}
	return out
}

func (t *Town) cityPatches() []*Patch {
	var out []*Patch
	for _, p := range t.Patches {
		if p.WithinCity {
			out = append(out, p)
		}
	}
	return out
}

func (t *Town) waterPatches() []*Patch {
	var out []*Patch
	for _, p := range t.Patches {
		if p.Water {
			out = append(out, p)
		}
	}
	return out
}

func (t *Town) replacePatch(old *Patch, with ...*Patch) {
	for i, p := range t.Patches {
		if p == old {
			t.Patches = append(t.Patches[:i], t.Patches[i+1:]...)
			break
		}
	}
	t.Patches = append(t.Patches, with...)
}

// movePoint relocates a shared corner in every structure holding it.
func (t *Town) movePoint(old, v geo.Point2D) {
	for _, p := range t.Patches {
		p.Shape.ReplaceVertex(old, v)
	}
	if t.CityWall != nil {
		t.CityWall.ReplacePoint(old, v)
	}
	if t.Castle != nil && t.Castle.Wall != nil {
		t.Castle.Wall.ReplacePoint(old, v)
	}
	replaceAll(t.Gates, old, v)
	replaceAll(t.WaterBorder, old, v)
}

func replaceAll(pts []geo.Point2D, old, v geo.Point2D) {
	for i, p := range pts {
		if p.Equal(old) {
			pts[i] = v
		}
	}
}
