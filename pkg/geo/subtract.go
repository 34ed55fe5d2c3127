package geo

import "github.com/ctessum/geom"

// Remainder is what is left of a polygon after subtraction: the separate
// pieces, the holes punched into them and the net area.
type Remainder struct {
	Pieces []Polygon
	Holes  []Polygon
	Area   float64
}

// IsEmpty reports whether nothing is left.
func (r Remainder) IsEmpty() bool {
	return len(r.Pieces) == 0
}

// Subtract returns the part of p not covered by any of others.
func (p Polygon) Subtract(others ...Polygon) Remainder {
	var rest geom.Polygonal = toGeom(p)
	for _, o := range others {
		if o.DistinctCount() < 3 {
			continue
		}
		if rest = rest.Difference(toGeom(o)); rest == nil {
			return Remainder{}
		}
	}

	var rings []Polygon
	for _, poly := range rest.Polygons() {
		for _, path := range poly {
			if ring := fromPath(path); ring.DistinctCount() >= 3 {
				rings = append(rings, ring)
			}
		}
	}
	if len(rings) == 0 {
		return Remainder{}
	}

	r := Remainder{Area: rest.Area()}
	for i, ring := range rings {
		if nestingDepth(rings, i)%2 == 1 {
			r.Holes = append(r.Holes, ring)
		} else {
			r.Pieces = append(r.Pieces, ring)
		}
	}
	return r
}

// nestingDepth counts the rings enclosing rings[i]. A ring encloses another
// when it contains one of its corners that is not also its own corner.
func nestingDepth(rings []Polygon, i int) int {
	depth := 0
	for j, outer := range rings {
		if j == i {
			continue
		}
		for _, v := range rings[i].Vertices {
			if outer.HasVertex(v) {
				continue
			}
			if outer.Contains(v) {
				depth++
			}
			break
		}
	}
	return depth
}

func toGeom(p Polygon) geom.Polygon {
	path := make(geom.Path, len(p.Vertices))
	for i, v := range p.Vertices {
		path[i] = geom.Point{X: v.X, Y: v.Y}
	}
	return geom.Polygon{path}
}

func fromPath(path geom.Path) Polygon {
	if n := len(path); n > 1 && path[0] == path[n-1] {
		path = path[:n-1]
	}
	pts := make([]Point2D, len(path))
	for i, v := range path {
		pts[i] = Point2D{X: v.X, Y: v.Y}
	}
	return Polygon{Vertices: pts}
}
