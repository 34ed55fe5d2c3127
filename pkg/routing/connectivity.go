package routing

import "github.com/ChicagoDave/towngen/pkg/geo"

// MergePaths breaks every path into edges, drops repeats (in either
// direction) and edges rejected by skip, then chains the rest into polylines.
// An edge is prepended to a polyline that starts at its end, or appended to
// one that ends at its start; otherwise it starts a new polyline.
func MergePaths(paths [][]geo.Point2D, skip func(geo.Edge) bool) [][]geo.Point2D {
	var edges []geo.Edge
	for _, p := range paths {
		for _, e := range geo.EdgesOf(p) {
			if skip != nil && skip(e) {
				continue
			}
			edges = append(edges, e)
		}
	}
	edges = geo.DistinctEdges(edges)

	var arteries [][]geo.Point2D
	for _, e := range edges {
		attached := false
		for i, a := range arteries {
			if a[0].Equal(e.B) {
				arteries[i] = append([]geo.Point2D{e.A}, a...)
				attached = true
				break
			}
			if a[len(a)-1].Equal(e.A) {
				arteries[i] = append(a, e.B)
				attached = true
				break
			}
		}
		if !attached {
			arteries = append(arteries, []geo.Point2D{e.A, e.B})
		}
	}
	return arteries
}
