package geo

// Edge is an unordered pair of points: A-B equals B-A.
type Edge struct {
	A Point2D `json:"a"`
	B Point2D `json:"b"`
}

// EdgeKey identifies an edge regardless of direction.
type EdgeKey struct {
	Lo, Hi PointKey
}

// Key returns the direction-independent map key of e.
func (e Edge) Key() EdgeKey {
	a, b := e.A.Key(), e.B.Key()
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	return EdgeKey{Lo: a, Hi: b}
}

// Equal reports whether e and o join the same two points.
func (e Edge) Equal(o Edge) bool {
	return e.Key() == o.Key()
}

// Reverse returns the edge walked the other way.
func (e Edge) Reverse() Edge {
	return Edge{A: e.B, B: e.A}
}

// Length returns the distance between the endpoints.
func (e Edge) Length() float64 {
	return e.A.Distance(e.B)
}

// EdgesOf returns the edges of the open polyline through pts.
func EdgesOf(pts []Point2D) []Edge {
	if len(pts) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		edges = append(edges, Edge{A: pts[i-1], B: pts[i]})
	}
	return edges
}

// DistinctEdges drops repeated edges (in either direction), keeping order.
func DistinctEdges(edges []Edge) []Edge {
	seen := make(map[EdgeKey]bool, len(edges))
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if seen[e.Key()] {
			continue
		}
		seen[e.Key()] = true
		out = append(out, e)
	}
	return out
}
