package geo

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidOperation reports a polygon operation that cannot produce a valid result.
var ErrInvalidOperation = errors.New("invalid polygon operation")

// Polygon is a closed polygon defined by its vertices in order.
// The first vertex is not repeated at the end.
type Polygon struct {
	Vertices []Point2D `json:"vertices"`
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Clone returns a polygon with its own copy of the vertices.
func (p Polygon) Clone() Polygon {
	pts := make([]Point2D, len(p.Vertices))
	copy(pts, p.Vertices)
	return Polygon{Vertices: pts}
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (p Polygon) Edge(i int) (Point2D, Point2D) {
	n := len(p.Vertices)
	return p.Vertices[i%n], p.Vertices[(i+1)%n]
}

// Edges returns every edge of the polygon, closing edge included.
func (p Polygon) Edges() []Edge {
	edges := make([]Edge, len(p.Vertices))
	for i := range p.Vertices {
		a, b := p.Edge(i)
		edges[i] = Edge{A: a, B: b}
	}
	return edges
}

// EdgeVector returns the vector of the edge leaving vertex i.
func (p Polygon) EdgeVector(i int) Point2D {
	a, b := p.Edge(i)
	return b.Sub(a)
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// IsCounterClockwise returns true if vertices are in CCW order.
func (p Polygon) IsCounterClockwise() bool {
	return p.SignedArea() > 0
}

// IsConvex reports whether every vertex turns left, which for a CCW polygon
// means it is strictly convex.
func (p Polygon) IsConvex() bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	for i, v := range p.Vertices {
		prev := p.Vertices[(i+n-1)%n]
		next := p.Vertices[(i+1)%n]
		if v.Sub(prev).Cross(next.Sub(v)) <= 0 {
			return false
		}
	}
	return true
}

// EnsureCCW returns the polygon with vertices in counterclockwise order.
func (p Polygon) EnsureCCW() Polygon {
	if p.SignedArea() < 0 {
		return p.Reverse()
	}
	return p
}

// Reverse returns the polygon with reversed vertex order.
func (p Polygon) Reverse() Polygon {
	n := len(p.Vertices)
	rev := make([]Point2D, n)
	for i, v := range p.Vertices {
		rev[n-1-i] = v
	}
	return Polygon{Vertices: rev}
}

// Center returns the mean of the vertices.
func (p Polygon) Center() Point2D {
	if len(p.Vertices) == 0 {
		return Point2D{}
	}
	sum := Point2D{}
	for _, v := range p.Vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(1.0 / float64(len(p.Vertices)))
}

// Centroid returns the area-weighted centroid of the polygon.
func (p Polygon) Centroid() Point2D {
	n := len(p.Vertices)
	a := p.SignedArea()
	if n < 3 || math.Abs(a) < 1e-12 {
		return p.Center()
	}
	cx, cy := 0.0, 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p.Vertices[i].X*p.Vertices[j].Y - p.Vertices[j].X*p.Vertices[i].Y
		cx += (p.Vertices[i].X + p.Vertices[j].X) * cross
		cy += (p.Vertices[i].Y + p.Vertices[j].Y) * cross
	}
	f := 1.0 / (6.0 * a)
	return Point2D{cx * f, cy * f}
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (p Polygon) BoundingBox() (Point2D, Point2D) {
	return Bounds(p.Vertices)
}

// Bounds returns the axis-aligned bounding box of pts as (min, max).
func Bounds(pts []Point2D) (Point2D, Point2D) {
	if len(pts) == 0 {
		return Point2D{}, Point2D{}
	}
	minP := pts[0]
	maxP := pts[0]
	for _, v := range pts[1:] {
		minP.X = math.Min(minP.X, v.X)
		minP.Y = math.Min(minP.Y, v.Y)
		maxP.X = math.Max(maxP.X, v.X)
		maxP.Y = math.Max(maxP.Y, v.Y)
	}
	return minP, maxP
}

// Contains returns true if the point is inside the polygon using ray casting.
func (p Polygon) Contains(pt Point2D) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Perimeter returns the total perimeter length.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		a, b := p.Edge(i)
		total += a.Distance(b)
	}
	return total
}

// IndexOf returns the index of vertex v, or -1.
func (p Polygon) IndexOf(v Point2D) int {
	return IndexOf(p.Vertices, v)
}

// HasVertex reports whether v is one of the polygon's vertices.
func (p Polygon) HasVertex(v Point2D) bool {
	return p.IndexOf(v) >= 0
}

// HasEdge reports whether a and b are consecutive vertices, in either order.
func (p Polygon) HasEdge(a, b Point2D) bool {
	i := p.IndexOf(a)
	if i < 0 {
		return false
	}
	n := len(p.Vertices)
	return p.Vertices[(i+1)%n].Equal(b) || p.Vertices[(i+n-1)%n].Equal(b)
}

// Next returns the vertex after v. v must be a vertex of p.
func (p Polygon) Next(v Point2D) Point2D {
	i := p.IndexOf(v)
	return p.Vertices[(i+1)%len(p.Vertices)]
}

// Prev returns the vertex before v. v must be a vertex of p.
func (p Polygon) Prev(v Point2D) Point2D {
	i := p.IndexOf(v)
	n := len(p.Vertices)
	return p.Vertices[(i+n-1)%n]
}

// ReplaceVertex substitutes every occurrence of old with v and reports
// whether anything changed. The vertex slice is modified in place.
func (p *Polygon) ReplaceVertex(old, v Point2D) bool {
	replaced := false
	for i, q := range p.Vertices {
		if q.Equal(old) {
			p.Vertices[i] = v
			replaced = true
		}
	}
	return replaced
}

// Dedupe drops repeated vertices, keeping the first occurrence of each.
func (p *Polygon) Dedupe() {
	seen := make(map[PointKey]bool, len(p.Vertices))
	out := p.Vertices[:0]
	for _, v := range p.Vertices {
		if seen[v.Key()] {
			continue
		}
		seen[v.Key()] = true
		out = append(out, v)
	}
	p.Vertices = out
}

// DistinctCount returns how many distinct vertices the polygon has.
func (p Polygon) DistinctCount() int {
	seen := make(map[PointKey]bool, len(p.Vertices))
	for _, v := range p.Vertices {
		seen[v.Key()] = true
	}
	return len(seen)
}

// LongestEdge returns the endpoints and length of the longest edge.
func (p Polygon) LongestEdge() (Point2D, Point2D, float64) {
	var start, end Point2D
	best := -1.0
	for i := range p.Vertices {
		a, b := p.Edge(i)
		if d := a.Distance(b); d > best {
			start, end, best = a, b, d
		}
	}
	return start, end, best
}

// Translate returns the polygon shifted by d.
func (p Polygon) Translate(d Point2D) Polygon {
	pts := make([]Point2D, len(p.Vertices))
	for i, v := range p.Vertices {
		pts[i] = v.Add(d)
	}
	return Polygon{Vertices: pts}
}

// Rotate returns the polygon rotated by angle radians around its vertex mean.
func (p Polygon) Rotate(angle float64) Polygon {
	c := p.Center()
	pts := make([]Point2D, len(p.Vertices))
	for i, v := range p.Vertices {
		pts[i] = v.RotateAround(c, angle)
	}
	return Polygon{Vertices: pts}
}

// SortClockwise orders the vertices clockwise around their mean.
func (p Polygon) SortClockwise() Polygon {
	c := p.Center()
	out := p.Clone()
	sort.SliceStable(out.Vertices, func(i, j int) bool {
		return out.Vertices[i].Sub(c).Angle() > out.Vertices[j].Sub(c).Angle()
	})
	return out
}

// RemoveSharpEdges drops, one at a time, vertices where the outline turns by
// less than 45 degrees, until none is left or the polygon is a triangle.
func (p Polygon) RemoveSharpEdges() Polygon {
	out := p.Clone()
	for len(out.Vertices) > 3 {
		n := len(out.Vertices)
		removed := false
		for i, v := range out.Vertices {
			a := TurnAngle(out.Vertices[(i+n-1)%n], v, out.Vertices[(i+1)%n])
			if math.Abs(a) < math.Pi/4 {
				out.Vertices = append(out.Vertices[:i], out.Vertices[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}
	return out
}

// Split cuts the polygon along the diagonal between vertices i1 and i2.
// Both pieces keep the two diagonal vertices.
func (p Polygon) Split(i1, i2 int) (Polygon, Polygon) {
	n := len(p.Vertices)
	if i2 == n {
		i2 = n - 1
	}
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	first := make([]Point2D, 0, i2-i1+1)
	first = append(first, p.Vertices[i1:i2+1]...)

	second := make([]Point2D, 0, n-i2+i1+1)
	second = append(second, p.Vertices[i2:]...)
	second = append(second, p.Vertices[:i1+1]...)
	return Polygon{Vertices: first}, Polygon{Vertices: second}
}

// SplitAt cuts the polygon along the diagonal between two of its vertices.
func (p Polygon) SplitAt(a, b Point2D) (Polygon, Polygon, error) {
	i1, i2 := p.IndexOf(a), p.IndexOf(b)
	if i1 < 0 || i2 < 0 {
		return Polygon{}, Polygon{}, fmt.Errorf("split at %v-%v: %w", a, b, ErrInvalidOperation)
	}
	first, second := p.Split(i1, i2)
	return first, second, nil
}

// MaxDistanceTo returns the maximum distance from any vertex to the given point.
func (p Polygon) MaxDistanceTo(pt Point2D) float64 {
	maxDist := 0.0
	for _, v := range p.Vertices {
		if d := v.Distance(pt); d > maxDist {
			maxDist = d
		}
	}
	return maxDist
}
