package geo

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrTriangulation reports a cavity boundary that could not be walked.
var ErrTriangulation = errors.New("triangulation boundary did not close")

// maxBoundaryWalk bounds the cavity walk in AddPoint.
const maxBoundaryWalk = 10000

// Triangle is a Delaunay triangle with counter-clockwise vertices.
type Triangle struct {
	P1, P2, P3 Point2D
	// C is the circumcenter, R the circumradius.
	C Point2D
	R float64
}

// NewTriangle builds a triangle, reordering the vertices counter-clockwise.
func NewTriangle(p1, p2, p3 Point2D) *Triangle {
	if p2.Sub(p1).Cross(p3.Sub(p1)) < 0 {
		p2, p3 = p3, p2
	}
	c := circumcenter(p1, p2, p3)
	return &Triangle{P1: p1, P2: p2, P3: p3, C: c, R: c.Distance(p1)}
}

// circumcenter returns the centre of the circle through a, b and c.
// Collinear input yields a point at infinity.
func circumcenter(a, b, c Point2D) Point2D {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	return Point2D{
		X: a.X + (cy*b2-by*c2)/d,
		Y: a.Y + (bx*c2-cx*b2)/d,
	}
}

// HasVertex reports whether p is one of the triangle's corners.
func (t *Triangle) HasVertex(p Point2D) bool {
	return t.P1 == p || t.P2 == p || t.P3 == p
}

// HasEdge reports whether the triangle has the directed edge a -> b.
func (t *Triangle) HasEdge(a, b Point2D) bool {
	return (t.P1 == a && t.P2 == b) ||
		(t.P2 == a && t.P3 == b) ||
		(t.P3 == a && t.P1 == b)
}

// Region is a Voronoi cell: a seed and the triangles around it, ordered
// counter-clockwise by the angle of their circumcenters.
type Region struct {
	Seed      Point2D
	Triangles []*Triangle
}

// Center returns the mean of the cell's corner points.
func (r *Region) Center() Point2D {
	c := Point2D{}
	for _, t := range r.Triangles {
		c = c.Add(t.C)
	}
	return c.Scale(1 / float64(len(r.Triangles)))
}

// Polygon returns the cell outline.
func (r *Region) Polygon() Polygon {
	pts := make([]Point2D, len(r.Triangles))
	for i, t := range r.Triangles {
		pts[i] = t.C
	}
	return Polygon{Vertices: pts}
}

// Borders reports whether r and other share a corner.
func (r *Region) Borders(other *Region) bool {
	for _, t := range r.Triangles {
		for _, o := range other.Triangles {
			if t == o {
				return true
			}
		}
	}
	return false
}

// Voronoi is an incrementally built Delaunay triangulation whose dual gives
// the Voronoi cells. Four frame points enclose the working area; cells that
// touch them are excluded from Partitioning.
type Voronoi struct {
	Triangles []*Triangle
	Points    []Point2D
	Frame     []Point2D

	regions map[PointKey]*Region
	dirty   bool
}

// NewVoronoi starts a triangulation covering the given rectangle.
func NewVoronoi(minX, minY, maxX, maxY float64) *Voronoi {
	c1 := Pt(minX, minY)
	c2 := Pt(minX, maxY)
	c3 := Pt(maxX, minY)
	c4 := Pt(maxX, maxY)
	frame := []Point2D{c1, c2, c3, c4}
	return &Voronoi{
		Frame:     frame,
		Points:    append([]Point2D(nil), frame...),
		Triangles: []*Triangle{NewTriangle(c1, c2, c3), NewTriangle(c2, c3, c4)},
		dirty:     true,
	}
}

// BuildVoronoi triangulates points inside a frame grown by a quarter of their
// extent on every side.
func BuildVoronoi(points []Point2D) (*Voronoi, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("build voronoi: no points")
	}
	lo, hi := Bounds(points)
	dx := (hi.X - lo.X) * 0.5
	dy := (hi.Y - lo.Y) * 0.5
	v := NewVoronoi(lo.X-dx/2, lo.Y-dy/2, hi.X+dx/2, hi.Y+dy/2)
	for i, p := range points {
		if err := v.AddPoint(p); err != nil {
			return nil, fmt.Errorf("adding point %d: %w", i, err)
		}
	}
	return v, nil
}

// AddPoint inserts p into the triangulation (Bowyer-Watson). A point that
// falls in no circumcircle is ignored.
func (v *Voronoi) AddPoint(p Point2D) error {
	var toSplit []*Triangle
	for _, t := range v.Triangles {
		if p.Distance(t.C) < t.R {
			toSplit = append(toSplit, t)
		}
	}
	if len(toSplit) == 0 {
		return nil
	}

	// Cavity boundary: directed edges with no reversed twin in the cavity.
	var a, b []Point2D
	shared := func(self *Triangle, from, to Point2D) bool {
		for _, o := range toSplit {
			if o != self && o.HasEdge(to, from) {
				return true
			}
		}
		return false
	}
	for _, t := range toSplit {
		for _, e := range [3][2]Point2D{{t.P1, t.P2}, {t.P2, t.P3}, {t.P3, t.P1}} {
			if !shared(t, e[0], e[1]) {
				a = append(a, e[0])
				b = append(b, e[1])
			}
		}
	}
	if len(a) == 0 {
		return fmt.Errorf("point %v: empty cavity: %w", p, ErrTriangulation)
	}

	var created []*Triangle
	index := 0
	for steps := 0; ; steps++ {
		if steps > maxBoundaryWalk {
			return fmt.Errorf("point %v: %w", p, ErrTriangulation)
		}
		created = append(created, NewTriangle(p, a[index], b[index]))
		index = indexOfExact(a, b[index])
		if index < 0 {
			return fmt.Errorf("point %v: open cavity: %w", p, ErrTriangulation)
		}
		if index == 0 {
			break
		}
	}

	v.Points = append(v.Points, p)
	kept := v.Triangles[:0]
	for _, t := range v.Triangles {
		if !containsTriangle(toSplit, t) {
			kept = append(kept, t)
		}
	}
	v.Triangles = append(kept, created...)
	v.dirty = true
	return nil
}

func indexOfExact(pts []Point2D, p Point2D) int {
	for i, q := range pts {
		if q == p {
			return i
		}
	}
	return -1
}

func containsTriangle(list []*Triangle, t *Triangle) bool {
	for _, o := range list {
		if o == t {
			return true
		}
	}
	return false
}

// Seeds returns the inserted points, frame excluded.
func (v *Voronoi) Seeds() []Point2D {
	out := make([]Point2D, 0, len(v.Points))
	for _, p := range v.Points {
		if !v.isFrame(p) {
			out = append(out, p)
		}
	}
	return out
}

func (v *Voronoi) isFrame(p Point2D) bool {
	for _, f := range v.Frame {
		if f == p {
			return true
		}
	}
	return false
}

func (v *Voronoi) isReal(t *Triangle) bool {
	return !v.isFrame(t.P1) && !v.isFrame(t.P2) && !v.isFrame(t.P3)
}

// Region returns the cell of point p, or nil.
func (v *Voronoi) Region(p Point2D) *Region {
	v.buildRegions()
	return v.regions[p.Key()]
}

func (v *Voronoi) buildRegions() {
	if !v.dirty && v.regions != nil {
		return
	}
	v.regions = make(map[PointKey]*Region, len(v.Points))
	for _, p := range v.Points {
		v.regions[p.Key()] = v.buildRegion(p)
	}
	v.dirty = false
}

func (v *Voronoi) buildRegion(seed Point2D) *Region {
	r := &Region{Seed: seed}
	for _, t := range v.Triangles {
		if t.HasVertex(seed) {
			r.Triangles = append(r.Triangles, t)
		}
	}
	sort.SliceStable(r.Triangles, func(i, j int) bool {
		di := r.Triangles[i].C.Sub(seed)
		dj := r.Triangles[j].C.Sub(seed)
		ai, aj := di.Angle(), dj.Angle()
		if math.Abs(ai-aj) > 1e-12 {
			return ai < aj
		}
		return di.Length() < dj.Length()
	})
	return r
}

// Regions returns the cells of every point, frame included, in point order.
func (v *Voronoi) Regions() []*Region {
	v.buildRegions()
	out := make([]*Region, 0, len(v.Points))
	for _, p := range v.Points {
		out = append(out, v.regions[p.Key()])
	}
	return out
}

// Partitioning returns the cells that do not touch the frame, in point order.
func (v *Voronoi) Partitioning() []*Region {
	var out []*Region
	for _, r := range v.Regions() {
		if len(r.Triangles) == 0 {
			continue
		}
		enclosed := true
		for _, t := range r.Triangles {
			if !v.isReal(t) {
				enclosed = false
				break
			}
		}
		if enclosed {
			out = append(out, r)
		}
	}
	return out
}

// Triangulation returns the triangles that do not touch the frame.
func (v *Voronoi) Triangulation() []*Triangle {
	var out []*Triangle
	for _, t := range v.Triangles {
		if v.isReal(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortPoints reorders the point list, which sets the order of Regions and
// Partitioning.
func (v *Voronoi) SortPoints(less func(a, b Point2D) bool) {
	sort.SliceStable(v.Points, func(i, j int) bool {
		return less(v.Points[i], v.Points[j])
	})
}

// Relax moves the seeds of the given enclosed cells (all of them when
// targets is nil) to their cell centers and rebuilds the diagram.
func (v *Voronoi) Relax(targets []Point2D) (*Voronoi, error) {
	points := v.Seeds()
	for _, r := range v.Partitioning() {
		if targets != nil && indexOfExact(targets, r.Seed) < 0 {
			continue
		}
		if i := indexOfExact(points, r.Seed); i >= 0 {
			points = append(points[:i], points[i+1:]...)
		}
		points = append(points, r.Center())
	}
	return BuildVoronoi(points)
}
