package geo

import "math"

// parallelEpsilon is the smallest determinant accepted by IntersectLines.
const parallelEpsilon = 0.01

// IntersectLines intersects the line through p1 with direction d1 and the
// line through p2 with direction d2. It returns the pair of line parameters
// (X along the first line, Y along the second), or Invalid when the lines are
// near parallel.
func IntersectLines(p1, d1, p2, d2 Point2D) Point2D {
	d := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(d) < parallelEpsilon {
		return Invalid
	}
	t2 := (d1.Y*(p2.X-p1.X) - d1.X*(p2.Y-p1.Y)) / d
	var t1 float64
	if math.Abs(d1.X) > 0.0001 {
		t1 = (p2.X - p1.X + d2.X*t2) / d1.X
	} else {
		t1 = (p2.Y - p1.Y + d2.Y*t2) / d1.Y
	}
	return Point2D{t1, t2}
}

// segmentIntersection returns the point where segments p1-p2 and p3-p4 cross.
func segmentIntersection(p1, p2, p3, p4 Point2D) (Point2D, bool) {
	t := IntersectLines(p1, p2.Sub(p1), p3, p4.Sub(p3))
	if !t.IsValid() || t.X < 0 || t.X > 1 || t.Y < 0 || t.Y > 1 {
		return Point2D{}, false
	}
	return p1.Lerp(p2, t.X), true
}

// Cut splits the polygon along the line through p1 and p2. The line must
// cross exactly two edges; otherwise a copy of the polygon is returned alone.
// With gap > 0 both halves are pulled gap/2 away from the cut line. The first
// half returned lies to the left of the cut direction.
func (p Polygon) Cut(p1, p2 Point2D, gap float64) []Polygon {
	dir := p2.Sub(p1)
	n := len(p.Vertices)

	edge1, edge2 := 0, 0
	ratio1, ratio2 := 0.0, 0.0
	count := 0
	for i := 0; i < n; i++ {
		v0, v1 := p.Edge(i)
		t := IntersectLines(p1, dir, v0, v1.Sub(v0))
		if !t.IsValid() || t.Y < 0 || t.Y > 1 {
			continue
		}
		switch count {
		case 0:
			edge1, ratio1 = i, t.X
		case 1:
			edge2, ratio2 = i, t.X
		}
		count++
	}
	if count != 2 {
		return []Polygon{p.Clone()}
	}

	point1 := p1.Add(dir.Scale(ratio1))
	point2 := p1.Add(dir.Scale(ratio2))

	half1 := make([]Point2D, 0, edge2-edge1+2)
	half1 = append(half1, point1)
	half1 = append(half1, p.Vertices[edge1+1:edge2+1]...)
	half1 = append(half1, point2)

	half2 := make([]Point2D, 0, n-edge2+edge1+2)
	half2 = append(half2, point2)
	half2 = append(half2, p.Vertices[edge2+1:]...)
	half2 = append(half2, p.Vertices[:edge1+1]...)
	half2 = append(half2, point1)

	first, second := Polygon{Vertices: half1}, Polygon{Vertices: half2}
	if gap > 0 {
		first = first.Peel(point2, gap/2)
		second = second.Peel(point1, gap/2)
	}

	if dir.Cross(p.EdgeVector(edge1)) > 0 {
		return []Polygon{first, second}
	}
	return []Polygon{second, first}
}

// Peel cuts a strip of the given width off the edge starting at vertex v and
// returns what remains.
func (p Polygon) Peel(v Point2D, amount float64) Polygon {
	next := p.Next(v)
	n := next.Sub(v).Perp().Normalize().Scale(amount)
	return p.Cut(v.Add(n), next.Add(n), 0)[0]
}

// Bisect cuts the polygon along a line that starts at ratio along the edge
// leaving vertex and runs across it, turned from the edge normal by angle.
func (p Polygon) Bisect(vertex Point2D, ratio, angle, gap float64) []Polygon {
	next := p.Next(vertex)
	p1 := vertex.Lerp(next, ratio)
	d := next.Sub(vertex).Rotate(angle)
	p2 := p1.Add(d.Perp())
	return p.Cut(p1, p2, gap)
}

// Shrink moves each edge inward by its amount (zero leaves it in place).
// Only valid for convex polygons; use Buffer otherwise. Without amounts the
// polygon is returned as is.
func (p Polygon) Shrink(amounts []float64) Polygon {
	out := p.Clone()
	if len(amounts) == 0 {
		return out
	}
	for i := range p.Vertices {
		amount := amounts[i%len(amounts)]
		if amount <= 0 {
			continue
		}
		a, b := p.Edge(i)
		n := b.Sub(a).Perp().Normalize().Scale(amount)
		out = out.Cut(a.Add(n), b.Add(n), 0)[0]
	}
	return out
}

// ShrinkEq moves every edge inward by the same amount.
func (p Polygon) ShrinkEq(amount float64) Polygon {
	return p.Shrink([]float64{amount})
}

const (
	bufferDelta     = 1e-5
	bufferMaxPasses = 1000
	bufferMaxLoop   = 1000
)

// Buffer moves each edge inward by its amount and works for non-convex
// polygons too. The offset outline is split at its self-intersections and
// the loop with the largest area is kept.
func (p Polygon) Buffer(amounts []float64) Polygon {
	if len(amounts) == 0 {
		return p.Clone()
	}
	pts := make([]Point2D, 0, 2*len(p.Vertices))
	for i := range p.Vertices {
		a, b := p.Edge(i)
		amount := amounts[i%len(amounts)]
		if amount <= 0.01 {
			pts = append(pts, a, b)
			continue
		}
		n := b.Sub(a).Perp().Normalize().Scale(amount)
		pts = append(pts, a.Add(n), b.Add(n))
	}

	lastEdge := 0
	for pass := 0; pass < bufferMaxPasses; pass++ {
		cut := false
		n := len(pts)
	search:
		for i := lastEdge; i < n-2; i++ {
			lastEdge = i
			p11, p12 := pts[i], pts[i+1]
			maxJ := n
			if i == 0 {
				maxJ = n - 1
			}
			for j := i + 2; j < maxJ; j++ {
				p21 := pts[j]
				p22 := pts[0]
				if j < n-1 {
					p22 = pts[j+1]
				}
				t := IntersectLines(p11, p12.Sub(p11), p21, p22.Sub(p21))
				if !t.IsValid() || t.X <= bufferDelta || t.X >= 1-bufferDelta ||
					t.Y <= bufferDelta || t.Y >= 1-bufferDelta {
					continue
				}
				pn := p11.Lerp(p12, t.X)
				pts = insertPoint(pts, j+1, pn)
				pts = insertPoint(pts, i+1, pn)
				cut = true
				break search
			}
		}
		if !cut {
			break
		}
	}

	regular := make([]int, len(pts))
	for i := range regular {
		regular[i] = i
	}

	var best Polygon
	bestArea := math.Inf(-1)
	for len(regular) > 0 {
		var indices []int
		start := regular[0]
		i := start
		for {
			indices = append(indices, i)
			regular = removeIndex(regular, i)

			next := (i + 1) % len(pts)
			v := pts[next]
			next1 := IndexOf(pts, v)
			if next1 == next {
				next1 = LastIndexOf(pts, v)
			}
			if next1 == -1 {
				i = next
			} else {
				i = next1
			}
			if i == start || len(indices) >= bufferMaxLoop {
				break
			}
		}
		if len(indices) >= bufferMaxLoop-1 {
			indices = indices[:4]
		}

		loop := Polygon{Vertices: make([]Point2D, len(indices))}
		for k, idx := range indices {
			loop.Vertices[k] = pts[idx]
		}
		if a := loop.Area(); a > bestArea {
			best, bestArea = loop, a
		}
	}
	return best
}

// BufferEq moves every edge inward by the same amount.
func (p Polygon) BufferEq(amount float64) Polygon {
	return p.Buffer([]float64{amount})
}

func insertPoint(pts []Point2D, at int, v Point2D) []Point2D {
	pts = append(pts, Point2D{})
	copy(pts[at+1:], pts[at:])
	pts[at] = v
	return pts
}

func removeIndex(list []int, v int) []int {
	for k, x := range list {
		if x == v {
			return append(list[:k], list[k+1:]...)
		}
	}
	return list
}
