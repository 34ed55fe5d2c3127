package geo

// Polyline is an ordered sequence of points forming a path.
type Polyline struct {
	Points []Point2D
}

// NewPolyline creates a polyline from a list of points.
func NewPolyline(pts ...Point2D) Polyline {
	return Polyline{Points: pts}
}

// Length returns the total arc length of the polyline.
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl.Points); i++ {
		total += pl.Points[i-1].Distance(pl.Points[i])
	}
	return total
}

// Edges returns the segments of the polyline.
func (pl Polyline) Edges() []Edge {
	return EdgesOf(pl.Points)
}

// Smooth returns a copy with every interior point pulled towards its
// neighbours by SmoothVertex. The endpoints stay where they are.
func (pl Polyline) Smooth(amount float64) Polyline {
	n := len(pl.Points)
	out := make([]Point2D, n)
	copy(out, pl.Points)
	for i := 1; i < n-1; i++ {
		out[i] = SmoothVertex(pl.Points[i], pl.Points[i-1], pl.Points[i+1], amount)
	}
	return Polyline{Points: out}
}

// nearestPointOnSegment returns the closest point on segment ab to p.
func nearestPointOnSegment(p, a, b Point2D) (Point2D, float64) {
	ab := b.Sub(a)
	abLen2 := ab.Dot(ab)
	if abLen2 < 1e-12 {
		return a, p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / abLen2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return closest, p.Distance(closest)
}

// DistanceTo returns the distance from p to the nearest point of the polyline.
func (pl Polyline) DistanceTo(p Point2D) float64 {
	if len(pl.Points) == 0 {
		return 0
	}
	best := p.Distance(pl.Points[0])
	for i := 1; i < len(pl.Points); i++ {
		if _, d := nearestPointOnSegment(p, pl.Points[i-1], pl.Points[i]); d < best {
			best = d
		}
	}
	return best
}
