package geo

import "math"

// Point2D is a point (or vector) on the town plan.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Origin is the zero point.
var Origin = Point2D{0, 0}

// Invalid marks a failed intersection. Check with IsValid.
var Invalid = Point2D{math.MaxFloat64, math.MaxFloat64}

// Quantum is the grid size used to decide whether two points are the same vertex.
const Quantum = 1e-3

// PointKey is the quantized identity of a point, safe to use as a map key.
type PointKey struct {
	X, Y int64
}

// Pt is a shorthand constructor for Point2D.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// IsValid reports whether p is not the Invalid sentinel.
func (p Point2D) IsValid() bool {
	return p != Invalid
}

// Key returns the quantized map key of p.
func (p Point2D) Key() PointKey {
	return PointKey{int64(math.Round(p.X / Quantum)), int64(math.Round(p.Y / Quantum))}
}

// Equal reports whether p and q denote the same vertex.
// Equality and Key agree: p.Equal(q) iff p.Key() == q.Key().
func (p Point2D) Equal(q Point2D) bool {
	return p.Key() == q.Key()
}

// Near reports whether p and q are within delta on both axes.
func (p Point2D) Near(q Point2D, delta float64) bool {
	return math.Abs(p.X-q.X) <= delta && math.Abs(p.Y-q.Y) <= delta
}

// Add returns p + q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{p.X - q.X, p.Y - q.Y}
}

// Scale returns p * s.
func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Y * s}
}

// Length returns the Euclidean length of the vector.
func (p Point2D) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns the unit vector in the same direction.
// Returns zero vector if length is zero.
func (p Point2D) Normalize() Point2D {
	l := p.Length()
	if l < 1e-12 {
		return Point2D{}
	}
	return Point2D{p.X / l, p.Y / l}
}

// Dot returns the dot product of p and q.
func (p Point2D) Dot(q Point2D) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (z-component of 3D cross).
func (p Point2D) Cross(q Point2D) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Distance returns the Euclidean distance from p to q.
func (p Point2D) Distance(q Point2D) float64 {
	return p.Sub(q).Length()
}

// Angle returns the angle of the vector from the positive X axis in radians.
func (p Point2D) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// AngleBetween returns the signed angle that turns p onto q, in (-π, π].
func (p Point2D) AngleBetween(q Point2D) float64 {
	return math.Atan2(p.Cross(q), p.Dot(q))
}

// Rotate returns p rotated by angle radians around the origin.
func (p Point2D) Rotate(angle float64) Point2D {
	c, s := math.Cos(angle), math.Sin(angle)
	return Point2D{
		X: p.X*c - p.Y*s,
		Y: p.X*s + p.Y*c,
	}
}

// RotateAround returns p rotated by angle radians around center.
func (p Point2D) RotateAround(center Point2D, angle float64) Point2D {
	return p.Sub(center).Rotate(angle).Add(center)
}

// Lerp returns the linear interpolation between p and q at t in [0,1].
func (p Point2D) Lerp(q Point2D, t float64) Point2D {
	return Point2D{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Perp returns a vector perpendicular to p (rotated 90 degrees counterclockwise).
func (p Point2D) Perp() Point2D {
	return Point2D{-p.Y, p.X}
}

// MidPoint returns the midpoint between p and q.
func MidPoint(p, q Point2D) Point2D {
	return p.Lerp(q, 0.5)
}

// TurnAngle returns the signed turn taken at b when walking a -> b -> c.
// Zero means the three points are collinear.
func TurnAngle(a, b, c Point2D) float64 {
	return b.Sub(a).AngleBetween(c.Sub(b))
}

// SmoothVertex pulls v towards its neighbours. A larger amount keeps v closer
// to where it was.
func SmoothVertex(v, prev, next Point2D, amount float64) Point2D {
	return prev.Add(v.Scale(amount)).Add(next).Scale(1 / (2 + amount))
}

// IndexOf returns the index of the first point equal to p, or -1.
func IndexOf(pts []Point2D, p Point2D) int {
	for i, q := range pts {
		if q.Equal(p) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the index of the last point equal to p, or -1.
func LastIndexOf(pts []Point2D, p Point2D) int {
	for i := len(pts) - 1; i >= 0; i-- {
		if pts[i].Equal(p) {
			return i
		}
	}
	return -1
}

// ContainsPoint reports whether pts holds a point equal to p.
func ContainsPoint(pts []Point2D, p Point2D) bool {
	return IndexOf(pts, p) >= 0
}

// Nearest returns the point of pts closest to target. pts must not be empty.
func Nearest(pts []Point2D, target Point2D) Point2D {
	best := pts[0]
	bestDist := best.Distance(target)
	for _, p := range pts[1:] {
		if d := p.Distance(target); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}
