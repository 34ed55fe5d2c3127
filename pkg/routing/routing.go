package routing

import "github.com/ChicagoDave/towngen/pkg/geo"

// Parcel is what the road planner needs to know about a patch.
type Parcel struct {
	Shape  geo.Polygon
	InCity bool
}

// Topology is the road graph over patch outlines. Every distinct vertex is a
// node; blocked vertices get a node but no links.
type Topology struct {
	Graph *Graph
	// Inner and Outer hold the linkable vertices off the wall, inside and
	// outside the city.
	Inner []*Node
	Outer []*Node

	nodes   map[geo.PointKey]*Node
	points  map[*Node]geo.Point2D
	blocked map[geo.PointKey]bool
	border  map[geo.PointKey]bool
	inner   map[*Node]bool
	outer   map[*Node]bool
}

// NewTopology links the consecutive vertices of every parcel with their
// distance as price.
func NewTopology(parcels []Parcel, blocked, border []geo.Point2D) *Topology {
	t := &Topology{
		Graph:   &Graph{},
		nodes:   make(map[geo.PointKey]*Node),
		points:  make(map[*Node]geo.Point2D),
		blocked: keySet(blocked),
		border:  keySet(border),
		inner:   make(map[*Node]bool),
		outer:   make(map[*Node]bool),
	}

	for _, parcel := range parcels {
		verts := parcel.Shape.Vertices
		if len(verts) == 0 {
			continue
		}
		v1 := verts[len(verts)-1]
		n1 := t.process(v1)
		for _, v := range verts {
			v0, n0 := v1, n1
			v1, n1 = v, t.process(v)

			t.classify(v0, n0, parcel.InCity)
			t.classify(v1, n1, parcel.InCity)
			if n0 != nil && n1 != nil {
				n0.Link(n1, v0.Distance(v1), true)
			}
		}
	}
	return t
}

func keySet(pts []geo.Point2D) map[geo.PointKey]bool {
	set := make(map[geo.PointKey]bool, len(pts))
	for _, p := range pts {
		set[p.Key()] = true
	}
	return set
}

// process returns the node for p, creating it on first sight. Blocked points
// yield nil so they are never linked.
func (t *Topology) process(p geo.Point2D) *Node {
	n, ok := t.nodes[p.Key()]
	if !ok {
		n = t.Graph.Add()
		t.nodes[p.Key()] = n
		t.points[n] = p
	}
	if t.blocked[p.Key()] {
		return nil
	}
	return n
}

func (t *Topology) classify(p geo.Point2D, n *Node, inCity bool) {
	if n == nil || t.border[p.Key()] {
		return
	}
	if inCity {
		if !t.inner[n] {
			t.inner[n] = true
			t.Inner = append(t.Inner, n)
		}
		return
	}
	if !t.outer[n] {
		t.outer[n] = true
		t.Outer = append(t.Outer, n)
	}
}

// Node returns the node at p, or nil.
func (t *Topology) Node(p geo.Point2D) *Node {
	return t.nodes[p.Key()]
}

// Point returns the position of n.
func (t *Topology) Point(n *Node) geo.Point2D {
	return t.points[n]
}

// NearestPoint returns the unblocked node position closest to target. It
// reports false when every node is blocked.
func (t *Topology) NearestPoint(target geo.Point2D) (geo.Point2D, bool) {
	var pts []geo.Point2D
	for _, n := range t.Graph.Nodes {
		if p := t.points[n]; !t.blocked[p.Key()] {
			pts = append(pts, p)
		}
	}
	if len(pts) == 0 {
		return geo.Invalid, false
	}
	return geo.Nearest(pts, target), true
}

// BuildPath finds the cheapest chain of vertices from one point to another
// without passing through exclude. It returns nil when there is none.
func (t *Topology) BuildPath(from, to geo.Point2D, exclude []*Node) []geo.Point2D {
	start, goal := t.Node(from), t.Node(to)
	if start == nil || goal == nil {
		return nil
	}
	path := t.Graph.AStar(start, goal, exclude)
	if path == nil {
		return nil
	}
	pts := make([]geo.Point2D, len(path))
	for i, n := range path {
		pts[i] = t.points[n]
	}
	return pts
}
