package town

import "github.com/ChicagoDave/towngen/pkg/geo"

// FindCircumference returns the outline of a set of patches: the edges owned
// by exactly one of them, chained into loops. The longest loop wins.
func FindCircumference(patches []*Patch) []geo.Point2D {
	counts := make(map[geo.EdgeKey]int)
	var edges []geo.Edge
	for _, p := range patches {
		for _, e := range p.Shape.Edges() {
			counts[e.Key()]++
			edges = append(edges, e)
		}
	}

	var border []geo.Edge
	for _, e := range edges {
		if counts[e.Key()] == 1 {
			border = append(border, e)
		}
	}

	var best []geo.Point2D
	for _, loop := range chainLoops(border) {
		if len(loop) > len(best) {
			best = loop
		}
	}
	return best
}

func chainLoops(edges []geo.Edge) [][]geo.Point2D {
	used := make([]bool, len(edges))
	var loops [][]geo.Point2D
	for i, first := range edges {
		if used[i] {
			continue
		}
		used[i] = true
		loop := []geo.Point2D{first.A}
		cur := first.B
		for !cur.Equal(first.A) {
			j := nextEdge(edges, used, cur)
			if j < 0 {
				break
			}
			used[j] = true
			loop = append(loop, cur)
			if edges[j].A.Equal(cur) {
				cur = edges[j].B
			} else {
				cur = edges[j].A
			}
		}
		loops = append(loops, loop)
	}
	return loops
}

func nextEdge(edges []geo.Edge, used []bool, from geo.Point2D) int {
	for j, e := range edges {
		if !used[j] && (e.A.Equal(from) || e.B.Equal(from)) {
			return j
		}
	}
	return -1
}

// smoothBorder pulls every border vertex towards its neighbours and moves it
// in all patches that share it. border is updated in place.
func (t *Town) smoothBorder(border []geo.Point2D, amount float64) {
	n := len(border)
	for i, v := range border {
		prev, next := border[(i+n-1)%n], border[(i+1)%n]
		smoothed := geo.SmoothVertex(v, prev, next, amount)
		for _, p := range t.PatchesAt(v) {
			p.Shape.ReplaceVertex(v, smoothed)
		}
		border[i] = smoothed
	}
}
