package routing

import "math"

// Link is a weighted connection to another node.
type Link struct {
	To    *Node
	Price float64
}

// Node is a graph vertex. Links keep insertion order so searches are
// deterministic.
type Node struct {
	ID    int
	Links []Link
}

// Link connects n to other with the given price, replacing an existing link.
// A symmetric link is mirrored on other.
func (n *Node) Link(other *Node, price float64, symmetric bool) {
	n.setLink(other, price)
	if symmetric {
		other.setLink(n, price)
	}
}

func (n *Node) setLink(other *Node, price float64) {
	for i := range n.Links {
		if n.Links[i].To == other {
			n.Links[i].Price = price
			return
		}
	}
	n.Links = append(n.Links, Link{To: other, Price: price})
}

// Unlink removes the link to other, on both sides when symmetric.
func (n *Node) Unlink(other *Node, symmetric bool) {
	for i := range n.Links {
		if n.Links[i].To == other {
			n.Links = append(n.Links[:i], n.Links[i+1:]...)
			break
		}
	}
	if symmetric {
		other.Unlink(n, false)
	}
}

// Price returns the price of the link to other.
func (n *Node) Price(other *Node) (float64, bool) {
	for _, l := range n.Links {
		if l.To == other {
			return l.Price, true
		}
	}
	return 0, false
}

// Graph is a set of nodes with weighted links.
type Graph struct {
	Nodes []*Node
}

// Add creates a new node.
func (g *Graph) Add() *Node {
	n := &Node{ID: len(g.Nodes)}
	g.Nodes = append(g.Nodes, n)
	return n
}

// AStar returns the cheapest path from start to goal, start first, or nil
// when goal cannot be reached. Nodes in exclude are never entered; start and
// goal are exempt. No heuristic is used, so this is a plain Dijkstra search;
// equal scores are expanded in insertion order.
func (g *Graph) AStar(start, goal *Node, exclude []*Node) []*Node {
	closed := make(map[*Node]bool, len(exclude))
	for _, n := range exclude {
		if n != goal && n != start {
			closed[n] = true
		}
	}

	var open openSet
	cameFrom := make(map[*Node]*Node)
	gScore := map[*Node]float64{start: 0}
	open.push(start, 0)

	for !open.empty() {
		current, score := open.pop()
		if closed[current] || score > gScore[current] {
			continue
		}
		if current == goal {
			return buildPath(cameFrom, current)
		}
		closed[current] = true

		for _, l := range current.Links {
			if closed[l.To] {
				continue
			}
			next := gScore[current] + l.Price
			if prev, ok := gScore[l.To]; ok && next >= prev {
				continue
			}
			cameFrom[l.To] = current
			gScore[l.To] = next
			open.push(l.To, next)
		}
	}
	return nil
}

func buildPath(cameFrom map[*Node]*Node, current *Node) []*Node {
	path := []*Node{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// CalculatePrice sums the link prices along path. It returns NaN when two
// consecutive nodes are not linked.
func (g *Graph) CalculatePrice(path []*Node) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		p, ok := path[i-1].Price(path[i])
		if !ok {
			return math.NaN()
		}
		total += p
	}
	return total
}
