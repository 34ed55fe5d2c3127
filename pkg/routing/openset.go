package routing

import "container/heap"

// openSet is the search frontier: nodes waiting to be expanded, cheapest
// first. Ties go to the node queued earliest, which keeps searches
// reproducible for a given link order.
type openSet struct {
	entries []openEntry
	seq     int
}

type openEntry struct {
	node  *Node
	score float64
	seq   int
}

// push queues n at the given score. A node may be queued more than once; the
// caller skips stale entries when they come out.
func (s *openSet) push(n *Node, score float64) {
	heap.Push(s, openEntry{node: n, score: score, seq: s.seq})
	s.seq++
}

// pop removes the cheapest entry.
func (s *openSet) pop() (*Node, float64) {
	e := heap.Pop(s).(openEntry)
	return e.node, e.score
}

func (s *openSet) empty() bool { return len(s.entries) == 0 }

// heap.Interface

func (s *openSet) Len() int { return len(s.entries) }

func (s *openSet) Less(i, j int) bool {
	a, b := s.entries[i], s.entries[j]
	if a.score != b.score {
		return a.score < b.score
	}
	return a.seq < b.seq
}

func (s *openSet) Swap(i, j int) { s.entries[i], s.entries[j] = s.entries[j], s.entries[i] }

func (s *openSet) Push(x any) { s.entries = append(s.entries, x.(openEntry)) }

func (s *openSet) Pop() any {
	n := len(s.entries)
	e := s.entries[n-1]
	s.entries = s.entries[:n-1]
	return e
}
