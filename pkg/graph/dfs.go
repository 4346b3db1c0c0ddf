package graph

import (
	"iter"
	"slices"
)

// DFS returns a depth-first traversal from start, yielding each node as its
// edge is taken (start itself is not yielded). The traversal is
// deterministic: outgoing edges are followed in ascending destination
// order, and backtracking resumes at the next untaken outgoing edge of the
// most recently active node. An edge is never taken twice, though a node
// reachable along several paths is yielded once per path.
//
// The walk is iterative - an explicit stack of taken edges - so deep graphs
// cannot exhaust the call stack. The sequence is single-use; call DFS again
// for a fresh traversal.
func (g *Acyclic) DFS(start int) iter.Seq[int] {
	return func(yield func(int) bool) {
		// Stack of edges taken along the active path. Backtracking pops an
		// edge and resumes the scan just past it in the sorted edge set.
		var taken []Edge
		node := start
		for {
			if e, ok := g.firstOutgoing(node); ok {
				taken = append(taken, e)
				node = e.To
				if !yield(e.To) {
					return
				}
				continue
			}

			resumed := false
			for len(taken) > 0 {
				last := taken[len(taken)-1]
				taken = taken[:len(taken)-1]
				if e, ok := g.nextSibling(last); ok {
					taken = append(taken, e)
					node = e.To
					if !yield(e.To) {
						return
					}
					resumed = true
					break
				}
			}
			if !resumed {
				return
			}
		}
	}
}

// firstOutgoing returns the smallest-destination edge leaving node.
func (g *Acyclic) firstOutgoing(node int) (Edge, bool) {
	idx, _ := slices.BinarySearchFunc(g.edges, Edge{node, -1}, Edge.Compare)
	if idx < len(g.edges) && g.edges[idx].From == node {
		return g.edges[idx], true
	}
	return Edge{}, false
}

// nextSibling returns the edge immediately after prev in the sorted edge
// set, provided it leaves the same node.
func (g *Acyclic) nextSibling(prev Edge) (Edge, bool) {
	idx, found := slices.BinarySearchFunc(g.edges, prev, Edge.Compare)
	if found {
		idx++
	}
	if idx < len(g.edges) && g.edges[idx].From == prev.From {
		return g.edges[idx], true
	}
	return Edge{}, false
}
