package graph

import (
	"fmt"
	"slices"
	"strings"
)

// Edge is a directed "beats" relation between two candidate indices.
type Edge struct {
	From int // winning candidate
	To   int // losing candidate
}

// Compare orders edges by (From, To). This ordering is load-bearing: it
// defines DFS traversal order and the canonical form used by Key and Equal.
func (e Edge) Compare(o Edge) int {
	if e.From != o.From {
		return e.From - o.From
	}
	return e.To - o.To
}

// String returns the edge in "winner>loser" form.
func (e Edge) String() string { return fmt.Sprintf("%d>%d", e.From, e.To) }

// Acyclic is a directed graph over a fixed node count whose edge set never
// contains a directed cycle. Nodes are the integers [0, NodeCount()).
//
// The zero value is a usable empty graph with zero nodes; use New for any
// real candidate count.
type Acyclic struct {
	nodes int
	edges []Edge // sorted by (From, To), no duplicates
}

// New creates an empty acyclic graph with n nodes.
// Negative counts are treated as zero.
func New(n int) *Acyclic {
	if n < 0 {
		n = 0
	}
	return &Acyclic{nodes: n}
}

// NodeCount returns the fixed number of nodes, established at construction.
func (g *Acyclic) NodeCount() int { return g.nodes }

// EdgeCount returns the number of edges currently locked in.
func (g *Acyclic) EdgeCount() int { return len(g.edges) }

// Edges returns a copy of the edge set in (From, To) order.
func (g *Acyclic) Edges() []Edge { return slices.Clone(g.edges) }

// HasEdge reports whether the edge src→dst is present.
func (g *Acyclic) HasEdge(src, dst int) bool {
	_, found := slices.BinarySearchFunc(g.edges, Edge{src, dst}, Edge.Compare)
	return found
}

// TryAddEdge attempts to lock in the edge src→dst and reports whether it
// was added. The edge is rejected, with no mutation, when:
//
//   - src == dst (self-loop)
//   - either endpoint is outside [0, NodeCount())
//   - the edge is already present
//   - dst can already reach src, so the insertion would close a cycle
//
// The reachability check runs a fresh depth-first search over the current
// edge set on every call; edges arrive incrementally and in adversarial
// orders, so no precomputed topological order is maintained.
func (g *Acyclic) TryAddEdge(src, dst int) bool {
	if src == dst || src < 0 || dst < 0 || src >= g.nodes || dst >= g.nodes {
		return false
	}
	idx, found := slices.BinarySearchFunc(g.edges, Edge{src, dst}, Edge.Compare)
	if found {
		return false
	}
	if g.Reaches(dst, src) {
		return false
	}
	g.edges = slices.Insert(g.edges, idx, Edge{src, dst})
	return true
}

// Reaches reports whether to is reachable from from by following edges.
// A node does not reach itself unless a (cycle-free) path exists, which
// inside this structure it never does.
func (g *Acyclic) Reaches(from, to int) bool {
	for v := range g.DFS(from) {
		if v == to {
			return true
		}
	}
	return false
}

// Roots returns the nodes with no incoming edge, in ascending order.
// For a zero-node graph the result is empty. Every candidate in the result
// is undefeated under the tie resolution this graph represents.
func (g *Acyclic) Roots() []int {
	if g.nodes == 0 {
		return nil
	}
	beaten := make([]bool, g.nodes)
	for _, e := range g.edges {
		beaten[e.To] = true
	}
	roots := make([]int, 0, g.nodes)
	for v, b := range beaten {
		if !b {
			roots = append(roots, v)
		}
	}
	return roots
}

// Clone returns a deep copy sharing no state with the receiver.
func (g *Acyclic) Clone() *Acyclic {
	return &Acyclic{nodes: g.nodes, edges: slices.Clone(g.edges)}
}

// Equal reports structural equality: same node count and same edge set.
func (g *Acyclic) Equal(o *Acyclic) bool {
	return g.nodes == o.nodes && slices.Equal(g.edges, o.edges)
}

// Key returns a canonical string identity for the graph: two graphs have
// the same key exactly when Equal reports true. The tally uses keys to
// collapse search branches that converge on the same edge set.
func (g *Acyclic) Key() string {
	var b strings.Builder
	b.Grow(8 + len(g.edges)*8)
	fmt.Fprintf(&b, "%d:", g.nodes)
	for i, e := range g.edges {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d>%d", e.From, e.To)
	}
	return b.String()
}

// String returns a compact human-readable form, e.g. "acyclic(4; 0>2 2>3)".
func (g *Acyclic) String() string {
	parts := make([]string, len(g.edges))
	for i, e := range g.edges {
		parts[i] = e.String()
	}
	return fmt.Sprintf("acyclic(%d; %s)", g.nodes, strings.Join(parts, " "))
}
