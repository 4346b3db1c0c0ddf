// Package graph provides the acyclic "beats" graph used by ranked pairs
// tallying.
//
// # Overview
//
// Ranked pairs locks pairwise victories into a directed graph one edge at a
// time, from the widest margin of victory to the slimmest, skipping any edge
// that would close a cycle. This package provides exactly that structure:
// an [Acyclic] graph over a fixed set of integer nodes whose edge set can
// never contain a directed cycle at any point in its lifetime.
//
// # Basic Usage
//
// Create a graph with [New] and insert edges with [Acyclic.TryAddEdge],
// which reports whether the edge was accepted:
//
//	g := graph.New(3)
//	g.TryAddEdge(0, 1) // true
//	g.TryAddEdge(1, 2) // true
//	g.TryAddEdge(2, 0) // false: 0 already reaches 2
//
// [Acyclic.Roots] returns the nodes with no incoming edge - the undefeated
// candidates under the tie resolution the graph represents.
//
// # Determinism
//
// The tally branches over many orderings of tied edges and collapses
// branches that converge on the same edge set. To keep that comparison and
// the traversal-order-dependent tests stable, edges are held in a single
// slice sorted by (From, To), [Acyclic.DFS] always walks outgoing edges in
// ascending destination order, and [Acyclic.Key] is a canonical structural
// identity usable as a map key.
//
// # Concurrency
//
// An Acyclic graph is not safe for concurrent mutation. The tally gives
// each worker its own clone, so no synchronization is needed there.
package graph
