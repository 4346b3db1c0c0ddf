// Package perm generates permutations for the tally's tie-order search.
//
// A margin group with k tied pairwise victories has k! legitimate lock-in
// orders, and the tally must consider all of them. This package enumerates
// the index permutations and applies them to edge slices.
package perm

import "slices"

// Factorial returns n!, the number of orderings of n tied pairs.
// For n <= 1 the result is 1. Factorials overflow quickly: 13! no longer
// fits in 32 bits and 21! overflows int64, so callers guarding group sizes
// should do so well before that.
func Factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}

// Generate returns permutations of [0, 1, ..., n-1] using Heap's algorithm.
// If limit > 0, at most limit permutations are returned; otherwise all n!.
// Each returned slice is an independent allocation.
//
// Edge cases: n = 0 yields [[]] (one empty permutation) and n = 1 yields
// [[0]], so a group of zero or one edges passes through the tally's
// branching step unchanged.
//
// Heap's algorithm emits permutations in a non-lexicographic but fixed
// order, producing each exactly once.
func Generate(n, limit int) [][]int {
	if n <= 0 {
		return [][]int{{}}
	}
	if n == 1 {
		return [][]int{{0}}
	}

	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	state := make([]int, n)

	capacity := limit
	if capacity <= 0 || n <= 12 {
		capacity = Factorial(min(n, 12))
	}
	out := make([][]int, 0, capacity)
	out = append(out, slices.Clone(p))

	for i := 0; i < n && (limit <= 0 || len(out) < limit); {
		if state[i] < i {
			if i&1 == 0 {
				p[0], p[i] = p[i], p[0]
			} else {
				p[state[i]], p[i] = p[i], p[state[i]]
			}
			out = append(out, slices.Clone(p))
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return out
}

// Apply reorders items according to perm: result[i] = items[perm[i]].
// The input slice is not modified. Apply panics if len(perm) != len(items)
// or an index is out of range, which indicates a caller bug.
func Apply[T any](items []T, perm []int) []T {
	if len(perm) != len(items) {
		panic("perm: Apply length mismatch")
	}
	out := make([]T, len(items))
	for i, j := range perm {
		out[i] = items[j]
	}
	return out
}
