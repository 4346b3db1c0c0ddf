// Package election implements ranked pairs (Tideman) tallying with
// exhaustive handling of tied margins.
//
// # Overview
//
// Ranked pairs elects the candidate(s) left undefeated after locking
// pairwise victories into an acyclic graph from the widest margin of
// victory to the slimmest, skipping any victory that would close a cycle.
// When several victories share the same margin there is no canonical order
// to lock them in, and different legitimate orders can crown different
// winners. Rather than breaking such ties arbitrarily, this package
// explores every order and reports every candidate who wins under at least
// one of them - the behavior required for the method's independence-of-
// clones guarantee (Tideman, 1987).
//
// # Usage
//
// Ballots are slices of candidate indices in preference order; candidates
// are identified only by index:
//
//	winners, err := election.Tally([][]int{{0, 1}, {1, 0}, {0}}, 2)
//
// Split tabulation from tallying to inspect margins or re-tally without
// re-validating:
//
//	tab, err := election.Tabulate(ballots, candidates)
//	for group := range tab.Groups() { ... }
//	winners := tab.Tally()
//
// # Ballot Semantics
//
// A ballot may omit candidates. An omitted candidate ranks below every
// candidate present on that ballot, but two candidates both omitted are not
// compared by it at all. This asymmetry is part of the method's ballot
// semantics, not an implementation artifact.
//
// # Cost
//
// A margin group of k tied pairs multiplies the working set by up to k!,
// and groups compound multiplicatively. Structural deduplication collapses
// branches that converge on the same locked graph, which keeps the common
// few-small-ties case cheap, but the search is deliberately unbounded by
// default. Callers needing bounded latency must bound the number of
// simultaneous equal-margin pairs themselves.
package election
