package election

import (
	"context"
	"iter"
	"slices"
	"sort"
	"time"

	"github.com/matzehuels/pairlock/pkg/graph"
	"github.com/matzehuels/pairlock/pkg/observability"
)

// TabulatedData is the minimal data needed from a ballot set to compute
// winners: the directed pairwise victories grouped by margin, without the
// ballots themselves. Construct it with [Tabulate]; a TabulatedData is
// immutable afterwards and safe for concurrent reads.
type TabulatedData struct {
	candidates int
	margins    []int                // distinct margins, descending
	groups     map[int][]graph.Edge // margin -> victories, sorted by (From, To)
}

// Tabulate validates every ballot and computes the pairwise victory groups
// for an election with the given candidate count.
//
// Each ballot lists candidate indices in strict preference order. Errors
// unwrap to [ErrInvalidCandidate] (index out of range) or [ErrInvalidBallot]
// (duplicate index); the first offending ballot stops the scan and nothing
// is tabulated.
//
// Cost is O(pairs × ballot length): for each unordered candidate pair every
// ballot is scanned up to its first mention of either candidate.
func Tabulate(ballots [][]int, candidates int) (*TabulatedData, error) {
	start := time.Now()
	observability.Tally().OnTabulateStart(context.Background(), len(ballots), candidates)

	if err := validateBallots(ballots, candidates); err != nil {
		observability.Tally().OnTabulateComplete(context.Background(), 0, time.Since(start), err)
		return nil, err
	}

	groups := make(map[int][]graph.Edge)
	for c1 := 0; c1 < candidates; c1++ {
		for c2 := c1 + 1; c2 < candidates; c2++ {
			w1, w2 := countPairwise(ballots, c1, c2)
			switch {
			case w1 > w2:
				groups[w1-w2] = append(groups[w1-w2], graph.Edge{From: c1, To: c2})
			case w2 > w1:
				groups[w2-w1] = append(groups[w2-w1], graph.Edge{From: c2, To: c1})
				// equal counts: a true tie, dropped entirely
			}
		}
	}

	margins := make([]int, 0, len(groups))
	for m, edges := range groups {
		margins = append(margins, m)
		slices.SortFunc(edges, graph.Edge.Compare)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(margins)))

	t := &TabulatedData{candidates: candidates, margins: margins, groups: groups}
	observability.Tally().OnTabulateComplete(context.Background(), len(margins), time.Since(start), nil)
	return t, nil
}

// countPairwise counts how many ballots prefer c1 over c2 and vice versa.
// A ballot's preference is decided by whichever of the two appears first on
// it; a ballot mentioning neither contributes nothing to this pair.
func countPairwise(ballots [][]int, c1, c2 int) (c1Wins, c2Wins int) {
	for _, ballot := range ballots {
		for _, c := range ballot {
			if c == c1 {
				c1Wins++
				break
			}
			if c == c2 {
				c2Wins++
				break
			}
		}
	}
	return c1Wins, c2Wins
}

// Candidates returns the candidate count the data was tabulated for.
func (t *TabulatedData) Candidates() int { return t.candidates }

// GroupCount returns the number of distinct nonzero margins.
func (t *TabulatedData) GroupCount() int { return len(t.margins) }

// Margins returns the distinct margins in descending order.
func (t *TabulatedData) Margins() []int { return slices.Clone(t.margins) }

// Group returns the victories sharing the given margin, or nil if none do.
func (t *TabulatedData) Group(margin int) []graph.Edge {
	return slices.Clone(t.groups[margin])
}

// Groups returns the victory groups ordered from widest margin to
// slimmest. The sequence is finite and restartable: each range over it
// starts again from the widest margin. Yielded slices are copies.
func (t *TabulatedData) Groups() iter.Seq[[]graph.Edge] {
	return func(yield func([]graph.Edge) bool) {
		for _, m := range t.margins {
			if !yield(slices.Clone(t.groups[m])) {
				return
			}
		}
	}
}
