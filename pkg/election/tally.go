package election

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pairlock/pkg/graph"
	"github.com/matzehuels/pairlock/pkg/observability"
	"github.com/matzehuels/pairlock/pkg/perm"
)

// Tally runs the branch-and-union search and returns the winner set as a
// sorted slice of candidate indices.
//
// The working set starts as a single empty graph. For each margin group,
// widest first, every permutation of the group's victories is attempted on
// a clone of every working graph, silently skipping cycle-forming edges;
// the resulting graphs replace the working set, deduplicated structurally
// so that tie orders converging on the same locked graph collapse to one
// branch. The winner set is the union of roots over every terminal graph:
// a candidate wins if and only if some legitimate resolution of every tie
// leaves them undefeated.
//
// Tally is pure and deterministic; calling it again yields the same result.
func (t *TabulatedData) Tally() []int {
	start := time.Now()
	ctx := context.Background()

	working := map[string]*graph.Acyclic{}
	empty := graph.New(t.candidates)
	working[empty.Key()] = empty

	for _, margin := range t.margins {
		group := t.groups[margin]
		groupStart := time.Now()
		observability.Tally().OnGroupStart(ctx, margin, len(group))

		orders := perms(group)
		next := make(map[string]*graph.Acyclic, len(working))
		for _, base := range working {
			for _, order := range orders {
				locked := lockIn(base, order)
				next[locked.Key()] = locked
			}
		}
		working = next

		observability.Tally().OnGroupComplete(ctx, margin, len(working), time.Since(groupStart))
	}

	winners := unionRoots(working, t.candidates)
	observability.Tally().OnTallyComplete(ctx, len(working), len(winners), time.Since(start))
	return winners
}

// TallyContext is Tally with the branch fan-out spread across a worker
// pool. Each (graph, permutation) branch is independent, so workers
// materialize branches concurrently and merge them into a mutex-guarded
// set as they land; the root union happens only after the final group.
// Results are identical to [TabulatedData.Tally].
//
// workers <= 1 falls back to the synchronous path. The context is checked
// between branches; cancellation abandons the tally and returns ctx.Err().
func (t *TabulatedData) TallyContext(ctx context.Context, workers int) ([]int, error) {
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return t.Tally(), nil
	}

	start := time.Now()
	working := map[string]*graph.Acyclic{}
	empty := graph.New(t.candidates)
	working[empty.Key()] = empty

	for _, margin := range t.margins {
		group := t.groups[margin]
		groupStart := time.Now()
		observability.Tally().OnGroupStart(ctx, margin, len(group))

		orders := perms(group)
		next := make(map[string]*graph.Acyclic, len(working))
		var mu sync.Mutex

		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(workers)
		for _, base := range working {
			eg.Go(func() error {
				for _, order := range orders {
					if err := egCtx.Err(); err != nil {
						return err
					}
					locked := lockIn(base, order)
					mu.Lock()
					next[locked.Key()] = locked
					mu.Unlock()
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		working = next

		observability.Tally().OnGroupComplete(ctx, margin, len(working), time.Since(groupStart))
	}

	winners := unionRoots(working, t.candidates)
	observability.Tally().OnTallyComplete(ctx, len(working), len(winners), time.Since(start))
	return winners, nil
}

// Tally validates, tabulates, and tallies in one call.
// It is shorthand for [Tabulate] followed by [TabulatedData.Tally].
func Tally(ballots [][]int, candidates int) ([]int, error) {
	tab, err := Tabulate(ballots, candidates)
	if err != nil {
		return nil, err
	}
	return tab.Tally(), nil
}

// lockIn clones base and attempts the victories in the order given,
// skipping any rejected as cycle-forming.
func lockIn(base *graph.Acyclic, order []graph.Edge) *graph.Acyclic {
	g := base.Clone()
	for _, e := range order {
		g.TryAddEdge(e.From, e.To)
	}
	return g
}

// perms expands a victory group into every lock-in order.
// Groups of zero or one victories pass through unchanged.
func perms(group []graph.Edge) [][]graph.Edge {
	if len(group) <= 1 {
		return [][]graph.Edge{group}
	}
	orders := make([][]graph.Edge, 0, perm.Factorial(len(group)))
	for _, idx := range perm.Generate(len(group), 0) {
		orders = append(orders, perm.Apply(group, idx))
	}
	return orders
}

// unionRoots unions the root sets of every terminal graph into a sorted
// winner slice.
func unionRoots(graphs map[string]*graph.Acyclic, candidates int) []int {
	undefeated := make([]bool, candidates)
	for _, g := range graphs {
		for _, r := range g.Roots() {
			undefeated[r] = true
		}
	}
	winners := make([]int, 0, candidates)
	for c, ok := range undefeated {
		if ok {
			winners = append(winners, c)
		}
	}
	return winners
}
