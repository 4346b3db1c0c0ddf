package election

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCandidate is returned by [Tabulate] and [Tally] when a
	// ballot ranks a candidate index outside [0, candidates).
	ErrInvalidCandidate = errors.New("invalid candidate")

	// ErrInvalidBallot is returned by [Tabulate] and [Tally] when a ballot
	// ranks the same candidate more than once.
	ErrInvalidBallot = errors.New("invalid ballot")
)

// validateBallots checks every ballot and returns the first problem found.
// Validation is fail-fast: no tabulation work happens once a ballot is bad.
func validateBallots(ballots [][]int, candidates int) error {
	for i, ballot := range ballots {
		seen := make([]bool, candidates)
		for _, c := range ballot {
			if c < 0 || c >= candidates {
				return fmt.Errorf("ballot %d: %w: candidate %d not in [0, %d)", i, ErrInvalidCandidate, c, candidates)
			}
			if seen[c] {
				return fmt.Errorf("ballot %d: %w: candidate %d ranked twice", i, ErrInvalidBallot, c)
			}
			seen[c] = true
		}
	}
	return nil
}
