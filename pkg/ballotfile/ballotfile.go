// Package ballotfile reads elections from TOML files.
//
// An election file names its candidates once and states ballots against
// those names, with an optional repeat count per ballot:
//
//	title = "Board election 2026"
//	candidates = ["Alice", "Bob", "Carol"]
//
//	[[ballots]]
//	ranking = ["Alice", "Bob"]
//	count = 7
//
//	[[ballots]]
//	ranking = ["Carol"]
//
// Rankings may omit candidates; an omitted candidate loses to every ranked
// one on that ballot. Read translates names to indices in declaration order,
// producing the ballot form the election package consumes.
package ballotfile

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pairlock/pkg/errors"
)

// Election is a named election decoded from a ballot file.
type Election struct {
	Title      string   // optional display title
	Candidates []string // candidate names; index is the candidate's identity
	Ballots    [][]int  // expanded ballots, one entry per cast ballot
}

// electionFile is the raw TOML shape before name resolution.
type electionFile struct {
	Title      string       `toml:"title"`
	Candidates []string     `toml:"candidates"`
	Ballots    []ballotLine `toml:"ballots"`
}

type ballotLine struct {
	Ranking []string `toml:"ranking"`
	Count   int      `toml:"count"`
}

// ReadFile reads and decodes an election from the file at path.
func ReadFile(path string) (*Election, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "election file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot open election file: %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes an election from TOML.
//
// Candidate names must be unique and pass validation; every ranking entry
// must name a declared candidate and no ranking may name one twice. A
// ballot's count defaults to 1 when omitted; zero and negative counts are
// rejected.
func Read(r io.Reader) (*Election, error) {
	var raw electionFile
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed election file")
	}

	if len(raw.Candidates) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidElection, "election declares no candidates")
	}

	index := make(map[string]int, len(raw.Candidates))
	for i, name := range raw.Candidates {
		if err := errors.ValidateCandidateName(name); err != nil {
			return nil, err
		}
		if _, dup := index[name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidElection, "duplicate candidate: %q", name)
		}
		index[name] = i
	}

	var ballots [][]int
	for i, line := range raw.Ballots {
		count := line.Count
		if count == 0 {
			count = 1
		}
		if count < 0 {
			return nil, errors.New(errors.ErrCodeInvalidElection, "ballot %d: negative count %d", i, line.Count)
		}

		ranking := make([]int, 0, len(line.Ranking))
		seen := make(map[int]bool, len(line.Ranking))
		for _, name := range line.Ranking {
			c, ok := index[name]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidElection, "ballot %d: unknown candidate %q", i, name)
			}
			if seen[c] {
				return nil, errors.New(errors.ErrCodeInvalidElection, "ballot %d: candidate %q ranked twice", i, name)
			}
			seen[c] = true
			ranking = append(ranking, c)
		}

		for range count {
			ballots = append(ballots, ranking)
		}
	}

	return &Election{
		Title:      raw.Title,
		Candidates: raw.Candidates,
		Ballots:    ballots,
	}, nil
}

// Names maps a sorted winner slice back to candidate names.
func (e *Election) Names(winners []int) []string {
	names := make([]string, 0, len(winners))
	for _, w := range winners {
		if w >= 0 && w < len(e.Candidates) {
			names = append(names, e.Candidates[w])
		}
	}
	return names
}
