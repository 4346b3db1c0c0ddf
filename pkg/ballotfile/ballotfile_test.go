package ballotfile

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/pairlock/pkg/errors"
)

const sampleElection = `
title = "Board election"
candidates = ["Alice", "Bob", "Carol"]

[[ballots]]
ranking = ["Alice", "Bob"]
count = 2

[[ballots]]
ranking = ["Carol"]
`

func TestRead(t *testing.T) {
	e, err := Read(strings.NewReader(sampleElection))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if e.Title != "Board election" {
		t.Errorf("Title = %q, want %q", e.Title, "Board election")
	}
	if want := []string{"Alice", "Bob", "Carol"}; !slices.Equal(e.Candidates, want) {
		t.Errorf("Candidates = %v, want %v", e.Candidates, want)
	}

	want := [][]int{{0, 1}, {0, 1}, {2}}
	if len(e.Ballots) != len(want) {
		t.Fatalf("got %d ballots, want %d", len(e.Ballots), len(want))
	}
	for i := range want {
		if !slices.Equal(e.Ballots[i], want[i]) {
			t.Errorf("ballot %d = %v, want %v", i, e.Ballots[i], want[i])
		}
	}
}

func TestRead_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{
			name:  "malformed toml",
			input: `candidates = [`,
			code:  errors.ErrCodeInvalidFormat,
		},
		{
			name:  "no candidates",
			input: `title = "Empty"`,
			code:  errors.ErrCodeInvalidElection,
		},
		{
			name: "duplicate candidate",
			input: `candidates = ["Alice", "Alice"]
`,
			code: errors.ErrCodeInvalidElection,
		},
		{
			name: "unknown candidate in ranking",
			input: `candidates = ["Alice"]
[[ballots]]
ranking = ["Bob"]
`,
			code: errors.ErrCodeInvalidElection,
		},
		{
			name: "candidate ranked twice",
			input: `candidates = ["Alice", "Bob"]
[[ballots]]
ranking = ["Alice", "Alice"]
`,
			code: errors.ErrCodeInvalidElection,
		},
		{
			name: "negative count",
			input: `candidates = ["Alice"]
[[ballots]]
ranking = ["Alice"]
count = -3
`,
			code: errors.ErrCodeInvalidElection,
		},
		{
			name: "invalid candidate name",
			input: `candidates = [" Alice"]
`,
			code: errors.ErrCodeInvalidElection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Read succeeded, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v (err: %v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestRead_EmptyRankingAllowed(t *testing.T) {
	input := `candidates = ["Alice", "Bob"]
[[ballots]]
ranking = []
count = 3
`
	e, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(e.Ballots) != 3 {
		t.Fatalf("got %d ballots, want 3", len(e.Ballots))
	}
	for i, b := range e.Ballots {
		if len(b) != 0 {
			t.Errorf("ballot %d = %v, want empty", i, b)
		}
	}
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestNames(t *testing.T) {
	e := &Election{Candidates: []string{"Alice", "Bob", "Carol"}}
	got := e.Names([]int{0, 2})
	if want := []string{"Alice", "Carol"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
