package cli

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/pairlock/pkg/pipeline"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input    string
		fallback string
		want     []string
	}{
		{"", "json", []string{"json"}},
		{"", "svg", []string{"svg"}},
		{"dot", "json", []string{"dot"}},
		{"json,svg,png", "json", []string{"json", "svg", "png"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.input, tt.fallback); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q, %q) = %v, want %v", tt.input, tt.fallback, got, tt.want)
		}
	}
}

func TestCandidateLabel(t *testing.T) {
	names := []string{"Alice", "", "Carol"}
	tests := []struct {
		c    int
		want string
	}{
		{0, "Alice"},
		{1, "1"}, // empty name falls back to index
		{2, "Carol"},
		{3, "3"}, // out of range
	}
	for _, tt := range tests {
		if got := candidateLabel(tt.c, names); got != tt.want {
			t.Errorf("candidateLabel(%d) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"tally", "pairs", "graph", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		pipeline.FormatJSON: []byte(`{"winners":[0]}`),
		pipeline.FormatDOT:  []byte("digraph victories {}\n"),
	}

	// Explicit single-format output path is used verbatim.
	out := filepath.Join(dir, "result.json")
	err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{pipeline.FormatJSON},
		input:     "election.toml",
		output:    out,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if !strings.Contains(string(data), "winners") {
		t.Errorf("unexpected output contents: %s", data)
	}

	// Multiple formats derive one file per format from the base path.
	base := filepath.Join(dir, "board")
	err = writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{pipeline.FormatJSON, pipeline.FormatDOT},
		input:     "election.toml",
		output:    base,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	for _, ext := range []string{".json", ".dot"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("expected %s%s to exist: %v", base, ext, err)
		}
	}
}
