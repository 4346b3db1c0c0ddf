package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/pairlock/pkg/election"
)

func testTab(t *testing.T) *election.TabulatedData {
	t.Helper()
	tab, err := election.Tabulate([][]int{{0, 1, 2}, {0, 1, 2}, {1, 0, 2}}, 3)
	if err != nil {
		t.Fatalf("Tabulate: %v", err)
	}
	return tab
}

func TestToDOT(t *testing.T) {
	tab := testTab(t)
	dot := ToDOT(tab, []int{0}, Options{Names: []string{"Alice", "Bob", "Carol"}})

	if !strings.HasPrefix(dot, "digraph victories {") {
		t.Errorf("DOT should open a digraph, got:\n%s", dot)
	}
	for _, want := range []string{
		`0 [label="Alice", fillcolor=gold];`,
		`1 [label="Bob"];`,
		`2 [label="Carol"];`,
		"0 -> 1;",
		"0 -> 2;",
		"1 -> 2;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	tab := testTab(t)
	dot := ToDOT(tab, nil, Options{Detailed: true})

	// 0 beats 1 by 1 vote, everyone beats 2 by 3.
	for _, want := range []string{
		`0 -> 1 [label="+1"];`,
		`0 -> 2 [label="+3"];`,
		`1 -> 2 [label="+3"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	// Without names, nodes are labeled by index.
	if !strings.Contains(dot, `0 [label="0"];`) {
		t.Errorf("DOT should label nodes by index:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="8pt" height="6pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("width/height not rewritten: %s", out)
	}
}

func TestNormalizeViewBox_NoViewBox(t *testing.T) {
	in := []byte(`<svg><g></g></svg>`)
	if got := string(normalizeViewBox(in)); got != `<svg><g></g></svg>` {
		t.Errorf("SVG without viewBox should pass through, got: %s", got)
	}
}

func TestNewReport(t *testing.T) {
	tab := testTab(t)
	r := NewReport("Test run", tab, []int{0}, []string{"Alice", "Bob", "Carol"})

	if r.Candidates != 3 {
		t.Errorf("Candidates = %d, want 3", r.Candidates)
	}
	if len(r.Winners) != 1 || r.Winners[0] != 0 {
		t.Errorf("Winners = %v, want [0]", r.Winners)
	}
	if len(r.WinnerNames) != 1 || r.WinnerNames[0] != "Alice" {
		t.Errorf("WinnerNames = %v, want [Alice]", r.WinnerNames)
	}
	if len(r.Victories) != 2 {
		t.Fatalf("got %d victory groups, want 2", len(r.Victories))
	}
	if r.Victories[0].Margin != 3 || r.Victories[1].Margin != 1 {
		t.Errorf("margins = %d, %d, want 3, 1", r.Victories[0].Margin, r.Victories[1].Margin)
	}

	data, err := r.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report JSON does not round-trip: %v", err)
	}
	if decoded.Title != "Test run" {
		t.Errorf("Title = %q, want %q", decoded.Title, "Test run")
	}
}
