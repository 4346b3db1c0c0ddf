package render

import (
	"encoding/json"

	"github.com/matzehuels/pairlock/pkg/election"
)

// Report is the JSON result document produced for a tally run.
type Report struct {
	Title       string   `json:"title,omitempty"`
	Candidates  int      `json:"candidates"`
	Winners     []int    `json:"winners"`
	WinnerNames []string `json:"winner_names,omitempty"`
	Victories   []Margin `json:"victories"`
}

// Margin is one victory group: every pairwise win sharing a margin.
type Margin struct {
	Margin int       `json:"margin"`
	Pairs  []Victory `json:"pairs"`
}

// Victory is a single pairwise win.
type Victory struct {
	Winner int `json:"winner"`
	Loser  int `json:"loser"`
}

// NewReport assembles a report from tabulated victories and a winner set.
// Names is optional; when present it must index by candidate.
func NewReport(title string, tab *election.TabulatedData, winners []int, names []string) *Report {
	r := &Report{
		Title:      title,
		Candidates: tab.Candidates(),
		Winners:    winners,
		Victories:  make([]Margin, 0, tab.GroupCount()),
	}

	for _, w := range winners {
		if w < len(names) {
			r.WinnerNames = append(r.WinnerNames, names[w])
		}
	}

	for _, m := range tab.Margins() {
		group := Margin{Margin: m}
		for _, e := range tab.Group(m) {
			group.Pairs = append(group.Pairs, Victory{Winner: e.From, Loser: e.To})
		}
		r.Victories = append(r.Victories, group)
	}

	return r
}

// JSON encodes the report with indentation for direct display.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
