// Package render turns tally results into human-readable artifacts: a
// Graphviz DOT view of the pairwise victories, SVG/PNG images of it, and a
// JSON report.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pairlock/pkg/election"
)

// Options configures victory graph rendering.
type Options struct {
	// Names labels nodes with candidate names. When empty or too short,
	// nodes fall back to their numeric index.
	Names []string

	// Detailed includes the margin on each edge label.
	Detailed bool
}

// ToDOT converts tabulated victories to Graphviz DOT format. Each candidate
// becomes a node and each pairwise victory an edge from winner to loser.
// Winners are drawn with a gold fill. The resulting DOT string can be
// rendered with [RenderSVG] or [RenderPNG].
func ToDOT(tab *election.TabulatedData, winners []int, opts Options) string {
	winner := make(map[int]bool, len(winners))
	for _, w := range winners {
		winner[w] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph victories {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for c := 0; c < tab.Candidates(); c++ {
		attrs := fmt.Sprintf("label=%q", nodeLabel(c, opts.Names))
		if winner[c] {
			attrs += ", fillcolor=gold"
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", c, attrs)
	}

	buf.WriteString("\n")
	for _, m := range tab.Margins() {
		for _, e := range tab.Group(m) {
			if opts.Detailed {
				fmt.Fprintf(&buf, "  %d -> %d [label=\"+%d\"];\n", e.From, e.To, m)
			} else {
				fmt.Fprintf(&buf, "  %d -> %d;\n", e.From, e.To)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(c int, names []string) string {
	if c < len(names) && names[c] != "" {
		return names[c]
	}
	return strconv.Itoa(c)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG, nil)
}

func renderFormat(dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the image origin is
// (0,0) and width/height match the viewBox, which makes the output embed
// cleanly in web pages.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
