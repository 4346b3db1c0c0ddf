package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/pairlock/pkg/pipeline"
)

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // election file path, used to derive output names
	output    string // explicit output file or base path
}

// writeArtifacts writes rendered artifacts to disk, or to stdout when a
// single text format was requested without an explicit output path.
func writeArtifacts(p artifactWriteParams) error {
	// Single text format without --output goes to stdout.
	if p.output == "" && len(p.formats) == 1 {
		if f := p.formats[0]; f == pipeline.FormatJSON || f == pipeline.FormatDOT {
			fmt.Println(string(p.artifacts[f]))
			return nil
		}
	}

	base := p.output
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(p.input), filepath.Ext(p.input))
	}

	for _, format := range p.formats {
		path := base
		// With an explicit --output and one format, use the path verbatim.
		if p.output == "" || len(p.formats) > 1 || filepath.Ext(p.output) == "" {
			path = base + "." + format
		}
		if err := os.WriteFile(path, p.artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
