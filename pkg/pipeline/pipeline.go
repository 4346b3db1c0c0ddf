// Package pipeline provides the core tally pipeline for Pairlock.
//
// This package implements the complete tabulate → tally → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Tabulate: Validate ballots and group pairwise victories by margin
//  2. Tally: Search every tie resolution and union the undefeated candidates
//  3. Render: Generate output in various formats (JSON, DOT, SVG, PNG)
//
// The tally and render stages are cached: identical ballots with identical
// options hit the same entries regardless of entry point.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Ballots:    ballots,
//	    Candidates: 4,
//	    Formats:    []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := result.Artifacts["json"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pairlock/pkg/cache"
	"github.com/matzehuels/pairlock/pkg/election"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWorkers is the worker pool size for the tally stage.
	DefaultWorkers = 4

	// DefaultMaxGroupSize caps the number of victories sharing one margin.
	// A group of size k forces k! lock-in orders per working graph, so this
	// guard keeps adversarial or degenerate elections from running forever.
	// API users can raise it by setting MaxGroupSize explicitly; the CLI
	// exposes it as a flag.
	DefaultMaxGroupSize = 8
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the tally pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Election input
	Ballots    [][]int  `json:"ballots"`
	Candidates int      `json:"candidates"`
	Names      []string `json:"names,omitempty"` // candidate names, indexed by candidate
	Title      string   `json:"title,omitempty"`

	// Tally options
	Workers      int  `json:"workers,omitempty"`
	MaxGroupSize int  `json:"max_group_size,omitempty"` // -1 disables the guard
	Refresh      bool `json:"refresh,omitempty"`        // bypass the result cache

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // margin labels on graph edges

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution for logging and tracing.
	RunID string

	// Tabulated holds the margin-grouped pairwise victories.
	Tabulated *election.TabulatedData

	// Winners is the sorted winner set.
	Winners []int

	// BallotsHash is the content hash of the canonical ballot encoding.
	BallotsHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BallotCount  int
	GroupCount   int
	TabulateTime time.Duration
	TallyTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TallyHit  bool // Whether the winner set came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Candidates < 0 {
		return fmt.Errorf("candidates must be non-negative")
	}
	if len(o.Names) > 0 && len(o.Names) != o.Candidates {
		return fmt.Errorf("got %d names for %d candidates", len(o.Names), o.Candidates)
	}

	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.MaxGroupSize == 0 {
		o.MaxGroupSize = DefaultMaxGroupSize
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// GuardGroupSize reports whether the guard is active.
// A MaxGroupSize of -1 disables it.
func (o *Options) GuardGroupSize() bool {
	return o.MaxGroupSize > 0
}

// ResultKeyOpts returns cache key options for the tally stage.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Candidates:   o.Candidates,
		MaxGroupSize: o.MaxGroupSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
