package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pairlock/pkg/cache"
	"github.com/matzehuels/pairlock/pkg/election"
	"github.com/matzehuels/pairlock/pkg/errors"
	"github.com/matzehuels/pairlock/pkg/observability"
	"github.com/matzehuels/pairlock/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ballotsEnvelope is the canonical encoding hashed into cache keys.
type ballotsEnvelope struct {
	Ballots    [][]int `json:"ballots"`
	Candidates int     `json:"candidates"`
}

// cachedTally is the cache entry for a computed winner set.
type cachedTally struct {
	Winners []int `json:"winners"`
}

// Execute runs the complete tabulate → tally → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.Logger.With("run_id", result.RunID)

	// Stage 1: Tabulate. Always computed: it is linear in the ballots and
	// its output feeds both cache keys and rendering.
	tabStart := time.Now()
	tab, err := election.Tabulate(opts.Ballots, opts.Candidates)
	if err != nil {
		return nil, translateElectionErr(err)
	}
	result.Tabulated = tab
	result.Stats.TabulateTime = time.Since(tabStart)
	result.Stats.BallotCount = len(opts.Ballots)
	result.Stats.GroupCount = tab.GroupCount()

	if err := checkGroupSizes(tab, opts); err != nil {
		return nil, err
	}

	envelope, err := json.Marshal(ballotsEnvelope{Ballots: opts.Ballots, Candidates: opts.Candidates})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode ballots")
	}
	result.BallotsHash = cache.Hash(envelope)

	logger.Info("tabulated ballots",
		"ballots", len(opts.Ballots),
		"candidates", opts.Candidates,
		"groups", tab.GroupCount(),
		"duration", result.Stats.TabulateTime)

	// Stage 2: Tally
	tallyStart := time.Now()
	winners, tallyHit, err := r.tallyWithCache(ctx, tab, result.BallotsHash, opts)
	if err != nil {
		return nil, err
	}
	result.Winners = winners
	result.Stats.TallyTime = time.Since(tallyStart)
	result.CacheInfo.TallyHit = tallyHit

	logger.Info("tallied winners",
		"winners", winners,
		"cached", tallyHit,
		"duration", result.Stats.TallyTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCache(ctx, tab, winners, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// tallyWithCache computes the winner set, consulting the result cache first.
func (r *Runner) tallyWithCache(ctx context.Context, tab *election.TabulatedData, ballotsHash string, opts Options) ([]int, bool, error) {
	key := r.Keyer.ResultKey(ballotsHash, opts.ResultKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var entry cachedTally
			if err := json.Unmarshal(data, &entry); err == nil {
				observability.Cache().OnCacheHit(ctx, "tally")
				return entry.Winners, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "tally")
	}

	winners, err := tab.TallyContext(ctx, opts.Workers)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(cachedTally{Winners: winners}); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLResult); err == nil {
			observability.Cache().OnCacheSet(ctx, "tally", len(data))
		}
	}

	return winners, false, nil
}

// renderWithCache generates artifacts, consulting the artifact cache first.
func (r *Runner) renderWithCache(ctx context.Context, tab *election.TabulatedData, winners []int, opts Options) (map[string][]byte, bool, error) {
	report := render.NewReport(opts.Title, tab, winners, opts.Names)
	reportJSON, err := report.JSON()
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "encode report")
	}
	resultHash := cache.Hash(reportJSON)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(resultHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	// Render all formats. DOT is shared by the image formats.
	rendered := make(map[string][]byte, len(opts.Formats))
	var dot string
	needDOT := func() string {
		if dot == "" {
			dot = render.ToDOT(tab, winners, render.Options{Names: opts.Names, Detailed: opts.Detailed})
		}
		return dot
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			rendered[format] = reportJSON
		case FormatDOT:
			rendered[format] = []byte(needDOT())
		case FormatSVG:
			svg, err := render.RenderSVG(needDOT())
			if err != nil {
				return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
			}
			rendered[format] = svg
		case FormatPNG:
			png, err := render.RenderPNG(needDOT())
			if err != nil {
				return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render png")
			}
			rendered[format] = png
		}
	}

	// Cache each format
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(resultHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// checkGroupSizes enforces the branch explosion guard: a group of k equal
// margins multiplies the search by k!, so oversized groups are refused
// before the tally starts.
func checkGroupSizes(tab *election.TabulatedData, opts Options) error {
	if !opts.GuardGroupSize() {
		return nil
	}
	for _, m := range tab.Margins() {
		if size := len(tab.Group(m)); size > opts.MaxGroupSize {
			return errors.New(errors.ErrCodeTooManyBranches,
				"%d victories share margin %d (limit %d); raise --max-group-size to proceed",
				size, m, opts.MaxGroupSize)
		}
	}
	return nil
}

// translateElectionErr maps election sentinel errors to structured errors.
func translateElectionErr(err error) error {
	switch {
	case stderrors.Is(err, election.ErrInvalidCandidate):
		return errors.Wrap(errors.ErrCodeInvalidCandidate, err, "ballot validation failed")
	case stderrors.Is(err, election.ErrInvalidBallot):
		return errors.Wrap(errors.ErrCodeInvalidBallot, err, "ballot validation failed")
	default:
		return errors.Wrap(errors.ErrCodeInternal, err, "tabulation failed")
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
