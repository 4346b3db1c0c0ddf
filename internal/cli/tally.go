package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pairlock/pkg/ballotfile"
	"github.com/matzehuels/pairlock/pkg/pipeline"
)

// tallyCommand creates the tally command for computing election winners.
func (c *CLI) tallyCommand() *cobra.Command {
	var (
		formatsStr   string
		output       string
		noCache      bool
		refresh      bool
		detailed     bool
		workers      int
		maxGroupSize int
	)

	cmd := &cobra.Command{
		Use:   "tally <election.toml>",
		Short: "Compute the winner set of an election",
		Long: `Compute the winner set of an election.

The tally command reads a TOML election file, locks pairwise victories from
widest margin to slimmest, branches over every order of tied margins, and
prints each candidate left undefeated by some resolution of the ties.

Results are cached locally for faster subsequent runs.

Use --format to also write the report as JSON, DOT, SVG, or PNG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Formats:      parseFormats(formatsStr, pipeline.FormatJSON),
				Workers:      workers,
				MaxGroupSize: maxGroupSize,
				Refresh:      refresh,
				Detailed:     detailed,
			}
			return c.runTally(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label graph edges with margins")
	cmd.Flags().IntVar(&workers, "workers", 0, "tally worker count (default 4)")
	cmd.Flags().IntVar(&maxGroupSize, "max-group-size", 0, "refuse margin groups larger than this (default 8, -1 disables)")

	return cmd
}

// runTally loads the election, executes the pipeline, and reports winners.
func (c *CLI) runTally(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	e, err := ballotfile.ReadFile(input)
	if err != nil {
		return err
	}
	opts.Ballots = e.Ballots
	opts.Candidates = len(e.Candidates)
	opts.Names = e.Candidates
	opts.Title = e.Title

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		printError("Tally failed")
		return err
	}
	prog.done(fmt.Sprintf("Tallied %d candidates", opts.Candidates))

	printWinners(result.Winners, e.Candidates)
	printStats(len(e.Ballots), result.Stats.GroupCount, result.CacheInfo.TallyHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
}

// graphCommand creates the graph command, a shortcut from an election file
// to a rendered victory graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "graph <election.toml>",
		Short: "Render the victory graph of an election",
		Long: `Render the victory graph of an election.

The graph command tallies the election and renders its pairwise victories as
a Graphviz graph, with winners highlighted. Use --detailed to label each
edge with its margin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Formats:  parseFormats(formatsStr, pipeline.FormatSVG),
				Detailed: detailed,
			}
			return c.runTally(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label graph edges with margins")

	return cmd
}
