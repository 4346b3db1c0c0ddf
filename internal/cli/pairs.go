package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pairlock/pkg/ballotfile"
	"github.com/matzehuels/pairlock/pkg/election"
)

// pairsCommand creates the pairs command for inspecting pairwise victories.
func (c *CLI) pairsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairs <election.toml>",
		Short: "Show the pairwise victories grouped by margin",
		Long: `Show the pairwise victories grouped by margin.

For every pair of candidates, the ballots preferring one over the other are
counted; the victories are grouped by their margin and listed from widest to
slimmest. This is the exact order in which the tally locks them in, so
groups with more than one victory are where ties can change the outcome.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPairs(args[0])
		},
	}

	return cmd
}

func (c *CLI) runPairs(input string) error {
	e, err := ballotfile.ReadFile(input)
	if err != nil {
		return err
	}

	tab, err := election.Tabulate(e.Ballots, len(e.Candidates))
	if err != nil {
		return err
	}

	if e.Title != "" {
		printInfo("%s", StyleTitle.Render(e.Title))
	}

	if tab.GroupCount() == 0 {
		printInfo("No decisive pairwise contests")
		return nil
	}

	for _, m := range tab.Margins() {
		group := tab.Group(m)
		label := "margin +" + strconv.Itoa(m)
		if len(group) > 1 {
			label += StyleWarning.Render("  (tied order)")
		}
		printInfo("%s", StyleHighlight.Render(label))
		for _, edge := range group {
			printDetail("%s %s %s",
				candidateLabel(edge.From, e.Candidates),
				iconArrow,
				candidateLabel(edge.To, e.Candidates))
		}
	}

	printNextStep("Compute winners", "pairlock tally "+input)
	return nil
}

func candidateLabel(c int, names []string) string {
	if c < len(names) && names[c] != "" {
		return names[c]
	}
	return strconv.Itoa(c)
}
