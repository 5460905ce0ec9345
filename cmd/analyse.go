package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ewanmcn/moneywell"
	"github.com/ewanmcn/moneywell/date"
	"github.com/google/subcommands"
)

// analyseCmd holds the flags for the 'analyse' subcommand.
type analyseCmd struct {
	start string
	end   string
}

func (*analyseCmd) Name() string     { return "analyse" }
func (*analyseCmd) Synopsis() string { return "category totals for a date range" }
func (*analyseCmd) Usage() string {
	return `mwa analyse [-s <date>] [-d <date>]

  Runs a single analysis pass and prints the post-roll-up category totals.
`
}

func (c *analyseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date of the analysis range. Empty means from inception.")
	f.StringVar(&c.end, "d", date.Today().String(), "End date of the analysis range.")
}

func (c *analyseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := parseRange(c.start, c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing range: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := runAnalysis(rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report := moneywell.NewCategoryReport(a)
	for _, line := range report.Lines {
		fmt.Printf("%-30s income=%s expense=%s delta=%s\n",
			line.Category, line.Income, line.Expense, line.Delta.SignedString())
	}
	fmt.Printf("%-30s income=%s expense=%s delta=%s\n",
		"TOTAL", report.Totals.Income, report.Totals.Expense, report.Totals.Delta.SignedString())
	return subcommands.ExitSuccess
}

// parseRange builds the analysis range from optional start and end flags.
func parseRange(start, end string) (date.Range, error) {
	to, err := date.Parse(end)
	if err != nil {
		return date.Range{}, err
	}
	if start == "" {
		return date.UpTo(to), nil
	}
	from, err := date.Parse(start)
	if err != nil {
		return date.Range{}, err
	}
	return date.NewRange(from, to), nil
}

// runAnalysis loads the app ledger and runs one pass over the given range.
func runAnalysis(rng date.Range) (*moneywell.Analysis, error) {
	ledger, market, err := DecodeLedger()
	if err != nil {
		return nil, err
	}
	policy, err := LoadPolicy()
	if err != nil {
		return nil, err
	}
	a, err := moneywell.NewAnalysis(ledger, market, policy, rng, nil)
	if err != nil {
		return nil, err
	}
	if err := a.Run(); err != nil {
		return nil, err
	}
	return a, nil
}
