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

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	end string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "capital position per security" }
func (*gainsCmd) Usage() string {
	return `mwa gains [-d <date>]

  Prints cost, units, realized gains, and dividends for every priced holding.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.end, "d", date.Today().String(), "Report date.")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	to, err := date.Parse(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := runAnalysis(date.UpTo(to))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report := moneywell.NewGainsReport(a)
	for _, row := range report.Securities {
		fmt.Printf("%-30s units=%s cost=%s invested=%s gains=%s dividend=%s\n",
			row.Account, row.Units, row.Cost, row.Invested, row.Gains.SignedString(), row.Dividend)
	}
	fmt.Printf("%-30s gains=%s dividend=%s\n", "TOTAL", report.TotalGains.SignedString(), report.TotalDividend)
	return subcommands.ExitSuccess
}
