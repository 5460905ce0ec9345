package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ewanmcn/moneywell"
	"github.com/google/subcommands"
)

// yearsCmd holds the flags for the 'years' subcommand.
type yearsCmd struct{}

func (*yearsCmd) Name() string     { return "years" }
func (*yearsCmd) Synopsis() string { return "per-fiscal-year tax analysis" }
func (*yearsCmd) Usage() string {
	return `mwa years

  Segments the whole ledger into fiscal years and prints each year's
  taxable income and chargeable gains.
`
}

func (c *yearsCmd) SetFlags(f *flag.FlagSet) {}

func (c *yearsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, market, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	policy, err := LoadPolicy()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	years, err := moneywell.AnalyseYears(ledger, market, policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, ya := range years {
		report := moneywell.NewTaxReport(ya)
		fmt.Printf("%s gross=%s taxpaid=%s gains=%s topsliced=%s\n",
			report.Year, report.GrossIncome, report.TaxPaid,
			report.ChargeableGains.SignedString(), report.TopSliced.SignedString())
		for _, row := range report.Bases {
			fmt.Printf("  %-15s gross=%s net=%s credit=%s\n", row.Basis, row.Gross, row.Net, row.TaxCredit)
		}
	}
	return subcommands.ExitSuccess
}
