// Package cmd implements the CLI application to run ledger analyses.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/ewanmcn/moneywell"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&analyseCmd{}, "analysis")
	c.Register(&gainsCmd{}, "analysis")
	c.Register(&yearsCmd{}, "analysis")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.jsonl", "Path to the ledger file (JSONL format)")
var policyFile = flag.String("policy-file", "", "Path to the capital policy file (YAML). Defaults apply when empty.")

// DecodeLedger loads the app ledger and price data.
func DecodeLedger() (*moneywell.Ledger, *moneywell.Market, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open ledger %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return moneywell.DecodeLedger(f)
}

// LoadPolicy loads the app capital policy, falling back to defaults.
func LoadPolicy() (moneywell.CapitalPolicy, error) {
	if *policyFile == "" {
		return moneywell.DefaultCapitalPolicy(), nil
	}
	return moneywell.LoadCapitalPolicy(*policyFile)
}
