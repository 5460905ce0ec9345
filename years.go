package moneywell

import (
	"github.com/ewanmcn/moneywell/date"
)

// YearAnalysis is one completed fiscal year of a multi-year pass.
type YearAnalysis struct {
	Year date.TaxYear
	*Analysis
}

// AnalyseYears walks the whole event stream once, segmenting it into fiscal
// years. On crossing a year boundary the current year is finalized and the
// next year's pass opens seeded from its closing buckets, so priced holdings
// carry their cost and units across years while income and expense start
// fresh. Returns one finalized analysis per fiscal year, earliest first.
func AnalyseYears(ledger *Ledger, prices PriceSource, policy CapitalPolicy) ([]*YearAnalysis, error) {
	first := ledger.FirstDate()
	if first.IsZero() {
		return nil, nil
	}

	year := date.TaxYearOf(first)
	current, err := NewAnalysis(ledger, prices, policy, year.Range(), nil)
	if err != nil {
		return nil, err
	}

	var out []*YearAnalysis
	for e := range ledger.Events() {
		if e.Deleted {
			continue
		}
		for e.Date.After(year.End()) {
			current.finalize()
			out = append(out, &YearAnalysis{Year: year, Analysis: current})

			year = year.Next()
			next, err := NewAnalysis(ledger, prices, policy, year.Range(), current)
			if err != nil {
				return nil, err
			}
			current = next
		}
		if err := current.post(e); err != nil {
			return nil, err
		}
	}
	current.finalize()
	out = append(out, &YearAnalysis{Year: year, Analysis: current})
	return out, nil
}
