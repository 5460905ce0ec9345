package moneywell

import "github.com/ewanmcn/moneywell/date"

// TaxBasisRow is one line of a year's tax computation input.
type TaxBasisRow struct {
	Basis     TaxBasis
	Gross     Money
	Net       Money
	TaxCredit Money
}

// TaxReport is the meta-analysis of one finalized fiscal year: the taxable
// income per basis plus the chargeable gains awaiting top-slicing treatment.
// It only reads finalized buckets, never mutates them.
type TaxReport struct {
	Year            date.TaxYear
	Bases           []TaxBasisRow
	GrossIncome     Money
	TaxPaid         Money
	ChargeableGains Money
	TopSliced       Money // sum of per-event slices, the top-slicing relief input
	Events          []*ChargeableEvent
}

// NewTaxReport computes the tax meta-analysis for one completed year.
func NewTaxReport(ya *YearAnalysis) *TaxReport {
	cur := ya.currency
	r := &TaxReport{
		Year:            ya.Year,
		GrossIncome:     M(0, cur),
		TaxPaid:         M(0, cur),
		ChargeableGains: M(0, cur),
		TopSliced:       M(0, cur),
		Events:          ya.ChargeableEvents(),
	}

	for b := range ya.TaxBases().Buckets() {
		r.Bases = append(r.Bases, TaxBasisRow{
			Basis:     b.Basis,
			Gross:     b.Gross,
			Net:       b.Net,
			TaxCredit: b.TaxCredit,
		})
		switch b.Basis {
		case BasisTaxPaid:
			r.TaxPaid = r.TaxPaid.Add(b.Gross)
		default:
			r.GrossIncome = r.GrossIncome.Add(b.Gross)
		}
	}

	for _, ce := range r.Events {
		r.ChargeableGains = r.ChargeableGains.Add(ce.Gains)
		r.TopSliced = r.TopSliced.Add(ce.Slice)
	}
	return r
}
