package moneywell

// SecurityGains holds the capital position of a single security at the end
// of an analysis pass.
type SecurityGains struct {
	Account  *Account
	Units    Quantity
	Cost     Money
	Invested Money
	Gains    Money
	Dividend Money
}

// GainsReport lists the capital position of every priced holding touched by
// a finalized pass. Pure computation over buckets; presentation lives with
// the consumer.
type GainsReport struct {
	Securities    []SecurityGains
	TotalGains    Money
	TotalDividend Money
}

// NewGainsReport builds a gains report from a finalized analysis.
func NewGainsReport(a *Analysis) *GainsReport {
	r := &GainsReport{
		TotalGains:    M(0, a.currency),
		TotalDividend: M(0, a.currency),
	}
	for b := range a.Accounts().Buckets() {
		if !b.Account.HasUnits() {
			continue
		}
		r.Securities = append(r.Securities, SecurityGains{
			Account:  b.Account,
			Units:    b.Units,
			Cost:     b.Cost,
			Invested: b.Invested,
			Gains:    b.Gains,
			Dividend: b.Dividend,
		})
		r.TotalGains = r.TotalGains.Add(b.Gains)
		r.TotalDividend = r.TotalDividend.Add(b.Dividend)
	}
	return r
}

// CategoryLine is one row of a category totals report. Delta is Income minus
// Expense; BaseDelta is the same figure from the prior period when a base
// snapshot exists.
type CategoryLine struct {
	Category  *Category
	Income    Money
	Expense   Money
	Delta     Money
	BaseDelta Money
	HasBase   bool
}

// CategoryReport lists the post-roll-up category totals of a finalized pass,
// ordered by category name, Totals last.
type CategoryReport struct {
	Lines  []CategoryLine
	Totals CategoryLine
}

// NewCategoryReport builds a category totals report from a finalized analysis.
func NewCategoryReport(a *Analysis) *CategoryReport {
	r := &CategoryReport{}
	for b := range a.Categories().Buckets() {
		line := CategoryLine{
			Category: b.Category,
			Income:   b.Income,
			Expense:  b.Expense,
			Delta:    b.Delta,
		}
		if b.Base != nil {
			line.HasBase = true
			line.BaseDelta = b.Base.Delta
		}
		if b.Category.Class == Totals {
			r.Totals = line
			continue
		}
		r.Lines = append(r.Lines, line)
	}
	return r
}
