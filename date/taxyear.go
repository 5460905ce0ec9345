package date

import (
	"fmt"
	"time"
)

// The fiscal year runs from 6 April to the following 5 April.
const (
	fiscalMonth = time.April
	fiscalDay   = 6
)

// TaxYear identifies a single fiscal year. The year is the calendar year in
// which the fiscal year ends, so TaxYear(2025) covers 2024-04-06 to 2025-04-05.
type TaxYear int

// TaxYearOf returns the fiscal year that contains the given date.
func TaxYearOf(d Date) TaxYear {
	boundary := New(d.Year(), fiscalMonth, fiscalDay)
	if d.Before(boundary) {
		return TaxYear(d.Year())
	}
	return TaxYear(d.Year() + 1)
}

// Start returns the first day of the fiscal year.
func (y TaxYear) Start() Date { return New(int(y)-1, fiscalMonth, fiscalDay) }

// End returns the last day of the fiscal year.
func (y TaxYear) End() Date { return New(int(y), fiscalMonth, fiscalDay).Add(-1) }

// Range returns the full date range of the fiscal year.
func (y TaxYear) Range() Range { return Range{From: y.Start(), To: y.End()} }

// Next returns the following fiscal year.
func (y TaxYear) Next() TaxYear { return y + 1 }

// String formats the year as "2024/25".
func (y TaxYear) String() string {
	return fmt.Sprintf("%d/%02d", int(y)-1, int(y)%100)
}
