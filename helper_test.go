package moneywell

import (
	"testing"

	"github.com/ewanmcn/moneywell/date"
)

// gbp is a shorthand for test amounts.
func gbp(v float64) Money { return M(v, "GBP") }

// newTestLedger creates a GBP ledger with the singular accounts and
// categories every analysis resolves eagerly.
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger("GBP")

	accounts := []*Account{
		NewAccount("HMRC", TaxMan, "GBP"),
	}
	for _, a := range accounts {
		if err := l.AddAccount(a); err != nil {
			t.Fatalf("AddAccount(%s) error = %v", a, err)
		}
	}

	categories := []*Category{
		NewCategory("Totals", Totals, nil),
		NewCategory("TaxCredit", TaxCredit, nil),
		NewCategory("NatInsurance", NatInsurance, nil),
		NewCategory("Benefit", Benefit, nil),
		NewCategory("Donation", CharityDonation, nil),
		NewCategory("OpeningBalance", OpeningBalance, nil),
	}
	for _, c := range categories {
		if err := l.AddCategory(c); err != nil {
			t.Fatalf("AddCategory(%s) error = %v", c, err)
		}
	}
	return l
}

// addAccount declares an account in the test ledger.
func addAccount(t *testing.T, l *Ledger, name string, class AccountClass) *Account {
	t.Helper()
	a := NewAccount(name, class, l.Currency())
	if err := l.AddAccount(a); err != nil {
		t.Fatalf("AddAccount(%s) error = %v", name, err)
	}
	return a
}

// addCategory declares a category in the test ledger.
func addCategory(t *testing.T, l *Ledger, name string, class CategoryClass, parent *Category) *Category {
	t.Helper()
	c := NewCategory(name, class, parent)
	if err := l.AddCategory(c); err != nil {
		t.Fatalf("AddCategory(%s) error = %v", name, err)
	}
	return c
}

// run builds and runs an analysis over the whole ledger with default policy.
func run(t *testing.T, l *Ledger, prices PriceSource) *Analysis {
	t.Helper()
	return runRange(t, l, prices, date.UpTo(date.New(2100, 1, 1)))
}

// runRange builds and runs an analysis over the given range.
func runRange(t *testing.T, l *Ledger, prices PriceSource, rng date.Range) *Analysis {
	t.Helper()
	a, err := NewAnalysis(l, prices, DefaultCapitalPolicy(), rng, nil)
	if err != nil {
		t.Fatalf("NewAnalysis() error = %v", err)
	}
	if err := a.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return a
}

// checkMoney fails the test when got differs from want.
func checkMoney(t *testing.T, label string, got, want Money) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", label, got, want)
	}
}

// checkUnits fails the test when got differs from want.
func checkUnits(t *testing.T, label string, got, want Quantity) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", label, got, want)
	}
}
