package moneywell

import (
	"fmt"

	"github.com/google/uuid"
)

// CategoryClass classifies a transaction category for analysis purposes.
type CategoryClass int

const (
	// Income is generic taxed income from a payee.
	Income CategoryClass = iota
	// Expense is a generic payment to a payee.
	Expense
	// Transfer moves money between owned accounts.
	Transfer
	// Interest is interest earned on a deposit account.
	Interest
	// LoanInterest is interest charged on a loan account.
	LoanInterest
	// Rental is income from a rented property.
	Rental
	// DividendIncome is a dividend paid on a security holding.
	DividendIncome
	// StockSplit is a value-preserving unit adjustment on a security.
	StockSplit
	// StockAdjust is a unit correction treated exactly as a split.
	StockAdjust
	// StockRightsTaken is a rights issue taken up (units bought at a discount).
	StockRightsTaken
	// StockRightsWaived is a rights issue sold or allowed to lapse for cash.
	StockRightsWaived
	// StockDeMerger splits one holding's cost between two securities.
	StockDeMerger
	// StockTakeOver exchanges a whole holding for new stock and/or cash.
	StockTakeOver
	// OpeningBalance seeds an account's starting value.
	OpeningBalance
	// TaxCredit is the singular category collecting redistributed tax credits.
	TaxCredit
	// NatInsurance is the singular category collecting national insurance.
	NatInsurance
	// Benefit is the singular category collecting deemed benefits.
	Benefit
	// CharityDonation is the singular category collecting charity donations.
	CharityDonation
	// Totals is the singular category owning the grand-total bucket.
	Totals
)

func (c CategoryClass) String() string {
	switch c {
	case Income:
		return "income"
	case Expense:
		return "expense"
	case Transfer:
		return "transfer"
	case Interest:
		return "interest"
	case LoanInterest:
		return "loaninterest"
	case Rental:
		return "rental"
	case DividendIncome:
		return "dividend"
	case StockSplit:
		return "stocksplit"
	case StockAdjust:
		return "stockadjust"
	case StockRightsTaken:
		return "rightstaken"
	case StockRightsWaived:
		return "rightswaived"
	case StockDeMerger:
		return "demerger"
	case StockTakeOver:
		return "takeover"
	case OpeningBalance:
		return "openingbalance"
	case TaxCredit:
		return "taxcredit"
	case NatInsurance:
		return "natinsurance"
	case Benefit:
		return "benefit"
	case CharityDonation:
		return "donation"
	case Totals:
		return "totals"
	default:
		return "unknown"
	}
}

// ParseCategoryClass parses a string into a CategoryClass.
func ParseCategoryClass(s string) (CategoryClass, error) {
	for c := Income; c <= Totals; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category class: %q", s)
}

// IsIncome reports whether the class records money earned.
func (c CategoryClass) IsIncome() bool {
	switch c {
	case Income, Interest, Rental, DividendIncome, Benefit:
		return true
	}
	return false
}

// IsExpense reports whether the class records money spent.
func (c CategoryClass) IsExpense() bool {
	switch c {
	case Expense, LoanInterest, CharityDonation:
		return true
	}
	return false
}

// IsStock reports whether the class is an explicit capital category,
// dispatched directly to its capital algorithm.
func (c CategoryClass) IsStock() bool {
	switch c {
	case StockSplit, StockAdjust, StockRightsTaken, StockRightsWaived, StockDeMerger, StockTakeOver, DividendIncome:
		return true
	}
	return false
}

// IsSingular reports whether exactly one category of this class exists in a ledger.
func (c CategoryClass) IsSingular() bool {
	switch c {
	case OpeningBalance, TaxCredit, NatInsurance, Benefit, CharityDonation, Totals:
		return true
	}
	return false
}

// Category is an immutable transaction category record. Categories form a
// two-level tree: parents group leaf categories, and the singular Totals
// category aggregates all parents.
type Category struct {
	ID     uuid.UUID
	Name   string
	Class  CategoryClass
	Parent *Category
}

// NewCategory creates a category with a fresh identity.
func NewCategory(name string, class CategoryClass, parent *Category) *Category {
	return &Category{ID: uuid.New(), Name: name, Class: class, Parent: parent}
}

// IsLeaf reports whether the category cannot itself parent others.
func (c *Category) IsLeaf() bool { return c.Parent != nil }

func (c *Category) String() string { return c.Name }
