package moneywell

import (
	"fmt"

	"github.com/google/uuid"
)

// AccountClass classifies an account for analysis purposes.
type AccountClass int

const (
	// Deposit is an interest-bearing money account.
	Deposit AccountClass = iota
	// Cash is a plain money account.
	Cash
	// Loan is a borrowed money account.
	Loan
	// Shares is a priced security holding.
	Shares
	// UnitTrust is a priced pooled-fund holding.
	UnitTrust
	// LifeBond is a priced holding whose disposals produce chargeable gains.
	LifeBond
	// Payee is an external party (employer, shop, institution).
	Payee
	// TaxMan is the singular payee collecting tax credits and national insurance.
	TaxMan
)

func (c AccountClass) String() string {
	switch c {
	case Deposit:
		return "deposit"
	case Cash:
		return "cash"
	case Loan:
		return "loan"
	case Shares:
		return "shares"
	case UnitTrust:
		return "unittrust"
	case LifeBond:
		return "lifebond"
	case Payee:
		return "payee"
	case TaxMan:
		return "taxman"
	default:
		return "unknown"
	}
}

// ParseAccountClass parses a string into an AccountClass.
func ParseAccountClass(s string) (AccountClass, error) {
	for c := Deposit; c <= TaxMan; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown account class: %q", s)
}

// HasUnits reports whether accounts of this class hold priced units.
func (c AccountClass) HasUnits() bool {
	return c == Shares || c == UnitTrust || c == LifeBond
}

// IsExternal reports whether accounts of this class belong to a third party.
func (c AccountClass) IsExternal() bool {
	return c == Payee || c == TaxMan
}

// Account is an immutable ledger account record.
type Account struct {
	ID             uuid.UUID
	Name           string
	Class          AccountClass
	Parent         *Account // owning institution for detailed interest/dividend sources
	Currency       string
	OpeningBalance Money
	Closed         bool
	AutoExpense    *Category // postings redirect to this expense category instead of the account
}

// NewAccount creates an account with a fresh identity.
func NewAccount(name string, class AccountClass, currency string) *Account {
	return &Account{ID: uuid.New(), Name: name, Class: class, Currency: currency}
}

// HasUnits reports whether the account holds priced units.
func (a *Account) HasUnits() bool { return a.Class.HasUnits() }

// IsLifeBond reports whether disposals from this account produce chargeable gains.
func (a *Account) IsLifeBond() bool { return a.Class == LifeBond }

func (a *Account) String() string { return a.Name }
