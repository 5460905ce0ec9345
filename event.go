package moneywell

import (
	"fmt"

	"github.com/ewanmcn/moneywell/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is an immutable ledger transaction. Money always moves from the
// debit account to the credit account; everything else is optional detail.
// Once posted into an analysis pass an event is never mutated.
type Event struct {
	ID       uuid.UUID
	Date     date.Date
	Debit    *Account
	Credit   *Account
	Third    *Account // cash destination on a takeover, if any
	Amount   Money
	Category *Category

	// Optional sub-values. Zero means absent.
	TaxCredit    Money
	NatInsurance Money
	Benefit      Money
	Donation     Money
	Dilution     decimal.Decimal // cost fraction kept by the debit security in a de-merger
	DebitUnits   Quantity        // units removed from the debit account
	CreditUnits  Quantity        // units added to the credit account
	Years        int             // whole qualifying years held, for chargeable gains

	Parent  *Event // owning event for split children
	Deleted bool
}

// NewEvent creates an event with a fresh identity.
func NewEvent(on date.Date, debit, credit *Account, amount Money, category *Category) *Event {
	return &Event{
		ID:       uuid.New(),
		Date:     on,
		Debit:    debit,
		Credit:   credit,
		Amount:   amount,
		Category: category,
	}
}

// HasTax reports whether the event carries a tax credit or national insurance.
func (e *Event) HasTax() bool {
	return !e.TaxCredit.IsZero() || !e.NatInsurance.IsZero()
}

// TouchesUnits reports whether either side of the event holds priced units.
func (e *Event) TouchesUnits() bool {
	return e.Debit.HasUnits() || e.Credit.HasUnits()
}

func (e *Event) String() string {
	return fmt.Sprintf("%s %s %s->%s %s", e.Date, e.Category, e.Debit, e.Credit, e.Amount)
}
