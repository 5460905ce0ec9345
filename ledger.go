package moneywell

import (
	"fmt"
	"iter"
	"sort"

	"github.com/ewanmcn/moneywell/date"
)

// Ledger holds the accounts, categories, and events of one dataset.
//
// In a Ledger events are always in chronological order: the analysis driver
// relies on ascending dates for its early termination.
type Ledger struct {
	currency   string
	events     []*Event
	accounts   map[string]*Account  // index accounts by name
	categories map[string]*Category // index categories by name
	singular   map[CategoryClass]*Category
	taxMan     *Account
}

// NewLedger creates an empty ledger in the given reporting currency.
func NewLedger(currency string) *Ledger {
	return &Ledger{
		currency:   currency,
		events:     make([]*Event, 0),
		accounts:   make(map[string]*Account),
		categories: make(map[string]*Category),
		singular:   make(map[CategoryClass]*Category),
	}
}

// Currency returns the ledger's reporting currency.
func (l *Ledger) Currency() string { return l.currency }

// AddAccount registers an account. The first TaxMan account becomes the
// ledger's singular tax collector.
func (l *Ledger) AddAccount(a *Account) error {
	if _, dup := l.accounts[a.Name]; dup {
		return fmt.Errorf("account %q already declared", a.Name)
	}
	l.accounts[a.Name] = a
	if a.Class == TaxMan && l.taxMan == nil {
		l.taxMan = a
	}
	return nil
}

// AddCategory registers a category. Singular classes may only appear once.
func (l *Ledger) AddCategory(c *Category) error {
	if _, dup := l.categories[c.Name]; dup {
		return fmt.Errorf("category %q already declared", c.Name)
	}
	l.categories[c.Name] = c
	if c.Class.IsSingular() {
		if _, dup := l.singular[c.Class]; dup {
			return fmt.Errorf("singular category class %q already declared", c.Class)
		}
		l.singular[c.Class] = c
	}
	return nil
}

// Account returns the account declared with this name, or nil if unknown.
func (l *Ledger) Account(name string) *Account { return l.accounts[name] }

// Category returns the category declared with this name, or nil if unknown.
func (l *Ledger) Category(name string) *Category { return l.categories[name] }

// TaxManAccount returns the singular tax collector payee.
func (l *Ledger) TaxManAccount() (*Account, error) {
	if l.taxMan == nil {
		return nil, fmt.Errorf("no taxman account declared")
	}
	return l.taxMan, nil
}

// SingularCategory returns the one category of a singular class
// (Totals, OpeningBalance, TaxCredit, NatInsurance, Benefit, CharityDonation).
func (l *Ledger) SingularCategory(class CategoryClass) (*Category, error) {
	c, ok := l.singular[class]
	if !ok {
		return nil, fmt.Errorf("no %s category declared", class)
	}
	return c, nil
}

// Append adds events to the ledger, keeping chronological order.
func (l *Ledger) Append(events ...*Event) {
	l.events = append(l.events, events...)
	sort.SliceStable(l.events, func(i, j int) bool {
		return l.events[i].Date.Before(l.events[j].Date)
	})
}

// Events returns an iterator over all events in chronological order.
func (l *Ledger) Events() iter.Seq[*Event] {
	return func(yield func(*Event) bool) {
		for _, e := range l.events {
			if !yield(e) {
				return
			}
		}
	}
}

// FirstDate returns the date of the earliest event, or the zero date for an
// empty ledger.
func (l *Ledger) FirstDate() date.Date {
	if len(l.events) == 0 {
		return date.Date{}
	}
	return l.events[0].Date
}

// LastDate returns the date of the latest event, or the zero date for an
// empty ledger.
func (l *Ledger) LastDate() date.Date {
	if len(l.events) == 0 {
		return date.Date{}
	}
	return l.events[len(l.events)-1].Date
}

// Accounts returns an iterator over all accounts sorted by name.
func (l *Ledger) Accounts() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		names := make([]string, 0, len(l.accounts))
		for name := range l.accounts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if !yield(l.accounts[name]) {
				return
			}
		}
	}
}

// Categories returns an iterator over all categories sorted by name.
func (l *Ledger) Categories() iter.Seq[*Category] {
	return func(yield func(*Category) bool) {
		names := make([]string, 0, len(l.categories))
		for name := range l.categories {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if !yield(l.categories[name]) {
				return
			}
		}
	}
}
