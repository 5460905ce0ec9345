package moneywell

import (
	"iter"
	"sort"

	"github.com/google/uuid"
)

// The bucket value structs are fixed-shape: every attribute exists from
// construction and is zero until touched, never missing.

// AccountValues holds the running aggregates of one account over an
// analysis period. The security attributes (Cost, Invested, Gains, Dividend,
// Units) stay zero for money accounts and payees.
type AccountValues struct {
	Income   Money
	Expense  Money
	Cost     Money
	Invested Money
	Gains    Money
	Dividend Money
	Units    Quantity
}

// IsActive reports whether any attribute is non-zero.
func (v *AccountValues) IsActive() bool {
	return !v.Income.IsZero() || !v.Expense.IsZero() ||
		!v.Cost.IsZero() || !v.Invested.IsZero() || !v.Gains.IsZero() ||
		!v.Dividend.IsZero() || !v.Units.IsZero()
}

// Clone returns an independent copy of the values.
func (v *AccountValues) Clone() *AccountValues {
	c := *v
	return &c
}

// CategoryValues holds the running aggregates of one event category over an
// analysis period. The satellite attributes (TaxCredit, NatInsurance,
// Benefit, Donation) are redistributed to their dedicated categories during
// roll-up.
type CategoryValues struct {
	Income       Money
	Expense      Money
	TaxCredit    Money
	NatInsurance Money
	Benefit      Money
	Donation     Money
	Delta        Money // Income - Expense, computed for leaves during roll-up
}

// IsActive reports whether any attribute is non-zero.
func (v *CategoryValues) IsActive() bool {
	return !v.Income.IsZero() || !v.Expense.IsZero() ||
		!v.TaxCredit.IsZero() || !v.NatInsurance.IsZero() ||
		!v.Benefit.IsZero() || !v.Donation.IsZero() || !v.Delta.IsZero()
}

// Clone returns an independent copy of the values.
func (v *CategoryValues) Clone() *CategoryValues {
	c := *v
	return &c
}

// add accumulates the child's values. Delta sums too: the parent delta is the
// sum of its children's deltas, and addition is commutative so roll-up order
// does not matter.
func (v *CategoryValues) add(w *CategoryValues) {
	v.Income = v.Income.Add(w.Income)
	v.Expense = v.Expense.Add(w.Expense)
	v.TaxCredit = v.TaxCredit.Add(w.TaxCredit)
	v.NatInsurance = v.NatInsurance.Add(w.NatInsurance)
	v.Benefit = v.Benefit.Add(w.Benefit)
	v.Donation = v.Donation.Add(w.Donation)
	v.Delta = v.Delta.Add(w.Delta)
}

// TaxBasisValues holds the running aggregates of one tax basis over an
// analysis period.
type TaxBasisValues struct {
	Gross     Money
	Net       Money
	TaxCredit Money
}

// IsActive reports whether any attribute is non-zero.
func (v *TaxBasisValues) IsActive() bool {
	return !v.Gross.IsZero() || !v.Net.IsZero() || !v.TaxCredit.IsZero()
}

// Clone returns an independent copy of the values.
func (v *TaxBasisValues) Clone() *TaxBasisValues {
	c := *v
	return &c
}

// AccountBucket is the running aggregate for one account. Base, when set, is
// the finalized snapshot of the same account from the prior period; it is
// read-only and owned by the prior pass.
type AccountBucket struct {
	Account *Account
	AccountValues
	Base *AccountValues
}

// IsActive reports whether the bucket holds any non-zero value.
func (b *AccountBucket) IsActive() bool { return b.AccountValues.IsActive() }

// IsRelevant reports whether the bucket survives pruning: active now, or
// active in the prior period so that comparative reports keep the row.
func (b *AccountBucket) IsRelevant() bool {
	return b.IsActive() || (b.Base != nil && b.Base.IsActive())
}

// CategoryBucket is the running aggregate for one event category.
type CategoryBucket struct {
	Category *Category
	CategoryValues
	Base *CategoryValues
}

// IsActive reports whether the bucket holds any non-zero value.
func (b *CategoryBucket) IsActive() bool { return b.CategoryValues.IsActive() }

// IsRelevant reports whether the bucket survives pruning. The Totals bucket
// is always relevant.
func (b *CategoryBucket) IsRelevant() bool {
	if b.Category.Class == Totals {
		return true
	}
	return b.IsActive() || (b.Base != nil && b.Base.IsActive())
}

// TaxBasisBucket is the running aggregate for one tax basis.
type TaxBasisBucket struct {
	Basis TaxBasis
	TaxBasisValues
	Base *TaxBasisValues
}

// IsActive reports whether the bucket holds any non-zero value.
func (b *TaxBasisBucket) IsActive() bool { return b.TaxBasisValues.IsActive() }

// IsRelevant reports whether the bucket survives pruning.
func (b *TaxBasisBucket) IsRelevant() bool {
	return b.IsActive() || (b.Base != nil && b.Base.IsActive())
}

// AccountBuckets is the bucket list for accounts, keyed by account identity.
// The owning analysis pass is its only writer.
type AccountBuckets struct {
	index map[uuid.UUID]*AccountBucket
}

// NewAccountBuckets creates an empty account bucket list.
func NewAccountBuckets() *AccountBuckets {
	return &AccountBuckets{index: make(map[uuid.UUID]*AccountBucket)}
}

// Get returns the bucket for the account, creating it on first use.
func (s *AccountBuckets) Get(a *Account) *AccountBucket {
	b, ok := s.index[a.ID]
	if !ok {
		b = &AccountBucket{Account: a}
		s.index[a.ID] = b
	}
	return b
}

// Lookup returns the bucket for the account, or nil when the account was
// never touched. Absence is the caller's decision to interpret.
func (s *AccountBuckets) Lookup(a *Account) *AccountBucket {
	if a == nil {
		return nil
	}
	return s.index[a.ID]
}

// Len returns the number of buckets.
func (s *AccountBuckets) Len() int { return len(s.index) }

// Buckets returns an iterator over buckets ordered by account name.
func (s *AccountBuckets) Buckets() iter.Seq[*AccountBucket] {
	return func(yield func(*AccountBucket) bool) {
		list := make([]*AccountBucket, 0, len(s.index))
		for _, b := range s.index {
			list = append(list, b)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Account.Name < list[j].Account.Name })
		for _, b := range list {
			if !yield(b) {
				return
			}
		}
	}
}

// prune removes buckets that are not relevant.
func (s *AccountBuckets) prune() {
	for id, b := range s.index {
		if !b.IsRelevant() {
			delete(s.index, id)
		}
	}
}

// CategoryBuckets is the bucket list for event categories. It owns the
// distinguished Totals bucket, created lazily on first access.
type CategoryBuckets struct {
	index  map[uuid.UUID]*CategoryBucket
	totals *CategoryBucket
	total  *Category // the singular Totals category
}

// NewCategoryBuckets creates an empty category bucket list whose Totals
// bucket will belong to the given category.
func NewCategoryBuckets(totals *Category) *CategoryBuckets {
	return &CategoryBuckets{index: make(map[uuid.UUID]*CategoryBucket), total: totals}
}

// Get returns the bucket for the category, creating it on first use.
func (s *CategoryBuckets) Get(c *Category) *CategoryBucket {
	b, ok := s.index[c.ID]
	if !ok {
		b = &CategoryBucket{Category: c}
		s.index[c.ID] = b
	}
	return b
}

// Lookup returns the bucket for the category, or nil when it was never touched.
func (s *CategoryBuckets) Lookup(c *Category) *CategoryBucket {
	if c == nil {
		return nil
	}
	return s.index[c.ID]
}

// Totals returns the grand-total bucket, building it on first access. A bucket
// already created through Get (a seeded pass carrying the prior period's base)
// is adopted, never replaced.
func (s *CategoryBuckets) Totals() *CategoryBucket {
	if s.totals == nil {
		if b, ok := s.index[s.total.ID]; ok {
			s.totals = b
		} else {
			s.totals = &CategoryBucket{Category: s.total}
			s.index[s.total.ID] = s.totals
		}
	}
	return s.totals
}

// Len returns the number of buckets.
func (s *CategoryBuckets) Len() int { return len(s.index) }

// Buckets returns an iterator over buckets ordered by category name.
func (s *CategoryBuckets) Buckets() iter.Seq[*CategoryBucket] {
	return func(yield func(*CategoryBucket) bool) {
		list := make([]*CategoryBucket, 0, len(s.index))
		for _, b := range s.index {
			list = append(list, b)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Category.Name < list[j].Category.Name })
		for _, b := range list {
			if !yield(b) {
				return
			}
		}
	}
}

// prune removes buckets that are not relevant. The Totals bucket is always
// retained.
func (s *CategoryBuckets) prune() {
	for id, b := range s.index {
		if !b.IsRelevant() {
			delete(s.index, id)
		}
	}
}

// TaxBasisBuckets is the bucket list for tax bases.
type TaxBasisBuckets struct {
	index map[TaxBasis]*TaxBasisBucket
}

// NewTaxBasisBuckets creates an empty tax-basis bucket list.
func NewTaxBasisBuckets() *TaxBasisBuckets {
	return &TaxBasisBuckets{index: make(map[TaxBasis]*TaxBasisBucket)}
}

// Get returns the bucket for the basis, creating it on first use.
func (s *TaxBasisBuckets) Get(basis TaxBasis) *TaxBasisBucket {
	b, ok := s.index[basis]
	if !ok {
		b = &TaxBasisBucket{Basis: basis}
		s.index[basis] = b
	}
	return b
}

// Lookup returns the bucket for the basis, or nil when it was never touched.
func (s *TaxBasisBuckets) Lookup(basis TaxBasis) *TaxBasisBucket {
	return s.index[basis]
}

// Len returns the number of buckets.
func (s *TaxBasisBuckets) Len() int { return len(s.index) }

// Buckets returns an iterator over buckets in basis order.
func (s *TaxBasisBuckets) Buckets() iter.Seq[*TaxBasisBucket] {
	return func(yield func(*TaxBasisBucket) bool) {
		list := make([]*TaxBasisBucket, 0, len(s.index))
		for _, b := range s.index {
			list = append(list, b)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Basis < list[j].Basis })
		for _, b := range list {
			if !yield(b) {
				return
			}
		}
	}
}

// prune removes buckets that are not relevant.
func (s *TaxBasisBuckets) prune() {
	for basis, b := range s.index {
		if !b.IsRelevant() {
			delete(s.index, basis)
		}
	}
}
