package moneywell

import (
	"fmt"

	"github.com/ewanmcn/moneywell/date"
	"github.com/google/uuid"
)

// Analysis is a single pass over the event stream, producing the bucket
// snapshot for one date range. A pass owns its bucket lists exclusively for
// its lifetime; it only ever reads a prior pass's finalized buckets as base
// snapshots. A pass runs to completion or fails; there is no partial result.
type Analysis struct {
	ledger   *Ledger
	prices   PriceSource
	policy   CapitalPolicy
	rng      date.Range
	currency string

	accounts   *AccountBuckets
	categories *CategoryBuckets
	taxBases   *TaxBasisBuckets

	investments map[uuid.UUID][]*InvestmentAnalysis
	chargeable  []*ChargeableEvent

	// Singular entities, resolved eagerly at construction.
	taxMan          *Account
	catTaxCredit    *Category
	catNatInsurance *Category
	catBenefit      *Category
	catDonation     *Category

	finalized bool
}

// NewAnalysis prepares an analysis pass over the ledger for the given range.
// A nil prices source values holdings at zero. When base is non-nil it must
// be a finalized pass: its closing buckets seed this pass — priced holdings
// carry Cost, Units, and Invested forward, and every bucket gets the prior
// period's snapshot for delta and relevance computation.
func NewAnalysis(ledger *Ledger, prices PriceSource, policy CapitalPolicy, rng date.Range, base *Analysis) (*Analysis, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid capital policy: %w", err)
	}
	if prices == nil {
		prices = NewMarket()
	}

	taxMan, err := ledger.TaxManAccount()
	if err != nil {
		return nil, err
	}
	totalsCat, err := ledger.SingularCategory(Totals)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		ledger:      ledger,
		prices:      prices,
		policy:      policy,
		rng:         rng,
		currency:    ledger.Currency(),
		accounts:    NewAccountBuckets(),
		categories:  NewCategoryBuckets(totalsCat),
		taxBases:    NewTaxBasisBuckets(),
		investments: make(map[uuid.UUID][]*InvestmentAnalysis),
		taxMan:      taxMan,
	}
	for class, dst := range map[CategoryClass]**Category{
		TaxCredit:       &a.catTaxCredit,
		NatInsurance:    &a.catNatInsurance,
		Benefit:         &a.catBenefit,
		CharityDonation: &a.catDonation,
	} {
		c, err := ledger.SingularCategory(class)
		if err != nil {
			return nil, err
		}
		*dst = c
	}

	if base != nil {
		if err := a.seed(base); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// seed copies (never references) the base pass's closing buckets into this
// pass: base snapshots everywhere, plus the running position of priced
// holdings carried forward.
func (a *Analysis) seed(base *Analysis) error {
	if !base.finalized {
		return fmt.Errorf("base analysis %s is not finalized", base.rng)
	}
	for b := range base.accounts.Buckets() {
		nb := a.accounts.Get(b.Account)
		nb.Base = b.AccountValues.Clone()
		if b.Account.HasUnits() {
			nb.Cost = b.Cost
			nb.Units = b.Units
			nb.Invested = b.Invested
		}
	}
	for b := range base.categories.Buckets() {
		nb := a.categories.Get(b.Category)
		nb.Base = b.CategoryValues.Clone()
	}
	for b := range base.taxBases.Buckets() {
		nb := a.taxBases.Get(b.Basis)
		nb.Base = b.TaxBasisValues.Clone()
	}
	return nil
}

// Range returns the date range of the pass.
func (a *Analysis) Range() date.Range { return a.rng }

// Run performs the single linear scan. Events are date-sorted ascending, so
// the scan stops at the first event past the range; events before the range
// are covered by the seed and skipped; deleted events are skipped
// unconditionally. Any error aborts the whole pass.
func (a *Analysis) Run() error {
	if a.finalized {
		return fmt.Errorf("analysis %s already ran", a.rng)
	}
	for e := range a.ledger.Events() {
		if e.Deleted {
			continue
		}
		if e.Date.After(a.rng.To) {
			break
		}
		if !a.rng.From.IsZero() && e.Date.Before(a.rng.From) {
			continue
		}
		if err := a.post(e); err != nil {
			return err
		}
	}
	a.finalize()
	return nil
}

// post dispatches one event to the bucket updates.
func (a *Analysis) post(e *Event) error {
	// The tax collector sees every event carrying tax, whatever its category.
	if e.HasTax() {
		tax := e.TaxCredit.Add(e.NatInsurance)
		tm := a.accounts.Get(a.taxMan)
		tm.Income = tm.Income.Add(tax)
		paid := a.taxBases.Get(BasisTaxPaid)
		paid.Gross = paid.Gross.Add(tax)
	}

	effect := ClassifyEffect(e)
	if e.TouchesUnits() {
		kind, err := ClassifyCapital(e)
		if err != nil {
			return err
		}
		if err := a.processCapital(e, kind); err != nil {
			return err
		}
		// Dividends are income: they feed the category and tax-basis totals
		// like any ordinary income event. Other capital events are transfers.
		if kind == KindDividend {
			a.postCategory(e, EffectIncome)
			a.postTaxBasis(e, EffectIncome)
		}
		return nil
	}

	a.postOrdinary(e, effect)
	return nil
}

// postOrdinary posts a non-capital event: value deltas on both account
// buckets, and category and tax-basis totals unless the event is a transfer.
func (a *Analysis) postOrdinary(e *Event, effect Effect) {
	debit, credit := e.Debit, e.Credit
	// Detailed interest and rental sources are child accounts; the true
	// counterparty is the parent institution.
	switch e.Category.Class {
	case Interest, LoanInterest, Rental:
		if debit.Parent != nil {
			debit = debit.Parent
		}
		if credit.Parent != nil && credit.Class.IsExternal() {
			credit = credit.Parent
		}
	}
	a.postOut(debit, e.Amount)
	a.postIn(credit, e.Amount)

	if effect == EffectTransfer {
		return
	}
	a.postCategory(e, effect)
	a.postTaxBasis(e, effect)
}

// postOut records money leaving an account. An auto-expense account redirects
// to its expense category: money drawn back out of the pot is a rebate.
func (a *Analysis) postOut(acc *Account, amount Money) {
	if acc.AutoExpense != nil {
		cb := a.categories.Get(acc.AutoExpense)
		cb.Expense = cb.Expense.Sub(amount)
		return
	}
	b := a.accounts.Get(acc)
	b.Expense = b.Expense.Add(amount)
}

// postIn records money arriving on an account. An auto-expense account
// redirects to its expense category instead of tracking a balance.
func (a *Analysis) postIn(acc *Account, amount Money) {
	if acc.AutoExpense != nil {
		cb := a.categories.Get(acc.AutoExpense)
		cb.Expense = cb.Expense.Add(amount)
		return
	}
	b := a.accounts.Get(acc)
	b.Income = b.Income.Add(amount)
}

// postCategory accumulates the event on its category bucket, including the
// satellite sub-amounts that roll-up later redistributes.
func (a *Analysis) postCategory(e *Event, effect Effect) {
	b := a.categories.Get(e.Category)
	switch effect {
	case EffectIncome:
		b.Income = b.Income.Add(e.Amount)
	case EffectExpense:
		b.Expense = b.Expense.Add(e.Amount)
	}
	b.TaxCredit = b.TaxCredit.Add(e.TaxCredit)
	b.NatInsurance = b.NatInsurance.Add(e.NatInsurance)
	b.Benefit = b.Benefit.Add(e.Benefit)
	b.Donation = b.Donation.Add(e.Donation)
}

// postTaxBasis accumulates an income event on its tax basis. Gross income
// includes the tax already credited at source.
func (a *Analysis) postTaxBasis(e *Event, effect Effect) {
	if effect != EffectIncome {
		return
	}
	b := a.taxBases.Get(taxBasisOf(e.Category.Class))
	b.Gross = b.Gross.Add(e.Amount).Add(e.TaxCredit)
	b.Net = b.Net.Add(e.Amount)
	b.TaxCredit = b.TaxCredit.Add(e.TaxCredit)
}

// finalize runs the end-of-pass roll-up and pruning. Afterwards the buckets
// are immutable and may serve as a base for a successor pass.
func (a *Analysis) finalize() {
	a.produceTotals()
	a.accounts.prune()
	a.taxBases.prune()
	a.finalized = true
}

// Accounts returns the finalized account buckets.
func (a *Analysis) Accounts() *AccountBuckets { return a.accounts }

// Categories returns the finalized category buckets.
func (a *Analysis) Categories() *CategoryBuckets { return a.categories }

// TaxBases returns the finalized tax-basis buckets.
func (a *Analysis) TaxBases() *TaxBasisBuckets { return a.taxBases }

// InvestmentAnalyses returns the audit trail for one security, or nil when
// the pass never touched it. Absence is the caller's decision to interpret.
func (a *Analysis) InvestmentAnalyses(sec *Account) []*InvestmentAnalysis {
	if sec == nil {
		return nil
	}
	return a.investments[sec.ID]
}

// ChargeableEvents returns the taxable gains recorded during the pass.
func (a *Analysis) ChargeableEvents() []*ChargeableEvent { return a.chargeable }
