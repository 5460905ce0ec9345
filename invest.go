package moneywell

import (
	"fmt"

	"github.com/ewanmcn/moneywell/date"
)

// InvestmentAnalysis is one append-only audit record documenting the effect
// of a single capital event on a single security holding.
type InvestmentAnalysis struct {
	Event     *Event
	Kind      CapitalKind
	Valuation Money // holding or consideration value used by the algorithm, zero when unused

	CostBefore  Money
	CostAfter   Money
	UnitsBefore Quantity
	UnitsAfter  Quantity

	// Takeover consideration split.
	CashCost  Money
	StockCost Money

	Gains Money
}

// ChargeableEvent records a taxable gain realized by a life-bond disposal,
// kept for downstream tax-year aggregation with top-slicing treatment.
type ChargeableEvent struct {
	Event *Event
	Gains Money
	Years int   // whole qualifying years held
	Slice Money // Gains divided by Years
}

// newChargeableEvent computes the top-sliced gain. Events without a
// qualifying-years count are treated as held for one year.
func newChargeableEvent(e *Event, gains Money) *ChargeableEvent {
	years := e.Years
	if years < 1 {
		years = 1
	}
	return &ChargeableEvent{Event: e, Gains: gains, Years: years, Slice: gains.Div(Q(years))}
}

// processCapital dispatches one capital event to its algorithm. All paths
// mutate only buckets owned by this analysis and append audit records.
func (a *Analysis) processCapital(e *Event, kind CapitalKind) error {
	switch kind {
	case KindSplit:
		a.processSplit(e)
	case KindTransferIn:
		a.processTransferIn(e)
	case KindTransferOut:
		a.processTransferOut(e)
	case KindStockXchange:
		a.processStockXchange(e)
	case KindTaxableGain:
		a.processTaxableGain(e)
	case KindRightsWaived:
		a.processRightsWaived(e)
	case KindDeMerger:
		a.processDeMerger(e)
	case KindTakeOver:
		a.processTakeOver(e)
	case KindDividend:
		a.processDividend(e)
	default:
		return fmt.Errorf("unhandled capital kind %s for event %s", kind, e)
	}
	return nil
}

// processSplit adjusts units by the signed delta only. A split is
// value-preserving: cost does not change.
func (a *Analysis) processSplit(e *Event) {
	b := a.accounts.Get(e.Debit)
	rec := a.newRecord(e, KindSplit, b)
	b.Units = b.Units.Add(e.CreditUnits).Sub(e.DebitUnits.Min(b.Units))
	a.closeRecord(rec, b, e.Debit)
}

// processTransferIn adds the transferred amount to cost and invested, and any
// accompanying units to the holding. Rights taken up land here too.
func (a *Analysis) processTransferIn(e *Event) {
	b := a.accounts.Get(e.Credit)
	rec := a.newRecord(e, KindTransferIn, b)
	b.Cost = b.Cost.Add(e.Amount)
	b.Invested = b.Invested.Add(e.Amount)
	b.Units = b.Units.Add(e.CreditUnits)
	a.closeRecord(rec, b, e.Credit)
	a.postOut(e.Debit, e.Amount)
}

// reduceHolding applies the transfer-out cost mathematics to a holding: the
// cost reduction is either the full cash amount or, when units leave, the
// held cost re-derived at the unit weight. Cost and units are clamped, never
// negative. It returns the realized gains.
func (a *Analysis) reduceHolding(b *AccountBucket, e *Event) Money {
	var reduction Money
	removed := e.DebitUnits.Min(b.Units)
	if !e.DebitUnits.IsZero() && b.Units.IsPositive() {
		reduction = b.Cost.ValueAtUnitWeight(removed, b.Units)
	} else {
		reduction = e.Amount
	}
	reduction = reduction.Min(b.Cost)

	gains := e.Amount.Sub(reduction)
	b.Units = b.Units.Sub(removed)
	b.Cost = b.Cost.Sub(reduction)
	b.Invested = b.Invested.Sub(e.Amount)
	b.Gains = b.Gains.Add(gains)
	return gains
}

// processTransferOut removes value from the debit holding and credits the
// proceeds to the receiving account.
func (a *Analysis) processTransferOut(e *Event) {
	b := a.accounts.Get(e.Debit)
	rec := a.newRecord(e, KindTransferOut, b)
	rec.Gains = a.reduceHolding(b, e)
	a.closeRecord(rec, b, e.Debit)
	a.postIn(e.Credit, e.Amount)
}

// processStockXchange applies transfer-out logic to the debit holding and
// transfer-in logic to the credit holding, independently.
func (a *Analysis) processStockXchange(e *Event) {
	out := a.accounts.Get(e.Debit)
	recOut := a.newRecord(e, KindStockXchange, out)
	recOut.Gains = a.reduceHolding(out, e)
	a.closeRecord(recOut, out, e.Debit)

	in := a.accounts.Get(e.Credit)
	recIn := a.newRecord(e, KindStockXchange, in)
	in.Cost = in.Cost.Add(e.Amount)
	in.Invested = in.Invested.Add(e.Amount)
	in.Units = in.Units.Add(e.CreditUnits)
	a.closeRecord(recIn, in, e.Credit)
}

// processTaxableGain is the life-bond disposal: transfer-out mathematics plus
// a chargeable-event record, with any tax credit treated as income to the
// bond's parent payee.
func (a *Analysis) processTaxableGain(e *Event) {
	b := a.accounts.Get(e.Debit)
	rec := a.newRecord(e, KindTaxableGain, b)
	gains := a.reduceHolding(b, e)
	rec.Gains = gains
	a.closeRecord(rec, b, e.Debit)

	a.chargeable = append(a.chargeable, newChargeableEvent(e, gains))
	tb := a.taxBases.Get(BasisTaxableGains)
	tb.Gross = tb.Gross.Add(gains)
	tb.Net = tb.Net.Add(gains)
	if !e.TaxCredit.IsZero() && e.Debit.Parent != nil {
		parent := a.accounts.Get(e.Debit.Parent)
		parent.Income = parent.Income.Add(e.TaxCredit)
	}
	a.postIn(e.Credit, e.Amount)
}

// processRightsWaived handles a rights issue lapsed for cash. A waiver that
// exceeds both large-transaction thresholds is a genuine part-disposal and
// gets weighted cost apportionment against (rights + holding value); a small
// administrative waiver is a direct cost reduction capped at the held cost.
func (a *Analysis) processRightsWaived(e *Event) {
	b := a.accounts.Get(e.Debit)
	rec := a.newRecord(e, KindRightsWaived, b)
	value := a.valuation(e.Debit, b.Units, e.Date)
	rec.Valuation = value

	var reduction Money
	if a.policy.isLarge(e.Amount, value) {
		reduction = b.Cost.ValueAtWeight(e.Amount, e.Amount.Add(value))
	} else {
		reduction = e.Amount.Min(b.Cost)
	}
	gains := e.Amount.Sub(reduction)
	b.Cost = b.Cost.Sub(reduction)
	b.Invested = b.Invested.Sub(e.Amount)
	b.Gains = b.Gains.Add(gains)
	rec.Gains = gains
	a.closeRecord(rec, b, e.Debit)
	a.postIn(e.Credit, e.Amount)
}

// processDeMerger applies the dilution factor to the debit holding's cost and
// moves the released cost to the newly demerged security. Cost is conserved
// across the pair; units move independently per the recorded deltas.
func (a *Analysis) processDeMerger(e *Event) {
	b := a.accounts.Get(e.Debit)
	c := a.accounts.Get(e.Credit)
	recOut := a.newRecord(e, KindDeMerger, b)
	recIn := a.newRecord(e, KindDeMerger, c)

	kept := b.Cost.ValueAtRate(e.Dilution)
	released := b.Cost.Sub(kept)
	b.Cost = kept
	b.Invested = b.Invested.Sub(released)
	b.Units = b.Units.Sub(e.DebitUnits.Min(b.Units))
	a.closeRecord(recOut, b, e.Debit)

	c.Cost = c.Cost.Add(released)
	c.Invested = c.Invested.Add(released)
	c.Units = c.Units.Add(e.CreditUnits)
	a.closeRecord(recIn, c, e.Credit)
}

// processTakeOver drives the debit holding to zero and reallocates its cost
// to the credit holding. A cash component is split against the total
// consideration with the same dual-threshold test as rights waivers: large
// cash is apportioned by weight, small cash is absorbed up to the held cost
// with the residual going to stock.
func (a *Analysis) processTakeOver(e *Event) {
	b := a.accounts.Get(e.Debit)
	c := a.accounts.Get(e.Credit)
	recOut := a.newRecord(e, KindTakeOver, b)
	recIn := a.newRecord(e, KindTakeOver, c)

	cost := b.Cost
	cash := e.Amount
	stockValue := a.valuation(e.Credit, e.CreditUnits, e.Date)
	recOut.Valuation = cash.Add(stockValue)

	var cashCost, stockCost Money
	if cash.IsZero() || e.Third == nil {
		stockCost = cost
		cashCost = M(0, cost.Currency())
	} else {
		total := cash.Add(stockValue)
		if a.policy.isLarge(cash, total) {
			cashCost = cost.ValueAtWeight(cash, total)
		} else {
			cashCost = cash.Min(cost)
		}
		stockCost = cost.Sub(cashCost)
	}
	gains := cash.Sub(cashCost)
	if e.Third == nil {
		gains = M(0, cost.Currency())
	}
	recOut.CashCost = cashCost
	recOut.StockCost = stockCost
	recOut.Gains = gains

	// Complete disposal of the old holding.
	b.Units = Q(0)
	b.Cost = M(0, cost.Currency())
	b.Invested = b.Invested.Sub(cost)
	b.Gains = b.Gains.Add(gains)
	a.closeRecord(recOut, b, e.Debit)

	c.Cost = c.Cost.Add(stockCost)
	c.Invested = c.Invested.Add(stockCost)
	c.Units = c.Units.Add(e.CreditUnits)
	a.closeRecord(recIn, c, e.Credit)

	if e.Third != nil && !cash.IsZero() {
		a.postIn(e.Third, cash)
	}
}

// processDividend credits a dividend. When the receiving account is the
// security itself the dividend is reinvested into cost and units; otherwise
// the payout (amount plus tax credit) is recorded against the security and
// the cash lands on the receiving account.
func (a *Analysis) processDividend(e *Event) {
	b := a.accounts.Get(e.Debit)
	rec := a.newRecord(e, KindDividend, b)
	total := e.Amount.Add(e.TaxCredit)
	if e.Credit == e.Debit {
		b.Cost = b.Cost.Add(total)
		b.Invested = b.Invested.Add(total)
		b.Units = b.Units.Add(e.CreditUnits)
		b.Dividend = b.Dividend.Add(total)
	} else {
		b.Dividend = b.Dividend.Add(total)
		a.postIn(e.Credit, e.Amount)
	}
	a.closeRecord(rec, b, e.Debit)
}

// valuation prices a holding as of a date. An unknown price values the
// holding at zero, which steers the dual-threshold test to the small branch.
func (a *Analysis) valuation(acc *Account, units Quantity, on date.Date) Money {
	price, ok := a.prices.PriceAsOf(acc, on)
	if !ok {
		return M(0, a.currency)
	}
	return price.Mul(units)
}

// newRecord opens an audit record capturing the holding's state before the event.
func (a *Analysis) newRecord(e *Event, kind CapitalKind, b *AccountBucket) *InvestmentAnalysis {
	return &InvestmentAnalysis{
		Event:       e,
		Kind:        kind,
		CostBefore:  b.Cost,
		UnitsBefore: b.Units,
	}
}

// closeRecord captures the holding's state after the event and appends the
// record to the security's audit trail.
func (a *Analysis) closeRecord(rec *InvestmentAnalysis, b *AccountBucket, sec *Account) {
	rec.CostAfter = b.Cost
	rec.UnitsAfter = b.Units
	a.investments[sec.ID] = append(a.investments[sec.ID], rec)
}
