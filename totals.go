package moneywell

import "github.com/google/uuid"

// produceTotals runs the end-of-pass category roll-up:
//
//  1. satellite sub-amounts move to their dedicated top-level categories;
//  2. leaf deltas are computed and leaves accumulate into a side map of
//     parent values (pure aggregation, nothing merged yet);
//  3. accumulated parents merge into the list, parents accumulate into the
//     grand total, and irrelevant buckets are pruned.
//
// The two passes exist because a parent's relevance cannot be known until all
// of its children have contributed. Accumulation is commutative addition, so
// the result does not depend on iteration order.
func (a *Analysis) produceTotals() {
	a.redistributeSatellites()

	parents := make(map[uuid.UUID]*CategoryValues)
	parentCats := make(map[uuid.UUID]*Category)
	for b := range a.categories.Buckets() {
		if !b.Category.IsLeaf() {
			continue
		}
		b.Delta = b.Income.Sub(b.Expense)
		p := b.Category.Parent
		pv, ok := parents[p.ID]
		if !ok {
			pv = &CategoryValues{}
			parents[p.ID] = pv
			parentCats[p.ID] = p
		}
		pv.add(&b.CategoryValues)
	}

	for id, pv := range parents {
		pb := a.categories.Get(parentCats[id])
		pb.CategoryValues.add(pv)
	}

	totals := a.categories.Totals()
	for b := range a.categories.Buckets() {
		if b.Category.IsLeaf() || b.Category.Class == Totals {
			continue
		}
		// After the merge a parent's Income and Expense include its children's,
		// so this delta covers both direct postings and rolled-up leaves.
		b.Delta = b.Income.Sub(b.Expense)
		totals.CategoryValues.add(&b.CategoryValues)
	}

	a.categories.prune()
}

// redistributeSatellites moves the tax credit, national insurance, deemed
// benefit, and charity donation amounts recorded against their originating
// categories onto the dedicated singular categories, so each appears as its
// own top-level line. Tax credit, national insurance, and donations are
// outgoings; deemed benefit is income.
func (a *Analysis) redistributeSatellites() {
	for b := range a.categories.Buckets() {
		if b.Category.Class.IsSingular() {
			continue
		}
		if !b.TaxCredit.IsZero() {
			tb := a.categories.Get(a.catTaxCredit)
			tb.Expense = tb.Expense.Add(b.TaxCredit)
		}
		if !b.NatInsurance.IsZero() {
			nb := a.categories.Get(a.catNatInsurance)
			nb.Expense = nb.Expense.Add(b.NatInsurance)
		}
		if !b.Benefit.IsZero() {
			bb := a.categories.Get(a.catBenefit)
			bb.Income = bb.Income.Add(b.Benefit)
		}
		if !b.Donation.IsZero() {
			db := a.categories.Get(a.catDonation)
			db.Expense = db.Expense.Add(b.Donation)
		}
	}
}
