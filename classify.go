package moneywell

import (
	"errors"
	"fmt"
)

// Effect is the net effect of an event on the category totals.
type Effect int

const (
	// EffectTransfer moves money between owned accounts; excluded from category totals.
	EffectTransfer Effect = iota
	// EffectIncome brings money in from an external party.
	EffectIncome
	// EffectExpense pays money out to an external party.
	EffectExpense
)

func (e Effect) String() string {
	switch e {
	case EffectTransfer:
		return "transfer"
	case EffectIncome:
		return "income"
	case EffectExpense:
		return "expense"
	default:
		return "unknown"
	}
}

// CapitalKind is the capital-event algorithm selected for an event that
// touches a priced account.
type CapitalKind int

const (
	// KindSplit adjusts units only; a split is value-preserving.
	KindSplit CapitalKind = iota
	// KindTransferIn adds cash (and optionally units) to a holding's cost.
	KindTransferIn
	// KindTransferOut removes value from a holding, realizing gains.
	KindTransferOut
	// KindStockXchange disposes from the debit holding and acquires into the credit one.
	KindStockXchange
	// KindTaxableGain is a transfer-out from a life bond, recording a chargeable event.
	KindTaxableGain
	// KindRightsWaived is a rights issue lapsed for cash, subject to the
	// large-transaction apportionment test.
	KindRightsWaived
	// KindDeMerger moves part of the debit holding's cost to a new security.
	KindDeMerger
	// KindTakeOver disposes of the whole debit holding for stock and/or cash.
	KindTakeOver
	// KindDividend is a dividend, reinvested or paid away.
	KindDividend
)

func (k CapitalKind) String() string {
	switch k {
	case KindSplit:
		return "split"
	case KindTransferIn:
		return "transfer-in"
	case KindTransferOut:
		return "transfer-out"
	case KindStockXchange:
		return "stock-exchange"
	case KindTaxableGain:
		return "taxable-gain"
	case KindRightsWaived:
		return "rights-waived"
	case KindDeMerger:
		return "demerger"
	case KindTakeOver:
		return "takeover"
	case KindDividend:
		return "dividend"
	default:
		return "unknown"
	}
}

// ClassificationError reports an event whose category/account-type combination
// is impossible. It is fatal: the dataset is corrupt or unsupported, and the
// whole analysis pass is aborted.
type ClassificationError struct {
	Event *Event
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("cannot classify capital event %s: category class %q is not a capital kind", e.Event, e.Event.Category.Class)
}

// IsClassificationError reports whether err wraps a ClassificationError.
func IsClassificationError(err error) bool {
	var ce *ClassificationError
	return errors.As(err, &ce)
}

// ClassifyEffect maps an event's debit class, credit class, and category class
// to its net effect. Transfers are excluded from category totals.
func ClassifyEffect(e *Event) Effect {
	switch {
	case e.Category.Class.IsIncome(), e.Debit.Class.IsExternal():
		return EffectIncome
	case e.Category.Class.IsExpense(), e.Credit.Class.IsExternal():
		return EffectExpense
	default:
		return EffectTransfer
	}
}

// ClassifyCapital selects the capital algorithm for an event touching a
// priced account. Explicit capital categories dispatch directly; generic
// categories are resolved by inspecting which side holds units and whether
// the debit account is a life bond.
func ClassifyCapital(e *Event) (CapitalKind, error) {
	switch e.Category.Class {
	case StockSplit, StockAdjust:
		return KindSplit, nil
	case StockRightsTaken:
		return KindTransferIn, nil
	case StockRightsWaived:
		return KindRightsWaived, nil
	case StockDeMerger:
		return KindDeMerger, nil
	case StockTakeOver:
		return KindTakeOver, nil
	case DividendIncome:
		return KindDividend, nil
	case Transfer, Income, Expense, Interest, OpeningBalance:
		switch {
		case e.Debit.IsLifeBond():
			return KindTaxableGain, nil
		case e.Debit.HasUnits() && e.Credit.HasUnits():
			return KindStockXchange, nil
		case e.Credit.HasUnits():
			return KindTransferIn, nil
		default:
			return KindTransferOut, nil
		}
	default:
		return 0, &ClassificationError{Event: e}
	}
}
