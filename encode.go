package moneywell

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ewanmcn/moneywell/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// RecordType identifies a JSONL ledger line.
type RecordType string

const (
	RecLedger   RecordType = "ledger"
	RecAccount  RecordType = "account"
	RecCategory RecordType = "category"
	RecPrice    RecordType = "price"
	RecEvent    RecordType = "event"
)

// accountRec is a specialized struct for decoding account declarations.
type accountRec struct {
	Name        string `json:"name"`
	Class       string `json:"class"`
	Parent      string `json:"parent,omitempty"`
	AutoExpense string `json:"autoExpense,omitempty"`
	Closed      bool   `json:"closed,omitempty"`
}

// categoryRec is a specialized struct for decoding category declarations.
type categoryRec struct {
	Name   string `json:"name"`
	Class  string `json:"class"`
	Parent string `json:"parent,omitempty"`
}

// priceRec is a specialized struct for decoding dated unit prices.
type priceRec struct {
	Date    date.Date       `json:"date"`
	Account string          `json:"account"`
	Price   decimal.Decimal `json:"price"`
}

// eventRec is a specialized struct for decoding events. Amounts are plain
// decimals; the currency is the ledger's.
type eventRec struct {
	Date         date.Date       `json:"date"`
	Debit        string          `json:"debit"`
	Credit       string          `json:"credit"`
	Third        string          `json:"third,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	TaxCredit    decimal.Decimal `json:"taxCredit,omitempty"`
	NatInsurance decimal.Decimal `json:"natInsurance,omitempty"`
	Benefit      decimal.Decimal `json:"benefit,omitempty"`
	Donation     decimal.Decimal `json:"donation,omitempty"`
	Dilution     decimal.Decimal `json:"dilution,omitempty"`
	DebitUnits   decimal.Decimal `json:"debitUnits,omitempty"`
	CreditUnits  decimal.Decimal `json:"creditUnits,omitempty"`
	Years        int             `json:"years,omitempty"`
	Deleted      bool            `json:"deleted,omitempty"`
}

// DecodeLedger decodes a ledger and its price data from a stream of JSONL
// records. Accounts and categories must be declared before any event or
// price that references them.
func DecodeLedger(r io.Reader) (*Ledger, *Market, error) {
	var ledger *Ledger
	market := NewMarket()
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}

		var identifier struct {
			Record RecordType `json:"record"`
		}
		if err := json.Unmarshal(data, &identifier); err != nil {
			return nil, nil, fmt.Errorf("line %d: cannot identify record: %w", line, err)
		}

		if identifier.Record != RecLedger && ledger == nil {
			return nil, nil, fmt.Errorf("line %d: first record must declare the ledger", line)
		}

		switch identifier.Record {
		case RecLedger:
			var rec struct {
				Currency string `json:"currency"`
			}
			if err := json.Unmarshal(data, &rec); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}
			if ledger != nil {
				return nil, nil, fmt.Errorf("line %d: ledger already declared", line)
			}
			ledger = NewLedger(rec.Currency)

		case RecAccount:
			var rec accountRec
			if err := json.Unmarshal(data, &rec); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}
			class, err := ParseAccountClass(rec.Class)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}
			a := NewAccount(rec.Name, class, ledger.Currency())
			a.Closed = rec.Closed
			if rec.Parent != "" {
				if a.Parent = ledger.Account(rec.Parent); a.Parent == nil {
					return nil, nil, fmt.Errorf("line %d: parent account %q not declared", line, rec.Parent)
				}
			}
			if rec.AutoExpense != "" {
				if a.AutoExpense = ledger.Category(rec.AutoExpense); a.AutoExpense == nil {
					return nil, nil, fmt.Errorf("line %d: auto-expense category %q not declared", line, rec.AutoExpense)
				}
			}
			if err := ledger.AddAccount(a); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}

		case RecCategory:
			var rec categoryRec
			if err := json.Unmarshal(data, &rec); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}
			class, err := ParseCategoryClass(rec.Class)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}
			var parent *Category
			if rec.Parent != "" {
				if parent = ledger.Category(rec.Parent); parent == nil {
					return nil, nil, fmt.Errorf("line %d: parent category %q not declared", line, rec.Parent)
				}
			}
			if err := ledger.AddCategory(NewCategory(rec.Name, class, parent)); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}

		case RecPrice:
			var rec priceRec
			if err := json.Unmarshal(data, &rec); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}
			acc := ledger.Account(rec.Account)
			if acc == nil {
				return nil, nil, fmt.Errorf("line %d: account %q not declared", line, rec.Account)
			}
			market.Add(acc, rec.Date, M(rec.Price, ledger.Currency()))

		case RecEvent:
			var rec eventRec
			if err := json.Unmarshal(data, &rec); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}
			e, err := rec.event(ledger)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}
			ledger.Append(e)

		default:
			return nil, nil, fmt.Errorf("line %d: unknown record type %q", line, identifier.Record)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading ledger: %w", err)
	}
	if ledger == nil {
		return nil, nil, fmt.Errorf("empty input: no ledger record")
	}
	return ledger, market, nil
}

// event resolves an eventRec's references against the ledger.
func (rec eventRec) event(l *Ledger) (*Event, error) {
	debit := l.Account(rec.Debit)
	if debit == nil {
		return nil, fmt.Errorf("debit account %q not declared", rec.Debit)
	}
	credit := l.Account(rec.Credit)
	if credit == nil {
		return nil, fmt.Errorf("credit account %q not declared", rec.Credit)
	}
	cat := l.Category(rec.Category)
	if cat == nil {
		return nil, fmt.Errorf("category %q not declared", rec.Category)
	}
	cur := l.Currency()

	e := NewEvent(rec.Date, debit, credit, M(rec.Amount, cur), cat)
	e.TaxCredit = M(rec.TaxCredit, cur)
	e.NatInsurance = M(rec.NatInsurance, cur)
	e.Benefit = M(rec.Benefit, cur)
	e.Donation = M(rec.Donation, cur)
	e.Dilution = rec.Dilution
	e.DebitUnits = Q(rec.DebitUnits)
	e.CreditUnits = Q(rec.CreditUnits)
	e.Years = rec.Years
	e.Deleted = rec.Deleted
	if rec.Third != "" {
		if e.Third = l.Account(rec.Third); e.Third == nil {
			return nil, fmt.Errorf("third-party account %q not declared", rec.Third)
		}
	}
	return e, nil
}
