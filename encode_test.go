package moneywell

import (
	"strings"
	"testing"

	"github.com/ewanmcn/moneywell/date"
)

const sampleLedger = `{"record":"ledger","currency":"GBP"}
{"record":"account","name":"HMRC","class":"taxman"}
{"record":"account","name":"Employer","class":"payee"}
{"record":"account","name":"Bank","class":"deposit"}
{"record":"account","name":"Stock","class":"shares"}
{"record":"category","name":"Totals","class":"totals"}
{"record":"category","name":"TaxCredit","class":"taxcredit"}
{"record":"category","name":"NatInsurance","class":"natinsurance"}
{"record":"category","name":"Benefit","class":"benefit"}
{"record":"category","name":"Donation","class":"donation"}
{"record":"category","name":"OpeningBalance","class":"openingbalance"}
{"record":"category","name":"Salary","class":"income"}
{"record":"category","name":"Move","class":"transfer"}
{"record":"price","date":"2025-01-10","account":"Stock","price":12.5}
{"record":"event","date":"2025-01-05","debit":"Employer","credit":"Bank","amount":1000,"category":"Salary","taxCredit":200}
{"record":"event","date":"2025-01-10","debit":"Bank","credit":"Stock","amount":500,"category":"Move","creditUnits":40}
`

func TestDecodeLedger(t *testing.T) {
	ledger, market, err := DecodeLedger(strings.NewReader(sampleLedger))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	if ledger.Currency() != "GBP" {
		t.Errorf("Currency() = %q, want GBP", ledger.Currency())
	}

	stock := ledger.Account("Stock")
	if stock == nil || stock.Class != Shares {
		t.Fatalf("Stock account = %v, want a shares account", stock)
	}
	price, ok := market.PriceAsOf(stock, date.New(2025, 2, 1))
	if !ok {
		t.Fatal("no price for Stock")
	}
	checkMoney(t, "price", price, gbp(12.5))

	// The decoded ledger drives a full analysis.
	a := run(t, ledger, market)
	checkMoney(t, "bank Income", a.Accounts().Lookup(ledger.Account("Bank")).Income, gbp(1000))
	sb := a.Accounts().Lookup(stock)
	checkMoney(t, "stock Cost", sb.Cost, gbp(500))
	checkUnits(t, "stock Units", sb.Units, Q(40))
	checkMoney(t, "taxman Income", a.Accounts().Lookup(ledger.Account("HMRC")).Income, gbp(200))
}

func TestDecodeLedgerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"first record must be the ledger", `{"record":"account","name":"Bank","class":"deposit"}`},
		{"empty input", ""},
		{"unknown record type", "{\"record\":\"ledger\",\"currency\":\"GBP\"}\n{\"record\":\"mystery\"}"},
		{"unknown account class", "{\"record\":\"ledger\",\"currency\":\"GBP\"}\n{\"record\":\"account\",\"name\":\"X\",\"class\":\"weird\"}"},
		{"undeclared debit account", "{\"record\":\"ledger\",\"currency\":\"GBP\"}\n{\"record\":\"event\",\"date\":\"2025-01-05\",\"debit\":\"Nope\",\"credit\":\"Nope\",\"amount\":1,\"category\":\"Nope\"}"},
		{"duplicate ledger", "{\"record\":\"ledger\",\"currency\":\"GBP\"}\n{\"record\":\"ledger\",\"currency\":\"EUR\"}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := DecodeLedger(strings.NewReader(tc.input)); err == nil {
				t.Error("DecodeLedger() error = nil, want an error")
			}
		})
	}
}
