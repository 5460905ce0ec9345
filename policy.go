package moneywell

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CapitalPolicy holds the "large transaction" thresholds used by the
// rights-waived and takeover algorithms. A cash amount is large only when it
// exceeds BOTH the absolute limit and the given fraction of the holding's
// value; large amounts get weighted cost apportionment, small ones are
// absorbed as a direct cost reduction.
type CapitalPolicy struct {
	LargeLimit decimal.Decimal // absolute threshold, in currency major units
	LargeRate  decimal.Decimal // fraction of holding value, e.g. 0.05
}

// DefaultCapitalPolicy returns the standard thresholds: 3000 currency units
// and 5% of holding value.
func DefaultCapitalPolicy() CapitalPolicy {
	return CapitalPolicy{
		LargeLimit: decimal.NewFromInt(3000),
		LargeRate:  decimal.NewFromFloat(0.05),
	}
}

// LoadCapitalPolicy reads a policy from a YAML file. Missing fields keep
// their defaults.
func LoadCapitalPolicy(path string) (CapitalPolicy, error) {
	p := DefaultCapitalPolicy()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("cannot read capital policy %q: %w", path, err)
	}
	var raw struct {
		LargeLimit *float64 `yaml:"large_limit"`
		LargeRate  *float64 `yaml:"large_rate"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return p, fmt.Errorf("cannot parse capital policy %q: %w", path, err)
	}
	if raw.LargeLimit != nil {
		p.LargeLimit = decimal.NewFromFloat(*raw.LargeLimit)
	}
	if raw.LargeRate != nil {
		p.LargeRate = decimal.NewFromFloat(*raw.LargeRate)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("invalid capital policy %q: %w", path, err)
	}
	return p, nil
}

// Validate checks the thresholds are usable.
func (p CapitalPolicy) Validate() error {
	if p.LargeLimit.IsNegative() {
		return fmt.Errorf("large_limit must not be negative, got %s", p.LargeLimit)
	}
	if p.LargeRate.IsNegative() || p.LargeRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("large_rate must be within [0,1], got %s", p.LargeRate)
	}
	return nil
}

// isLarge applies the dual-threshold test: amount must exceed the absolute
// limit AND the rate fraction of the holding's value. Amounts exactly at a
// boundary are not large.
func (p CapitalPolicy) isLarge(amount, value Money) bool {
	limit := M(p.LargeLimit, amount.Currency())
	return amount.GreaterThan(limit) && amount.GreaterThan(value.ValueAtRate(p.LargeRate))
}
