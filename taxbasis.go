package moneywell

// TaxBasis identifies how a piece of income is taxed. Every income-effect
// event is posted to exactly one basis bucket.
type TaxBasis int

const (
	// BasisSalary covers generic taxed income and deemed benefits.
	BasisSalary TaxBasis = iota
	// BasisInterest covers deposit interest.
	BasisInterest
	// BasisDividend covers dividends.
	BasisDividend
	// BasisRental covers rental income.
	BasisRental
	// BasisTaxableGains covers chargeable gains from life-bond disposals.
	BasisTaxableGains
	// BasisTaxPaid covers tax credits and national insurance already collected.
	BasisTaxPaid
)

func (b TaxBasis) String() string {
	switch b {
	case BasisSalary:
		return "salary"
	case BasisInterest:
		return "interest"
	case BasisDividend:
		return "dividend"
	case BasisRental:
		return "rental"
	case BasisTaxableGains:
		return "taxablegains"
	case BasisTaxPaid:
		return "taxpaid"
	default:
		return "unknown"
	}
}

// taxBasisOf maps an income event's category class to its tax basis.
func taxBasisOf(class CategoryClass) TaxBasis {
	switch class {
	case Interest:
		return BasisInterest
	case DividendIncome:
		return BasisDividend
	case Rental:
		return BasisRental
	default:
		return BasisSalary
	}
}
