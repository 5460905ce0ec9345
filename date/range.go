package date

import "fmt"

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns the range [from, to].
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// UpTo returns a range with no lower bound that ends on the given date.
func UpTo(to Date) Range { return Range{To: to} }

// Contains reports whether the date is included in the range (boundaries included).
// A zero From means the range is unbounded in the past.
func (r Range) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	return !d.After(r.To)
}

// String formats the range as "from..to".
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
