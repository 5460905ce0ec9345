package moneywell

import (
	"sort"

	"github.com/ewanmcn/moneywell/date"
	"github.com/google/uuid"
)

// PriceSource supplies the latest known price for a priced account as of a
// date. It is only consulted for rights-waived and takeover valuations.
type PriceSource interface {
	PriceAsOf(a *Account, on date.Date) (Money, bool)
}

type pricePoint struct {
	on    date.Date
	price Money
}

// Market is an in-memory PriceSource holding dated unit prices per account.
type Market struct {
	prices map[uuid.UUID][]pricePoint // sorted by date
}

// NewMarket returns a new empty price collection.
func NewMarket() *Market {
	return &Market{prices: make(map[uuid.UUID][]pricePoint)}
}

// Add records the unit price of an account on a date.
func (m *Market) Add(a *Account, on date.Date, price Money) {
	points := append(m.prices[a.ID], pricePoint{on: on, price: price})
	sort.SliceStable(points, func(i, j int) bool { return points[i].on.Before(points[j].on) })
	m.prices[a.ID] = points
}

// PriceAsOf returns the last known price on or before the given date.
func (m *Market) PriceAsOf(a *Account, on date.Date) (Money, bool) {
	points := m.prices[a.ID]
	var last Money
	found := false
	for _, p := range points {
		if p.on.After(on) {
			break
		}
		last, found = p.price, true
	}
	return last, found
}
