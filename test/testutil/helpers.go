// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"sort"
	"testing"
	"time"

	"github.com/wandrly/wandrly-api/internal/domain"
	"github.com/wandrly/wandrly-api/internal/infrastructure/timeutil"
)

// MustParseDate parses a date string in YYYY-MM-DD format as midnight UTC.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := timeutil.ParseDate(dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// DaysAfter returns the calendar date n days after dateStr, formatted YYYY-MM-DD.
func DaysAfter(t *testing.T, dateStr string, n int) string {
	t.Helper()
	return timeutil.FormatDate(timeutil.AddDays(MustParseDate(t, dateStr), n))
}

// Ptr returns a pointer to the given value.
func Ptr[T any](v T) *T {
	return &v
}

// DealBuilder assembles domain.Deal values for tests.
type DealBuilder struct {
	deal domain.Deal
}

// NewDeal starts a 7-day DUB→OPO deal departing 2026-10-19 at 75 EUR.
func NewDeal(id string) *DealBuilder {
	dep := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	return &DealBuilder{deal: domain.Deal{
		ID:               id,
		DepartureAirport: domain.AirportRef{Code: "DUB", City: "Dublin"},
		ArrivalAirport:   domain.AirportRef{Code: "OPO", City: "Porto"},
		DepartureDate:    dep,
		ReturnDate:       dep.AddDate(0, 0, 7),
		DurationDays:     7,
		Price:            domain.NewPrice(75, domain.DefaultCurrency),
	}}
}

// From sets the departure airport.
func (b *DealBuilder) From(code, city string) *DealBuilder {
	b.deal.DepartureAirport = domain.AirportRef{Code: code, City: city}
	return b
}

// To sets the arrival airport.
func (b *DealBuilder) To(code, city string) *DealBuilder {
	b.deal.ArrivalAirport = domain.AirportRef{Code: code, City: city}
	return b
}

// Departing sets the outbound date and keeps the trip length.
func (b *DealBuilder) Departing(t *testing.T, date string) *DealBuilder {
	t.Helper()
	b.deal.DepartureDate = MustParseDate(t, date)
	b.deal.ReturnDate = timeutil.AddDays(b.deal.DepartureDate, b.deal.DurationDays)
	return b
}

// Days sets the trip length and moves the return date accordingly.
func (b *DealBuilder) Days(n int) *DealBuilder {
	b.deal.DurationDays = n
	b.deal.ReturnDate = timeutil.AddDays(b.deal.DepartureDate, n)
	return b
}

// Price sets the combined fare.
func (b *DealBuilder) Price(v float64) *DealBuilder {
	b.deal.Price = domain.NewPrice(v, b.deal.Price.Currency)
	return b
}

// Build returns the deal.
func (b *DealBuilder) Build() domain.Deal {
	return b.deal
}

// IsSortedByPrice reports whether deals are in non-decreasing price order.
func IsSortedByPrice(deals []domain.Deal) bool {
	return sort.SliceIsSorted(deals, func(i, j int) bool {
		return deals[i].Price.Value < deals[j].Price.Value
	})
}

// AssertDealInvariants fails the test when a deal breaks budget, region,
// date or ordering rules.
func AssertDealInvariants(t *testing.T, deals []domain.Deal, maxPrice float64, policy domain.RegionPolicy) {
	t.Helper()

	if !IsSortedByPrice(deals) {
		t.Errorf("deals are not sorted by ascending price")
	}
	for _, d := range deals {
		if d.Price.Value > maxPrice {
			t.Errorf("deal %s price %.2f exceeds budget %.2f", d.ID, d.Price.Value, maxPrice)
		}
		if !policy.AllowsDestination(d.ArrivalAirport.Code) {
			t.Errorf("deal %s arrives at disallowed airport %s", d.ID, d.ArrivalAirport.Code)
		}
		if got := timeutil.DaysBetween(d.DepartureDate, d.ReturnDate); got != d.DurationDays {
			t.Errorf("deal %s spans %d days but reports %d", d.ID, got, d.DurationDays)
		}
	}
}
