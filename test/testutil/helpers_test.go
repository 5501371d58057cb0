package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wandrly/wandrly-api/internal/domain"
)

func TestMustParseDate(t *testing.T) {
	tests := []struct {
		name      string
		dateStr   string
		wantYear  int
		wantMonth time.Month
		wantDay   int
	}{
		{"valid date", "2026-10-18", 2026, time.October, 18},
		{"january date", "2027-01-01", 2027, time.January, 1},
		{"leap year date", "2028-02-29", 2028, time.February, 29},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseDate(t, tt.dateStr)
			assert.Equal(t, tt.wantYear, result.Year())
			assert.Equal(t, tt.wantMonth, result.Month())
			assert.Equal(t, tt.wantDay, result.Day())
			assert.Equal(t, time.UTC, result.Location())
		})
	}
}

func TestDaysAfter(t *testing.T) {
	assert.Equal(t, "2026-10-19", DaysAfter(t, "2026-10-18", 1))
	assert.Equal(t, "2026-11-01", DaysAfter(t, "2026-10-25", 7))
	assert.Equal(t, "2027-01-02", DaysAfter(t, "2026-12-30", 3))
	assert.Equal(t, "2026-10-18", DaysAfter(t, "2026-10-18", 0))
}

func TestPtr(t *testing.T) {
	p := Ptr(42.5)
	assert.Equal(t, 42.5, *p)

	s := Ptr("DUB")
	assert.Equal(t, "DUB", *s)
}

func TestDealBuilder(t *testing.T) {
	deal := NewDeal("d-1").
		From("ORK", "Cork").
		To("BCN", "Barcelona").
		Departing(t, "2026-12-30").
		Days(5).
		Price(50.505).
		Build()

	assert.Equal(t, "d-1", deal.ID)
	assert.Equal(t, domain.AirportRef{Code: "ORK", City: "Cork"}, deal.DepartureAirport)
	assert.Equal(t, domain.AirportRef{Code: "BCN", City: "Barcelona"}, deal.ArrivalAirport)
	assert.Equal(t, MustParseDate(t, "2027-01-04"), deal.ReturnDate)
	assert.Equal(t, 5, deal.DurationDays)
	assert.Equal(t, domain.DefaultCurrency, deal.Price.Currency)
}

func TestIsSortedByPrice(t *testing.T) {
	a := NewDeal("a").Price(20).Build()
	b := NewDeal("b").Price(20).Build()
	c := NewDeal("c").Price(90).Build()

	assert.True(t, IsSortedByPrice(nil))
	assert.True(t, IsSortedByPrice([]domain.Deal{a, b, c}))
	assert.False(t, IsSortedByPrice([]domain.Deal{c, a}))
}

func TestAssertDealInvariants(t *testing.T) {
	deals := []domain.Deal{
		NewDeal("a").Price(40).Build(),
		NewDeal("b").To("BCN", "Barcelona").Days(5).Price(75).Build(),
	}

	AssertDealInvariants(t, deals, 75, domain.DefaultRegionPolicy())
}
