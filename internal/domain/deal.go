// Package domain contains the core entities and rules of the deal search:
// routes, airports, monthly fare tables, date pairs and the resulting deals.
package domain

import (
	"math"
	"time"
)

// DefaultCurrency is the single currency fares are requested and reported in.
const DefaultCurrency = "EUR"

// Deal is one round trip whose combined fare fits the traveler's budget.
type Deal struct {
	// ID is generated fresh for every discovered deal
	ID string `json:"id"`

	// DepartureAirport is the origin of the outbound leg
	DepartureAirport AirportRef `json:"departureAirport"`

	// ArrivalAirport is the destination of the outbound leg
	ArrivalAirport AirportRef `json:"arrivalAirport"`

	// DepartureDate is the outbound calendar date (midnight UTC)
	DepartureDate time.Time `json:"departureDate"`

	// ReturnDate is the inbound calendar date (midnight UTC)
	ReturnDate time.Time `json:"returnDate"`

	// DurationDays is ReturnDate minus DepartureDate in whole days
	DurationDays int `json:"durationDays"`

	// Price is the combined outbound + inbound fare
	Price Price `json:"price"`
}

// AirportRef identifies an airport by code with a display city.
type AirportRef struct {
	Code string `json:"code"`
	City string `json:"city"`
}

// Price is a monetary amount in a single currency.
type Price struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// NewPrice builds a Price with the value rounded to cents.
func NewPrice(value float64, currency string) Price {
	return Price{
		Value:    RoundPrice(value),
		Currency: currency,
	}
}

// RoundPrice rounds a fare to 2 decimal places.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
