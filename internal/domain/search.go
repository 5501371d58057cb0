package domain

import (
	"regexp"
	"time"
)

// DealSearchCriteria defines the parameters of one deal search.
type DealSearchCriteria struct {
	// Origins are the IATA codes to depart from
	Origins []string `json:"origins"`

	// Durations are the trip lengths in days to consider (0 = same-day return)
	Durations []int `json:"durations"`

	// HorizonDays bounds departures to today+1 .. today+HorizonDays
	HorizonDays int `json:"horizonDays"`

	// MaxPrice is the inclusive budget for the combined round-trip fare
	MaxPrice float64 `json:"maxPrice"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// IsAirportCode reports whether s is a 3-letter uppercase IATA code.
func IsAirportCode(s string) bool {
	return airportCodeRegex.MatchString(s)
}

// Validate checks the criteria. A horizon below 1 is allowed and simply yields
// no date pairs.
func (c *DealSearchCriteria) Validate() error {
	if len(c.Origins) == 0 {
		return WrapInvalidRequest("at least one origin is required")
	}
	for _, o := range c.Origins {
		if !IsAirportCode(o) {
			return WrapInvalidRequest("origin must be a valid 3-letter IATA code, got %q", o)
		}
	}

	if len(c.Durations) == 0 {
		return WrapInvalidRequest("at least one duration is required")
	}
	for _, d := range c.Durations {
		if d < 0 {
			return WrapInvalidRequest("durations must be non-negative, got %d", d)
		}
	}

	if c.MaxPrice < 0 {
		return WrapInvalidRequest("maxPrice must be non-negative")
	}

	return nil
}

// DatePair is one outbound/return date combination.
type DatePair struct {
	Departure time.Time
	Return    time.Time
	Duration  int
}

// NewDatePair builds the pair departing on departure and returning duration days later.
func NewDatePair(departure time.Time, duration int) DatePair {
	return DatePair{
		Departure: departure,
		Return:    departure.AddDate(0, 0, duration),
		Duration:  duration,
	}
}

// DealSearchResult is the ranked outcome of a search.
type DealSearchResult struct {
	Deals    []Deal         `json:"data"`
	Metadata SearchMetadata `json:"metadata"`
}

// SearchMetadata describes how a search was executed.
type SearchMetadata struct {
	// TotalResults is the number of deals returned
	TotalResults int `json:"totalResults"`

	// OriginsSearched is the number of origins enumerated
	OriginsSearched int `json:"originsSearched"`

	// DestinationsScanned is the number of (origin, destination) pairs enumerated
	DestinationsScanned int `json:"destinationsScanned"`

	// DatePairs is the number of candidate date pairs per destination
	DatePairs int `json:"datePairs"`

	// FareLookups is the number of distinct monthly fare tables fetched
	FareLookups int `json:"fareLookups"`

	// FareLookupsFailed is how many of those lookups were unavailable
	FareLookupsFailed int `json:"fareLookupsFailed"`

	// CacheHits is how many fare table reads were served from the per-search cache
	CacheHits int `json:"cacheHits"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"searchTimeMs"`
}

// NewDealSearchResult creates a result, normalizing nil deals to an empty slice.
func NewDealSearchResult(deals []Deal, metadata SearchMetadata) *DealSearchResult {
	if deals == nil {
		deals = []Deal{}
	}
	metadata.TotalResults = len(deals)
	return &DealSearchResult{
		Deals:    deals,
		Metadata: metadata,
	}
}
