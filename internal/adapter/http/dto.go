package http

// DealSearchResponseDTO is the body of a successful deal search.
// @Description Round-trip deals sorted by ascending total price
type DealSearchResponseDTO struct {
	Data     []DealDTO   `json:"data"`
	Metadata MetadataDTO `json:"metadata"`
}

// DealDTO is one round trip within budget.
// @Description A round trip whose combined fare fits the budget
type DealDTO struct {
	ID               string     `json:"id" example:"4f6c1f0e-2a7b-4c1d-9a55-0d0f4e9b7c21"`
	DepartureAirport AirportDTO `json:"departureAirport"`
	ArrivalAirport   AirportDTO `json:"arrivalAirport"`
	DepartureDate    string     `json:"departureDate" example:"2026-11-02"`
	ReturnDate       string     `json:"returnDate" example:"2026-11-09"`
	DurationDays     int        `json:"durationDays" example:"7"`
	Price            PriceDTO   `json:"price"`
}

// AirportDTO identifies an airport and its city.
type AirportDTO struct {
	Code string `json:"code" example:"OPO"`
	City string `json:"city" example:"Porto"`
}

// PriceDTO is the combined fare of both legs.
type PriceDTO struct {
	Value    float64 `json:"value" example:"75.5"`
	Currency string  `json:"currency" example:"EUR"`
}

// MetadataDTO contains metadata about the search execution.
type MetadataDTO struct {
	TotalResults        int   `json:"totalResults" example:"12"`
	OriginsSearched     int   `json:"originsSearched" example:"2"`
	DestinationsScanned int   `json:"destinationsScanned" example:"140"`
	DatePairs           int   `json:"datePairs" example:"120"`
	FareLookups         int   `json:"fareLookups" example:"840"`
	FareLookupsFailed   int   `json:"fareLookupsFailed" example:"3"`
	CacheHits           int   `json:"cacheHits" example:"33000"`
	SearchTimeMs        int64 `json:"searchTimeMs" example:"48210"`
}
