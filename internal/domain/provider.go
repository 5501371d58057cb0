package domain

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

import "context"

// FareProvider fetches the cheapest one-way fare per day for a whole month.
// Implementations must be safe for concurrent use.
type FareProvider interface {
	// Name returns the upstream identifier (e.g. "ryanair").
	Name() string

	// MonthlyFares returns the priced days of month for origin -> destination.
	// Days that are unavailable or unpriced are omitted from the table.
	MonthlyFares(ctx context.Context, origin, destination string, month YearMonth) (DailyFareTable, error)
}

// ReferenceDataProvider supplies the route graph and the airport directory.
// Implementations must be safe for concurrent use.
type ReferenceDataProvider interface {
	// Routes returns every origin -> destination pair served by the carrier.
	Routes(ctx context.Context) ([]Route, error)

	// Airports returns the airport directory used for display names.
	Airports(ctx context.Context) (*AirportDirectory, error)
}
