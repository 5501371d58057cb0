// Package mock provides test doubles for the deal search system.
// These fakes are meant for integration testing where configurable behavior
// (fare books, delays, failures, call counting) matters more than strict
// expectations.
package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/wandrly/wandrly-api/internal/domain"
)

// FareProvider is a configurable fake of domain.FareProvider. Fares are kept
// per route and day; a monthly request returns the days of that month.
type FareProvider struct {
	mu         sync.Mutex
	fares      map[string]domain.DailyFareTable
	routeErrs  map[string]error
	err        error
	delay      time.Duration
	calls      map[string]int
	totalCalls int
}

// NewFareProvider creates an empty fare provider. Unknown routes return no fares.
func NewFareProvider() *FareProvider {
	return &FareProvider{
		fares:     make(map[string]domain.DailyFareTable),
		routeErrs: make(map[string]error),
		calls:     make(map[string]int),
	}
}

func routeKey(origin, destination string) string {
	return origin + "-" + destination
}

// WithFare sets the one-way price from origin to destination on day (YYYY-MM-DD).
func (p *FareProvider) WithFare(origin, destination, day string, price float64) *FareProvider {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := routeKey(origin, destination)
	if p.fares[key] == nil {
		p.fares[key] = make(domain.DailyFareTable)
	}
	p.fares[key][day] = price
	return p
}

// WithRoundTrip prices both legs of a trip in one call.
func (p *FareProvider) WithRoundTrip(origin, destination, outDay string, outPrice float64, inDay string, inPrice float64) *FareProvider {
	return p.WithFare(origin, destination, outDay, outPrice).
		WithFare(destination, origin, inDay, inPrice)
}

// WithRouteError makes every request for origin→destination fail with err.
func (p *FareProvider) WithRouteError(origin, destination string, err error) *FareProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routeErrs[routeKey(origin, destination)] = err
	return p
}

// WithError makes every request fail with err.
func (p *FareProvider) WithError(err error) *FareProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
	return p
}

// WithDelay configures the provider to wait d before responding.
func (p *FareProvider) WithDelay(d time.Duration) *FareProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delay = d
	return p
}

// Name returns the provider's unique identifier.
func (p *FareProvider) Name() string {
	return "mock"
}

// MonthlyFares implements domain.FareProvider.MonthlyFares.
// It respects context cancellation and applies the configured delay.
func (p *FareProvider) MonthlyFares(ctx context.Context, origin, destination string, month domain.YearMonth) (domain.DailyFareTable, error) {
	key := domain.FareCacheKey{Origin: origin, Destination: destination, Month: month}

	p.mu.Lock()
	p.calls[key.String()]++
	p.totalCalls++
	delay := p.delay
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return nil, p.err
	}
	if err := p.routeErrs[routeKey(origin, destination)]; err != nil {
		return nil, err
	}

	prefix := month.String() + "-"
	table := make(domain.DailyFareTable)
	for day, price := range p.fares[routeKey(origin, destination)] {
		if strings.HasPrefix(day, prefix) {
			table[day] = price
		}
	}
	return table, nil
}

// CallCount returns the number of MonthlyFares calls.
func (p *FareProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalCalls
}

// CallsFor returns how many times the given monthly table was requested.
func (p *FareProvider) CallsFor(key domain.FareCacheKey) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[key.String()]
}

// MaxCallsPerKey returns the highest request count of any single monthly table.
func (p *FareProvider) MaxCallsPerKey() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	max := 0
	for _, n := range p.calls {
		if n > max {
			max = n
		}
	}
	return max
}

// Reset clears the call counters.
func (p *FareProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = make(map[string]int)
	p.totalCalls = 0
}

// ReferenceData is a configurable fake of domain.ReferenceDataProvider.
type ReferenceData struct {
	mu          sync.Mutex
	routes      []domain.Route
	airports    []domain.Airport
	countries   []domain.Country
	routesErr   error
	airportsErr error
	routeCalls  int
}

// NewReferenceData creates reference data with no routes and no airports.
func NewReferenceData() *ReferenceData {
	return &ReferenceData{}
}

// WithRoute adds a one-way route.
func (r *ReferenceData) WithRoute(origin, destination string) *ReferenceData {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, domain.Route{Origin: origin, Destination: destination})
	return r
}

// WithReturnRoute adds both directions of a route.
func (r *ReferenceData) WithReturnRoute(a, b string) *ReferenceData {
	return r.WithRoute(a, b).WithRoute(b, a)
}

// WithAirport adds an airport to the directory.
func (r *ReferenceData) WithAirport(code, name, countryCode string) *ReferenceData {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.airports = append(r.airports, domain.Airport{Code: code, Name: name, CountryCode: countryCode})
	return r
}

// WithCountry adds a country name used to format airport display names.
func (r *ReferenceData) WithCountry(code, name string) *ReferenceData {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countries = append(r.countries, domain.Country{Code: code, Name: name})
	return r
}

// WithRoutesError makes Routes fail.
func (r *ReferenceData) WithRoutesError(err error) *ReferenceData {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routesErr = err
	return r
}

// WithAirportsError makes Airports fail.
func (r *ReferenceData) WithAirportsError(err error) *ReferenceData {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.airportsErr = err
	return r
}

// Routes implements domain.ReferenceDataProvider.Routes.
func (r *ReferenceData) Routes(ctx context.Context) ([]domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routeCalls++

	if r.routesErr != nil {
		return nil, r.routesErr
	}
	return append([]domain.Route(nil), r.routes...), nil
}

// Airports implements domain.ReferenceDataProvider.Airports.
func (r *ReferenceData) Airports(ctx context.Context) (*domain.AirportDirectory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.airportsErr != nil {
		return nil, r.airportsErr
	}
	return domain.NewAirportDirectory(r.airports, r.countries), nil
}

// RouteCalls returns how many times Routes was called.
func (r *ReferenceData) RouteCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.routeCalls
}

// Ensure the fakes implement the domain interfaces at compile time.
var (
	_ domain.FareProvider          = (*FareProvider)(nil)
	_ domain.ReferenceDataProvider = (*ReferenceData)(nil)
)

// IrishNetwork returns reference data for the home airports DUB and ORK flying
// to Porto, Barcelona and London Stansted (an excluded destination).
func IrishNetwork() *ReferenceData {
	return NewReferenceData().
		WithCountry("ie", "Ireland").
		WithCountry("pt", "Portugal").
		WithCountry("es", "Spain").
		WithCountry("gb", "United Kingdom").
		WithAirport("DUB", "Dublin", "ie").
		WithAirport("ORK", "Cork", "ie").
		WithAirport("OPO", "Porto", "pt").
		WithAirport("BCN", "Barcelona", "es").
		WithAirport("STN", "London Stansted", "gb").
		WithReturnRoute("DUB", "OPO").
		WithReturnRoute("DUB", "BCN").
		WithReturnRoute("DUB", "STN").
		WithReturnRoute("DUB", "ORK").
		WithReturnRoute("ORK", "BCN")
}
