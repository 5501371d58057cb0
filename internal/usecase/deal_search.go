package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wandrly/wandrly-api/internal/domain"
	"github.com/wandrly/wandrly-api/internal/infrastructure/logger"
	"github.com/wandrly/wandrly-api/internal/infrastructure/timeutil"
)

// Search outcomes reported to metrics.
const (
	OutcomeOK                   = "ok"
	OutcomeInvalid              = "invalid"
	OutcomeReferenceUnavailable = "reference_unavailable"
	OutcomeCanceled             = "canceled"
)

// DealSearchUseCase defines the interface for round-trip deal searches.
type DealSearchUseCase interface {
	// Search enumerates every (origin, destination, date pair) combination and
	// returns the round trips within budget, cheapest first.
	Search(ctx context.Context, criteria domain.DealSearchCriteria) (*domain.DealSearchResult, error)
}

// dealSearchUseCase implements DealSearchUseCase.
type dealSearchUseCase struct {
	refData domain.ReferenceDataProvider
	fares   domain.FareProvider
	clock   timeutil.Clock
	cfg     Config

	log     *logger.Logger
	metrics MetricsRecorder
	newID   func() string
}

// NewDealSearchUseCase creates a DealSearchUseCase. If cfg is nil, or any of
// its fields is zero, the defaults are used.
func NewDealSearchUseCase(
	refData domain.ReferenceDataProvider,
	fares domain.FareProvider,
	clock timeutil.Clock,
	cfg *Config,
	opts ...Option,
) DealSearchUseCase {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}

	uc := &dealSearchUseCase{
		refData: refData,
		fares:   fares,
		clock:   clock,
		cfg:     mergeConfig(cfg),
		log:     logger.Nop(),
		metrics: nopMetrics{},
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// referenceData is the route graph and directory loaded once per search.
type referenceData struct {
	routes   []domain.Route
	airports *domain.AirportDirectory
}

// leg pairs an origin with one of its eligible destinations.
type leg struct {
	origin      string
	destination string
}

// Search implements DealSearchUseCase.Search.
func (uc *dealSearchUseCase) Search(ctx context.Context, criteria domain.DealSearchCriteria) (*domain.DealSearchResult, error) {
	start := time.Now()

	if err := criteria.Validate(); err != nil {
		uc.metrics.ObserveSearch(OutcomeInvalid, time.Since(start), 0)
		return nil, err
	}

	uc.log.Debug().
		Strs("origins", criteria.Origins).
		Ints("durations", criteria.Durations).
		Int("horizon_days", criteria.HorizonDays).
		Float64("max_price", criteria.MaxPrice).
		Msg("deal search started")

	ref, err := uc.loadReferenceData(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("reference data unavailable, aborting search")
		uc.metrics.ObserveSearch(OutcomeReferenceUnavailable, time.Since(start), 0)
		return nil, err
	}

	today := timeutil.Today(uc.clock, uc.cfg.Location)
	pairs := BuildDatePairs(today, criteria.HorizonDays, criteria.Durations)

	legs := make([]leg, 0)
	for _, origin := range criteria.Origins {
		for _, dest := range EligibleDestinations(origin, ref.routes, *uc.cfg.Policy) {
			legs = append(legs, leg{origin: origin, destination: dest})
		}
	}

	cache := NewFareCache(NewFareLookupFunc(uc.fares, uc.cfg.FareTimeout, uc.log, uc.metrics))
	if err := cache.Prefetch(ctx, uniqueFareKeys(legs, pairs), uc.cfg.Concurrency); err != nil {
		uc.metrics.ObserveSearch(OutcomeCanceled, time.Since(start), 0)
		return nil, fmt.Errorf("fare prefetch interrupted: %w", err)
	}

	deals := make([]domain.Deal, 0)
	for _, l := range legs {
		for _, pair := range pairs {
			if deal, ok := uc.evaluate(ctx, cache, ref.airports, l, pair, criteria.MaxPrice); ok {
				deals = append(deals, deal)
			}
		}
	}

	ranked := RankDeals(deals)
	stats := cache.Stats()
	elapsed := time.Since(start)

	uc.metrics.AddFareCacheStats(stats.Hits, stats.Lookups)
	uc.metrics.ObserveSearch(OutcomeOK, elapsed, len(ranked))

	uc.log.Info().
		Int("deals", len(ranked)).
		Int("legs", len(legs)).
		Int("date_pairs", len(pairs)).
		Int("fare_lookups", stats.Lookups).
		Int("fare_lookups_failed", stats.Failed).
		Dur("elapsed", elapsed).
		Msg("deal search completed")

	return domain.NewDealSearchResult(ranked, domain.SearchMetadata{
		OriginsSearched:     len(criteria.Origins),
		DestinationsScanned: len(legs),
		DatePairs:           len(pairs),
		FareLookups:         stats.Lookups,
		FareLookupsFailed:   stats.Failed,
		CacheHits:           stats.Hits,
		SearchTimeMs:        elapsed.Milliseconds(),
	}), nil
}

// loadReferenceData fetches routes and airports once. Either being missing or
// empty aborts the search.
func (uc *dealSearchUseCase) loadReferenceData(ctx context.Context) (*referenceData, error) {
	routes, err := uc.refData.Routes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: routes: %v", domain.ErrReferenceDataUnavailable, err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("%w: route graph is empty", domain.ErrReferenceDataUnavailable)
	}

	airports, err := uc.refData.Airports(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: airports: %v", domain.ErrReferenceDataUnavailable, err)
	}
	if airports.Len() == 0 {
		return nil, fmt.Errorf("%w: airport directory is empty", domain.ErrReferenceDataUnavailable)
	}

	return &referenceData{routes: routes, airports: airports}, nil
}

// evaluate prices one round trip and builds the deal when both legs are priced
// and the total fits the budget.
func (uc *dealSearchUseCase) evaluate(
	ctx context.Context,
	cache *FareCache,
	airports *domain.AirportDirectory,
	l leg,
	pair domain.DatePair,
	maxPrice float64,
) (domain.Deal, bool) {
	outKey, inKey := fareKeys(l.origin, l.destination, pair)

	outPrice, ok := cache.Get(ctx, outKey).PriceOn(pair.Departure)
	if !ok {
		return domain.Deal{}, false
	}
	inPrice, ok := cache.Get(ctx, inKey).PriceOn(pair.Return)
	if !ok {
		return domain.Deal{}, false
	}

	// compared at the precision the deal reports
	total := domain.RoundPrice(outPrice + inPrice)
	if total > maxPrice {
		return domain.Deal{}, false
	}

	return domain.Deal{
		ID:               uc.newID(),
		DepartureAirport: airports.Ref(l.origin),
		ArrivalAirport:   airports.Ref(l.destination),
		DepartureDate:    pair.Departure,
		ReturnDate:       pair.Return,
		DurationDays:     timeutil.DaysBetween(pair.Departure, pair.Return),
		Price:            domain.NewPrice(total, uc.cfg.Currency),
	}, true
}

// uniqueFareKeys lists every fare table the enumeration will read, in first-use order.
func uniqueFareKeys(legs []leg, pairs []domain.DatePair) []domain.FareCacheKey {
	seen := make(map[domain.FareCacheKey]struct{})
	keys := make([]domain.FareCacheKey, 0)

	add := func(k domain.FareCacheKey) {
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	for _, l := range legs {
		for _, pair := range pairs {
			out, in := fareKeys(l.origin, l.destination, pair)
			add(out)
			add(in)
		}
	}
	return keys
}

// Ensure dealSearchUseCase implements DealSearchUseCase at compile time.
var _ DealSearchUseCase = (*dealSearchUseCase)(nil)
