package usecase

import (
	"time"

	"github.com/wandrly/wandrly-api/internal/domain"
	"github.com/wandrly/wandrly-api/internal/infrastructure/timeutil"
)

// BuildDatePairs enumerates departures today+1 .. today+horizonDays and, for
// each, one pair per duration in the given order.
func BuildDatePairs(today time.Time, horizonDays int, durations []int) []domain.DatePair {
	if horizonDays < 1 || len(durations) == 0 {
		return nil
	}

	today = timeutil.CalendarDate(today)
	pairs := make([]domain.DatePair, 0, horizonDays*len(durations))
	for offset := 1; offset <= horizonDays; offset++ {
		departure := timeutil.AddDays(today, offset)
		for _, d := range durations {
			pairs = append(pairs, domain.NewDatePair(departure, d))
		}
	}
	return pairs
}

// fareKeys returns the outbound and inbound cache keys of a round trip.
func fareKeys(origin, destination string, pair domain.DatePair) (out, in domain.FareCacheKey) {
	out = domain.FareCacheKey{
		Origin:      origin,
		Destination: destination,
		Month:       domain.YearMonthOf(pair.Departure),
	}
	in = domain.FareCacheKey{
		Origin:      destination,
		Destination: origin,
		Month:       domain.YearMonthOf(pair.Return),
	}
	return out, in
}
