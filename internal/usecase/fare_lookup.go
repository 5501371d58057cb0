package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wandrly/wandrly-api/internal/domain"
	"github.com/wandrly/wandrly-api/internal/infrastructure/logger"
)

// FareLookupFunc fetches one monthly fare table. It never fails: upstream
// errors are reported through the returned lookup's status.
type FareLookupFunc func(ctx context.Context, key domain.FareCacheKey) domain.FareLookup

// NewFareLookupFunc adapts a provider into a FareLookupFunc that applies a
// per-call timeout, recovers panics, and records each outcome.
func NewFareLookupFunc(provider domain.FareProvider, timeout time.Duration, log *logger.Logger, metrics MetricsRecorder) FareLookupFunc {
	if timeout <= 0 {
		timeout = DefaultFareTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return func(ctx context.Context, key domain.FareCacheKey) (lookup domain.FareLookup) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				lookup = domain.NewFareLookup(key, nil, fmt.Errorf("fare provider panic: %v", r))
			}

			elapsed := time.Since(start)
			metrics.ObserveFareLookup(string(lookup.Status), elapsed)
			if lookup.Failed() {
				log.Warn().
					Err(lookup.Err).
					Str("fare_key", key.String()).
					Str("reason", failureReason(lookup.Err)).
					Dur("elapsed", elapsed).
					Msg("fare lookup failed, treating month as empty")
			}
		}()

		fares, err := provider.MonthlyFares(ctx, key.Origin, key.Destination, key.Month)
		if err == nil && ctx.Err() != nil {
			err = fmt.Errorf("%w: %v", domain.ErrProviderTimeout, ctx.Err())
		}
		return domain.NewFareLookup(key, fares, err)
	}
}

// failureReason classifies a failed lookup for logs.
func failureReason(err error) string {
	switch {
	case domain.IsProviderTimeout(err):
		return "timeout"
	case errors.Is(err, domain.ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, domain.ErrProviderUnavailable):
		return "upstream_status"
	default:
		return "error"
	}
}
