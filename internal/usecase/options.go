// Package usecase contains the deal search business logic. It enumerates
// (origin, destination, date pair) combinations over monthly fare tables that
// are prefetched concurrently into a per-search cache.
package usecase

import (
	"time"

	"github.com/wandrly/wandrly-api/internal/domain"
	"github.com/wandrly/wandrly-api/internal/infrastructure/logger"
	"github.com/wandrly/wandrly-api/internal/infrastructure/timeutil"
)

// Default tuning values.
const (
	DefaultConcurrency = 8
	DefaultFareTimeout = 15 * time.Second
)

// Config contains configuration options for the use case.
type Config struct {
	// Concurrency bounds the number of in-flight fare lookups per search
	Concurrency int

	// FareTimeout is the deadline applied to every fare lookup
	FareTimeout time.Duration

	// Currency is reported on every deal
	Currency string

	// Location decides which calendar day "today" is
	Location *time.Location

	// Policy decides which airports may be destinations; nil means the default region
	Policy *domain.RegionPolicy
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	policy := domain.DefaultRegionPolicy()
	return Config{
		Concurrency: DefaultConcurrency,
		FareTimeout: DefaultFareTimeout,
		Currency:    domain.DefaultCurrency,
		Location:    timeutil.MustGetLocation(timeutil.Dublin),
		Policy:      &policy,
	}
}

// mergeConfig overlays the non-zero fields of cfg on the defaults.
func mergeConfig(cfg *Config) Config {
	merged := DefaultConfig()
	if cfg == nil {
		return merged
	}
	if cfg.Concurrency > 0 {
		merged.Concurrency = cfg.Concurrency
	}
	if cfg.FareTimeout > 0 {
		merged.FareTimeout = cfg.FareTimeout
	}
	if cfg.Currency != "" {
		merged.Currency = cfg.Currency
	}
	if cfg.Location != nil {
		merged.Location = cfg.Location
	}
	if cfg.Policy != nil {
		merged.Policy = cfg.Policy
	}
	return merged
}

// MetricsRecorder receives search and fare lookup observations.
type MetricsRecorder interface {
	ObserveSearch(outcome string, elapsed time.Duration, deals int)
	ObserveFareLookup(status string, elapsed time.Duration)
	AddFareCacheStats(hits, misses int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveSearch(string, time.Duration, int) {}
func (nopMetrics) ObserveFareLookup(string, time.Duration) {}
func (nopMetrics) AddFareCacheStats(int, int) {}

// Option customizes a deal search use case.
type Option func(*dealSearchUseCase)

// WithLogger sets the logger used for search and lookup events.
func WithLogger(log *logger.Logger) Option {
	return func(uc *dealSearchUseCase) {
		if log != nil {
			uc.log = log.WithComponent("deal_search")
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(uc *dealSearchUseCase) {
		if m != nil {
			uc.metrics = m
		}
	}
}

// WithIDGenerator replaces the deal id generator.
func WithIDGenerator(fn func() string) Option {
	return func(uc *dealSearchUseCase) {
		if fn != nil {
			uc.newID = fn
		}
	}
}
