// Package metrics exposes Prometheus collectors for deal searches, fare lookups,
// and HTTP traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the service registers.
type Metrics struct {
	SearchesTotal     *prometheus.CounterVec
	SearchDuration    prometheus.Histogram
	DealsFound        prometheus.Histogram
	FareLookupsTotal  *prometheus.CounterVec
	FareLookupLatency prometheus.Histogram
	FareCacheHits     prometheus.Counter
	FareCacheMisses   prometheus.Counter

	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec

	Registry *prometheus.Registry
}

// New creates the collectors and registers them on reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		SearchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deal_searches_total",
			Help: "Deal searches by outcome",
		}, []string{"outcome"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "deal_search_duration_seconds",
			Help:    "Wall time of a full deal search",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		DealsFound: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "deal_search_results",
			Help:    "Number of deals returned per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		FareLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fare_lookups_total",
			Help: "Monthly fare lookups by result status",
		}, []string{"status"}),
		FareLookupLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fare_lookup_duration_seconds",
			Help:    "Latency of a single monthly fare lookup",
			Buckets: prometheus.DefBuckets,
		}),
		FareCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fare_cache_hits_total",
			Help: "Per-search fare cache hits",
		}),
		FareCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fare_cache_misses_total",
			Help: "Per-search fare cache misses",
		}),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		Registry: reg,
	}

	reg.MustRegister(
		m.SearchesTotal,
		m.SearchDuration,
		m.DealsFound,
		m.FareLookupsTotal,
		m.FareLookupLatency,
		m.FareCacheHits,
		m.FareCacheMisses,
		m.HTTPRequestDuration,
		m.HTTPRequestsTotal,
	)

	return m
}

// ObserveSearch records one finished search.
func (m *Metrics) ObserveSearch(outcome string, elapsed time.Duration, deals int) {
	m.SearchesTotal.WithLabelValues(outcome).Inc()
	m.SearchDuration.Observe(elapsed.Seconds())
	m.DealsFound.Observe(float64(deals))
}

// ObserveFareLookup records one remote monthly fare lookup.
func (m *Metrics) ObserveFareLookup(status string, elapsed time.Duration) {
	m.FareLookupsTotal.WithLabelValues(status).Inc()
	m.FareLookupLatency.Observe(elapsed.Seconds())
}

// AddFareCacheStats adds the hit and miss counts of one search's fare cache.
func (m *Metrics) AddFareCacheStats(hits, misses int) {
	m.FareCacheHits.Add(float64(hits))
	m.FareCacheMisses.Add(float64(misses))
}

// ObserveHTTPRequest records one served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
