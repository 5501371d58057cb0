package usecase

import (
	"sync"
	"time"
)

// recordingMetrics captures observations for assertions.
type recordingMetrics struct {
	mu       sync.Mutex
	searches []string
	lookups  []string
	hits     int
	misses   int
}

func (r *recordingMetrics) ObserveSearch(outcome string, _ time.Duration, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches = append(r.searches, outcome)
}

func (r *recordingMetrics) ObserveFareLookup(status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups = append(r.lookups, status)
}

func (r *recordingMetrics) AddFareCacheStats(hits, misses int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits += hits
	r.misses += misses
}
