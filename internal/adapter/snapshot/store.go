// Package snapshot persists raw reference-data payloads so the upstream is
// contacted only when no local copy exists. Snapshots never expire.
package snapshot

import (
	"context"
	"sync"

	"github.com/wandrly/wandrly-api/internal/domain"
)

// Snapshot names.
const (
	RoutesName   = "routes"
	AirportsName = "airports_info"
)

// Store reads and writes named snapshots. Load returns
// domain.ErrSnapshotNotFound when the snapshot has never been written.
type Store interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// MemoryStore keeps snapshots in process memory. It is used when no durable
// backend is configured and in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[name]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[name] = append([]byte(nil), data...)
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
	_ Store = (*RedisStore)(nil)
)
