package ryanair

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/wandrly/wandrly-api/internal/adapter/snapshot"
	"github.com/wandrly/wandrly-api/internal/domain"
	"github.com/wandrly/wandrly-api/internal/infrastructure/logger"
)

const (
	opRoutes   = "routes"
	opAirports = "airports"
)

// ReferenceData implements domain.ReferenceDataProvider. Snapshots are read
// first; the upstream is contacted only when a snapshot is missing or cannot
// be decoded, and the fresh payload replaces it.
type ReferenceData struct {
	client *Client
	store  snapshot.Store
	log    *logger.Logger

	// airportsRemoteFallback allows fetching airport metadata when no
	// snapshot exists. Without it a missing snapshot is an error.
	airportsRemoteFallback bool

	group singleflight.Group
}

// ReferenceDataOption customizes ReferenceData.
type ReferenceDataOption func(*ReferenceData)

// WithAirportsRemoteFallback enables fetching airport metadata upstream.
func WithAirportsRemoteFallback(enabled bool) ReferenceDataOption {
	return func(r *ReferenceData) {
		r.airportsRemoteFallback = enabled
	}
}

// WithReferenceLogger sets the logger.
func WithReferenceLogger(log *logger.Logger) ReferenceDataOption {
	return func(r *ReferenceData) {
		if log != nil {
			r.log = log.WithComponent("reference_data")
		}
	}
}

// NewReferenceData creates a ReferenceData backed by store.
func NewReferenceData(client *Client, store snapshot.Store, opts ...ReferenceDataOption) *ReferenceData {
	r := &ReferenceData{
		client: client,
		store:  store,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Routes implements domain.ReferenceDataProvider.
func (r *ReferenceData) Routes(ctx context.Context) ([]domain.Route, error) {
	v, err, _ := r.group.Do(snapshot.RoutesName, func() (interface{}, error) {
		return r.loadRoutes(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Route), nil
}

// Airports implements domain.ReferenceDataProvider.
func (r *ReferenceData) Airports(ctx context.Context) (*domain.AirportDirectory, error) {
	v, err, _ := r.group.Do(snapshot.AirportsName, func() (interface{}, error) {
		return r.loadAirports(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.AirportDirectory), nil
}

func (r *ReferenceData) loadRoutes(ctx context.Context) ([]domain.Route, error) {
	if data, ok := r.loadSnapshot(ctx, snapshot.RoutesName); ok {
		routes, err := ParseRoutes(data)
		if err == nil {
			return routes, nil
		}
		r.log.Warn().Err(err).Msg("routes snapshot unreadable, refetching")
	}

	var dtos []routeDTO
	raw, err := r.client.getJSON(ctx, opRoutes, r.client.cfg.RoutesURL, nil, r.client.cfg.ReferenceTimeout, &dtos)
	if err != nil {
		return nil, fmt.Errorf("fetch routes: %w", err)
	}

	r.saveSnapshot(ctx, snapshot.RoutesName, raw)
	return toRoutes(dtos), nil
}

func (r *ReferenceData) loadAirports(ctx context.Context) (*domain.AirportDirectory, error) {
	if data, ok := r.loadSnapshot(ctx, snapshot.AirportsName); ok {
		dir, err := ParseAirports(data)
		if err == nil {
			return dir, nil
		}
		r.log.Warn().Err(err).Msg("airports snapshot unreadable")
	}

	if !r.airportsRemoteFallback {
		return nil, fmt.Errorf("airports: %w", domain.ErrSnapshotNotFound)
	}

	var payload commonPayload
	raw, err := r.client.getJSON(ctx, opAirports, r.client.cfg.AirportsURL, nil, r.client.cfg.ReferenceTimeout, &payload)
	if err != nil {
		return nil, fmt.Errorf("fetch airports: %w", err)
	}

	r.saveSnapshot(ctx, snapshot.AirportsName, raw)
	return toDirectory(payload), nil
}

// loadSnapshot returns the stored payload. Store failures other than a missing
// snapshot are logged and treated as missing.
func (r *ReferenceData) loadSnapshot(ctx context.Context, name string) ([]byte, bool) {
	data, err := r.store.Load(ctx, name)
	if err == nil {
		return data, true
	}
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		r.log.Warn().Err(err).Str("snapshot", name).Msg("snapshot load failed")
	}
	return nil, false
}

// saveSnapshot persists a fresh payload. A failed write is not fatal: the data
// is still served and the next search tries again.
func (r *ReferenceData) saveSnapshot(ctx context.Context, name string, data []byte) {
	if err := r.store.Save(ctx, name, data); err != nil {
		r.log.Error().Err(err).Str("snapshot", name).Msg("snapshot save failed")
		return
	}
	r.log.Info().Str("snapshot", name).Int("bytes", len(data)).Msg("snapshot written")
}

// Ensure ReferenceData implements domain.ReferenceDataProvider at compile time.
var _ domain.ReferenceDataProvider = (*ReferenceData)(nil)
