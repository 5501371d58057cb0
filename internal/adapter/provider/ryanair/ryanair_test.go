package ryanair

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandrly/wandrly-api/internal/adapter/snapshot"
	"github.com/wandrly/wandrly-api/internal/domain"
)

const (
	routesJSON   = `[{"airportFrom":"DUB","airportTo":"OPO"},{"airportFrom":"DUB","airportTo":""},{"airportFrom":"OPO","airportTo":"DUB"}]`
	airportsJSON = `{"airports":[{"iataCode":"DUB","name":"Dublin","countryCode":"ie"},{"iataCode":"OPO","name":"Porto","countryCode":"pt"}],"countries":[{"code":"ie","name":"Ireland"},{"code":"pt","name":"Portugal"}]}`
	faresJSON    = `{"outbound":{"fares":[
		{"day":"2026-11-01","unavailable":false,"price":{"value":19.99,"currencyCode":"EUR"}},
		{"day":"2026-11-02","unavailable":true,"price":{"value":5,"currencyCode":"EUR"}},
		{"day":"2026-11-03","unavailable":false,"price":null},
		{"day":"2026-11-04","unavailable":false,"price":{"value":0,"currencyCode":"EUR"}},
		{"day":"2026-11-05","unavailable":false}
	]}}`
)

// upstream is a fake of the carrier endpoints counting calls per path.
type upstream struct {
	server   *httptest.Server
	routes   atomic.Int64
	airports atomic.Int64
	fares    atomic.Int64
	lastURL  atomic.Value
}

func newUpstream(t *testing.T, faresStatus int, faresBody string) *upstream {
	u := &upstream{}
	mux := http.NewServeMux()
	mux.HandleFunc("/routes", func(w http.ResponseWriter, r *http.Request) {
		u.routes.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(routesJSON))
	})
	mux.HandleFunc("/common", func(w http.ResponseWriter, r *http.Request) {
		u.airports.Add(1)
		_, _ = w.Write([]byte(airportsJSON))
	})
	mux.HandleFunc("/fares/", func(w http.ResponseWriter, r *http.Request) {
		u.fares.Add(1)
		u.lastURL.Store(r.URL.String())
		w.WriteHeader(faresStatus)
		_, _ = w.Write([]byte(faresBody))
	})
	u.server = httptest.NewServer(mux)
	t.Cleanup(u.server.Close)
	return u
}

func (u *upstream) client(cfg Config) *Client {
	cfg.RoutesURL = u.server.URL + "/routes"
	cfg.AirportsURL = u.server.URL + "/common?market=en-gb"
	cfg.FaresURL = u.server.URL + "/fares"
	return NewClient(cfg)
}

var november = domain.YearMonth{Year: 2026, Month: time.November}

func TestFareProvider_Name(t *testing.T) {
	assert.Equal(t, "ryanair", NewFareProvider(NewClient(Config{})).Name())
}

func TestFareProvider_MonthlyFares(t *testing.T) {
	up := newUpstream(t, http.StatusOK, faresJSON)
	provider := NewFareProvider(up.client(Config{}))

	fares, err := provider.MonthlyFares(context.Background(), "DUB", "OPO", november)

	require.NoError(t, err)
	assert.Equal(t, domain.DailyFareTable{"2026-11-01": 19.99, "2026-11-04": 0}, fares)
	assert.Equal(t, "/fares/DUB/OPO/cheapestPerDay?currency=EUR&outboundMonthOfDate=2026-11-01", up.lastURL.Load())
}

func TestFareProvider_MonthlyFares_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`, wantErr: domain.ErrProviderUnavailable},
		{name: "not found", status: http.StatusNotFound, body: ``, wantErr: domain.ErrProviderUnavailable},
		{name: "malformed", status: http.StatusOK, body: `{"outbound":`, wantErr: domain.ErrMalformedPayload},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			up := newUpstream(t, tt.status, tt.body)
			provider := NewFareProvider(up.client(Config{}))

			fares, err := provider.MonthlyFares(context.Background(), "DUB", "OPO", november)

			assert.Nil(t, fares)
			assert.ErrorIs(t, err, tt.wantErr)

			var pe *domain.ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "monthly_fares", pe.Operation)
		})
	}
}

func TestFareProvider_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	provider := NewFareProvider(NewClient(Config{FaresURL: server.URL, FareTimeout: 50 * time.Millisecond}))

	_, err := provider.MonthlyFares(context.Background(), "DUB", "OPO", november)

	assert.True(t, domain.IsProviderTimeout(err))
}

func TestReferenceData_RoutesColdFetchThenSnapshot(t *testing.T) {
	up := newUpstream(t, http.StatusOK, faresJSON)
	store := snapshot.NewMemoryStore()
	ref := NewReferenceData(up.client(Config{}), store)

	routes, err := ref.Routes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Route{{Origin: "DUB", Destination: "OPO"}, {Origin: "OPO", Destination: "DUB"}}, routes)

	saved, err := store.Load(context.Background(), snapshot.RoutesName)
	require.NoError(t, err)
	assert.JSONEq(t, routesJSON, string(saved))

	_, err = ref.Routes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), up.routes.Load(), "second call served from snapshot")
}

func TestReferenceData_RoutesFromExistingSnapshot(t *testing.T) {
	store := snapshot.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), snapshot.RoutesName, []byte(`[{"airportFrom":"ORK","airportTo":"FAO"}]`)))

	// Unroutable upstream: any remote call would fail.
	ref := NewReferenceData(NewClient(Config{RoutesURL: "http://127.0.0.1:1/routes", ReferenceTimeout: 100 * time.Millisecond}), store)

	routes, err := ref.Routes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Route{{Origin: "ORK", Destination: "FAO"}}, routes)
}

func TestReferenceData_CorruptRoutesSnapshotIsReplaced(t *testing.T) {
	up := newUpstream(t, http.StatusOK, faresJSON)
	store := snapshot.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), snapshot.RoutesName, []byte(`not json`)))

	routes, err := NewReferenceData(up.client(Config{}), store).Routes(context.Background())

	require.NoError(t, err)
	assert.Len(t, routes, 2)
	saved, _ := store.Load(context.Background(), snapshot.RoutesName)
	assert.JSONEq(t, routesJSON, string(saved))
}

func TestReferenceData_RoutesUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	store := snapshot.NewMemoryStore()
	ref := NewReferenceData(NewClient(Config{RoutesURL: server.URL}), store)

	_, err := ref.Routes(context.Background())

	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	_, loadErr := store.Load(context.Background(), snapshot.RoutesName)
	assert.ErrorIs(t, loadErr, domain.ErrSnapshotNotFound, "failures are not snapshotted")
}

func TestReferenceData_AirportsMissingSnapshot(t *testing.T) {
	up := newUpstream(t, http.StatusOK, faresJSON)

	_, err := NewReferenceData(up.client(Config{}), snapshot.NewMemoryStore()).Airports(context.Background())

	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	assert.Equal(t, int64(0), up.airports.Load())
}

func TestReferenceData_AirportsRemoteFallback(t *testing.T) {
	up := newUpstream(t, http.StatusOK, faresJSON)
	store := snapshot.NewMemoryStore()
	ref := NewReferenceData(up.client(Config{}), store, WithAirportsRemoteFallback(true))

	dir, err := ref.Airports(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Porto, Portugal", dir.DisplayName("OPO"))
	assert.Equal(t, int64(1), up.airports.Load())

	_, err = store.Load(context.Background(), snapshot.AirportsName)
	assert.NoError(t, err)
}

func TestReferenceData_AirportsFromFileSnapshot(t *testing.T) {
	store := snapshot.NewFileStore(t.TempDir())
	require.NoError(t, store.Save(context.Background(), snapshot.AirportsName, []byte(airportsJSON)))

	dir, err := NewReferenceData(NewClient(Config{}), store).Airports(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, dir.Len())
	assert.Equal(t, "Dublin", dir.City("DUB"))
}

func TestParseRoutes_Malformed(t *testing.T) {
	_, err := ParseRoutes([]byte(`{"routes":[]}`))

	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestClient_RateLimiterWaitsForTokens(t *testing.T) {
	up := newUpstream(t, http.StatusOK, faresJSON)
	provider := NewFareProvider(up.client(Config{RequestsPerSecond: 20, Burst: 1}))

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := provider.MonthlyFares(context.Background(), "DUB", "OPO", november)
		require.NoError(t, err)
	}

	// Burst 1 at 20/s: the 2nd and 3rd calls each wait ~50ms.
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}
