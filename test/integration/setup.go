// Package integration provides helpers and integration tests for the deal search system.
// Integration tests verify that components work together correctly, including
// HTTP handlers, middleware, the deal search use case and fake providers.
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	httpAdapter "github.com/wandrly/wandrly-api/internal/adapter/http"
	"github.com/wandrly/wandrly-api/internal/adapter/http/middleware"
	"github.com/wandrly/wandrly-api/internal/adapter/http/response"
	"github.com/wandrly/wandrly-api/internal/domain"
	"github.com/wandrly/wandrly-api/internal/infrastructure/logger"
	"github.com/wandrly/wandrly-api/internal/infrastructure/metrics"
	"github.com/wandrly/wandrly-api/internal/infrastructure/timeutil"
	"github.com/wandrly/wandrly-api/internal/usecase"
)

// Today is the pinned search date used by every integration test.
const Today = "2026-10-18"

// TestServer wraps an Echo instance wired like cmd/server, minus the real upstream.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.DealHandler
	Metrics *metrics.Metrics
}

// NewTestServer creates a test server around uc with the full middleware stack
// and a private metrics registry.
func NewTestServer(uc usecase.DealSearchUseCase) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	m := metrics.New(prometheus.NewRegistry())
	middleware.Setup(e, logger.Nop().Logger, m)

	handler := httpAdapter.NewDealHandler(uc, httpAdapter.DefaultRequestDefaults(), 0)
	httpAdapter.RegisterRoutes(e, handler)
	httpAdapter.RegisterMetrics(e, "/metrics", m.Handler())

	return &TestServer{
		Echo:    e,
		Handler: handler,
		Metrics: m,
	}
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Get executes a GET request and returns the response.
func (ts *TestServer) Get(target string) Response {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, req)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest requests /api/v1/deals with the given raw query.
func (ts *TestServer) SearchRequest(query string) Response {
	return ts.Get("/api/v1/deals?" + query)
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Get("/health")
}

// ParseSearchResponse parses the response body as a deal search response.
func (r *Response) ParseSearchResponse() (*httpAdapter.DealSearchResponseDTO, error) {
	var resp httpAdapter.DealSearchResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body as an error detail.
func (r *Response) ParseError() (*response.ErrorDetail, error) {
	var errResp response.ErrorDetail
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return &errResp, nil
}

// CreateUseCase creates a use case over the fakes with the clock pinned to Today.
func CreateUseCase(refData domain.ReferenceDataProvider, fares domain.FareProvider) usecase.DealSearchUseCase {
	return CreateUseCaseWithConfig(refData, fares, nil)
}

// CreateUseCaseWithConfig creates a use case with custom configuration.
func CreateUseCaseWithConfig(refData domain.ReferenceDataProvider, fares domain.FareProvider, cfg *usecase.Config) usecase.DealSearchUseCase {
	return usecase.NewDealSearchUseCase(refData, fares, timeutil.NewMockClockFromDate(Today), cfg)
}

// DefaultCriteria searches DUB for 7-day trips departing tomorrow with a generous budget.
func DefaultCriteria() domain.DealSearchCriteria {
	return domain.DealSearchCriteria{
		Origins:     []string{"DUB"},
		Durations:   []int{7},
		HorizonDays: 1,
		MaxPrice:    1000,
	}
}
