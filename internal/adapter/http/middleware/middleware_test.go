package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	route  string
	status string
}

type recordingHTTPMetrics struct {
	mu  sync.Mutex
	obs []observation
}

func (r *recordingHTTPMetrics) ObserveHTTPRequest(method, route, status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{method: method, route: route, status: status})
}

func (r *recordingHTTPMetrics) observations() []observation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]observation(nil), r.obs...)
}

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func findLogEntry(t *testing.T, buf *bytes.Buffer, message string) map[string]interface{} {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err == nil && entry["message"] == message {
			return entry
		}
	}
	return nil
}

// =====================================================
// Request ID Middleware Tests
// =====================================================

func TestRequestID_GeneratesNewID(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/api/v1/deals")

	handler := RequestID(zerolog.Nop())(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))

	reqID := rec.Header().Get(RequestIDHeader)
	assert.Len(t, reqID, 36, "should be UUID format")
	assert.Equal(t, reqID, GetRequestID(c))
}

func TestRequestID_PropagatesExistingID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
	req.Header.Set(RequestIDHeader, "ios-client-7f3a")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID(zerolog.Nop())(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))

	assert.Equal(t, "ios-client-7f3a", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "ios-client-7f3a", GetRequestID(c))
}

func TestRequestID_ReplacesMalformedID(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"too long", strings.Repeat("a", 65)},
		{"newline", "abc\ninjected"},
		{"spaces", "two words"},
		{"json", `{"x":1}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, "/api/v1/deals")
			c.Request().Header.Set(RequestIDHeader, tt.header)

			handler := RequestID(zerolog.Nop())(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			require.NoError(t, handler(c))

			reqID := rec.Header().Get(RequestIDHeader)
			assert.NotEqual(t, tt.header, reqID)
			assert.Len(t, reqID, 36)
		})
	}
}

func TestRequestID_AttachesScopedLogger(t *testing.T) {
	var logBuf bytes.Buffer
	c, rec := newContext(http.MethodGet, "/api/v1/deals")
	c.Request().Header.Set(RequestIDHeader, "ios-client-7f3a")

	handler := RequestID(zerolog.New(&logBuf))(func(c echo.Context) error {
		RequestLog(c).Warn().Str("origin", "DUB").Msg("from handler")
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	entry := findLogEntry(t, &logBuf, "from handler")
	require.NotNil(t, entry)
	assert.Equal(t, "ios-client-7f3a", entry["request_id"])
	assert.Equal(t, "DUB", entry["origin"])
	assert.Equal(t, "ios-client-7f3a", rec.Header().Get(RequestIDHeader))
}

func TestRequestLog_DisabledOutsideMiddleware(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/")
	assert.Equal(t, zerolog.Disabled, RequestLog(c).GetLevel())
}

func TestGetRequestID_ReturnsEmptyWhenNotSet(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/")
	assert.Empty(t, GetRequestID(c))
}

// =====================================================
// Request Logging Middleware Tests
// =====================================================

func TestRequestLogger_LogsRequestDetails(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals?from_locations=DUB&max_price=80", nil)
	req.Header.Set("User-Agent", "Wandrly-iOS/2.3")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/deals")
	c.Set(requestIDKey, "req-123")

	handler := RequestLogger(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))

	entry := findLogEntry(t, &logBuf, "HTTP request")
	require.NotNil(t, entry)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/v1/deals", entry["route"])
	assert.Equal(t, "/api/v1/deals", entry["path"])
	assert.Equal(t, "from_locations=DUB&max_price=80", entry["query"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Contains(t, entry, "duration_ms")
	assert.Equal(t, "Wandrly-iOS/2.3", entry["user_agent"])
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"success", http.StatusOK, "info"},
		{"client error", http.StatusBadRequest, "warn"},
		{"reference data unavailable", http.StatusServiceUnavailable, "error"},
		{"timeout", http.StatusGatewayTimeout, "error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			c, _ := newContext(http.MethodGet, "/api/v1/deals")

			handler := RequestLogger(zerolog.New(&logBuf))(func(c echo.Context) error {
				return c.NoContent(tt.status)
			})
			require.NoError(t, handler(c))

			entry := findLogEntry(t, &logBuf, "HTTP request")
			require.NotNil(t, entry)
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, float64(tt.status), entry["status"])
		})
	}
}

func TestRequestLogger_HandlesReturnedError(t *testing.T) {
	var logBuf bytes.Buffer
	c, rec := newContext(http.MethodGet, "/missing")

	handler := RequestLogger(zerolog.New(&logBuf))(func(c echo.Context) error {
		return echo.ErrNotFound
	})
	require.NoError(t, handler(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	entry := findLogEntry(t, &logBuf, "HTTP request")
	require.NotNil(t, entry)
	assert.Equal(t, "warn", entry["level"])
}

// =====================================================
// Recovery Middleware Tests
// =====================================================

func TestRecover_Returns500OnPanic(t *testing.T) {
	var logBuf bytes.Buffer
	c, rec := newContext(http.MethodGet, "/api/v1/deals")

	handler := Recover(zerolog.New(&logBuf))(func(c echo.Context) error {
		panic("fare table corrupted")
	})

	assert.NotPanics(t, func() { _ = handler(c) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body["code"])
	assert.Equal(t, "An unexpected error occurred", body["message"])
}

func TestRecover_LogsPanicWithStackTrace(t *testing.T) {
	var logBuf bytes.Buffer
	c, _ := newContext(http.MethodGet, "/api/v1/deals")
	c.Set(requestIDKey, "stack-test-id")

	handler := Recover(zerolog.New(&logBuf))(func(c echo.Context) error {
		panic("stack trace test panic")
	})
	_ = handler(c)

	entry := findLogEntry(t, &logBuf, "Panic recovered")
	require.NotNil(t, entry)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "stack-test-id", entry["request_id"])
	assert.Equal(t, "stack trace test panic", entry["panic"])
	stack, ok := entry["stack"].(string)
	require.True(t, ok)
	assert.Contains(t, stack, "goroutine")
}

func TestRecover_HandlesRuntimeErrorPanic(t *testing.T) {
	var logBuf bytes.Buffer
	c, rec := newContext(http.MethodGet, "/api/v1/deals")

	handler := Recover(zerolog.New(&logBuf))(func(c echo.Context) error {
		var fares []float64
		_ = fares[3]
		return nil
	})

	assert.NotPanics(t, func() { _ = handler(c) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	entry := findLogEntry(t, &logBuf, "Panic recovered")
	require.NotNil(t, entry)
	assert.Contains(t, entry["panic"], "index out of range")
}

func TestRecover_PassesThroughNormalRequests(t *testing.T) {
	var logBuf bytes.Buffer
	c, rec := newContext(http.MethodGet, "/health")

	handler := Recover(zerolog.New(&logBuf))(func(c echo.Context) error {
		return c.String(http.StatusOK, "normal response")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "normal response", rec.Body.String())
	assert.Empty(t, logBuf.String())
}

func TestRecoverWithConfig_DisableStackPrint(t *testing.T) {
	var logBuf bytes.Buffer
	c, _ := newContext(http.MethodGet, "/api/v1/deals")

	handler := RecoverWithConfig(zerolog.New(&logBuf), RecoveryConfig{DisablePrintStack: true})(func(c echo.Context) error {
		panic("no stack test")
	})
	_ = handler(c)

	entry := findLogEntry(t, &logBuf, "Panic recovered")
	require.NotNil(t, entry)
	assert.NotContains(t, entry, "stack")
}

// =====================================================
// Metrics Middleware Tests
// =====================================================

func TestMetrics_RecordsRouteTemplate(t *testing.T) {
	m := &recordingHTTPMetrics{}
	e := echo.New()
	e.Use(Metrics(m))
	e.GET("/api/v1/deals", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals?from_locations=DUB", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Len(t, m.observations(), 1)
	assert.Equal(t, observation{method: "GET", route: "/api/v1/deals", status: "200"}, m.observations()[0])
}

func TestMetrics_UsesStatusFromReturnedError(t *testing.T) {
	m := &recordingHTTPMetrics{}
	e := echo.New()
	e.Use(Metrics(m))
	e.GET("/api/v1/deals", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no routes")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil))

	require.Len(t, m.observations(), 1)
	assert.Equal(t, "503", m.observations()[0].status)
}

func TestMetrics_CollapsesUnmatchedRoutes(t *testing.T) {
	m := &recordingHTTPMetrics{}
	e := echo.New()
	e.Use(Metrics(m))
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, path := range []string{"/wp-admin", "/api/v1/flights", "/random/123"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	obs := m.observations()
	require.Len(t, obs, 3)
	for _, o := range obs {
		assert.Equal(t, unmatchedRoute, o.route)
		assert.Equal(t, "404", o.status)
	}
}

// =====================================================
// Setup Helper Tests
// =====================================================

func TestSetup_AppliesAllMiddleware(t *testing.T) {
	var logBuf bytes.Buffer
	m := &recordingHTTPMetrics{}

	e := echo.New()
	Setup(e, zerolog.New(&logBuf), m)
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	entry := findLogEntry(t, &logBuf, "HTTP request")
	require.NotNil(t, entry)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), entry["request_id"])
	assert.Len(t, m.observations(), 1)
}

func TestSetup_WithoutMetrics(t *testing.T) {
	var logBuf bytes.Buffer

	e := echo.New()
	Setup(e, zerolog.New(&logBuf), nil)
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetup_RecoversPanicAndRecords500(t *testing.T) {
	var logBuf bytes.Buffer
	m := &recordingHTTPMetrics{}

	e := echo.New()
	Setup(e, zerolog.New(&logBuf), m)
	e.GET("/api/v1/deals", func(c echo.Context) error {
		panic("setup panic test")
	})

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, m.observations(), 1)
	assert.Equal(t, "500", m.observations()[0].status)

	entry := findLogEntry(t, &logBuf, "HTTP request")
	require.NotNil(t, entry)
	assert.Equal(t, "error", entry["level"])
}

func TestSetupWithConfig_AppliesCustomConfig(t *testing.T) {
	var logBuf bytes.Buffer

	e := echo.New()
	SetupWithConfig(e, zerolog.New(&logBuf), nil, RecoveryConfig{DisablePrintStack: true})
	e.GET("/panic", func(c echo.Context) error {
		panic("config panic test")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	entry := findLogEntry(t, &logBuf, "Panic recovered")
	require.NotNil(t, entry)
	assert.NotContains(t, entry, "stack")
}

func TestChain_ReturnsMiddlewareSlice(t *testing.T) {
	logger := zerolog.Nop()

	assert.Len(t, Chain(logger, nil), 3)
	assert.Len(t, Chain(logger, &recordingHTTPMetrics{}), 4)

	e := echo.New()
	api := e.Group("/api/v1", Chain(logger, nil)...)
	api.GET("/deals", func(c echo.Context) error {
		return c.String(http.StatusOK, "chain test")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}
