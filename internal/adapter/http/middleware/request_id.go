// Package middleware provides HTTP middleware for cross-cutting concerns.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	// RequestIDHeader carries the correlation id in both directions.
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"

	// maxRequestIDLength bounds client-supplied ids that end up in every log line.
	maxRequestIDLength = 64
)

// RequestID assigns each request a correlation id. A well-formed X-Request-ID
// from the client (the iOS app sends one per search) is reused; anything else
// is replaced by a fresh UUID. The id is echoed on the response and a zerolog
// logger carrying it is attached to the request context, see RequestLog.
func RequestID(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get(RequestIDHeader)
			if !validRequestID(reqID) {
				reqID = uuid.New().String()
			}

			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(RequestIDHeader, reqID)

			scoped := log.With().Str(requestIDKey, reqID).Logger()
			req := c.Request()
			c.SetRequest(req.WithContext(scoped.WithContext(req.Context())))

			return next(c)
		}
	}
}

// GetRequestID returns the id assigned by RequestID, or "" outside it.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestLog returns the request-scoped logger attached by RequestID. Outside
// the middleware it returns a disabled logger.
func RequestLog(c echo.Context) *zerolog.Logger {
	return zerolog.Ctx(c.Request().Context())
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		ch := id[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-', ch == '_', ch == '.':
		default:
			return false
		}
	}
	return true
}
