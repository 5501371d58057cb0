package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Setup registers all middleware on the Echo instance in the correct order:
//  1. RequestID, so every later log line carries the id
//  2. RequestLogger
//  3. Metrics, when m is non-nil
//  4. Recover, innermost so panics become 500s the outer layers can see
//
// This function should be called before registering routes.
func Setup(e *echo.Echo, log zerolog.Logger, m HTTPMetrics) {
	SetupWithConfig(e, log, m, DefaultRecoveryConfig())
}

// SetupWithConfig registers middleware with custom recovery configuration.
func SetupWithConfig(e *echo.Echo, log zerolog.Logger, m HTTPMetrics, recoveryConfig RecoveryConfig) {
	e.Use(chain(log, m, recoveryConfig)...)
}

// Chain returns all middleware as a slice for use with route groups.
func Chain(log zerolog.Logger, m HTTPMetrics) []echo.MiddlewareFunc {
	return chain(log, m, DefaultRecoveryConfig())
}

func chain(log zerolog.Logger, m HTTPMetrics, recoveryConfig RecoveryConfig) []echo.MiddlewareFunc {
	mws := []echo.MiddlewareFunc{
		RequestID(log),
		RequestLogger(log),
	}
	if m != nil {
		mws = append(mws, Metrics(m))
	}
	return append(mws, RecoverWithConfig(log, recoveryConfig))
}
