package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// HTTPMetrics records one observation per served request.
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route, status string, elapsed time.Duration)
}

// unmatchedRoute labels requests that did not match a registered route, keeping
// label cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics returns middleware that reports method, route template, status and latency.
func Metrics(m HTTPMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				}
			}

			route := c.Path()
			if route == "" || (status == http.StatusNotFound && route == "/*") {
				route = unmatchedRoute
			}

			m.ObserveHTTPRequest(c.Request().Method, route, strconv.Itoa(status), time.Since(start))
			return err
		}
	}
}
