package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all deal search API routes.
func RegisterRoutes(e *echo.Echo, h *DealHandler) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")
	api.GET("/deals", h.SearchDeals)
}

// RegisterRoutesWithMiddleware registers routes with middleware applied to the API group only.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *DealHandler, mws ...echo.MiddlewareFunc) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", mws...)
	api.GET("/deals", h.SearchDeals)
}

// RegisterMetrics exposes a Prometheus scrape handler at path.
func RegisterMetrics(e *echo.Echo, path string, handler http.Handler) {
	e.GET(path, echo.WrapHandler(handler))
}
