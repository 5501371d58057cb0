package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// WelcomeResponse is returned from the service root.
type WelcomeResponse struct {
	Message string `json:"message"`
	Docs    string `json:"docs"`
}

// Health writes a health check response.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
	})
}

// Welcome writes the root greeting pointing at the API docs.
func Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, &WelcomeResponse{
		Message: "Welcome to Wandrly! Search round-trip deals at /api/v1/deals",
		Docs:    "/swagger/index.html",
	})
}

// SearchResults writes a 200 OK response with search results.
func SearchResults(c echo.Context, results interface{}) error {
	return c.JSON(http.StatusOK, results)
}
