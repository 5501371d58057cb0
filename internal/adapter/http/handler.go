package http

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wandrly/wandrly-api/internal/adapter/http/middleware"
	"github.com/wandrly/wandrly-api/internal/adapter/http/response"
	"github.com/wandrly/wandrly-api/internal/domain"
	"github.com/wandrly/wandrly-api/internal/usecase"
)

// DealHandler handles HTTP requests for deal-related endpoints.
type DealHandler struct {
	useCase       usecase.DealSearchUseCase
	defaults      RequestDefaults
	searchTimeout time.Duration
}

// NewDealHandler creates a new DealHandler. A zero searchTimeout leaves the
// request context untouched.
func NewDealHandler(uc usecase.DealSearchUseCase, defaults RequestDefaults, searchTimeout time.Duration) *DealHandler {
	return &DealHandler{
		useCase:       uc,
		defaults:      defaults,
		searchTimeout: searchTimeout,
	}
}

// SearchDeals handles GET /api/v1/deals
//
// @Summary Search round-trip deals
// @Description Enumerates every destination reachable from the origins and every date pair within the horizon, returning round trips whose combined fare is within max_price.
// @Tags deals
// @Produce json
// @Param from_locations query []string false "Origin airport codes, repeated or comma-separated (defaults to DUB)" collectionFormat(multi)
// @Param from_location query string false "Single origin airport code (legacy)"
// @Param durations query string false "Comma-separated trip lengths in days" default(5,7)
// @Param horizon_days query int false "Days ahead to consider departures" default(60)
// @Param max_price query number false "Maximum combined fare" default(150)
// @Success 200 {object} DealSearchResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "Reference data unavailable"
// @Failure 504 {object} response.ErrorDetail "Search timed out"
// @Router /api/v1/deals [get]
func (h *DealHandler) SearchDeals(c echo.Context) error {
	req, err := BindDealSearchRequest(c, h.defaults)
	if err != nil {
		return h.handleValidationError(c, err)
	}

	ctx := c.Request().Context()
	if h.searchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.searchTimeout)
		defer cancel()
	}

	result, err := h.useCase.Search(ctx, ToDomainCriteria(req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, ToDealSearchResponseDTO(result))
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *DealHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *DealHandler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrReferenceDataUnavailable):
		return response.ReferenceDataUnavailable(c)
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	case errors.Is(err, domain.ErrInvalidRequest):
		return response.ValidationErrorWithMessage(c, err.Error())
	default:
		middleware.RequestLog(c).Error().
			Err(err).
			Str("route", c.Path()).
			Str("query", c.QueryString()).
			Msg("deal search failed")
		return response.InternalServerError(c)
	}
}

// Health handles GET /health
func (h *DealHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// Root handles GET /
func (h *DealHandler) Root(c echo.Context) error {
	return response.Welcome(c)
}
