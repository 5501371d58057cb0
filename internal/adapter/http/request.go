// Package http provides the HTTP handler layer for the deal search API.
// It handles query parsing, validation, response formatting, and error mapping.
package http

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wandrly/wandrly-api/internal/domain"
)

// Query parameter names accepted by GET /api/v1/deals.
const (
	ParamFromLocations = "from_locations"
	ParamFromLocation  = "from_location"
	ParamDurations     = "durations"
	ParamHorizonDays   = "horizon_days"
	ParamMaxPrice      = "max_price"
)

// DefaultOrigin is searched when the caller names no origin.
const DefaultOrigin = "DUB"

// RequestDefaults fills parameters the caller omitted and bounds the ones they sent.
type RequestDefaults struct {
	// Origins are searched when no from_locations are given
	Origins []string

	Durations   []int
	HorizonDays int
	MaxPrice    float64

	MaxHorizonDays  int
	MaxDurationDays int
	MaxOrigins      int
}

// DefaultRequestDefaults mirrors the service's out-of-the-box configuration.
func DefaultRequestDefaults() RequestDefaults {
	return RequestDefaults{
		Origins:         []string{DefaultOrigin},
		Durations:       []int{5, 7},
		HorizonDays:     60,
		MaxPrice:        150,
		MaxHorizonDays:  365,
		MaxDurationDays: 60,
		MaxOrigins:      10,
	}
}

// DealSearchRequest holds the raw query parameters of a deal search.
type DealSearchRequest struct {
	// FromLocations are origin airport codes, repeated or comma-separated
	FromLocations []string

	// FromLocation is the legacy single-origin parameter
	FromLocation string

	// Durations is a comma-separated list of trip lengths in days, e.g. "5,7"
	Durations string

	HorizonDays int
	MaxPrice    float64

	origins      []string
	durationDays []int
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error. Only the first error per field is kept.
func (v *ValidationErrors) Add(field, message string) {
	for _, e := range v.Errors {
		if e.Field == field {
			return
		}
	}
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// BindDealSearchRequest reads the deal search query parameters and validates them.
// The returned error is a *ValidationErrors when any parameter is rejected.
func BindDealSearchRequest(c echo.Context, defaults RequestDefaults) (*DealSearchRequest, error) {
	req := &DealSearchRequest{
		HorizonDays: defaults.HorizonDays,
		MaxPrice:    defaults.MaxPrice,
	}
	errs := &ValidationErrors{}

	binder := echo.QueryParamsBinder(c).
		FailFast(false).
		Strings(ParamFromLocations, &req.FromLocations).
		String(ParamFromLocation, &req.FromLocation).
		String(ParamDurations, &req.Durations).
		Int(ParamHorizonDays, &req.HorizonDays).
		Float64(ParamMaxPrice, &req.MaxPrice)

	for _, err := range binder.BindErrors() {
		var bindErr *echo.BindingError
		if errors.As(err, &bindErr) {
			errs.Add(bindErr.Field, fmt.Sprintf("%s must be a number", bindErr.Field))
		}
	}

	if err := req.Validate(defaults); err != nil {
		var fieldErrs *ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		for _, e := range fieldErrs.Errors {
			errs.Add(e.Field, e.Message)
		}
	}
	if errs.HasErrors() {
		return nil, errs
	}
	return req, nil
}

// Validate checks the request against the given defaults and limits.
func (r *DealSearchRequest) Validate(defaults RequestDefaults) error {
	errs := &ValidationErrors{}
	r.validate(defaults, errs)
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Origins returns the normalized origin codes. Valid after Validate.
func (r *DealSearchRequest) Origins() []string {
	return r.origins
}

// DurationDays returns the parsed trip durations. Valid after Validate.
func (r *DealSearchRequest) DurationDays() []int {
	return r.durationDays
}

func (r *DealSearchRequest) validate(defaults RequestDefaults, errs *ValidationErrors) {
	r.validateOrigins(defaults, errs)
	r.validateDurations(defaults, errs)
	r.validateHorizon(defaults, errs)
	r.validateMaxPrice(errs)
}

func (r *DealSearchRequest) validateOrigins(defaults RequestDefaults, errs *ValidationErrors) {
	raw := make([]string, 0, len(r.FromLocations)+1)
	for _, v := range r.FromLocations {
		raw = append(raw, strings.Split(v, ",")...)
	}
	if r.FromLocation != "" {
		raw = append(raw, r.FromLocation)
	}

	seen := make(map[string]struct{}, len(raw))
	origins := make([]string, 0, len(raw))
	for _, v := range raw {
		code := strings.ToUpper(strings.TrimSpace(v))
		if code == "" {
			continue
		}
		if !domain.IsAirportCode(code) {
			errs.Add(ParamFromLocations, fmt.Sprintf("%q is not a valid 3-letter IATA airport code", v))
			return
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		origins = append(origins, code)
	}

	if len(origins) == 0 {
		origins = append(origins, defaults.Origins...)
	}
	if len(origins) == 0 {
		errs.Add(ParamFromLocations, "at least one origin is required")
		return
	}
	if defaults.MaxOrigins > 0 && len(origins) > defaults.MaxOrigins {
		errs.Add(ParamFromLocations, fmt.Sprintf("at most %d origins may be searched at once", defaults.MaxOrigins))
		return
	}
	r.origins = origins
}

func (r *DealSearchRequest) validateDurations(defaults RequestDefaults, errs *ValidationErrors) {
	if strings.TrimSpace(r.Durations) == "" {
		r.durationDays = append([]int(nil), defaults.Durations...)
		if len(r.durationDays) == 0 {
			errs.Add(ParamDurations, "at least one duration is required")
		}
		return
	}

	parts := strings.Split(r.Durations, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			errs.Add(ParamDurations, "durations must be a comma-separated list of non-negative integers")
			return
		}
		if defaults.MaxDurationDays > 0 && n > defaults.MaxDurationDays {
			errs.Add(ParamDurations, fmt.Sprintf("durations must not exceed %d days", defaults.MaxDurationDays))
			return
		}
		days = append(days, n)
	}
	r.durationDays = days
}

func (r *DealSearchRequest) validateHorizon(defaults RequestDefaults, errs *ValidationErrors) {
	if r.HorizonDays < 1 {
		errs.Add(ParamHorizonDays, "horizon_days must be at least 1")
		return
	}
	if defaults.MaxHorizonDays > 0 && r.HorizonDays > defaults.MaxHorizonDays {
		errs.Add(ParamHorizonDays, fmt.Sprintf("horizon_days must not exceed %d", defaults.MaxHorizonDays))
	}
}

func (r *DealSearchRequest) validateMaxPrice(errs *ValidationErrors) {
	if math.IsNaN(r.MaxPrice) || math.IsInf(r.MaxPrice, 0) {
		errs.Add(ParamMaxPrice, "max_price must be a finite number")
		return
	}
	if r.MaxPrice < 0 {
		errs.Add(ParamMaxPrice, "max_price must not be negative")
	}
}
