// Package response provides standardized HTTP response builders for the deal search API.
// Every error leaves the service as an ErrorDetail so clients can switch on Code.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorDetail contains structured error information.
type ErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains field-specific error details (for validation errors)
	Details map[string]string `json:"details,omitempty"`
}

// Error codes used in API responses.
const (
	CodeInvalidRequest           = "invalid_request"
	CodeValidationError          = "validation_error"
	CodeReferenceDataUnavailable = "reference_data_unavailable"
	CodeServiceUnavailable       = "service_unavailable"
	CodeTimeout                  = "timeout"
	CodeNotFound                 = "not_found"
	CodeInternalError            = "internal_error"
)

// Error messages used in API responses.
const (
	MsgValidationFailed         = "Request validation failed"
	MsgReferenceDataUnavailable = "Route or airport reference data is unavailable"
	MsgServiceUnavailable       = "Fare provider is currently unavailable"
	MsgTimeout                  = "Deal search timed out"
	MsgRequestCancelled         = "Request was cancelled"
	MsgNotFound                 = "Resource not found"
	MsgInternalError            = "An unexpected error occurred"
)

// OK writes a 200 OK response with the given data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// Fail writes an ErrorDetail with an arbitrary status code.
func Fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, &ErrorDetail{
		Code:    code,
		Message: message,
	})
}
