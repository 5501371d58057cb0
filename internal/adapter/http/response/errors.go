package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// BadRequest writes a 400 Bad Request response with the given error message.
func BadRequest(c echo.Context, message string) error {
	return Fail(c, http.StatusBadRequest, CodeInvalidRequest, message)
}

// ValidationError writes a 400 Bad Request response with validation error details.
func ValidationError(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusBadRequest, &ErrorDetail{
		Code:    CodeValidationError,
		Message: MsgValidationFailed,
		Details: details,
	})
}

// ValidationErrorWithMessage writes a 400 Bad Request response with a custom message.
func ValidationErrorWithMessage(c echo.Context, message string) error {
	return Fail(c, http.StatusBadRequest, CodeValidationError, message)
}

// ReferenceDataUnavailable writes a 503 when routes or airports cannot be loaded.
func ReferenceDataUnavailable(c echo.Context) error {
	return Fail(c, http.StatusServiceUnavailable, CodeReferenceDataUnavailable, MsgReferenceDataUnavailable)
}

// ServiceUnavailable writes a 503 Service Unavailable response.
func ServiceUnavailable(c echo.Context) error {
	return Fail(c, http.StatusServiceUnavailable, CodeServiceUnavailable, MsgServiceUnavailable)
}

// GatewayTimeout writes a 504 Gateway Timeout response.
func GatewayTimeout(c echo.Context) error {
	return Fail(c, http.StatusGatewayTimeout, CodeTimeout, MsgTimeout)
}

// RequestCancelled writes a 504 Gateway Timeout response for cancelled requests.
func RequestCancelled(c echo.Context) error {
	return Fail(c, http.StatusGatewayTimeout, CodeTimeout, MsgRequestCancelled)
}

// NotFound writes a 404 Not Found response.
func NotFound(c echo.Context) error {
	return Fail(c, http.StatusNotFound, CodeNotFound, MsgNotFound)
}

// InternalServerError writes a 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return Fail(c, http.StatusInternalServerError, CodeInternalError, MsgInternalError)
}
