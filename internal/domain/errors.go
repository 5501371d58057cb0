package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the deal search domain.
var (
	// ErrInvalidRequest indicates the search criteria failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrReferenceDataUnavailable indicates the route graph or airport directory
	// could not be loaded, so no search can run.
	ErrReferenceDataUnavailable = errors.New("reference data unavailable")

	// ErrProviderTimeout indicates an upstream call exceeded its deadline.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderUnavailable indicates an upstream answered with a non-success status.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMalformedPayload indicates an upstream payload could not be decoded.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrSnapshotNotFound indicates no reference-data snapshot has been written yet.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// ProviderError wraps a failure of an upstream data source.
type ProviderError struct {
	// Provider is the upstream name (e.g. "ryanair")
	Provider string

	// Operation is the upstream call that failed (e.g. "monthly_fares", "routes")
	Operation string

	// Err is the underlying cause
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Operation, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a ProviderError.
func NewProviderError(provider, operation string, err error) *ProviderError {
	return &ProviderError{
		Provider:  provider,
		Operation: operation,
		Err:       err,
	}
}

// NewProviderTimeoutError creates a ProviderError wrapping ErrProviderTimeout.
func NewProviderTimeoutError(provider, operation string) *ProviderError {
	return NewProviderError(provider, operation, ErrProviderTimeout)
}

// NewProviderStatusError creates a ProviderError for an unexpected HTTP status.
func NewProviderStatusError(provider, operation string, status int) *ProviderError {
	return NewProviderError(provider, operation, fmt.Errorf("%w: status %d", ErrProviderUnavailable, status))
}

// WrapInvalidRequest formats a message and wraps it with ErrInvalidRequest.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsInvalidRequest reports whether err is a validation failure.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsReferenceDataUnavailable reports whether err means the search could not proceed.
func IsReferenceDataUnavailable(err error) bool {
	return errors.Is(err, ErrReferenceDataUnavailable)
}

// IsProviderTimeout reports whether err is an upstream timeout.
func IsProviderTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}
