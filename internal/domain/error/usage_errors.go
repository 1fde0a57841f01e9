// Package error defines domain-specific errors for the Billing Panel application.
package error

import "errors"

// Usage domain errors.
var (
	// ErrUnknownService is returned when a service key is not part of the service catalog.
	ErrUnknownService = errors.New("unknown service")

	// ErrInvalidUsageCount is returned when a usage count is zero or negative.
	ErrInvalidUsageCount = errors.New("usage count must be positive")
)

// UsageErrorCode defines error codes for usage errors.
type UsageErrorCode string

const (
	ErrCodeUnknownService     UsageErrorCode = "USG-010001"
	ErrCodeInvalidUsageCount  UsageErrorCode = "USG-010002"
	ErrCodeInvalidUsagePeriod UsageErrorCode = "USG-010003"
	ErrCodeUsageCustomer      UsageErrorCode = "USG-010004"
)

// UsageError represents a usage error with code and message.
type UsageError struct {
	Code    UsageErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewUsageError creates a new UsageError with the given code and message.
func NewUsageError(code UsageErrorCode, message string, err error) *UsageError {
	return &UsageError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
