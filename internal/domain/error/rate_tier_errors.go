// Package error defines domain-specific errors for the Billing Panel application.
package error

import (
	"errors"
	"fmt"
)

// Rate tier domain errors.
var (
	// ErrRateTierNotFound is returned when a rate tier is not found.
	ErrRateTierNotFound = fmt.Errorf("rate tier %w", ErrNotFound)

	// ErrInvalidTierRange is returned when range_max is not greater than range_min.
	ErrInvalidTierRange = errors.New("range_max must be greater than range_min")

	// ErrInvalidTierRate is returned when a tier rate is not positive.
	ErrInvalidTierRate = errors.New("tier rate must be positive")

	// ErrNoMatchingTier is returned when no tier covers a usage count.
	ErrNoMatchingTier = errors.New("no rate tier covers this usage")
)

// RateTierErrorCode defines error codes for rate tier errors.
type RateTierErrorCode string

const (
	ErrCodeRateTierNotFound   RateTierErrorCode = "RTR-010001"
	ErrCodeInvalidTierRange   RateTierErrorCode = "RTR-010002"
	ErrCodeInvalidTierRate    RateTierErrorCode = "RTR-010003"
	ErrCodeNoMatchingTier     RateTierErrorCode = "RTR-010004"
	ErrCodeUnknownTierService RateTierErrorCode = "RTR-010005"
)

// RateTierError represents a rate tier error with code and message.
type RateTierError struct {
	Code    RateTierErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RateTierError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RateTierError) Unwrap() error {
	return e.Err
}

// NewRateTierError creates a new RateTierError with the given code and message.
func NewRateTierError(code RateTierErrorCode, message string, err error) *RateTierError {
	return &RateTierError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
