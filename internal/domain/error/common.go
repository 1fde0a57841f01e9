// Package error defines domain-specific errors for the Billing Panel application.
package error

import "errors"

// Shared domain errors wrapped by the area-specific sentinels below.
var (
	// ErrNotFound is the root of every "unknown identifier" error.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPeriod is returned when a (year, month) pair is out of range.
	ErrInvalidPeriod = errors.New("invalid billing period")

	// ErrForbidden is returned when the caller role may not perform an operation.
	ErrForbidden = errors.New("insufficient permissions")
)
