// Package error defines domain-specific errors for the Billing Panel application.
package error

import (
	"errors"
	"fmt"
)

// Customer domain errors.
var (
	// ErrCustomerNotFound is returned when a customer is not found.
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)

	// ErrInvalidCustomerName is returned when the customer name is empty.
	ErrInvalidCustomerName = errors.New("customer name is required")

	// ErrInvalidCustomerEmail is returned when the customer email is malformed.
	ErrInvalidCustomerEmail = errors.New("invalid customer email")

	// ErrInvalidRate is returned when a rate card entry is negative.
	ErrInvalidRate = errors.New("rate must not be negative")

	// ErrUnknownBundle is returned when a bundle key is not part of the catalog.
	ErrUnknownBundle = errors.New("unknown bundle")

	// ErrInvalidAccountTransition is returned when an account status change is not allowed.
	ErrInvalidAccountTransition = errors.New("invalid account status transition")

	// ErrMissingStatusReason is returned when suspend or shutdown is requested without a reason.
	ErrMissingStatusReason = errors.New("a reason is required for this status change")

	// ErrNoCustomerChanges is returned when an update request carries no fields.
	ErrNoCustomerChanges = errors.New("no data to update")
)

// CustomerErrorCode defines error codes for customer errors.
// Format: CUS-XXYYYY where XX is category and YYYY is specific error.
type CustomerErrorCode string

const (
	// Lookup and validation errors (01XXXX)
	ErrCodeCustomerNotFound     CustomerErrorCode = "CUS-010001"
	ErrCodeInvalidCustomerName  CustomerErrorCode = "CUS-010002"
	ErrCodeInvalidCustomerEmail CustomerErrorCode = "CUS-010003"
	ErrCodeInvalidRate          CustomerErrorCode = "CUS-010004"
	ErrCodeUnknownBundle        CustomerErrorCode = "CUS-010005"
	ErrCodeUnknownRateService   CustomerErrorCode = "CUS-010006"
	ErrCodeNoCustomerChanges    CustomerErrorCode = "CUS-010007"

	// Account lifecycle errors (02XXXX)
	ErrCodeInvalidAccountTransition CustomerErrorCode = "CUS-020001"
	ErrCodeMissingStatusReason      CustomerErrorCode = "CUS-020002"
)

// CustomerError represents a customer error with code and message.
type CustomerError struct {
	Code    CustomerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CustomerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CustomerError) Unwrap() error {
	return e.Err
}

// NewCustomerError creates a new CustomerError with the given code and message.
func NewCustomerError(code CustomerErrorCode, message string, err error) *CustomerError {
	return &CustomerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
