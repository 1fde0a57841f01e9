// Package error defines domain-specific errors for the Billing Panel application.
package error

import (
	"errors"
	"fmt"
)

// Invoice domain errors.
var (
	// ErrInvoiceNotFound is returned when an invoice is not found.
	ErrInvoiceNotFound = fmt.Errorf("invoice %w", ErrNotFound)

	// ErrMissingRate is returned when usage exists for a service absent from the rate card.
	ErrMissingRate = errors.New("missing rate for service")

	// ErrDuplicateInvoice is returned when the period is already invoiced for the customer.
	ErrDuplicateInvoice = errors.New("invoice already exists for period")

	// ErrNothingToBill is returned when a period has no usage and no fixed fees.
	ErrNothingToBill = errors.New("nothing to bill for period")

	// ErrInvoiceHasPayments is returned when regenerating an invoice that already received money.
	ErrInvoiceHasPayments = errors.New("invoice already has payments")

	// ErrPaymentLinkMissing is returned when an email needs a payment link that was never created.
	ErrPaymentLinkMissing = errors.New("payment link not created yet")

	// ErrInvalidInvoiceStatus is returned when filtering by an unknown status.
	ErrInvalidInvoiceStatus = errors.New("invalid invoice status")
)

// InvoiceErrorCode defines error codes for invoice errors.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InvoiceErrorCode string

const (
	// Generation errors (01XXXX)
	ErrCodeInvoiceNotFound      InvoiceErrorCode = "INV-010001"
	ErrCodeMissingRate          InvoiceErrorCode = "INV-010002"
	ErrCodeDuplicateInvoice     InvoiceErrorCode = "INV-010003"
	ErrCodeNothingToBill        InvoiceErrorCode = "INV-010004"
	ErrCodeInvalidInvoicePeriod InvoiceErrorCode = "INV-010005"
	ErrCodeInvoiceCustomer      InvoiceErrorCode = "INV-010006"
	ErrCodeInvoiceHasPayments   InvoiceErrorCode = "INV-010007"
	ErrCodeInvalidInvoiceStatus InvoiceErrorCode = "INV-010008"

	// Collection errors (02XXXX)
	ErrCodePaymentLinkMissing InvoiceErrorCode = "INV-020001"
	ErrCodePaymentLinkFailed  InvoiceErrorCode = "INV-020002"
	ErrCodeInvoiceSettled     InvoiceErrorCode = "INV-020003"
)

// InvoiceError represents an invoice error with code and message.
type InvoiceError struct {
	Code    InvoiceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvoiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvoiceError) Unwrap() error {
	return e.Err
}

// NewInvoiceError creates a new InvoiceError with the given code and message.
func NewInvoiceError(code InvoiceErrorCode, message string, err error) *InvoiceError {
	return &InvoiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
