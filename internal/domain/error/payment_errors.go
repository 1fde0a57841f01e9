// Package error defines domain-specific errors for the Billing Panel application.
package error

import "errors"

// Payment domain errors.
var (
	// ErrInvalidAmount is returned when a payment amount is zero or negative.
	ErrInvalidAmount = errors.New("payment amount must be positive")

	// ErrOverpayment is returned when a payment exceeds the outstanding balance under the reject policy.
	ErrOverpayment = errors.New("payment exceeds outstanding balance")

	// ErrInvoiceAlreadyPaid is returned when paying an invoice that is already settled.
	ErrInvoiceAlreadyPaid = errors.New("invoice already paid")

	// ErrInvalidWebhookSignature is returned when a provider webhook fails verification.
	ErrInvalidWebhookSignature = errors.New("invalid webhook signature")
)

// PaymentErrorCode defines error codes for payment errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type PaymentErrorCode string

const (
	// Ledger errors (01XXXX)
	ErrCodeInvalidAmount      PaymentErrorCode = "PAY-010001"
	ErrCodeOverpayment        PaymentErrorCode = "PAY-010002"
	ErrCodeInvoiceAlreadyPaid PaymentErrorCode = "PAY-010003"
	ErrCodePaymentInvoice     PaymentErrorCode = "PAY-010004"

	// Provider errors (02XXXX)
	ErrCodeInvalidWebhookSignature PaymentErrorCode = "PAY-020001"
	ErrCodeInvalidWebhookPayload   PaymentErrorCode = "PAY-020002"
)

// PaymentError represents a payment error with code and message.
type PaymentError struct {
	Code    PaymentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
