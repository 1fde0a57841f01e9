// Package error defines domain-specific errors for the Billing Panel application.
package error

import (
	"errors"
	"fmt"
)

// Email domain errors.
var (
	// ErrEmailSendFailed is returned when an email fails to be sent.
	ErrEmailSendFailed = errors.New("failed to send email")

	// ErrInvalidTemplate is returned when an unknown email template is requested.
	ErrInvalidTemplate = errors.New("invalid email template")

	// ErrTemplateRenderFailed is returned when email template rendering fails.
	ErrTemplateRenderFailed = errors.New("failed to render email template")

	// ErrMissingRecipient is returned when the customer has no email address on file.
	ErrMissingRecipient = errors.New("customer has no email address")

	// ErrPermanentEmailFailure is returned when the provider rejects an email for good.
	ErrPermanentEmailFailure = errors.New("permanent email failure")

	// ErrTemporaryEmailFailure is returned when the provider may accept the email on retry.
	ErrTemporaryEmailFailure = errors.New("temporary email failure")

	// ErrEmailJobNotFound is returned when a queued email job does not exist.
	ErrEmailJobNotFound = fmt.Errorf("email job %w", ErrNotFound)
)

// EmailErrorCode defines error codes for email errors.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Send errors (01XXXX)
	ErrCodeEmailSendFailed       EmailErrorCode = "EMAIL-010001"
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-010002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-010003"
	ErrCodeMissingRecipient      EmailErrorCode = "EMAIL-010004"
	ErrCodeEmailQueueFailed      EmailErrorCode = "EMAIL-010005"

	// Template errors (02XXXX)
	ErrCodeInvalidTemplate      EmailErrorCode = "EMAIL-020001"
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-020002"
)

// EmailError represents an email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
