// Package error defines domain-specific errors for the Billing Panel application.
package error

import "errors"

// Subscription and expense domain errors.
var (
	// ErrInvalidPlanName is returned when a subscription has no plan name.
	ErrInvalidPlanName = errors.New("plan name is required")

	// ErrInvalidMRR is returned when a subscription MRR is negative.
	ErrInvalidMRR = errors.New("mrr must not be negative")

	// ErrInvalidSubscriptionStatus is returned for an unknown subscription status.
	ErrInvalidSubscriptionStatus = errors.New("invalid subscription status")

	// ErrInvalidExpenseAmount is returned when an expense amount is not positive.
	ErrInvalidExpenseAmount = errors.New("expense amount must be positive")

	// ErrInvalidExpenseCategory is returned when an expense has no category.
	ErrInvalidExpenseCategory = errors.New("expense category is required")
)

// FinanceErrorCode defines error codes for subscription and expense errors.
// Format: FIN-XXYYYY where XX is category and YYYY is specific error.
type FinanceErrorCode string

const (
	// Subscription errors (01XXXX)
	ErrCodeInvalidPlanName           FinanceErrorCode = "FIN-010001"
	ErrCodeInvalidMRR                FinanceErrorCode = "FIN-010002"
	ErrCodeInvalidSubscriptionStatus FinanceErrorCode = "FIN-010003"
	ErrCodeSubscriptionCustomer      FinanceErrorCode = "FIN-010004"

	// Expense errors (02XXXX)
	ErrCodeInvalidExpenseAmount   FinanceErrorCode = "FIN-020001"
	ErrCodeInvalidExpenseCategory FinanceErrorCode = "FIN-020002"
)

// FinanceError represents a subscription or expense error with code and message.
type FinanceError struct {
	Code    FinanceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FinanceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FinanceError) Unwrap() error {
	return e.Err
}

// NewFinanceError creates a new FinanceError with the given code and message.
func NewFinanceError(code FinanceErrorCode, message string, err error) *FinanceError {
	return &FinanceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
