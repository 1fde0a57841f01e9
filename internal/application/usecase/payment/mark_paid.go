// Package payment contains payment ledger use cases.
package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// MarkPaidInput represents the input for settling an invoice by hand.
type MarkPaidInput struct {
	InvoiceID uuid.UUID
	PaymentID string
	Notes     string
}

// MarkPaidUseCase settles the remaining balance of an invoice.
type MarkPaidUseCase struct {
	recorder *RecordPaymentUseCase
}

// NewMarkPaidUseCase creates a new MarkPaidUseCase instance.
func NewMarkPaidUseCase(recorder *RecordPaymentUseCase) *MarkPaidUseCase {
	return &MarkPaidUseCase{recorder: recorder}
}

// Execute records a payment of the outstanding amount.
// A gateway payment ID marks the payment as razorpay and doubles as its reference.
func (uc *MarkPaidUseCase) Execute(ctx context.Context, input MarkPaidInput) (*RecordPaymentOutput, error) {
	method := entity.PaymentMethodManual
	if input.PaymentID != "" {
		method = entity.PaymentMethodRazorpay
	}

	return uc.recorder.Execute(ctx, RecordPaymentInput{
		InvoiceID:       input.InvoiceID,
		Method:          method,
		Reference:       input.PaymentID,
		Notes:           input.Notes,
		SettleRemaining: true,
	})
}
