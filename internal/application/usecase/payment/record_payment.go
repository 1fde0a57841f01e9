// Package payment contains payment ledger use cases.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/domain/valueobject"
)

const reactivationReason = "payment received"

// RecordPaymentInput represents the input for recording a payment.
type RecordPaymentInput struct {
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
	Method    entity.PaymentMethod
	Reference string
	Notes     string
	// SettleRemaining ignores Amount and pays whatever is outstanding when the lock is taken.
	SettleRemaining bool
}

// RecordPaymentOutput represents the output of recording a payment.
type RecordPaymentOutput struct {
	Invoice     *entity.Invoice
	Customer    *entity.Customer
	Payment     *entity.PaymentRecord
	Credited    decimal.Decimal
	Reactivated bool
	// Duplicate is set when the reference was already recorded and nothing changed.
	Duplicate bool
}

// RecordPaymentUseCase applies a payment to an invoice.
type RecordPaymentUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	policy      valueobject.BillingPolicy
	clock       adapter.Clock
	metrics     adapter.BillingMetrics
}

// NewRecordPaymentUseCase creates a new RecordPaymentUseCase instance.
func NewRecordPaymentUseCase(
	invoiceRepo adapter.InvoiceRepository,
	policy valueobject.BillingPolicy,
	clock adapter.Clock,
	metrics adapter.BillingMetrics,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		invoiceRepo: invoiceRepo,
		policy:      policy,
		clock:       clock,
		metrics:     metrics,
	}
}

// Execute records the payment under the invoice row lock.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, input RecordPaymentInput) (*RecordPaymentOutput, error) {
	if !input.SettleRemaining && !input.Amount.IsPositive() {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidAmount,
			"payment amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}

	out := &RecordPaymentOutput{Credited: decimal.Zero}
	now := uc.clock.Now().UTC()

	inv, customer, err := uc.invoiceRepo.ApplyPayment(ctx, input.InvoiceID, func(inv *entity.Invoice, customer *entity.Customer) (*entity.PaymentRecord, error) {
		if inv.HasPaymentReference(input.Reference) {
			out.Duplicate = true
			return nil, nil
		}
		if inv.IsPaid() {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodeInvoiceAlreadyPaid,
				"invoice is already paid",
				domainerror.ErrInvoiceAlreadyPaid,
			)
		}

		amount := input.Amount
		if input.SettleRemaining {
			amount = inv.Outstanding()
		}

		applied, excess := valueobject.SplitPayment(amount, inv.Outstanding())
		if excess.IsPositive() {
			switch uc.policy.OverpaymentPolicy {
			case valueobject.OverpaymentCredit:
				customer.Balance = customer.Balance.Add(excess)
				customer.UpdatedAt = now
				out.Credited = excess
			case valueobject.OverpaymentClamp:
			default:
				return nil, domainerror.NewPaymentError(
					domainerror.ErrCodeOverpayment,
					fmt.Sprintf("payment of %s exceeds outstanding %s", amount.StringFixed(2), inv.Outstanding().StringFixed(2)),
					domainerror.ErrOverpayment,
				)
			}
		}

		record := entity.NewPaymentRecord(inv.ID, applied, input.Method, input.Reference, input.Notes, now)
		inv.ApplyPayment(record)

		if inv.IsPaid() && customer.AccountStatus == entity.AccountStatusSuspended {
			if err := customer.Reactivate(reactivationReason, now); err != nil {
				return nil, err
			}
			out.Reactivated = true
		}

		out.Payment = &record
		return &record, nil
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodePaymentInvoice,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		var paymentErr *domainerror.PaymentError
		if errors.As(err, &paymentErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	out.Invoice = inv
	out.Customer = customer

	if out.Duplicate {
		slog.Info("Duplicate payment reference ignored",
			"invoice_id", inv.ID,
			"reference", input.Reference,
		)
		return out, nil
	}

	uc.metrics.PaymentRecorded(out.Payment.Method, out.Payment.Amount)
	if out.Reactivated {
		uc.metrics.AccountStatusChanged(entity.AccountStatusActive)
	}

	slog.Info("Payment recorded",
		"invoice_id", inv.ID,
		"amount", out.Payment.Amount.StringFixed(2),
		"method", out.Payment.Method,
		"status", inv.Status,
		"credited", out.Credited.StringFixed(2),
		"reactivated", out.Reactivated,
	)

	return out, nil
}
