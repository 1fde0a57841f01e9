// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/domain/valueobject"
)

// RegenerateInvoiceInput represents the input for invoice regeneration.
type RegenerateInvoiceInput struct {
	InvoiceID uuid.UUID
}

// RegenerateInvoiceOutput represents the output of invoice regeneration.
type RegenerateInvoiceOutput struct {
	Invoice *entity.Invoice
}

// RegenerateInvoiceUseCase recomputes an unpaid invoice from current usage and rates.
type RegenerateInvoiceUseCase struct {
	customerRepo adapter.CustomerRepository
	usageRepo    adapter.UsageRepository
	invoiceRepo  adapter.InvoiceRepository
	policy       valueobject.BillingPolicy
	clock        adapter.Clock
}

// NewRegenerateInvoiceUseCase creates a new RegenerateInvoiceUseCase instance.
func NewRegenerateInvoiceUseCase(
	customerRepo adapter.CustomerRepository,
	usageRepo adapter.UsageRepository,
	invoiceRepo adapter.InvoiceRepository,
	policy valueobject.BillingPolicy,
	clock adapter.Clock,
) *RegenerateInvoiceUseCase {
	return &RegenerateInvoiceUseCase{
		customerRepo: customerRepo,
		usageRepo:    usageRepo,
		invoiceRepo:  invoiceRepo,
		policy:       policy,
		clock:        clock,
	}
}

// Execute performs the invoice regeneration.
func (uc *RegenerateInvoiceUseCase) Execute(ctx context.Context, input RegenerateInvoiceInput) (*RegenerateInvoiceOutput, error) {
	inv, err := findInvoice(ctx, uc.invoiceRepo, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	// Payments were made against the old totals; recomputing would rewrite history.
	if !inv.PaidAmount.IsZero() {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceHasPayments,
			"invoice with recorded payments cannot be regenerated",
			domainerror.ErrInvoiceHasPayments,
		)
	}

	customer, err := findCustomer(ctx, uc.customerRepo, inv.CustomerID)
	if err != nil {
		return nil, err
	}

	usage, err := uc.usageRepo.SumByCustomerPeriod(ctx, inv.CustomerID, inv.Year, inv.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate usage: %w", err)
	}

	calc, err := Calculate(customer, usage, uc.policy.TaxRate)
	if err != nil {
		return nil, err
	}

	previousTotal := inv.Total
	now := uc.clock.Now().UTC()
	calc.apply(inv, uc.policy.TaxRate, usage)
	inv.RegeneratedAt = &now
	inv.UpdatedAt = now

	if err := uc.invoiceRepo.UpdateCalculation(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	slog.Info("Invoice regenerated",
		"invoice_id", inv.ID,
		"previous_total", previousTotal.StringFixed(2),
		"total", inv.Total.StringFixed(2),
	)

	return &RegenerateInvoiceOutput{Invoice: inv}, nil
}
