// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/domain/valueobject"
)

// GenerateMonthlyInvoiceInput represents the input for invoice generation.
type GenerateMonthlyInvoiceInput struct {
	CustomerID uuid.UUID
	Year       int
	Month      int
}

// GenerateMonthlyInvoiceOutput represents the output of invoice generation.
type GenerateMonthlyInvoiceOutput struct {
	Invoice *entity.Invoice
}

// GenerateMonthlyInvoiceUseCase builds the invoice of a customer for one period.
type GenerateMonthlyInvoiceUseCase struct {
	customerRepo adapter.CustomerRepository
	usageRepo    adapter.UsageRepository
	invoiceRepo  adapter.InvoiceRepository
	policy       valueobject.BillingPolicy
	clock        adapter.Clock
	metrics      adapter.BillingMetrics
}

// NewGenerateMonthlyInvoiceUseCase creates a new GenerateMonthlyInvoiceUseCase instance.
func NewGenerateMonthlyInvoiceUseCase(
	customerRepo adapter.CustomerRepository,
	usageRepo adapter.UsageRepository,
	invoiceRepo adapter.InvoiceRepository,
	policy valueobject.BillingPolicy,
	clock adapter.Clock,
	metrics adapter.BillingMetrics,
) *GenerateMonthlyInvoiceUseCase {
	return &GenerateMonthlyInvoiceUseCase{
		customerRepo: customerRepo,
		usageRepo:    usageRepo,
		invoiceRepo:  invoiceRepo,
		policy:       policy,
		clock:        clock,
		metrics:      metrics,
	}
}

// Execute performs the invoice generation.
func (uc *GenerateMonthlyInvoiceUseCase) Execute(ctx context.Context, input GenerateMonthlyInvoiceInput) (*GenerateMonthlyInvoiceOutput, error) {
	period, err := valueobject.NewPeriod(input.Year, input.Month)
	if err != nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidInvoicePeriod,
			err.Error(),
			domainerror.ErrInvalidPeriod,
		)
	}

	customer, err := findCustomer(ctx, uc.customerRepo, input.CustomerID)
	if err != nil {
		return nil, err
	}

	_, err = uc.invoiceRepo.FindByCustomerPeriod(ctx, customer.ID, period.Year, period.Month)
	switch {
	case err == nil:
		return nil, duplicateInvoiceError(period)
	case !errors.Is(err, domainerror.ErrInvoiceNotFound):
		return nil, fmt.Errorf("failed to check existing invoice: %w", err)
	}

	usage, err := uc.usageRepo.SumByCustomerPeriod(ctx, customer.ID, period.Year, period.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate usage: %w", err)
	}

	calc, err := Calculate(customer, usage, uc.policy.TaxRate)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()
	inv := &entity.Invoice{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		Year:       period.Year,
		Month:      period.Month,
		DueDate:    now.AddDate(0, 0, uc.policy.PaymentTermsDays),
		Payments:   []entity.PaymentRecord{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	calc.apply(inv, uc.policy.TaxRate, usage)

	if err := uc.invoiceRepo.Create(ctx, inv); err != nil {
		if errors.Is(err, domainerror.ErrDuplicateInvoice) {
			return nil, duplicateInvoiceError(period)
		}
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	uc.metrics.InvoiceGenerated()
	slog.Info("Invoice generated",
		"invoice_id", inv.ID,
		"customer_id", customer.ID,
		"period", inv.Period(),
		"total", inv.Total.StringFixed(2),
	)

	return &GenerateMonthlyInvoiceOutput{Invoice: inv}, nil
}

func duplicateInvoiceError(period valueobject.Period) error {
	return domainerror.NewInvoiceError(
		domainerror.ErrCodeDuplicateInvoice,
		fmt.Sprintf("invoice already exists for %s", period),
		domainerror.ErrDuplicateInvoice,
	)
}
