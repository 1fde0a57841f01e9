// Package reminder contains overdue-invoice follow-up use cases.
package reminder

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	"github.com/billing-panel/backend/internal/domain/valueobject"
)

// CheckPendingInvoicesUseCase loads open invoices and classifies them.
type CheckPendingInvoicesUseCase struct {
	invoiceRepo  adapter.InvoiceRepository
	customerRepo adapter.CustomerRepository
	thresholds   valueobject.ReminderThresholds
	clock        adapter.Clock
	metrics      adapter.BillingMetrics
}

// NewCheckPendingInvoicesUseCase creates a new CheckPendingInvoicesUseCase instance.
func NewCheckPendingInvoicesUseCase(
	invoiceRepo adapter.InvoiceRepository,
	customerRepo adapter.CustomerRepository,
	thresholds valueobject.ReminderThresholds,
	clock adapter.Clock,
	metrics adapter.BillingMetrics,
) *CheckPendingInvoicesUseCase {
	return &CheckPendingInvoicesUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		thresholds:   thresholds,
		clock:        clock,
		metrics:      metrics,
	}
}

// Execute runs the classification at the current clock time.
func (uc *CheckPendingInvoicesUseCase) Execute(ctx context.Context) (*Classification, error) {
	invoices, err := uc.invoiceRepo.List(ctx, adapter.InvoiceFilter{
		Statuses: []entity.InvoiceStatus{entity.InvoiceStatusPending, entity.InvoiceStatusPartiallyPaid},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list open invoices: %w", err)
	}

	customers, err := uc.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	byID := lo.KeyBy(customers, func(c *entity.Customer) uuid.UUID { return c.ID })

	result := Classify(uc.clock.Now().UTC(), invoices, byID, uc.thresholds)

	counts := lo.CountValuesBy(result.Actions, func(a entity.ReminderAction) entity.ReminderActionType {
		return a.RecommendedAction
	})
	for action, n := range counts {
		uc.metrics.ReminderActionsFound(action, n)
	}

	return &result, nil
}
