// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

// GetInvoiceInput represents the input for fetching an invoice.
type GetInvoiceInput struct {
	InvoiceID uuid.UUID
}

// GetInvoiceOutput represents the output of fetching an invoice.
type GetInvoiceOutput struct {
	Invoice *entity.Invoice
}

// GetInvoiceUseCase handles fetching a single invoice.
type GetInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewGetInvoiceUseCase creates a new GetInvoiceUseCase instance.
func NewGetInvoiceUseCase(invoiceRepo adapter.InvoiceRepository) *GetInvoiceUseCase {
	return &GetInvoiceUseCase{invoiceRepo: invoiceRepo}
}

// Execute fetches the invoice.
func (uc *GetInvoiceUseCase) Execute(ctx context.Context, input GetInvoiceInput) (*GetInvoiceOutput, error) {
	inv, err := findInvoice(ctx, uc.invoiceRepo, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	return &GetInvoiceOutput{Invoice: inv}, nil
}

// ListInvoicesInput represents the input for listing invoices.
type ListInvoicesInput struct {
	CustomerID *uuid.UUID
	Status     string
	Year       int
	Month      int
}

// ListInvoicesOutput represents the output of listing invoices.
type ListInvoicesOutput struct {
	Invoices []*entity.Invoice
}

// ListInvoicesUseCase handles invoice listing with optional filters.
type ListInvoicesUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewListInvoicesUseCase creates a new ListInvoicesUseCase instance.
func NewListInvoicesUseCase(invoiceRepo adapter.InvoiceRepository) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{invoiceRepo: invoiceRepo}
}

// Execute lists invoices.
func (uc *ListInvoicesUseCase) Execute(ctx context.Context, input ListInvoicesInput) (*ListInvoicesOutput, error) {
	filter := adapter.InvoiceFilter{
		CustomerID: input.CustomerID,
		Year:       input.Year,
		Month:      input.Month,
	}

	if input.Status != "" {
		status := entity.InvoiceStatus(input.Status)
		switch status {
		case entity.InvoiceStatusPending, entity.InvoiceStatusPartiallyPaid, entity.InvoiceStatusPaid:
			filter.Statuses = []entity.InvoiceStatus{status}
		default:
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvalidInvoiceStatus,
				fmt.Sprintf("unknown invoice status %q", input.Status),
				domainerror.ErrInvalidInvoiceStatus,
			)
		}
	}

	invoices, err := uc.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return &ListInvoicesOutput{Invoices: invoices}, nil
}
