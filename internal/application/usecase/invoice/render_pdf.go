// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/adapter"
)

// RenderInvoicePDFInput represents the input for rendering an invoice document.
type RenderInvoicePDFInput struct {
	InvoiceID uuid.UUID
}

// RenderInvoicePDFOutput holds the rendered document.
type RenderInvoicePDFOutput struct {
	FileName string
	Content  []byte
}

// RenderInvoicePDFUseCase renders a printable invoice.
type RenderInvoicePDFUseCase struct {
	invoiceRepo  adapter.InvoiceRepository
	customerRepo adapter.CustomerRepository
	renderer     adapter.InvoiceRenderer
}

// NewRenderInvoicePDFUseCase creates a new RenderInvoicePDFUseCase instance.
func NewRenderInvoicePDFUseCase(
	invoiceRepo adapter.InvoiceRepository,
	customerRepo adapter.CustomerRepository,
	renderer adapter.InvoiceRenderer,
) *RenderInvoicePDFUseCase {
	return &RenderInvoicePDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		renderer:     renderer,
	}
}

// Execute renders the invoice PDF.
func (uc *RenderInvoicePDFUseCase) Execute(ctx context.Context, input RenderInvoicePDFInput) (*RenderInvoicePDFOutput, error) {
	inv, err := findInvoice(ctx, uc.invoiceRepo, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	customer, err := findCustomer(ctx, uc.customerRepo, inv.CustomerID)
	if err != nil {
		return nil, err
	}

	content, err := uc.renderer.RenderPDF(ctx, inv, customer)
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}

	return &RenderInvoicePDFOutput{
		FileName: fmt.Sprintf("invoice-%s-%s.pdf", inv.Period(), inv.ID.String()[:8]),
		Content:  content,
	}, nil
}
