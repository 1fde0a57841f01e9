// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// InvoiceRenderer produces a printable document for an invoice.
type InvoiceRenderer interface {
	RenderPDF(ctx context.Context, invoice *entity.Invoice, customer *entity.Customer) ([]byte, error)
}
