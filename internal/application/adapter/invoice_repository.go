// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// InvoiceFilter narrows invoice listings. Zero values mean "any".
type InvoiceFilter struct {
	CustomerID *uuid.UUID
	Statuses   []entity.InvoiceStatus
	Year       int
	Month      int
}

// PaymentMutation mutates a locked invoice and its customer.
// Returning a nil payment leaves both rows untouched.
type PaymentMutation func(invoice *entity.Invoice, customer *entity.Customer) (*entity.PaymentRecord, error)

// InvoiceRepository defines the interface for invoice persistence operations.
type InvoiceRepository interface {
	// Create stores a new invoice. A second invoice for the same customer and
	// period yields domainerror.ErrDuplicateInvoice.
	Create(ctx context.Context, invoice *entity.Invoice) error

	// FindByID retrieves an invoice with its payment history.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)

	// FindByCustomerPeriod retrieves the invoice of a customer for a period.
	FindByCustomerPeriod(ctx context.Context, customerID uuid.UUID, year, month int) (*entity.Invoice, error)

	// FindByPaymentLinkID retrieves the invoice a payment link was created for.
	FindByPaymentLinkID(ctx context.Context, linkID string) (*entity.Invoice, error)

	// List retrieves invoices matching the filter, newest period first.
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)

	// UpdateCalculation replaces line items, totals, ROI and usage snapshot of an unpaid invoice.
	UpdateCalculation(ctx context.Context, invoice *entity.Invoice) error

	// SetPaymentLink stores the payment link created for the invoice.
	SetPaymentLink(ctx context.Context, id uuid.UUID, linkID, url string, at time.Time) error

	// MarkPaymentEmailSent flags the invoice after the payment email was accepted by the provider.
	MarkPaymentEmailSent(ctx context.Context, id uuid.UUID, messageID string, at time.Time) error

	// ApplyPayment locks the invoice and its customer, runs mutate and persists
	// the payment record, invoice totals and customer state in one transaction.
	ApplyPayment(ctx context.Context, invoiceID uuid.UUID, mutate PaymentMutation) (*entity.Invoice, *entity.Customer, error)
}
