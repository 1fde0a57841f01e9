// Package receivable contains accounts-receivable use cases.
package receivable

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
)

// CreatePaymentLinkInput represents the input for payment link creation.
type CreatePaymentLinkInput struct {
	InvoiceID uuid.UUID
}

// CreatePaymentLinkOutput represents the output of payment link creation.
type CreatePaymentLinkOutput struct {
	Invoice *entity.Invoice
	LinkID  string
	URL     string
}

// CreatePaymentLinkUseCase creates a gateway payment link for an invoice's outstanding amount.
type CreatePaymentLinkUseCase struct {
	invoiceRepo  adapter.InvoiceRepository
	customerRepo adapter.CustomerRepository
	provider     adapter.PaymentLinkProvider
	clock        adapter.Clock
}

// NewCreatePaymentLinkUseCase creates a new CreatePaymentLinkUseCase instance.
func NewCreatePaymentLinkUseCase(
	invoiceRepo adapter.InvoiceRepository,
	customerRepo adapter.CustomerRepository,
	provider adapter.PaymentLinkProvider,
	clock adapter.Clock,
) *CreatePaymentLinkUseCase {
	return &CreatePaymentLinkUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		provider:     provider,
		clock:        clock,
	}
}

// Execute creates and stores the link.
func (uc *CreatePaymentLinkUseCase) Execute(ctx context.Context, input CreatePaymentLinkInput) (*CreatePaymentLinkOutput, error) {
	inv, customer, err := loadInvoiceAndCustomer(ctx, uc.invoiceRepo, uc.customerRepo, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	if inv.IsPaid() {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceSettled,
			"invoice is already paid",
			domainerror.ErrInvoiceAlreadyPaid,
		)
	}

	link, err := uc.provider.CreatePaymentLink(ctx, adapter.PaymentLinkInput{
		InvoiceID:     inv.ID,
		AmountPaise:   inv.Outstanding().Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		Currency:      "INR",
		Description:   fmt.Sprintf("Invoice %s for %s", inv.Period(), customer.Name),
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
	})
	if err != nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodePaymentLinkFailed,
			"failed to create payment link",
			err,
		)
	}

	now := uc.clock.Now().UTC()
	if err := uc.invoiceRepo.SetPaymentLink(ctx, inv.ID, link.ID, link.ShortURL, now); err != nil {
		return nil, fmt.Errorf("failed to store payment link: %w", err)
	}
	inv.PaymentLinkID = link.ID
	inv.PaymentLinkURL = link.ShortURL
	inv.PaymentLinkCreatedAt = &now

	slog.Info("Payment link created", "invoice_id", inv.ID, "payment_link_id", link.ID)

	return &CreatePaymentLinkOutput{
		Invoice: inv,
		LinkID:  link.ID,
		URL:     link.ShortURL,
	}, nil
}

func loadInvoiceAndCustomer(
	ctx context.Context,
	invoiceRepo adapter.InvoiceRepository,
	customerRepo adapter.CustomerRepository,
	invoiceID uuid.UUID,
) (*entity.Invoice, *entity.Customer, error) {
	inv, err := invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return nil, nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceNotFound,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		return nil, nil, fmt.Errorf("failed to find invoice: %w", err)
	}

	customer, err := customerRepo.FindByID(ctx, inv.CustomerID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCustomerNotFound) {
			return nil, nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceCustomer,
				"customer not found",
				domainerror.ErrCustomerNotFound,
			)
		}
		return nil, nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return inv, customer, nil
}
