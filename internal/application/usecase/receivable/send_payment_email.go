// Package receivable contains accounts-receivable use cases.
package receivable

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

// SendPaymentEmailInput represents the input for sending a payment request.
type SendPaymentEmailInput struct {
	InvoiceID uuid.UUID
}

// SendPaymentEmailOutput represents the output of sending a payment request.
type SendPaymentEmailOutput struct {
	Invoice   *entity.Invoice
	MessageID string
	Recipient string
}

// SendPaymentEmailUseCase emails the payment link of an invoice to its customer.
type SendPaymentEmailUseCase struct {
	invoiceRepo  adapter.InvoiceRepository
	customerRepo adapter.CustomerRepository
	email        adapter.EmailService
	clock        adapter.Clock
}

// NewSendPaymentEmailUseCase creates a new SendPaymentEmailUseCase instance.
func NewSendPaymentEmailUseCase(
	invoiceRepo adapter.InvoiceRepository,
	customerRepo adapter.CustomerRepository,
	email adapter.EmailService,
	clock adapter.Clock,
) *SendPaymentEmailUseCase {
	return &SendPaymentEmailUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		email:        email,
		clock:        clock,
	}
}

// Execute sends the email synchronously. The invoice is flagged only after
// the provider accepted the message.
func (uc *SendPaymentEmailUseCase) Execute(ctx context.Context, input SendPaymentEmailInput) (*SendPaymentEmailOutput, error) {
	inv, customer, err := loadInvoiceAndCustomer(ctx, uc.invoiceRepo, uc.customerRepo, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	if inv.PaymentLinkURL == "" {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodePaymentLinkMissing,
			"create a payment link first",
			domainerror.ErrPaymentLinkMissing,
		)
	}
	if customer.Email == "" {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeMissingRecipient,
			"customer has no email address",
			domainerror.ErrMissingRecipient,
		)
	}

	invoiceID := inv.ID
	result, err := uc.email.SendPaymentRequest(ctx, adapter.CustomerEmailInput{
		Template:       entity.TemplatePaymentRequest,
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		CustomerEmail:  customer.Email,
		InvoiceID:      &invoiceID,
		Period:         inv.Period(),
		AmountDue:      inv.Outstanding().StringFixed(2),
		DueDate:        inv.DueDate.Format("02 Jan 2006"),
		PaymentLinkURL: inv.PaymentLinkURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send payment email: %w", err)
	}

	now := uc.clock.Now().UTC()
	if err := uc.invoiceRepo.MarkPaymentEmailSent(ctx, inv.ID, result.ProviderID, now); err != nil {
		return nil, fmt.Errorf("failed to flag payment email: %w", err)
	}
	inv.PaymentEmailSent = true
	inv.PaymentEmailSentAt = &now
	inv.EmailMessageID = result.ProviderID

	slog.Info("Payment email sent", "invoice_id", inv.ID, "message_id", result.ProviderID)

	return &SendPaymentEmailOutput{
		Invoice:   inv,
		MessageID: result.ProviderID,
		Recipient: customer.Email,
	}, nil
}
