// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService renders customer emails and either sends them right away or queues them.
type EmailService interface {
	// SendPaymentRequest renders and sends the payment request email synchronously.
	SendPaymentRequest(ctx context.Context, input CustomerEmailInput) (*SendEmailResult, error)

	// QueueCustomerNotice queues a reminder, alert or account notice for the background worker.
	QueueCustomerNotice(ctx context.Context, input CustomerEmailInput) error
}

// CustomerEmailInput carries everything the customer email templates can show.
type CustomerEmailInput struct {
	Template       entity.EmailTemplateType
	CustomerID     uuid.UUID
	CustomerName   string
	CustomerEmail  string
	InvoiceID      *uuid.UUID
	Period         string
	AmountDue      string
	DueDate        string
	DaysOverdue    int
	PaymentLinkURL string
	Reason         string
	Balance        string
	MinimumBalance string
}
