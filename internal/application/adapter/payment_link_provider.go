// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// PaymentLinkInput describes a hosted payment page to create.
type PaymentLinkInput struct {
	InvoiceID     uuid.UUID
	AmountPaise   int64
	Currency      string
	Description   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// PaymentLink is a payment page created by the provider.
type PaymentLink struct {
	ID       string
	ShortURL string
}

// PaymentLinkProvider defines the interface of the payment gateway (Razorpay).
type PaymentLinkProvider interface {
	// CreatePaymentLink creates a hosted payment link for the amount.
	CreatePaymentLink(ctx context.Context, input PaymentLinkInput) (*PaymentLink, error)

	// VerifyWebhookSignature checks the HMAC signature sent with a webhook body.
	VerifyWebhookSignature(payload []byte, signature string) error
}
