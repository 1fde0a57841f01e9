// Package payment contains payment ledger use cases.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

// EventPaymentLinkPaid is the only webhook event that moves money.
const EventPaymentLinkPaid = "payment_link.paid"

// HandleWebhookInput represents a raw webhook delivery.
type HandleWebhookInput struct {
	Payload   []byte
	Signature string
}

// HandleWebhookOutput describes what the delivery changed.
type HandleWebhookOutput struct {
	Event     string
	Processed bool
	Payment   *RecordPaymentOutput
}

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		PaymentLink struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"payment_link"`
		Payment struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhookUseCase settles invoices paid through gateway payment links.
type HandleWebhookUseCase struct {
	provider    adapter.PaymentLinkProvider
	invoiceRepo adapter.InvoiceRepository
	recorder    *RecordPaymentUseCase
}

// NewHandleWebhookUseCase creates a new HandleWebhookUseCase instance.
func NewHandleWebhookUseCase(
	provider adapter.PaymentLinkProvider,
	invoiceRepo adapter.InvoiceRepository,
	recorder *RecordPaymentUseCase,
) *HandleWebhookUseCase {
	return &HandleWebhookUseCase{
		provider:    provider,
		invoiceRepo: invoiceRepo,
		recorder:    recorder,
	}
}

// Execute verifies and applies a webhook delivery. Unknown events and links
// are acknowledged without changes so the gateway stops retrying them.
func (uc *HandleWebhookUseCase) Execute(ctx context.Context, input HandleWebhookInput) (*HandleWebhookOutput, error) {
	if err := uc.provider.VerifyWebhookSignature(input.Payload, input.Signature); err != nil {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidWebhookSignature,
			"invalid webhook signature",
			domainerror.ErrInvalidWebhookSignature,
		)
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(input.Payload, &envelope); err != nil {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidWebhookPayload,
			"malformed webhook payload",
			err,
		)
	}

	out := &HandleWebhookOutput{Event: envelope.Event}
	if envelope.Event != EventPaymentLinkPaid {
		return out, nil
	}

	linkID := envelope.Payload.PaymentLink.Entity.ID
	if linkID == "" {
		return out, nil
	}

	inv, err := uc.invoiceRepo.FindByPaymentLinkID(ctx, linkID)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			slog.Warn("Webhook for unknown payment link", "payment_link_id", linkID)
			return out, nil
		}
		return nil, fmt.Errorf("failed to find invoice by payment link: %w", err)
	}

	reference := envelope.Payload.Payment.Entity.ID
	if reference == "" {
		reference = linkID
	}

	result, err := uc.recorder.Execute(ctx, RecordPaymentInput{
		InvoiceID:       inv.ID,
		Method:          entity.PaymentMethodRazorpay,
		Reference:       reference,
		Notes:           "payment link " + linkID,
		SettleRemaining: true,
	})
	if err != nil {
		// A retry after the invoice was settled by hand is not an error for the gateway.
		if errors.Is(err, domainerror.ErrInvoiceAlreadyPaid) {
			return out, nil
		}
		return nil, err
	}

	out.Processed = !result.Duplicate
	out.Payment = result
	return out, nil
}
