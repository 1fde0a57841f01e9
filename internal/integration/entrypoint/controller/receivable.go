package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billing-panel/backend/internal/application/usecase/payment"
	"github.com/billing-panel/backend/internal/application/usecase/receivable"
	"github.com/billing-panel/backend/internal/integration/entrypoint/dto"
)

const (
	signatureHeader = "X-Razorpay-Signature"
	maxWebhookBytes = 1 << 20
)

// ReceivableController handles receivables, payment link and webhook endpoints.
type ReceivableController struct {
	listUseCase        *receivable.ListReceivablesUseCase
	paymentLinkUseCase *receivable.CreatePaymentLinkUseCase
	emailUseCase       *receivable.SendPaymentEmailUseCase
	markPaidUseCase    *payment.MarkPaidUseCase
	webhookUseCase     *payment.HandleWebhookUseCase
}

// NewReceivableController creates a new receivable controller instance.
func NewReceivableController(
	listUseCase *receivable.ListReceivablesUseCase,
	paymentLinkUseCase *receivable.CreatePaymentLinkUseCase,
	emailUseCase *receivable.SendPaymentEmailUseCase,
	markPaidUseCase *payment.MarkPaidUseCase,
	webhookUseCase *payment.HandleWebhookUseCase,
) *ReceivableController {
	return &ReceivableController{
		listUseCase:        listUseCase,
		paymentLinkUseCase: paymentLinkUseCase,
		emailUseCase:       emailUseCase,
		markPaidUseCase:    markPaidUseCase,
		webhookUseCase:     webhookUseCase,
	}
}

// List handles GET /receivables requests.
func (c *ReceivableController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToReceivablesResponse(output))
}

// CreatePaymentLink handles POST /receivables/create-payment-link requests.
func (c *ReceivableController) CreatePaymentLink(ctx *gin.Context) {
	var req dto.InvoiceReferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}
	invoiceID, ok := parseID(ctx, req.InvoiceID, "invoice")
	if !ok {
		return
	}

	output, err := c.paymentLinkUseCase.Execute(ctx.Request.Context(), receivable.CreatePaymentLinkInput{InvoiceID: invoiceID})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToPaymentLinkResponse(output))
}

// SendPaymentEmail handles POST /receivables/send-payment-email requests.
func (c *ReceivableController) SendPaymentEmail(ctx *gin.Context) {
	var req dto.InvoiceReferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}
	invoiceID, ok := parseID(ctx, req.InvoiceID, "invoice")
	if !ok {
		return
	}

	output, err := c.emailUseCase.Execute(ctx.Request.Context(), receivable.SendPaymentEmailInput{InvoiceID: invoiceID})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToPaymentEmailResponse(output))
}

// MarkPaid handles POST /receivables/mark-paid requests.
func (c *ReceivableController) MarkPaid(ctx *gin.Context) {
	var req dto.MarkPaidRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}
	invoiceID, ok := parseID(ctx, req.InvoiceID, "invoice")
	if !ok {
		return
	}

	output, err := c.markPaidUseCase.Execute(ctx.Request.Context(), payment.MarkPaidInput{
		InvoiceID: invoiceID,
		PaymentID: req.PaymentID,
		Notes:     req.Notes,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToPaymentResultResponse(output))
}

// RazorpayWebhook handles POST /webhook/razorpay requests.
// The raw body is required for signature verification.
func (c *ReceivableController) RazorpayWebhook(ctx *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxWebhookBytes))
	if err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	output, err := c.webhookUseCase.Execute(ctx.Request.Context(), payment.HandleWebhookInput{
		Payload:   payload,
		Signature: ctx.GetHeader(signatureHeader),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	resp := dto.WebhookResponse{Event: output.Event, Processed: output.Processed}
	if output.Payment != nil && output.Payment.Invoice != nil {
		resp.InvoiceID = output.Payment.Invoice.ID.String()
		resp.Status = string(output.Payment.Invoice.Status)
	}
	ctx.JSON(http.StatusOK, resp)
}
