package dto

import (
	"github.com/billing-panel/backend/internal/application/usecase/receivable"
)

// InvoiceReferenceRequest identifies an invoice in a receivables action.
type InvoiceReferenceRequest struct {
	InvoiceID string `json:"invoice_id" binding:"required,uuid"`
}

// MarkPaidRequest settles an invoice manually, optionally with a gateway payment id.
type MarkPaidRequest struct {
	InvoiceID string `json:"invoice_id" binding:"required,uuid"`
	PaymentID string `json:"payment_id" binding:"max=255"`
	Notes     string `json:"notes" binding:"max=1000"`
}

// PaymentLinkResponse is returned when a payment link is created.
type PaymentLinkResponse struct {
	InvoiceID      string  `json:"invoice_id"`
	PaymentLinkID  string  `json:"payment_link_id"`
	PaymentLinkURL string  `json:"payment_link_url"`
	AmountDue      float64 `json:"amount_due"`
}

// ToPaymentLinkResponse converts a CreatePaymentLinkOutput.
func ToPaymentLinkResponse(out *receivable.CreatePaymentLinkOutput) PaymentLinkResponse {
	return PaymentLinkResponse{
		InvoiceID:      out.Invoice.ID.String(),
		PaymentLinkID:  out.LinkID,
		PaymentLinkURL: out.URL,
		AmountDue:      Money(out.Invoice.Outstanding()),
	}
}

// PaymentEmailResponse is returned after the payment request email is sent.
type PaymentEmailResponse struct {
	InvoiceID string `json:"invoice_id"`
	MessageID string `json:"message_id"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

// ToPaymentEmailResponse converts a SendPaymentEmailOutput.
func ToPaymentEmailResponse(out *receivable.SendPaymentEmailOutput) PaymentEmailResponse {
	return PaymentEmailResponse{
		InvoiceID: out.Invoice.ID.String(),
		MessageID: out.MessageID,
		Recipient: out.Recipient,
		Message:   "Payment email sent",
	}
}

// CustomerReceivableResponse groups the open invoices of one customer.
type CustomerReceivableResponse struct {
	CustomerID       string            `json:"customer_id"`
	CustomerName     string            `json:"customer_name"`
	CustomerEmail    string            `json:"customer_email"`
	AccountStatus    string            `json:"account_status"`
	TotalOutstanding float64           `json:"total_outstanding"`
	Invoices         []InvoiceResponse `json:"invoices"`
}

// ReceivablesResponse lists open invoices grouped by customer.
type ReceivablesResponse struct {
	Customers        []CustomerReceivableResponse `json:"customers"`
	TotalOutstanding float64                      `json:"total_outstanding"`
	InvoiceCount     int                          `json:"invoice_count"`
}

// ToReceivablesResponse converts a ListReceivablesOutput.
func ToReceivablesResponse(out *receivable.ListReceivablesOutput) ReceivablesResponse {
	customers := make([]CustomerReceivableResponse, len(out.Customers))
	for i, c := range out.Customers {
		customers[i] = CustomerReceivableResponse{
			CustomerID:       c.Customer.ID.String(),
			CustomerName:     c.Customer.Name,
			CustomerEmail:    c.Customer.Email,
			AccountStatus:    string(c.Customer.AccountStatus),
			TotalOutstanding: Money(c.TotalOutstanding),
			Invoices:         ToInvoiceListResponse(c.Invoices),
		}
	}
	return ReceivablesResponse{
		Customers:        customers,
		TotalOutstanding: Money(out.TotalOutstanding),
		InvoiceCount:     out.InvoiceCount,
	}
}

// WebhookResponse acknowledges a gateway webhook.
type WebhookResponse struct {
	Event     string `json:"event"`
	Processed bool   `json:"processed"`
	InvoiceID string `json:"invoice_id,omitempty"`
	Status    string `json:"status,omitempty"`
}
