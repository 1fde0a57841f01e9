package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/usecase/invoice"
	"github.com/billing-panel/backend/internal/application/usecase/payment"
	"github.com/billing-panel/backend/internal/domain/entity"
)

// GenerateInvoiceRequest represents the request body for invoice generation.
type GenerateInvoiceRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required,gte=2000,lte=2100"`
	Month      int    `json:"month" binding:"required,gte=1,lte=12"`
}

// ListInvoicesQuery binds the invoice list filters.
type ListInvoicesQuery struct {
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending partially_paid paid"`
	Year       int    `form:"year" binding:"omitempty,gte=2000,lte=2100"`
	Month      int    `form:"month" binding:"omitempty,gte=1,lte=12"`
}

// RecordPaymentRequest represents the request body for recording a payment.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method" binding:"omitempty,oneof=manual bank_transfer upi card cash razorpay"`
	Reference string          `json:"reference" binding:"max=255"`
	Notes     string          `json:"notes" binding:"max=1000"`
}

// LineItemResponse is one billed service.
type LineItemResponse struct {
	ServiceKey string  `json:"service_key"`
	Service    string  `json:"service"`
	Code       string  `json:"code"`
	Type       string  `json:"type"`
	Quantity   int64   `json:"quantity"`
	Unit       string  `json:"unit"`
	Rate       float64 `json:"rate"`
	Amount     float64 `json:"amount"`
}

// PaymentResponse is one entry of the payment history.
type PaymentResponse struct {
	ID         string    `json:"id"`
	Amount     float64   `json:"amount"`
	Method     string    `json:"method"`
	Reference  string    `json:"reference,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ROIEntryResponse is the revenue attributed to one bundle.
type ROIEntryResponse struct {
	BundleKey    string  `json:"bundle_key"`
	BundleName   string  `json:"bundle_name"`
	Revenue      float64 `json:"revenue"`
	Usage        int64   `json:"usage"`
	ROIWeight    float64 `json:"roi_weight"`
	WeightedROI  float64 `json:"weighted_roi"`
	InvoiceCount int     `json:"invoice_count"`
}

// InvoiceResponse represents an invoice in API responses.
type InvoiceResponse struct {
	ID               string             `json:"id"`
	CustomerID       string             `json:"customer_id"`
	Year             int                `json:"year"`
	Month            int                `json:"month"`
	Period           string             `json:"period"`
	Items            []LineItemResponse `json:"items"`
	Subtotal         float64            `json:"subtotal"`
	TaxRate          float64            `json:"tax_rate"`
	TaxAmount        float64            `json:"tax_amount"`
	Total            float64            `json:"total"`
	PaidAmount       float64            `json:"paid_amount"`
	Outstanding      float64            `json:"outstanding"`
	Status           string             `json:"status"`
	DueDate          time.Time          `json:"due_date"`
	Payments         []PaymentResponse  `json:"payments"`
	ROIBreakdown     []ROIEntryResponse `json:"roi_breakdown"`
	UsageSnapshot    map[string]int64   `json:"usage_snapshot"`
	PaymentLinkID    string             `json:"payment_link_id,omitempty"`
	PaymentLinkURL   string             `json:"payment_link_url,omitempty"`
	PaymentEmailSent bool               `json:"payment_email_sent"`
	RegeneratedAt    *string            `json:"regenerated_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// ToPaymentResponse converts a domain PaymentRecord.
func ToPaymentResponse(p entity.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID.String(),
		Amount:     Money(p.Amount),
		Method:     string(p.Method),
		Reference:  p.Reference,
		Notes:      p.Notes,
		RecordedAt: p.RecordedAt,
	}
}

// ToInvoiceResponse converts a domain Invoice to an InvoiceResponse.
func ToInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = LineItemResponse{
			ServiceKey: string(it.ServiceKey),
			Service:    it.Service,
			Code:       it.Code,
			Type:       string(it.Type),
			Quantity:   it.Quantity,
			Unit:       it.Unit,
			Rate:       Money(it.Rate),
			Amount:     Money(it.Amount),
		}
	}
	payments := make([]PaymentResponse, len(inv.Payments))
	for i, p := range inv.Payments {
		payments[i] = ToPaymentResponse(p)
	}
	roi := make([]ROIEntryResponse, len(inv.ROIBreakdown))
	for i, r := range inv.ROIBreakdown {
		roi[i] = ROIEntryResponse{
			BundleKey:    string(r.BundleKey),
			BundleName:   r.BundleName,
			Revenue:      Money(r.Revenue),
			Usage:        r.Usage,
			ROIWeight:    r.ROIWeight.InexactFloat64(),
			WeightedROI:  Money(r.WeightedROI),
			InvoiceCount: r.InvoiceCount,
		}
	}
	snapshot := make(map[string]int64, len(inv.UsageSnapshot))
	for k, v := range inv.UsageSnapshot {
		snapshot[string(k)] = v
	}

	return InvoiceResponse{
		ID:               inv.ID.String(),
		CustomerID:       inv.CustomerID.String(),
		Year:             inv.Year,
		Month:            inv.Month,
		Period:           inv.Period(),
		Items:            items,
		Subtotal:         Money(inv.Subtotal),
		TaxRate:          inv.TaxRate.InexactFloat64(),
		TaxAmount:        Money(inv.TaxAmount),
		Total:            Money(inv.Total),
		PaidAmount:       Money(inv.PaidAmount),
		Outstanding:      Money(inv.Outstanding()),
		Status:           string(inv.Status),
		DueDate:          inv.DueDate,
		Payments:         payments,
		ROIBreakdown:     roi,
		UsageSnapshot:    snapshot,
		PaymentLinkID:    inv.PaymentLinkID,
		PaymentLinkURL:   inv.PaymentLinkURL,
		PaymentEmailSent: inv.PaymentEmailSent,
		RegeneratedAt:    optionalTime(inv.RegeneratedAt),
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
}

// ToInvoiceListResponse converts a slice of invoices.
func ToInvoiceListResponse(invoices []*entity.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		out[i] = ToInvoiceResponse(inv)
	}
	return out
}

// BundleShareResponse is one bundle in the per-invoice ROI analysis.
type BundleShareResponse struct {
	BundleName           string  `json:"bundle_name"`
	Revenue              float64 `json:"revenue"`
	Usage                int64   `json:"usage"`
	RevenuePercentage    float64 `json:"revenue_percentage"`
	ROIWeight            float64 `json:"roi_weight"`
	WeightedContribution float64 `json:"weighted_contribution"`
}

// InvoiceROIResponse is the per-invoice ROI analysis.
type InvoiceROIResponse struct {
	InvoiceID string                `json:"invoice_id"`
	Period    string                `json:"period"`
	Total     float64               `json:"total"`
	Bundles   []BundleShareResponse `json:"bundles"`
}

// ToInvoiceROIResponse converts an AnalyzeInvoiceROIOutput.
func ToInvoiceROIResponse(out *invoice.AnalyzeInvoiceROIOutput) InvoiceROIResponse {
	bundles := make([]BundleShareResponse, len(out.Shares))
	for i, s := range out.Shares {
		bundles[i] = BundleShareResponse{
			BundleName:           s.BundleName,
			Revenue:              Money(s.Revenue),
			Usage:                s.Usage,
			RevenuePercentage:    Money(s.RevenuePercentage),
			ROIWeight:            s.ROIWeight.InexactFloat64(),
			WeightedContribution: Money(s.WeightedContribution),
		}
	}
	return InvoiceROIResponse{
		InvoiceID: out.Invoice.ID.String(),
		Period:    out.Invoice.Period(),
		Total:     Money(out.Invoice.Total),
		Bundles:   bundles,
	}
}

// PaymentResultResponse is returned after a payment is applied.
type PaymentResultResponse struct {
	Invoice       InvoiceResponse  `json:"invoice"`
	Payment       *PaymentResponse `json:"payment,omitempty"`
	Credited      float64          `json:"credited"`
	Reactivated   bool             `json:"reactivated"`
	Duplicate     bool             `json:"duplicate"`
	AccountStatus string           `json:"account_status,omitempty"`
}

// ToPaymentResultResponse converts a RecordPaymentOutput.
func ToPaymentResultResponse(out *payment.RecordPaymentOutput) PaymentResultResponse {
	resp := PaymentResultResponse{
		Invoice:     ToInvoiceResponse(out.Invoice),
		Credited:    Money(out.Credited),
		Reactivated: out.Reactivated,
		Duplicate:   out.Duplicate,
	}
	if out.Payment != nil {
		p := ToPaymentResponse(*out.Payment)
		resp.Payment = &p
	}
	if out.Customer != nil {
		resp.AccountStatus = string(out.Customer.AccountStatus)
	}
	return resp
}
