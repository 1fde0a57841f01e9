// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending       InvoiceStatus = "pending"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
)

// LineItem is one billed service on an invoice.
type LineItem struct {
	ServiceKey ServiceKey      `json:"service_key"`
	Service    string          `json:"service"`
	Code       string          `json:"code"`
	Type       ServiceType     `json:"type"`
	Quantity   int64           `json:"quantity"`
	Unit       string          `json:"unit"`
	Rate       decimal.Decimal `json:"rate"`
	Amount     decimal.Decimal `json:"amount"`
}

// ROIEntry is the attribution of invoice revenue to one bundle.
type ROIEntry struct {
	BundleKey    BundleKey       `json:"bundle_key"`
	BundleName   string          `json:"bundle_name"`
	Revenue      decimal.Decimal `json:"revenue"`
	Usage        int64           `json:"usage"`
	ROIWeight    decimal.Decimal `json:"roi_weight"`
	WeightedROI  decimal.Decimal `json:"weighted_roi"`
	InvoiceCount int             `json:"invoice_count"`
}

// Invoice represents a monthly invoice for a customer.
type Invoice struct {
	ID                   uuid.UUID
	CustomerID           uuid.UUID
	Year                 int
	Month                int
	Items                []LineItem
	Subtotal             decimal.Decimal
	TaxRate              decimal.Decimal
	TaxAmount            decimal.Decimal
	Total                decimal.Decimal
	PaidAmount           decimal.Decimal
	Status               InvoiceStatus
	Payments             []PaymentRecord
	DueDate              time.Time
	ROIBreakdown         []ROIEntry
	UsageSnapshot        map[ServiceKey]int64
	PaymentLinkID        string
	PaymentLinkURL       string
	PaymentLinkCreatedAt *time.Time
	PaymentEmailSent     bool
	PaymentEmailSentAt   *time.Time
	EmailMessageID       string
	RegeneratedAt        *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// StatusFor derives the invoice status from the paid and total amounts.
func StatusFor(paid, total decimal.Decimal) InvoiceStatus {
	switch {
	case paid.GreaterThanOrEqual(total) && paid.IsPositive():
		return InvoiceStatusPaid
	case paid.IsPositive():
		return InvoiceStatusPartiallyPaid
	default:
		return InvoiceStatusPending
	}
}

// FormatPeriod renders a billing period as YYYY-MM.
func FormatPeriod(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// Period returns the billing period label.
func (i *Invoice) Period() string {
	return FormatPeriod(i.Year, i.Month)
}

// Outstanding returns the amount still owed.
func (i *Invoice) Outstanding() decimal.Decimal {
	remaining := i.Total.Sub(i.PaidAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsPaid reports whether the invoice is settled.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// IsOpen reports whether money is still expected on the invoice.
func (i *Invoice) IsOpen() bool {
	return i.Status == InvoiceStatusPending || i.Status == InvoiceStatusPartiallyPaid
}

// ApplyPayment appends a payment and recomputes paid amount and status.
func (i *Invoice) ApplyPayment(p PaymentRecord) {
	i.Payments = append(i.Payments, p)
	i.PaidAmount = i.PaidAmount.Add(p.Amount)
	i.Status = StatusFor(i.PaidAmount, i.Total)
	i.UpdatedAt = p.RecordedAt
}

// HasPaymentReference reports whether a payment with the reference was already recorded.
func (i *Invoice) HasPaymentReference(reference string) bool {
	if reference == "" {
		return false
	}
	for _, p := range i.Payments {
		if p.Reference == reference {
			return true
		}
	}
	return false
}

// DaysOverdue returns the whole days elapsed since the due date, or zero before it.
func (i *Invoice) DaysOverdue(now time.Time) int {
	if !now.After(i.DueDate) {
		return 0
	}
	return int(now.Sub(i.DueDate) / (24 * time.Hour))
}
