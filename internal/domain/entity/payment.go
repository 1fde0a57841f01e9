// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod describes how money was received.
type PaymentMethod string

const (
	PaymentMethodManual       PaymentMethod = "manual"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodRazorpay     PaymentMethod = "razorpay"
)

// PaymentRecord is an immutable entry in an invoice's payment history.
type PaymentRecord struct {
	ID         uuid.UUID
	InvoiceID  uuid.UUID
	Amount     decimal.Decimal
	Method     PaymentMethod
	Reference  string
	Notes      string
	RecordedAt time.Time
}

// NewPaymentRecord creates a new PaymentRecord entity.
func NewPaymentRecord(invoiceID uuid.UUID, amount decimal.Decimal, method PaymentMethod, reference, notes string, at time.Time) PaymentRecord {
	if method == "" {
		method = PaymentMethodManual
	}
	return PaymentRecord{
		ID:         uuid.New(),
		InvoiceID:  invoiceID,
		Amount:     amount,
		Method:     method,
		Reference:  reference,
		Notes:      notes,
		RecordedAt: at.UTC(),
	}
}
