// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// InvoiceModel represents the invoices table in the database.
// The composite unique index enforces one invoice per customer and period.
type InvoiceModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_customer_period,priority:1"`
	Year                 int             `gorm:"not null;uniqueIndex:idx_invoices_customer_period,priority:2"`
	Month                int             `gorm:"not null;uniqueIndex:idx_invoices_customer_period,priority:3"`
	Items                string          `gorm:"type:jsonb;not null;default:'[]'"`
	Subtotal             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TaxRate              decimal.Decimal `gorm:"type:decimal(5,4);not null"`
	TaxAmount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Total                decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaidAmount           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Status               string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	DueDate              time.Time       `gorm:"not null;index"`
	ROIBreakdown         string          `gorm:"type:jsonb;not null;default:'[]'"`
	UsageSnapshot        string          `gorm:"type:jsonb;not null;default:'{}'"`
	PaymentLinkID        string          `gorm:"type:varchar(100);index"`
	PaymentLinkURL       string          `gorm:"type:varchar(500)"`
	PaymentLinkCreatedAt *time.Time
	PaymentEmailSent     bool            `gorm:"not null;default:false"`
	PaymentEmailSentAt   *time.Time
	EmailMessageID       string          `gorm:"type:varchar(100)"`
	RegeneratedAt        *time.Time
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`

	Payments []PaymentModel `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for the InvoiceModel.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToEntity converts an InvoiceModel to a domain Invoice entity.
func (m *InvoiceModel) ToEntity() *entity.Invoice {
	items := make([]entity.LineItem, 0)
	decodeJSON(m.Items, &items)

	roi := make([]entity.ROIEntry, 0)
	decodeJSON(m.ROIBreakdown, &roi)

	snapshot := make(map[entity.ServiceKey]int64)
	decodeJSON(m.UsageSnapshot, &snapshot)

	payments := make([]entity.PaymentRecord, 0, len(m.Payments))
	for i := range m.Payments {
		payments = append(payments, m.Payments[i].ToEntity())
	}

	return &entity.Invoice{
		ID:                   m.ID,
		CustomerID:           m.CustomerID,
		Year:                 m.Year,
		Month:                m.Month,
		Items:                items,
		Subtotal:             m.Subtotal,
		TaxRate:              m.TaxRate,
		TaxAmount:            m.TaxAmount,
		Total:                m.Total,
		PaidAmount:           m.PaidAmount,
		Status:               entity.InvoiceStatus(m.Status),
		Payments:             payments,
		DueDate:              m.DueDate,
		ROIBreakdown:         roi,
		UsageSnapshot:        snapshot,
		PaymentLinkID:        m.PaymentLinkID,
		PaymentLinkURL:       m.PaymentLinkURL,
		PaymentLinkCreatedAt: m.PaymentLinkCreatedAt,
		PaymentEmailSent:     m.PaymentEmailSent,
		PaymentEmailSentAt:   m.PaymentEmailSentAt,
		EmailMessageID:       m.EmailMessageID,
		RegeneratedAt:        m.RegeneratedAt,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// InvoiceModelFromEntity creates an InvoiceModel from a domain Invoice entity.
// Payments are stored separately and are not copied.
func InvoiceModelFromEntity(inv *entity.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:                   inv.ID,
		CustomerID:           inv.CustomerID,
		Year:                 inv.Year,
		Month:                inv.Month,
		Items:                encodeJSON(inv.Items, "[]"),
		Subtotal:             inv.Subtotal,
		TaxRate:              inv.TaxRate,
		TaxAmount:            inv.TaxAmount,
		Total:                inv.Total,
		PaidAmount:           inv.PaidAmount,
		Status:               string(inv.Status),
		DueDate:              inv.DueDate,
		ROIBreakdown:         encodeJSON(inv.ROIBreakdown, "[]"),
		UsageSnapshot:        encodeJSON(inv.UsageSnapshot, "{}"),
		PaymentLinkID:        inv.PaymentLinkID,
		PaymentLinkURL:       inv.PaymentLinkURL,
		PaymentLinkCreatedAt: inv.PaymentLinkCreatedAt,
		PaymentEmailSent:     inv.PaymentEmailSent,
		PaymentEmailSentAt:   inv.PaymentEmailSentAt,
		EmailMessageID:       inv.EmailMessageID,
		RegeneratedAt:        inv.RegeneratedAt,
		CreatedAt:            inv.CreatedAt,
		UpdatedAt:            inv.UpdatedAt,
	}
}

// PaymentModel represents the payments table in the database.
type PaymentModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Method     string          `gorm:"type:varchar(30);not null"`
	Reference  string          `gorm:"type:varchar(255);index"`
	Notes      string          `gorm:"type:text"`
	RecordedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the PaymentModel.
func (PaymentModel) TableName() string {
	return "payments"
}

// ToEntity converts a PaymentModel to a domain PaymentRecord.
func (m *PaymentModel) ToEntity() entity.PaymentRecord {
	return entity.PaymentRecord{
		ID:         m.ID,
		InvoiceID:  m.InvoiceID,
		Amount:     m.Amount,
		Method:     entity.PaymentMethod(m.Method),
		Reference:  m.Reference,
		Notes:      m.Notes,
		RecordedAt: m.RecordedAt,
	}
}

// PaymentModelFromEntity creates a PaymentModel from a domain PaymentRecord.
func PaymentModelFromEntity(p entity.PaymentRecord) *PaymentModel {
	return &PaymentModel{
		ID:         p.ID,
		InvoiceID:  p.InvoiceID,
		Amount:     p.Amount,
		Method:     string(p.Method),
		Reference:  p.Reference,
		Notes:      p.Notes,
		RecordedAt: p.RecordedAt,
	}
}
