// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/integration/persistence/model"
)

// invoiceRepository implements the adapter.InvoiceRepository interface.
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository instance.
func NewInvoiceRepository(db *gorm.DB) adapter.InvoiceRepository {
	return &invoiceRepository{
		db: db,
	}
}

func preloadPayments(db *gorm.DB) *gorm.DB {
	return db.Order("recorded_at ASC")
}

// Create stores a new invoice; the unique period index rejects duplicates.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	result := r.db.WithContext(ctx).Omit("Payments").Create(model.InvoiceModelFromEntity(invoice))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrDuplicateInvoice
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves an invoice with its payment history.
func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.findOne(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByCustomerPeriod retrieves the invoice of a customer for a period.
func (r *invoiceRepository) FindByCustomerPeriod(ctx context.Context, customerID uuid.UUID, year, month int) (*entity.Invoice, error) {
	return r.findOne(r.db.WithContext(ctx).
		Where("customer_id = ? AND year = ? AND month = ?", customerID, year, month))
}

// FindByPaymentLinkID retrieves the invoice a payment link was created for.
func (r *invoiceRepository) FindByPaymentLinkID(ctx context.Context, linkID string) (*entity.Invoice, error) {
	if linkID == "" {
		return nil, domainerror.ErrInvoiceNotFound
	}
	return r.findOne(r.db.WithContext(ctx).Where("payment_link_id = ?", linkID))
}

func (r *invoiceRepository) findOne(query *gorm.DB) (*entity.Invoice, error) {
	var invoiceModel model.InvoiceModel
	result := query.Preload("Payments", preloadPayments).First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvoiceNotFound
		}
		return nil, result.Error
	}
	return invoiceModel.ToEntity(), nil
}

// List retrieves invoices matching the filter, newest period first.
func (r *invoiceRepository) List(ctx context.Context, filter adapter.InvoiceFilter) ([]*entity.Invoice, error) {
	query := r.db.WithContext(ctx).Model(&model.InvoiceModel{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Month != 0 {
		query = query.Where("month = ?", filter.Month)
	}

	var models []model.InvoiceModel
	err := query.
		Preload("Payments", preloadPayments).
		Order("year DESC, month DESC, created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	invoices := make([]*entity.Invoice, len(models))
	for i := range models {
		invoices[i] = models[i].ToEntity()
	}
	return invoices, nil
}

// UpdateCalculation replaces the computed parts of an invoice that has no payments.
func (r *invoiceRepository) UpdateCalculation(ctx context.Context, invoice *entity.Invoice) error {
	m := model.InvoiceModelFromEntity(invoice)
	result := r.db.WithContext(ctx).
		Model(&model.InvoiceModel{}).
		Where("id = ? AND paid_amount = 0", invoice.ID).
		Updates(map[string]interface{}{
			"items":          m.Items,
			"subtotal":       m.Subtotal,
			"tax_rate":       m.TaxRate,
			"tax_amount":     m.TaxAmount,
			"total":          m.Total,
			"status":         m.Status,
			"due_date":       m.DueDate,
			"roi_breakdown":  m.ROIBreakdown,
			"usage_snapshot": m.UsageSnapshot,
			"regenerated_at": m.RegeneratedAt,
			"updated_at":     m.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInvoiceHasPayments
	}
	return nil
}

// SetPaymentLink stores the payment link created for the invoice.
func (r *invoiceRepository) SetPaymentLink(ctx context.Context, id uuid.UUID, linkID, url string, at time.Time) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"payment_link_id":         linkID,
		"payment_link_url":        url,
		"payment_link_created_at": at,
		"updated_at":              at,
	})
}

// MarkPaymentEmailSent flags the invoice once the provider accepted the payment email.
func (r *invoiceRepository) MarkPaymentEmailSent(ctx context.Context, id uuid.UUID, messageID string, at time.Time) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"payment_email_sent":    true,
		"payment_email_sent_at": at,
		"email_message_id":      messageID,
		"updated_at":            at,
	})
}

func (r *invoiceRepository) updateColumns(ctx context.Context, id uuid.UUID, columns map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.InvoiceModel{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInvoiceNotFound
	}
	return nil
}

// ApplyPayment locks the invoice and customer rows, runs mutate and persists the
// outcome in the same transaction. Concurrent payments on one invoice serialise here.
func (r *invoiceRepository) ApplyPayment(
	ctx context.Context,
	invoiceID uuid.UUID,
	mutate adapter.PaymentMutation,
) (*entity.Invoice, *entity.Customer, error) {
	var (
		invoice  *entity.Invoice
		customer *entity.Customer
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoiceModel model.InvoiceModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", invoiceID).
			First(&invoiceModel).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrInvoiceNotFound
			}
			return fmt.Errorf("failed to lock invoice: %w", err)
		}
		if err := tx.Where("invoice_id = ?", invoiceID).Order("recorded_at ASC").Find(&invoiceModel.Payments).Error; err != nil {
			return fmt.Errorf("failed to load payments: %w", err)
		}

		var customerModel model.CustomerModel
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", invoiceModel.CustomerID).
			First(&customerModel).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrCustomerNotFound
			}
			return fmt.Errorf("failed to lock customer: %w", err)
		}

		invoice = invoiceModel.ToEntity()
		customer = customerModel.ToEntity()

		record, err := mutate(invoice, customer)
		if err != nil {
			return err
		}
		if record == nil {
			return nil
		}

		if err := tx.Create(model.PaymentModelFromEntity(*record)).Error; err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}

		err = tx.Model(&model.InvoiceModel{}).
			Where("id = ?", invoice.ID).
			Updates(map[string]interface{}{
				"paid_amount": invoice.PaidAmount,
				"status":      string(invoice.Status),
				"updated_at":  invoice.UpdatedAt,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		err = tx.Model(&model.CustomerModel{}).
			Where("id = ?", customer.ID).
			Updates(map[string]interface{}{
				"balance":           customer.Balance,
				"account_status":    string(customer.AccountStatus),
				"status_reason":     customer.StatusReason,
				"status_changed_at": customer.StatusChangedAt,
				"updated_at":        customer.UpdatedAt,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update customer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return invoice, customer, nil
}
