// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/billing-panel/backend/internal/application/usecase/analytics"
	"github.com/billing-panel/backend/internal/domain/entity"
	"github.com/billing-panel/backend/internal/integration/persistence/model"
)

// analyticsRepository implements the analytics.AnalyticsRepository interface.
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository instance.
func NewAnalyticsRepository(db *gorm.DB) analytics.AnalyticsRepository {
	return &analyticsRepository{
		db: db,
	}
}

// GetOverviewTotals returns the headline totals across all customers.
func (r *analyticsRepository) GetOverviewTotals(ctx context.Context) (*analytics.OverviewTotals, error) {
	db := r.db.WithContext(ctx)
	totals := &analytics.OverviewTotals{}

	if err := db.Model(&model.CustomerModel{}).Count(&totals.TotalCustomers).Error; err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	var subs struct {
		Active int64           `gorm:"column:active"`
		MRR    decimal.Decimal `gorm:"column:mrr"`
	}
	err := db.Model(&model.SubscriptionModel{}).
		Select("COUNT(*) AS active, COALESCE(SUM(mrr), 0) AS mrr").
		Where("status = ?", string(entity.SubscriptionStatusActive)).
		Scan(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum subscriptions: %w", err)
	}
	totals.ActiveSubscriptions = subs.Active
	totals.TotalMRR = subs.MRR

	var revenue struct {
		Collected decimal.Decimal `gorm:"column:collected"`
	}
	err = db.Model(&model.InvoiceModel{}).
		Select("COALESCE(SUM(paid_amount), 0) AS collected").
		Scan(&revenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	totals.TotalRevenue = revenue.Collected

	var pending struct {
		Outstanding decimal.Decimal `gorm:"column:outstanding"`
	}
	err = db.Model(&model.InvoiceModel{}).
		Select("COALESCE(SUM(total - paid_amount), 0) AS outstanding").
		Where("status IN ?", []string{string(entity.InvoiceStatusPending), string(entity.InvoiceStatusPartiallyPaid)}).
		Scan(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum pending revenue: %w", err)
	}
	totals.PendingRevenue = pending.Outstanding

	var expenses struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	err = db.Model(&model.ExpenseModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	totals.TotalExpenses = expenses.Total

	return totals, nil
}

// GetRevenueByPeriod returns collected revenue per invoice period.
func (r *analyticsRepository) GetRevenueByPeriod(ctx context.Context) ([]analytics.RawPeriodRevenue, error) {
	var rows []struct {
		Year         int             `gorm:"column:year"`
		Month        int             `gorm:"column:month"`
		Revenue      decimal.Decimal `gorm:"column:revenue"`
		InvoiceCount int             `gorm:"column:invoice_count"`
	}

	err := r.db.WithContext(ctx).
		Model(&model.InvoiceModel{}).
		Select("year, month, COALESCE(SUM(paid_amount), 0) AS revenue, COUNT(*) AS invoice_count").
		Where("paid_amount > 0").
		Group("year, month").
		Order("year ASC, month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue by period: %w", err)
	}

	out := make([]analytics.RawPeriodRevenue, len(rows))
	for i, row := range rows {
		out[i] = analytics.RawPeriodRevenue{
			Year:         row.Year,
			Month:        row.Month,
			Revenue:      row.Revenue,
			InvoiceCount: row.InvoiceCount,
		}
	}
	return out, nil
}
