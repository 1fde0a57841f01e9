// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	"github.com/billing-panel/backend/internal/integration/persistence/model"
)

// usageRepository implements the adapter.UsageRepository interface.
type usageRepository struct {
	db *gorm.DB
}

// NewUsageRepository creates a new usage repository instance.
func NewUsageRepository(db *gorm.DB) adapter.UsageRepository {
	return &usageRepository{
		db: db,
	}
}

// Create stores an immutable usage log.
func (r *usageRepository) Create(ctx context.Context, log *entity.UsageLog) error {
	return r.db.WithContext(ctx).Create(model.UsageLogModelFromEntity(log)).Error
}

// ListByCustomerPeriod returns the raw logs of a customer for a period, oldest first.
func (r *usageRepository) ListByCustomerPeriod(ctx context.Context, customerID uuid.UUID, year, month int) ([]*entity.UsageLog, error) {
	var models []model.UsageLogModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND year = ? AND month = ?", customerID, year, month).
		Order("logged_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	logs := make([]*entity.UsageLog, len(models))
	for i := range models {
		logs[i] = models[i].ToEntity()
	}
	return logs, nil
}

type usageTotalRow struct {
	CustomerID  uuid.UUID `gorm:"column:customer_id"`
	ServiceType string    `gorm:"column:service_type"`
	Total       int64     `gorm:"column:total"`
}

// SumByCustomerPeriod returns per-service totals for a customer and period.
func (r *usageRepository) SumByCustomerPeriod(ctx context.Context, customerID uuid.UUID, year, month int) (map[entity.ServiceKey]int64, error) {
	var rows []usageTotalRow
	err := r.db.WithContext(ctx).
		Model(&model.UsageLogModel{}).
		Select("customer_id, service_type, SUM(count) AS total").
		Where("customer_id = ? AND year = ? AND month = ?", customerID, year, month).
		Group("customer_id, service_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[entity.ServiceKey]int64, len(rows))
	for _, row := range rows {
		totals[entity.ServiceKey(row.ServiceType)] = row.Total
	}
	return totals, nil
}

// SumByPeriod returns per-customer, per-service totals for a period.
func (r *usageRepository) SumByPeriod(ctx context.Context, year, month int) (map[uuid.UUID]map[entity.ServiceKey]int64, error) {
	var rows []usageTotalRow
	err := r.db.WithContext(ctx).
		Model(&model.UsageLogModel{}).
		Select("customer_id, service_type, SUM(count) AS total").
		Where("year = ? AND month = ?", year, month).
		Group("customer_id, service_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]map[entity.ServiceKey]int64)
	for _, row := range rows {
		if totals[row.CustomerID] == nil {
			totals[row.CustomerID] = make(map[entity.ServiceKey]int64)
		}
		totals[row.CustomerID][entity.ServiceKey(row.ServiceType)] = row.Total
	}
	return totals, nil
}
