// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	"github.com/billing-panel/backend/internal/integration/persistence/model"
)

// rateTierRepository implements the adapter.RateTierRepository interface.
type rateTierRepository struct {
	db *gorm.DB
}

// NewRateTierRepository creates a new rate tier repository instance.
func NewRateTierRepository(db *gorm.DB) adapter.RateTierRepository {
	return &rateTierRepository{db: db}
}

// Create stores a new rate tier.
func (r *rateTierRepository) Create(ctx context.Context, tier *entity.RateTier) error {
	return r.db.WithContext(ctx).Create(model.RateTierModelFromEntity(tier)).Error
}

// List returns tiers ordered by service and lower bound.
func (r *rateTierRepository) List(ctx context.Context, service entity.ServiceKey) ([]*entity.RateTier, error) {
	query := r.db.WithContext(ctx).Model(&model.RateTierModel{})
	if service != "" {
		query = query.Where("service_type = ?", string(service))
	}

	var models []model.RateTierModel
	if err := query.Order("service_type ASC, range_min ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	tiers := make([]*entity.RateTier, len(models))
	for i := range models {
		tiers[i] = models[i].ToEntity()
	}
	return tiers, nil
}
