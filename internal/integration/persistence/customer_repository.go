// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/integration/persistence/model"
)

// customerRepository implements the adapter.CustomerRepository interface.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository instance.
func NewCustomerRepository(db *gorm.DB) adapter.CustomerRepository {
	return &customerRepository{
		db: db,
	}
}

// Create stores a new customer.
func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(model.CustomerModelFromEntity(customer)).Error
}

// FindByID retrieves a customer by ID.
func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customerModel model.CustomerModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&customerModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCustomerNotFound
		}
		return nil, result.Error
	}
	return customerModel.ToEntity(), nil
}

// FindAll retrieves every customer ordered by name.
func (r *customerRepository) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	var models []model.CustomerModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	customers := make([]*entity.Customer, len(models))
	for i := range models {
		customers[i] = models[i].ToEntity()
	}
	return customers, nil
}

// FindByIDs retrieves the listed customers keyed by ID.
func (r *customerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Customer, error) {
	out := make(map[uuid.UUID]*entity.Customer, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var models []model.CustomerModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	for i := range models {
		out[models[i].ID] = models[i].ToEntity()
	}
	return out, nil
}

// Update persists all mutable customer fields.
func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	result := r.db.WithContext(ctx).
		Model(&model.CustomerModel{}).
		Where("id = ?", customer.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model.CustomerModelFromEntity(customer))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCustomerNotFound
	}
	return nil
}

// Delete removes a customer.
func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCustomerNotFound
	}
	return nil
}

// Count returns the number of customers.
func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.CustomerModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
