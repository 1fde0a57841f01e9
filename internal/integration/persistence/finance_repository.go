// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	"github.com/billing-panel/backend/internal/integration/persistence/model"
)

// subscriptionRepository implements the adapter.SubscriptionRepository interface.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance.
func NewSubscriptionRepository(db *gorm.DB) adapter.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create stores a new subscription.
func (r *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	return r.db.WithContext(ctx).Create(model.SubscriptionModelFromEntity(subscription)).Error
}

// List returns subscriptions, newest first.
func (r *subscriptionRepository) List(ctx context.Context, status entity.SubscriptionStatus) ([]*entity.Subscription, error) {
	query := r.db.WithContext(ctx).Model(&model.SubscriptionModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var models []model.SubscriptionModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	subscriptions := make([]*entity.Subscription, len(models))
	for i := range models {
		subscriptions[i] = models[i].ToEntity()
	}
	return subscriptions, nil
}

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create stores a new expense.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(model.ExpenseModelFromEntity(expense)).Error
}

// List returns expenses ordered by date, newest first.
func (r *expenseRepository) List(ctx context.Context) ([]*entity.Expense, error) {
	var models []model.ExpenseModel
	if err := r.db.WithContext(ctx).Order("date DESC, created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	expenses := make([]*entity.Expense, len(models))
	for i := range models {
		expenses[i] = models[i].ToEntity()
	}
	return expenses, nil
}
