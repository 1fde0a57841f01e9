// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// SubscriptionRepository defines the interface for subscription persistence operations.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error

	// List returns subscriptions; an empty status returns all of them.
	List(ctx context.Context, status entity.SubscriptionStatus) ([]*entity.Subscription, error)
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error

	// List returns expenses ordered by date, newest first.
	List(ctx context.Context) ([]*entity.Expense, error)
}
