// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// CustomerRepository defines the interface for customer persistence operations.
type CustomerRepository interface {
	// Create stores a new customer.
	Create(ctx context.Context, customer *entity.Customer) error

	// FindByID retrieves a customer, returning domainerror.ErrCustomerNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// FindAll retrieves every customer ordered by name.
	FindAll(ctx context.Context) ([]*entity.Customer, error)

	// FindByIDs retrieves the listed customers keyed by ID; unknown IDs are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Customer, error)

	// Update persists all mutable customer fields.
	Update(ctx context.Context, customer *entity.Customer) error

	// Delete removes a customer.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of customers.
	Count(ctx context.Context) (int64, error)
}
