// Package customer contains customer management use cases.
package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

func findCustomer(ctx context.Context, repo adapter.CustomerRepository, id uuid.UUID) (*entity.Customer, error) {
	customer, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCustomerNotFound) {
			return nil, domainerror.NewCustomerError(
				domainerror.ErrCodeCustomerNotFound,
				"customer not found",
				domainerror.ErrCustomerNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}

// GetCustomerUseCase handles fetching a single customer.
type GetCustomerUseCase struct {
	customerRepo adapter.CustomerRepository
}

// NewGetCustomerUseCase creates a new GetCustomerUseCase instance.
func NewGetCustomerUseCase(customerRepo adapter.CustomerRepository) *GetCustomerUseCase {
	return &GetCustomerUseCase{customerRepo: customerRepo}
}

// Execute fetches the customer.
func (uc *GetCustomerUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return findCustomer(ctx, uc.customerRepo, id)
}

// ListCustomersUseCase handles listing all customers.
type ListCustomersUseCase struct {
	customerRepo adapter.CustomerRepository
}

// NewListCustomersUseCase creates a new ListCustomersUseCase instance.
func NewListCustomersUseCase(customerRepo adapter.CustomerRepository) *ListCustomersUseCase {
	return &ListCustomersUseCase{customerRepo: customerRepo}
}

// Execute lists customers ordered by name.
func (uc *ListCustomersUseCase) Execute(ctx context.Context) ([]*entity.Customer, error) {
	customers, err := uc.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// DeleteCustomerUseCase handles customer deletion.
type DeleteCustomerUseCase struct {
	customerRepo adapter.CustomerRepository
}

// NewDeleteCustomerUseCase creates a new DeleteCustomerUseCase instance.
func NewDeleteCustomerUseCase(customerRepo adapter.CustomerRepository) *DeleteCustomerUseCase {
	return &DeleteCustomerUseCase{customerRepo: customerRepo}
}

// Execute deletes the customer.
func (uc *DeleteCustomerUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	if _, err := findCustomer(ctx, uc.customerRepo, id); err != nil {
		return err
	}
	if err := uc.customerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}
