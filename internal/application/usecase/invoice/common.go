// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

func findInvoice(ctx context.Context, repo adapter.InvoiceRepository, id uuid.UUID) (*entity.Invoice, error) {
	inv, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceNotFound,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return inv, nil
}

func findCustomer(ctx context.Context, repo adapter.CustomerRepository, id uuid.UUID) (*entity.Customer, error) {
	customer, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCustomerNotFound) {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceCustomer,
				"customer not found",
				domainerror.ErrCustomerNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}
