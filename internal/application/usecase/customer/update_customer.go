// Package customer contains customer management use cases.
package customer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

// UpdateCustomerInput represents a partial customer update. Nil fields are left unchanged.
// Account status is not updatable here; it moves only through the account use cases.
type UpdateCustomerInput struct {
	CustomerID     uuid.UUID
	Name           *string
	Email          *string
	Phone          *string
	Company        *string
	RateCard       map[string]decimal.Decimal
	Bundles        []string
	UsageLimits    map[string]int64
	MinimumBalance *decimal.Decimal
	Balance        *decimal.Decimal
	Permissions    map[string]bool
}

// UpdateCustomerOutput represents the output of customer update.
type UpdateCustomerOutput struct {
	Customer *entity.Customer
}

// UpdateCustomerUseCase handles customer update logic.
type UpdateCustomerUseCase struct {
	customerRepo adapter.CustomerRepository
	clock        adapter.Clock
}

// NewUpdateCustomerUseCase creates a new UpdateCustomerUseCase instance.
func NewUpdateCustomerUseCase(customerRepo adapter.CustomerRepository, clock adapter.Clock) *UpdateCustomerUseCase {
	return &UpdateCustomerUseCase{customerRepo: customerRepo, clock: clock}
}

// Execute performs the customer update.
func (uc *UpdateCustomerUseCase) Execute(ctx context.Context, input UpdateCustomerInput) (*UpdateCustomerOutput, error) {
	if !input.hasChanges() {
		return nil, domainerror.NewCustomerError(
			domainerror.ErrCodeNoCustomerChanges,
			"no data to update",
			domainerror.ErrNoCustomerChanges,
		)
	}

	customer, err := findCustomer(ctx, uc.customerRepo, input.CustomerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if customer.Name, err = validateName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Email != nil {
		if customer.Email, err = validateEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Company != nil {
		customer.Company = *input.Company
	}
	if input.RateCard != nil {
		if customer.RateCard, err = parseRateCard(input.RateCard); err != nil {
			return nil, err
		}
	}
	if input.Bundles != nil {
		if customer.Bundles, err = parseBundles(input.Bundles); err != nil {
			return nil, err
		}
	}
	if input.UsageLimits != nil {
		if customer.UsageLimits, err = parseUsageLimits(input.UsageLimits); err != nil {
			return nil, err
		}
	}
	if input.MinimumBalance != nil {
		if input.MinimumBalance.IsNegative() {
			return nil, domainerror.NewCustomerError(
				domainerror.ErrCodeInvalidRate,
				"minimum balance must not be negative",
				domainerror.ErrInvalidRate,
			)
		}
		customer.MinimumBalance = *input.MinimumBalance
	}
	if input.Balance != nil {
		customer.Balance = *input.Balance
	}
	for k, v := range input.Permissions {
		customer.Permissions[k] = v
	}

	customer.UpdatedAt = uc.clock.Now().UTC()
	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return &UpdateCustomerOutput{Customer: customer}, nil
}

func (in UpdateCustomerInput) hasChanges() bool {
	return in.Name != nil || in.Email != nil || in.Phone != nil || in.Company != nil ||
		in.RateCard != nil || in.Bundles != nil || in.UsageLimits != nil ||
		in.MinimumBalance != nil || in.Balance != nil || len(in.Permissions) > 0
}
