// Package customer contains customer management use cases.
package customer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

// CreateCustomerInput represents the input for customer creation.
type CreateCustomerInput struct {
	Name           string
	Email          string
	Phone          string
	Company        string
	RateCard       map[string]decimal.Decimal
	Bundles        []string
	UsageLimits    map[string]int64
	MinimumBalance decimal.Decimal
	Balance        decimal.Decimal
	Permissions    map[string]bool // Optional, merged over the defaults
}

// CreateCustomerOutput represents the output of customer creation.
type CreateCustomerOutput struct {
	Customer *entity.Customer
}

// CreateCustomerUseCase handles customer creation logic.
type CreateCustomerUseCase struct {
	customerRepo adapter.CustomerRepository
}

// NewCreateCustomerUseCase creates a new CreateCustomerUseCase instance.
func NewCreateCustomerUseCase(customerRepo adapter.CustomerRepository) *CreateCustomerUseCase {
	return &CreateCustomerUseCase{customerRepo: customerRepo}
}

// Execute performs the customer creation.
func (uc *CreateCustomerUseCase) Execute(ctx context.Context, input CreateCustomerInput) (*CreateCustomerOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	email, err := validateEmail(input.Email)
	if err != nil {
		return nil, err
	}
	rateCard, err := parseRateCard(input.RateCard)
	if err != nil {
		return nil, err
	}
	bundles, err := parseBundles(input.Bundles)
	if err != nil {
		return nil, err
	}
	limits, err := parseUsageLimits(input.UsageLimits)
	if err != nil {
		return nil, err
	}
	if input.MinimumBalance.IsNegative() {
		return nil, domainerror.NewCustomerError(
			domainerror.ErrCodeInvalidRate,
			"minimum balance must not be negative",
			domainerror.ErrInvalidRate,
		)
	}

	customer := entity.NewCustomer(name, email)
	customer.Phone = input.Phone
	customer.Company = input.Company
	customer.RateCard = rateCard
	customer.Bundles = bundles
	customer.UsageLimits = limits
	customer.MinimumBalance = input.MinimumBalance
	customer.Balance = input.Balance
	for k, v := range input.Permissions {
		customer.Permissions[k] = v
	}

	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	slog.Info("Customer created", "customer_id", customer.ID, "name", customer.Name)

	return &CreateCustomerOutput{Customer: customer}, nil
}
