// Package usage contains usage logging and reporting use cases.
package usage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/domain/valueobject"
)

// ListUsageInput represents the input for listing usage.
type ListUsageInput struct {
	CustomerID uuid.UUID
	Year       int
	Month      int
}

// ListUsageOutput holds raw logs and their per-service totals.
type ListUsageOutput struct {
	Logs   []*entity.UsageLog
	Totals map[entity.ServiceKey]int64
}

// ListUsageUseCase returns the usage of a customer for a period.
type ListUsageUseCase struct {
	usageRepo adapter.UsageRepository
}

// NewListUsageUseCase creates a new ListUsageUseCase instance.
func NewListUsageUseCase(usageRepo adapter.UsageRepository) *ListUsageUseCase {
	return &ListUsageUseCase{usageRepo: usageRepo}
}

// Execute lists the usage.
func (uc *ListUsageUseCase) Execute(ctx context.Context, input ListUsageInput) (*ListUsageOutput, error) {
	if _, err := valueobject.NewPeriod(input.Year, input.Month); err != nil {
		return nil, domainerror.NewUsageError(
			domainerror.ErrCodeInvalidUsagePeriod,
			err.Error(),
			domainerror.ErrInvalidPeriod,
		)
	}

	logs, err := uc.usageRepo.ListByCustomerPeriod(ctx, input.CustomerID, input.Year, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage logs: %w", err)
	}

	return &ListUsageOutput{
		Logs:   logs,
		Totals: entity.SumUsage(logs),
	}, nil
}
