// Package usage contains usage logging and reporting use cases.
package usage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/domain/valueobject"
)

// LogUsageInput represents the input for logging usage.
type LogUsageInput struct {
	CustomerID uuid.UUID
	Service    string
	Count      int64
	Year       int
	Month      int
}

// LogUsageOutput represents the output of logging usage.
type LogUsageOutput struct {
	Log *entity.UsageLog
}

// LogUsageUseCase appends a usage record.
type LogUsageUseCase struct {
	customerRepo adapter.CustomerRepository
	usageRepo    adapter.UsageRepository
	clock        adapter.Clock
}

// NewLogUsageUseCase creates a new LogUsageUseCase instance.
func NewLogUsageUseCase(customerRepo adapter.CustomerRepository, usageRepo adapter.UsageRepository, clock adapter.Clock) *LogUsageUseCase {
	return &LogUsageUseCase{
		customerRepo: customerRepo,
		usageRepo:    usageRepo,
		clock:        clock,
	}
}

// Execute validates and stores the usage log.
func (uc *LogUsageUseCase) Execute(ctx context.Context, input LogUsageInput) (*LogUsageOutput, error) {
	if !entity.IsVariableService(input.Service) {
		return nil, domainerror.NewUsageError(
			domainerror.ErrCodeUnknownService,
			fmt.Sprintf("unknown service %q", input.Service),
			domainerror.ErrUnknownService,
		)
	}

	if input.Count <= 0 {
		return nil, domainerror.NewUsageError(
			domainerror.ErrCodeInvalidUsageCount,
			"count must be greater than zero",
			domainerror.ErrInvalidUsageCount,
		)
	}

	if _, err := valueobject.NewPeriod(input.Year, input.Month); err != nil {
		return nil, domainerror.NewUsageError(
			domainerror.ErrCodeInvalidUsagePeriod,
			err.Error(),
			domainerror.ErrInvalidPeriod,
		)
	}

	if _, err := uc.customerRepo.FindByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, domainerror.ErrCustomerNotFound) {
			return nil, domainerror.NewUsageError(
				domainerror.ErrCodeUsageCustomer,
				"customer not found",
				domainerror.ErrCustomerNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	log := entity.NewUsageLog(input.CustomerID, entity.ServiceKey(input.Service), input.Count, input.Year, input.Month)
	log.LoggedAt = uc.clock.Now().UTC()

	if err := uc.usageRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create usage log: %w", err)
	}

	slog.Info("Usage logged",
		"customer_id", log.CustomerID,
		"service", log.Service,
		"count", log.Count,
		"period", entity.FormatPeriod(log.Year, log.Month),
	)

	return &LogUsageOutput{Log: log}, nil
}
