// Package usage contains usage logging and reporting use cases.
package usage

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/domain/valueobject"
)

// ServiceExcess is one service used beyond its expected monthly limit.
type ServiceExcess struct {
	Service          entity.ServiceKey
	ServiceName      string
	Usage            int64
	ExpectedLimit    int64
	Excess           int64
	ExcessPercentage decimal.Decimal
}

// CustomerExcess groups the excess services of one customer.
type CustomerExcess struct {
	CustomerID   uuid.UUID
	CustomerName string
	Services     []ServiceExcess
}

// ExcessUsageInput represents the input for the excess usage report.
type ExcessUsageInput struct {
	Year  int
	Month int
}

// ExcessUsageOutput is the excess usage report of a period.
type ExcessUsageOutput struct {
	Year      int
	Month     int
	Customers []CustomerExcess
}

// ExcessUsageUseCase finds customers using more than their usage limits.
type ExcessUsageUseCase struct {
	customerRepo adapter.CustomerRepository
	usageRepo    adapter.UsageRepository
}

// NewExcessUsageUseCase creates a new ExcessUsageUseCase instance.
func NewExcessUsageUseCase(customerRepo adapter.CustomerRepository, usageRepo adapter.UsageRepository) *ExcessUsageUseCase {
	return &ExcessUsageUseCase{
		customerRepo: customerRepo,
		usageRepo:    usageRepo,
	}
}

// Execute builds the report.
func (uc *ExcessUsageUseCase) Execute(ctx context.Context, input ExcessUsageInput) (*ExcessUsageOutput, error) {
	if _, err := valueobject.NewPeriod(input.Year, input.Month); err != nil {
		return nil, domainerror.NewUsageError(
			domainerror.ErrCodeInvalidUsagePeriod,
			err.Error(),
			domainerror.ErrInvalidPeriod,
		)
	}

	totals, err := uc.usageRepo.SumByPeriod(ctx, input.Year, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate usage: %w", err)
	}

	customers, err := uc.customerRepo.FindByIDs(ctx, lo.Keys(totals))
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	report := make([]CustomerExcess, 0)
	for id, usage := range totals {
		customer, ok := customers[id]
		if !ok {
			continue
		}
		if services := ExcessFor(customer, usage); len(services) > 0 {
			report = append(report, CustomerExcess{
				CustomerID:   customer.ID,
				CustomerName: customer.Name,
				Services:     services,
			})
		}
	}
	sort.Slice(report, func(i, j int) bool { return report[i].CustomerName < report[j].CustomerName })

	return &ExcessUsageOutput{
		Year:      input.Year,
		Month:     input.Month,
		Customers: report,
	}, nil
}

// ExcessFor compares usage against the customer's limits in catalog order.
// Services without a positive limit are never reported.
func ExcessFor(customer *entity.Customer, usage map[entity.ServiceKey]int64) []ServiceExcess {
	out := make([]ServiceExcess, 0)
	for _, def := range entity.Services() {
		limit := customer.UsageLimits[def.Key]
		used := usage[def.Key]
		if limit <= 0 || used <= limit {
			continue
		}
		excess := used - limit
		out = append(out, ServiceExcess{
			Service:          def.Key,
			ServiceName:      def.Name,
			Usage:            used,
			ExpectedLimit:    limit,
			Excess:           excess,
			ExcessPercentage: decimal.NewFromInt(excess).Div(decimal.NewFromInt(limit)).Mul(decimal.NewFromInt(100)).Round(2),
		})
	}
	return out
}
