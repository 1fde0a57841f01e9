// Package analytics contains business overview use cases.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// GetOverviewOutput represents the business overview.
type GetOverviewOutput struct {
	TotalCustomers      int64
	ActiveSubscriptions int64
	TotalMRR            decimal.Decimal
	TotalRevenue        decimal.Decimal
	PendingRevenue      decimal.Decimal
	TotalExpenses       decimal.Decimal
	NetProfit           decimal.Decimal
}

// GetOverviewUseCase handles the analytics overview.
type GetOverviewUseCase struct {
	analyticsRepo AnalyticsRepository
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(analyticsRepo AnalyticsRepository) *GetOverviewUseCase {
	return &GetOverviewUseCase{analyticsRepo: analyticsRepo}
}

// Execute retrieves the overview. Net profit is collected revenue minus expenses.
func (uc *GetOverviewUseCase) Execute(ctx context.Context) (*GetOverviewOutput, error) {
	totals, err := uc.analyticsRepo.GetOverviewTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get overview totals: %w", err)
	}

	return &GetOverviewOutput{
		TotalCustomers:      totals.TotalCustomers,
		ActiveSubscriptions: totals.ActiveSubscriptions,
		TotalMRR:            totals.TotalMRR,
		TotalRevenue:        totals.TotalRevenue,
		PendingRevenue:      totals.PendingRevenue,
		TotalExpenses:       totals.TotalExpenses,
		NetProfit:           totals.TotalRevenue.Sub(totals.TotalExpenses),
	}, nil
}
