// Package analytics contains business overview use cases.
package analytics

import (
	"context"

	"github.com/shopspring/decimal"
)

// AnalyticsRepository defines the interface for analytics aggregate queries.
type AnalyticsRepository interface {
	// GetOverviewTotals returns the headline totals across all customers.
	GetOverviewTotals(ctx context.Context) (*OverviewTotals, error)

	// GetRevenueByPeriod returns collected revenue per invoice period, in any order.
	GetRevenueByPeriod(ctx context.Context) ([]RawPeriodRevenue, error)
}

// OverviewTotals represents raw totals from the database.
type OverviewTotals struct {
	TotalCustomers      int64
	ActiveSubscriptions int64
	TotalMRR            decimal.Decimal
	TotalRevenue        decimal.Decimal
	PendingRevenue      decimal.Decimal
	TotalExpenses       decimal.Decimal
}

// RawPeriodRevenue represents collected revenue of one invoice period.
type RawPeriodRevenue struct {
	Year         int
	Month        int
	Revenue      decimal.Decimal
	InvoiceCount int
}
