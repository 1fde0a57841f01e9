// Package analytics contains business overview use cases.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/domain/valueobject"
)

// RevenuePoint is collected revenue for one month.
type RevenuePoint struct {
	Period       string
	Revenue      decimal.Decimal
	InvoiceCount int
}

// GetRevenueChartOutput represents the revenue chart.
type GetRevenueChartOutput struct {
	Points []RevenuePoint
}

// GetRevenueChartUseCase handles the revenue chart.
type GetRevenueChartUseCase struct {
	analyticsRepo AnalyticsRepository
}

// NewGetRevenueChartUseCase creates a new GetRevenueChartUseCase instance.
func NewGetRevenueChartUseCase(analyticsRepo AnalyticsRepository) *GetRevenueChartUseCase {
	return &GetRevenueChartUseCase{analyticsRepo: analyticsRepo}
}

// Execute returns revenue per period from the first to the last billed month.
// Months without collections inside that span are included with zero values.
func (uc *GetRevenueChartUseCase) Execute(ctx context.Context) (*GetRevenueChartOutput, error) {
	raw, err := uc.analyticsRepo.GetRevenueByPeriod(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue by period: %w", err)
	}
	if len(raw) == 0 {
		return &GetRevenueChartOutput{Points: []RevenuePoint{}}, nil
	}

	byPeriod := lo.KeyBy(raw, func(r RawPeriodRevenue) string {
		return valueobject.Period{Year: r.Year, Month: r.Month}.String()
	})
	keys := lo.Keys(byPeriod)
	sort.Strings(keys)

	first := byPeriod[keys[0]]
	last := byPeriod[keys[len(keys)-1]]

	points := make([]RevenuePoint, 0, len(keys))
	for _, p := range MonthSeries(
		valueobject.Period{Year: first.Year, Month: first.Month},
		valueobject.Period{Year: last.Year, Month: last.Month},
	) {
		key := p.String()
		if r, ok := byPeriod[key]; ok {
			points = append(points, RevenuePoint{Period: key, Revenue: r.Revenue, InvoiceCount: r.InvoiceCount})
			continue
		}
		points = append(points, RevenuePoint{Period: key, Revenue: decimal.Zero})
	}

	return &GetRevenueChartOutput{Points: points}, nil
}

// MonthSeries returns every period from start to end inclusive.
func MonthSeries(start, end valueobject.Period) []valueobject.Period {
	var out []valueobject.Period
	for cur := start.Start(); !cur.After(end.Start()); cur = cur.AddDate(0, 1, 0) {
		out = append(out, valueobject.PeriodOf(cur))
	}
	return out
}
