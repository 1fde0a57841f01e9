// Package report contains revenue reporting use cases.
package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/domain/valueobject"
)

// ProductROI is the aggregated return of one bundle over a period.
type ProductROI struct {
	BundleName   string
	TotalRevenue decimal.Decimal
	TotalUsage   int64
	ROIWeight    decimal.Decimal
	WeightedROI  decimal.Decimal
	InvoiceCount int
}

// ROIByProductInput represents the input for the ROI report.
type ROIByProductInput struct {
	CustomerID *uuid.UUID
	Year       int
	Month      int
}

// ROIByProductOutput is the ROI report of a period.
type ROIByProductOutput struct {
	Period       string
	Products     []ProductROI
	InvoiceCount int
}

// ROIByProductUseCase aggregates ROI breakdowns of paid invoices per bundle.
type ROIByProductUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewROIByProductUseCase creates a new ROIByProductUseCase instance.
func NewROIByProductUseCase(invoiceRepo adapter.InvoiceRepository) *ROIByProductUseCase {
	return &ROIByProductUseCase{invoiceRepo: invoiceRepo}
}

// Execute builds the report.
func (uc *ROIByProductUseCase) Execute(ctx context.Context, input ROIByProductInput) (*ROIByProductOutput, error) {
	period, err := valueobject.NewPeriod(input.Year, input.Month)
	if err != nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidInvoicePeriod,
			err.Error(),
			domainerror.ErrInvalidPeriod,
		)
	}

	invoices, err := uc.invoiceRepo.List(ctx, adapter.InvoiceFilter{
		CustomerID: input.CustomerID,
		Statuses:   []entity.InvoiceStatus{entity.InvoiceStatusPaid},
		Year:       period.Year,
		Month:      period.Month,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list paid invoices: %w", err)
	}

	return &ROIByProductOutput{
		Period:       period.String(),
		Products:     AggregateROI(invoices),
		InvoiceCount: len(invoices),
	}, nil
}

// AggregateROI merges per-invoice ROI entries by bundle name. Weighted ROI is
// recomputed from the merged revenue, so base-fee bundles scale with invoice count.
func AggregateROI(invoices []*entity.Invoice) []ProductROI {
	byName := make(map[string]*ProductROI)
	for _, inv := range invoices {
		for _, entry := range inv.ROIBreakdown {
			p, ok := byName[entry.BundleName]
			if !ok {
				p = &ProductROI{
					BundleName:   entry.BundleName,
					TotalRevenue: decimal.Zero,
					ROIWeight:    entry.ROIWeight,
				}
				byName[entry.BundleName] = p
			}
			p.TotalRevenue = p.TotalRevenue.Add(entry.Revenue)
			p.TotalUsage += entry.Usage
			p.InvoiceCount += entry.InvoiceCount
		}
	}

	out := make([]ProductROI, 0, len(byName))
	for _, p := range byName {
		if def, ok := entity.LookupBundleByName(p.BundleName); ok {
			p.ROIWeight = def.ROIWeight
			p.WeightedROI = def.WeightedROI(p.TotalRevenue, p.InvoiceCount)
		} else {
			p.WeightedROI = p.TotalRevenue.Mul(p.ROIWeight).Div(decimal.NewFromInt(100))
		}
		out = append(out, *p)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].WeightedROI.Equal(out[j].WeightedROI) {
			return out[i].WeightedROI.GreaterThan(out[j].WeightedROI)
		}
		return out[i].BundleName < out[j].BundleName
	})
	return out
}
