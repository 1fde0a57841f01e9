// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// BundleShare is the share of one invoice total attributed to a bundle.
type BundleShare struct {
	BundleName           string
	Revenue              decimal.Decimal
	Usage                int64
	RevenuePercentage    decimal.Decimal
	ROIWeight            decimal.Decimal
	WeightedContribution decimal.Decimal
}

// AnalyzeInvoiceROIInput represents the input for the per-invoice ROI analysis.
type AnalyzeInvoiceROIInput struct {
	InvoiceID uuid.UUID
}

// AnalyzeInvoiceROIOutput represents the per-invoice ROI analysis.
type AnalyzeInvoiceROIOutput struct {
	Invoice *entity.Invoice
	Shares  []BundleShare
}

// AnalyzeInvoiceROIUseCase reports how much of an invoice each bundle accounts for.
type AnalyzeInvoiceROIUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewAnalyzeInvoiceROIUseCase creates a new AnalyzeInvoiceROIUseCase instance.
func NewAnalyzeInvoiceROIUseCase(invoiceRepo adapter.InvoiceRepository) *AnalyzeInvoiceROIUseCase {
	return &AnalyzeInvoiceROIUseCase{invoiceRepo: invoiceRepo}
}

// Execute performs the analysis.
func (uc *AnalyzeInvoiceROIUseCase) Execute(ctx context.Context, input AnalyzeInvoiceROIInput) (*AnalyzeInvoiceROIOutput, error) {
	inv, err := findInvoice(ctx, uc.invoiceRepo, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	return &AnalyzeInvoiceROIOutput{
		Invoice: inv,
		Shares:  BundleShares(inv),
	}, nil
}

// BundleShares computes revenue percentage against the invoice total and the
// weighted contribution (percentage x weight / 100) for each ROI entry.
func BundleShares(inv *entity.Invoice) []BundleShare {
	shares := make([]BundleShare, 0, len(inv.ROIBreakdown))
	for _, entry := range inv.ROIBreakdown {
		pct := decimal.Zero
		if inv.Total.IsPositive() {
			pct = entry.Revenue.Div(inv.Total).Mul(hundred).Round(2)
		}
		shares = append(shares, BundleShare{
			BundleName:           entry.BundleName,
			Revenue:              entry.Revenue,
			Usage:                entry.Usage,
			RevenuePercentage:    pct,
			ROIWeight:            entry.ROIWeight,
			WeightedContribution: pct.Mul(entry.ROIWeight).Div(hundred).Round(2),
		})
	}
	return shares
}
