// Package invoice contains invoice-related use cases.
package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

// Calculation is the priced result of one customer's usage for a period.
type Calculation struct {
	Items        []entity.LineItem
	Subtotal     decimal.Decimal
	TaxAmount    decimal.Decimal
	Total        decimal.Decimal
	ROIBreakdown []entity.ROIEntry
}

// Calculate prices summed usage against the customer's rate card.
// Variable lines come first, then fixed monthly fees, both in catalog order.
func Calculate(customer *entity.Customer, usage map[entity.ServiceKey]int64, taxRate decimal.Decimal) (*Calculation, error) {
	for key := range usage {
		if !entity.IsVariableService(string(key)) {
			return nil, domainerror.NewUsageError(
				domainerror.ErrCodeUnknownService,
				fmt.Sprintf("unknown service %q in usage logs", key),
				domainerror.ErrUnknownService,
			)
		}
	}

	items := make([]entity.LineItem, 0)
	for _, def := range entity.Services() {
		if def.Type != entity.ServiceTypeVariable {
			continue
		}
		count := usage[def.Key]
		if count <= 0 {
			continue
		}
		rate, ok := customer.Rate(def.Key)
		if !ok {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeMissingRate,
				fmt.Sprintf("no rate configured for service %s", def.Key),
				domainerror.ErrMissingRate,
			)
		}
		items = append(items, entity.LineItem{
			ServiceKey: def.Key,
			Service:    def.Name,
			Code:       def.Code,
			Type:       def.Type,
			Quantity:   count,
			Unit:       def.Unit,
			Rate:       rate,
			Amount:     rate.Mul(decimal.NewFromInt(count)),
		})
	}

	for _, def := range entity.Services() {
		if def.Type != entity.ServiceTypeFixed {
			continue
		}
		fee, ok := customer.Rate(def.Key)
		if !ok || !fee.IsPositive() {
			continue
		}
		items = append(items, entity.LineItem{
			ServiceKey: def.Key,
			Service:    def.Name,
			Code:       def.Code,
			Type:       def.Type,
			Quantity:   1,
			Unit:       def.Unit,
			Rate:       fee,
			Amount:     fee,
		})
	}

	if len(items) == 0 {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeNothingToBill,
			"no usage and no fixed fees for period",
			domainerror.ErrNothingToBill,
		)
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}
	tax := subtotal.Mul(taxRate).Round(2)

	return &Calculation{
		Items:        items,
		Subtotal:     subtotal,
		TaxAmount:    tax,
		Total:        subtotal.Add(tax),
		ROIBreakdown: BundleROI(customer, items, usage),
	}, nil
}

// BundleROI attributes line revenue to each bundle the customer subscribes to.
// Bundles with neither usage nor revenue are left out.
func BundleROI(customer *entity.Customer, items []entity.LineItem, usage map[entity.ServiceKey]int64) []entity.ROIEntry {
	entries := make([]entity.ROIEntry, 0)
	for _, bundle := range entity.Bundles() {
		if !customer.HasBundle(bundle.Key) {
			continue
		}

		revenue := decimal.Zero
		for _, item := range items {
			if bundle.Includes(item.ServiceKey) {
				revenue = revenue.Add(item.Amount)
			}
		}
		var used int64
		for _, component := range bundle.Components {
			used += usage[component]
		}
		if used == 0 && revenue.IsZero() {
			continue
		}

		entries = append(entries, entity.ROIEntry{
			BundleKey:    bundle.Key,
			BundleName:   bundle.Name,
			Revenue:      revenue,
			Usage:        used,
			ROIWeight:    bundle.ROIWeight,
			WeightedROI:  bundle.WeightedROI(revenue, 1),
			InvoiceCount: 1,
		})
	}
	return entries
}

// apply copies a calculation onto an invoice and resets its payment status.
func (c *Calculation) apply(inv *entity.Invoice, taxRate decimal.Decimal, usage map[entity.ServiceKey]int64) {
	inv.Items = c.Items
	inv.Subtotal = c.Subtotal
	inv.TaxRate = taxRate
	inv.TaxAmount = c.TaxAmount
	inv.Total = c.Total
	inv.ROIBreakdown = c.ROIBreakdown
	inv.UsageSnapshot = usage
	inv.Status = entity.StatusFor(inv.PaidAmount, inv.Total)
}
