// Package receivable contains accounts-receivable use cases.
package receivable

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
)

// CustomerReceivable groups the open invoices of one customer.
type CustomerReceivable struct {
	Customer         *entity.Customer
	Invoices         []*entity.Invoice
	TotalOutstanding decimal.Decimal
}

// ListReceivablesOutput is the receivables ledger.
type ListReceivablesOutput struct {
	Customers        []CustomerReceivable
	TotalOutstanding decimal.Decimal
	InvoiceCount     int
}

// ListReceivablesUseCase lists open invoices grouped by customer.
type ListReceivablesUseCase struct {
	invoiceRepo  adapter.InvoiceRepository
	customerRepo adapter.CustomerRepository
}

// NewListReceivablesUseCase creates a new ListReceivablesUseCase instance.
func NewListReceivablesUseCase(invoiceRepo adapter.InvoiceRepository, customerRepo adapter.CustomerRepository) *ListReceivablesUseCase {
	return &ListReceivablesUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
	}
}

// Execute builds the receivables ledger, largest balance first.
func (uc *ListReceivablesUseCase) Execute(ctx context.Context) (*ListReceivablesOutput, error) {
	invoices, err := uc.invoiceRepo.List(ctx, adapter.InvoiceFilter{
		Statuses: []entity.InvoiceStatus{entity.InvoiceStatusPending, entity.InvoiceStatusPartiallyPaid},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list open invoices: %w", err)
	}

	grouped := lo.GroupBy(invoices, func(inv *entity.Invoice) uuid.UUID { return inv.CustomerID })
	customers, err := uc.customerRepo.FindByIDs(ctx, lo.Keys(grouped))
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	out := &ListReceivablesOutput{
		Customers:        make([]CustomerReceivable, 0, len(grouped)),
		TotalOutstanding: decimal.Zero,
		InvoiceCount:     len(invoices),
	}
	for customerID, open := range grouped {
		customer, ok := customers[customerID]
		if !ok {
			continue
		}
		total := lo.Reduce(open, func(acc decimal.Decimal, inv *entity.Invoice, _ int) decimal.Decimal {
			return acc.Add(inv.Outstanding())
		}, decimal.Zero)

		out.Customers = append(out.Customers, CustomerReceivable{
			Customer:         customer,
			Invoices:         open,
			TotalOutstanding: total,
		})
		out.TotalOutstanding = out.TotalOutstanding.Add(total)
	}

	sort.Slice(out.Customers, func(i, j int) bool {
		a, b := out.Customers[i], out.Customers[j]
		if !a.TotalOutstanding.Equal(b.TotalOutstanding) {
			return a.TotalOutstanding.GreaterThan(b.TotalOutstanding)
		}
		return a.Customer.Name < b.Customer.Name
	})

	return out, nil
}
