// Package invoice contains invoice-related use cases.
package invoice

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestCustomer(rates map[entity.ServiceKey]string, bundles ...entity.BundleKey) *entity.Customer {
	c := entity.NewCustomer("Acme Retail", "billing@acme.test")
	for k, v := range rates {
		c.RateCard[k] = dec(v)
	}
	c.Bundles = bundles
	return c
}

func TestCalculate(t *testing.T) {
	taxRate := dec("0.18")

	tests := []struct {
		name          string
		rates         map[entity.ServiceKey]string
		bundles       []entity.BundleKey
		usage         map[entity.ServiceKey]int64
		wantErr       error
		wantItems     []entity.ServiceKey
		wantSubtotal  string
		wantTax       string
		wantTotal     string
		wantROIBundle []string
	}{
		{
			name:         "orders and users with GST",
			rates:        map[entity.ServiceKey]string{entity.ServiceOrders: "5", entity.ServiceUsers: "50"},
			usage:        map[entity.ServiceKey]int64{entity.ServiceOrders: 1000, entity.ServiceUsers: 50},
			wantItems:    []entity.ServiceKey{entity.ServiceOrders, entity.ServiceUsers},
			wantSubtotal: "7500",
			wantTax:      "1350",
			wantTotal:    "8850",
		},
		{
			name:         "fixed fee without usage",
			rates:        map[entity.ServiceKey]string{entity.ServicePlatformFees: "10000"},
			usage:        map[entity.ServiceKey]int64{},
			wantItems:    []entity.ServiceKey{entity.ServicePlatformFees},
			wantSubtotal: "10000",
			wantTax:      "1800",
			wantTotal:    "11800",
		},
		{
			name:         "zero fixed fee is skipped",
			rates:        map[entity.ServiceKey]string{entity.ServiceWarehouse: "1000", entity.ServiceUATServer: "0"},
			usage:        map[entity.ServiceKey]int64{entity.ServiceWarehouse: 2},
			wantItems:    []entity.ServiceKey{entity.ServiceWarehouse},
			wantSubtotal: "2000",
			wantTax:      "360",
			wantTotal:    "2360",
		},
		{
			name:    "usage without rate",
			rates:   map[entity.ServiceKey]string{entity.ServiceOrders: "5"},
			usage:   map[entity.ServiceKey]int64{entity.ServiceOrders: 10, entity.ServiceReco: 3},
			wantErr: domainerror.ErrMissingRate,
		},
		{
			name:    "unknown service in usage",
			rates:   map[entity.ServiceKey]string{entity.ServiceOrders: "5"},
			usage:   map[entity.ServiceKey]int64{"teleport": 1},
			wantErr: domainerror.ErrUnknownService,
		},
		{
			name:    "nothing to bill",
			rates:   map[entity.ServiceKey]string{entity.ServiceOrders: "5"},
			usage:   map[entity.ServiceKey]int64{},
			wantErr: domainerror.ErrNothingToBill,
		},
		{
			name:          "roi for subscribed bundles with usage",
			rates:         map[entity.ServiceKey]string{entity.ServiceOrders: "5", entity.ServiceUsers: "50", entity.ServiceReco: "2"},
			bundles:       []entity.BundleKey{"oms", "reco", "dm"},
			usage:         map[entity.ServiceKey]int64{entity.ServiceOrders: 1000, entity.ServiceUsers: 50},
			wantItems:     []entity.ServiceKey{entity.ServiceOrders, entity.ServiceUsers},
			wantSubtotal:  "7500",
			wantTax:       "1350",
			wantTotal:     "8850",
			wantROIBundle: []string{"OMS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customer := newTestCustomer(tt.rates, tt.bundles...)

			calc, err := Calculate(customer, tt.usage, taxRate)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error: %v", err)
			}

			if len(calc.Items) != len(tt.wantItems) {
				t.Fatalf("got %d items, want %d", len(calc.Items), len(tt.wantItems))
			}
			for i, key := range tt.wantItems {
				if calc.Items[i].ServiceKey != key {
					t.Errorf("item %d = %s, want %s", i, calc.Items[i].ServiceKey, key)
				}
			}
			if !calc.Subtotal.Equal(dec(tt.wantSubtotal)) {
				t.Errorf("subtotal = %s, want %s", calc.Subtotal, tt.wantSubtotal)
			}
			if !calc.TaxAmount.Equal(dec(tt.wantTax)) {
				t.Errorf("tax = %s, want %s", calc.TaxAmount, tt.wantTax)
			}
			if !calc.Total.Equal(dec(tt.wantTotal)) {
				t.Errorf("total = %s, want %s", calc.Total, tt.wantTotal)
			}
			if len(calc.ROIBreakdown) != len(tt.wantROIBundle) {
				t.Fatalf("got %d roi entries, want %d", len(calc.ROIBreakdown), len(tt.wantROIBundle))
			}
			for i, name := range tt.wantROIBundle {
				if calc.ROIBreakdown[i].BundleName != name {
					t.Errorf("roi entry %d = %s, want %s", i, calc.ROIBreakdown[i].BundleName, name)
				}
			}
		})
	}
}

func TestCalculate_LineAmounts(t *testing.T) {
	customer := newTestCustomer(map[entity.ServiceKey]string{
		entity.ServiceOrders:           "2.5",
		entity.ServiceDedicatedSupport: "4000",
	})

	calc, err := Calculate(customer, map[entity.ServiceKey]int64{entity.ServiceOrders: 3}, dec("0.18"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orders := calc.Items[0]
	if orders.Type != entity.ServiceTypeVariable || orders.Code != "O" || orders.Unit != "per order" {
		t.Errorf("unexpected orders line: %+v", orders)
	}
	if !orders.Amount.Equal(dec("7.5")) {
		t.Errorf("orders amount = %s, want 7.5", orders.Amount)
	}

	support := calc.Items[1]
	if support.Type != entity.ServiceTypeFixed || support.Quantity != 1 || support.Unit != "monthly" {
		t.Errorf("unexpected fixed line: %+v", support)
	}
	if !calc.TaxAmount.Equal(dec("721.35")) {
		t.Errorf("tax = %s, want 721.35", calc.TaxAmount)
	}
}

func TestBundleROI(t *testing.T) {
	customer := newTestCustomer(nil, "oms", "oms_wms_pf", "pim")
	items := []entity.LineItem{
		{ServiceKey: entity.ServiceOrders, Amount: dec("5000")},
		{ServiceKey: entity.ServiceUsers, Amount: dec("2500")},
		{ServiceKey: entity.ServiceWarehouse, Amount: dec("1000")},
		{ServiceKey: entity.ServicePlatformFees, Amount: dec("10000")},
	}
	usage := map[entity.ServiceKey]int64{
		entity.ServiceOrders:    1000,
		entity.ServiceUsers:     50,
		entity.ServiceWarehouse: 1,
	}

	entries := BundleROI(customer, items, usage)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (pim has no usage)", len(entries))
	}

	tests := []struct {
		name         string
		entry        entity.ROIEntry
		wantRevenue  string
		wantUsage    int64
		wantWeighted string
	}{
		{name: "percentage weight", entry: entries[0], wantRevenue: "7500", wantUsage: 1050, wantWeighted: "3750"},
		{name: "flat base fee", entry: entries[1], wantRevenue: "18500", wantUsage: 1051, wantWeighted: "20000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.entry.Revenue.Equal(dec(tt.wantRevenue)) {
				t.Errorf("revenue = %s, want %s", tt.entry.Revenue, tt.wantRevenue)
			}
			if tt.entry.Usage != tt.wantUsage {
				t.Errorf("usage = %d, want %d", tt.entry.Usage, tt.wantUsage)
			}
			if !tt.entry.WeightedROI.Equal(dec(tt.wantWeighted)) {
				t.Errorf("weighted = %s, want %s", tt.entry.WeightedROI, tt.wantWeighted)
			}
			if tt.entry.InvoiceCount != 1 {
				t.Errorf("invoice count = %d, want 1", tt.entry.InvoiceCount)
			}
		})
	}
}

func TestBundleShares(t *testing.T) {
	inv := &entity.Invoice{
		Total: dec("10000"),
		ROIBreakdown: []entity.ROIEntry{
			{BundleName: "OMS", Revenue: dec("5000"), ROIWeight: dec("50")},
			{BundleName: "PIM", Revenue: dec("1000"), ROIWeight: dec("10")},
		},
	}

	shares := BundleShares(inv)
	if len(shares) != 2 {
		t.Fatalf("got %d shares, want 2", len(shares))
	}
	if !shares[0].RevenuePercentage.Equal(dec("50")) || !shares[0].WeightedContribution.Equal(dec("25")) {
		t.Errorf("unexpected OMS share: %+v", shares[0])
	}
	if !shares[1].RevenuePercentage.Equal(dec("10")) || !shares[1].WeightedContribution.Equal(dec("1")) {
		t.Errorf("unexpected PIM share: %+v", shares[1])
	}
}
