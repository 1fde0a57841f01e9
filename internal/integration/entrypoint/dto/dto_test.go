package dto

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/domain/entity"
)

func newBindingValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterCatalogValidators(v); err != nil {
		t.Fatalf("failed to register validators: %v", err)
	}
	return v
}

func TestCatalogValidators(t *testing.T) {
	v := newBindingValidator(t)

	tests := []struct {
		name    string
		req     any
		wantErr bool
	}{
		{
			name:    "known service",
			req:     LogUsageRequest{CustomerID: uuid.NewString(), Service: "orders", Count: 10, Year: 2024, Month: 3},
			wantErr: false,
		},
		{
			name:    "unknown service",
			req:     LogUsageRequest{CustomerID: uuid.NewString(), Service: "teleport", Count: 10, Year: 2024, Month: 3},
			wantErr: true,
		},
		{
			name:    "month out of range",
			req:     LogUsageRequest{CustomerID: uuid.NewString(), Service: "orders", Year: 2024, Month: 13},
			wantErr: true,
		},
		{
			name: "valid customer",
			req: CreateCustomerRequest{
				Name:        "Acme",
				Email:       "billing@acme.test",
				RateCard:    map[string]decimal.Decimal{"orders": decimal.NewFromFloat(1.5)},
				Bundles:     []string{"oms"},
				UsageLimits: map[string]int64{"users": 10},
			},
			wantErr: false,
		},
		{
			name: "unknown rate card key",
			req: CreateCustomerRequest{
				Name:     "Acme",
				Email:    "billing@acme.test",
				RateCard: map[string]decimal.Decimal{"bogus": decimal.NewFromInt(1)},
			},
			wantErr: true,
		},
		{
			name: "unknown bundle",
			req: CreateCustomerRequest{
				Name:    "Acme",
				Email:   "billing@acme.test",
				Bundles: []string{"everything"},
			},
			wantErr: true,
		},
		{
			name:    "quote for known service",
			req:     QuoteQuery{ServiceType: "orders", Count: 500},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10", 10},
		{"10.005", 10.01},
		{"1180.499", 1180.5},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Money(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Errorf("Money(%s) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToInvoiceResponse(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Year:       2024,
		Month:      3,
		Items: []entity.LineItem{
			{ServiceKey: entity.ServiceOrders, Service: "Orders", Quantity: 100, Rate: decimal.NewFromInt(10), Amount: decimal.NewFromInt(1000)},
		},
		Subtotal:   decimal.NewFromInt(1000),
		TaxRate:    decimal.RequireFromString("0.18"),
		TaxAmount:  decimal.NewFromInt(180),
		Total:      decimal.NewFromInt(1180),
		PaidAmount: decimal.NewFromInt(500),
		Status:     entity.InvoiceStatusPartiallyPaid,
		DueDate:    now.AddDate(0, 0, 30),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	resp := ToInvoiceResponse(inv)

	if resp.Period != "2024-03" {
		t.Errorf("Period = %q, want 2024-03", resp.Period)
	}
	if resp.Outstanding != 680 {
		t.Errorf("Outstanding = %v, want 680", resp.Outstanding)
	}
	if resp.Status != "partially_paid" {
		t.Errorf("Status = %q", resp.Status)
	}
	if len(resp.Items) != 1 || resp.Items[0].ServiceKey != "orders" {
		t.Errorf("Items = %+v", resp.Items)
	}
	if resp.Payments == nil || resp.ROIBreakdown == nil {
		t.Error("expected empty slices instead of nil")
	}
}
