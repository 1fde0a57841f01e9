package ratetier

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

type memoryTiers struct {
	tiers []*entity.RateTier
}

func (m *memoryTiers) Create(_ context.Context, t *entity.RateTier) error {
	m.tiers = append(m.tiers, t)
	return nil
}

func (m *memoryTiers) List(_ context.Context, service entity.ServiceKey) ([]*entity.RateTier, error) {
	var out []*entity.RateTier
	for _, t := range m.tiers {
		if service == "" || t.ServiceType == service {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ServiceType != out[j].ServiceType {
			return out[i].ServiceType < out[j].ServiceType
		}
		return out[i].RangeMin < out[j].RangeMin
	})
	return out, nil
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreateRateTier(t *testing.T) {
	tests := []struct {
		name     string
		input    CreateRateTierInput
		wantCode domainerror.RateTierErrorCode
		wantName string
	}{
		{
			name:     "bounded tier gets a default name",
			input:    CreateRateTierInput{ServiceType: "orders", RangeMin: 0, RangeMax: int64Ptr(1000), Rate: decimal.NewFromInt(5)},
			wantName: "0-999",
		},
		{
			name:     "unbounded tier",
			input:    CreateRateTierInput{ServiceType: "orders", TierName: "Enterprise", RangeMin: 1000, Rate: decimal.NewFromInt(3)},
			wantName: "Enterprise",
		},
		{
			name:     "inverted range",
			input:    CreateRateTierInput{ServiceType: "orders", RangeMin: 100, RangeMax: int64Ptr(100), Rate: decimal.NewFromInt(5)},
			wantCode: domainerror.ErrCodeInvalidTierRange,
		},
		{
			name:     "zero rate",
			input:    CreateRateTierInput{ServiceType: "orders", RangeMin: 0, Rate: decimal.Zero},
			wantCode: domainerror.ErrCodeInvalidTierRate,
		},
		{
			name:     "unknown service",
			input:    CreateRateTierInput{ServiceType: "parcels", RangeMin: 0, Rate: decimal.NewFromInt(1)},
			wantCode: domainerror.ErrCodeUnknownTierService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, err := NewCreateRateTierUseCase(&memoryTiers{}).Execute(context.Background(), tt.input)
			if tt.wantCode != "" {
				var tierErr *domainerror.RateTierError
				if !errors.As(err, &tierErr) || tierErr.Code != tt.wantCode {
					t.Fatalf("expected code %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tier.TierName != tt.wantName {
				t.Errorf("name = %q, want %q", tier.TierName, tt.wantName)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	repo := &memoryTiers{}
	create := NewCreateRateTierUseCase(repo)
	ctx := context.Background()
	for _, in := range []CreateRateTierInput{
		{ServiceType: "orders", RangeMin: 1000, Rate: decimal.RequireFromString("2.5")},
		{ServiceType: "orders", RangeMin: 100, RangeMax: int64Ptr(1000), Rate: decimal.NewFromInt(4)},
		{ServiceType: "users", RangeMin: 0, Rate: decimal.NewFromInt(100)},
	} {
		if _, err := create.Execute(ctx, in); err != nil {
			t.Fatalf("seed tier: %v", err)
		}
	}

	tests := []struct {
		name       string
		count      int64
		wantAmount string
		wantErr    error
	}{
		{name: "lower bound is inclusive", count: 100, wantAmount: "400"},
		{name: "upper bound is exclusive", count: 1000, wantAmount: "2500"},
		{name: "unbounded tier", count: 5000, wantAmount: "12500"},
		{name: "below every tier", count: 10, wantErr: domainerror.ErrNoMatchingTier},
	}

	quote := NewQuoteUseCase(repo)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := quote.Execute(ctx, "orders", tt.count)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !out.Amount.Equal(decimal.RequireFromString(tt.wantAmount)) {
				t.Errorf("amount = %s, want %s", out.Amount, tt.wantAmount)
			}
		})
	}

	all, err := NewListRateTiersUseCase(repo).Execute(ctx, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("list all = %d, %v", len(all), err)
	}
	orders, err := NewListRateTiersUseCase(repo).Execute(ctx, "orders")
	if err != nil || len(orders) != 2 || orders[0].RangeMin != 100 {
		t.Fatalf("list orders = %v, %v", orders, err)
	}
}
