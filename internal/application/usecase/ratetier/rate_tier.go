// Package ratetier contains volume pricing use cases.
package ratetier

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

// CreateRateTierInput represents the input for creating a rate tier.
type CreateRateTierInput struct {
	ServiceType string
	TierName    string
	RangeMin    int64
	RangeMax    *int64
	Rate        decimal.Decimal
}

// CreateRateTierUseCase handles rate tier creation.
type CreateRateTierUseCase struct {
	tierRepo adapter.RateTierRepository
}

// NewCreateRateTierUseCase creates a new CreateRateTierUseCase instance.
func NewCreateRateTierUseCase(tierRepo adapter.RateTierRepository) *CreateRateTierUseCase {
	return &CreateRateTierUseCase{tierRepo: tierRepo}
}

// Execute validates and stores the tier.
func (uc *CreateRateTierUseCase) Execute(ctx context.Context, input CreateRateTierInput) (*entity.RateTier, error) {
	service, err := lookupService(input.ServiceType)
	if err != nil {
		return nil, err
	}

	if input.RangeMin < 0 || (input.RangeMax != nil && *input.RangeMax <= input.RangeMin) {
		return nil, domainerror.NewRateTierError(
			domainerror.ErrCodeInvalidTierRange,
			"range_max must be greater than range_min",
			domainerror.ErrInvalidTierRange,
		)
	}

	if !input.Rate.IsPositive() {
		return nil, domainerror.NewRateTierError(
			domainerror.ErrCodeInvalidTierRate,
			"rate must be positive",
			domainerror.ErrInvalidTierRate,
		)
	}

	name := strings.TrimSpace(input.TierName)
	if name == "" {
		name = defaultTierName(input.RangeMin, input.RangeMax)
	}

	tier := entity.NewRateTier(service, name, input.RangeMin, input.RangeMax, input.Rate)
	if err := uc.tierRepo.Create(ctx, tier); err != nil {
		return nil, fmt.Errorf("failed to create rate tier: %w", err)
	}
	return tier, nil
}

func defaultTierName(min int64, max *int64) string {
	if max == nil {
		return fmt.Sprintf("%d+", min)
	}
	return fmt.Sprintf("%d-%d", min, *max-1)
}

// ListRateTiersUseCase lists tiers, optionally for one service.
type ListRateTiersUseCase struct {
	tierRepo adapter.RateTierRepository
}

// NewListRateTiersUseCase creates a new ListRateTiersUseCase instance.
func NewListRateTiersUseCase(tierRepo adapter.RateTierRepository) *ListRateTiersUseCase {
	return &ListRateTiersUseCase{tierRepo: tierRepo}
}

// Execute returns the tiers; an empty service returns every tier.
func (uc *ListRateTiersUseCase) Execute(ctx context.Context, serviceType string) ([]*entity.RateTier, error) {
	var service entity.ServiceKey
	if serviceType != "" {
		s, err := lookupService(serviceType)
		if err != nil {
			return nil, err
		}
		service = s
	}

	tiers, err := uc.tierRepo.List(ctx, service)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate tiers: %w", err)
	}
	return tiers, nil
}

// QuoteOutput is the price of a usage count under the matching tier.
type QuoteOutput struct {
	Tier   *entity.RateTier
	Count  int64
	Amount decimal.Decimal
}

// QuoteUseCase prices a usage count against the configured tiers.
type QuoteUseCase struct {
	tierRepo adapter.RateTierRepository
}

// NewQuoteUseCase creates a new QuoteUseCase instance.
func NewQuoteUseCase(tierRepo adapter.RateTierRepository) *QuoteUseCase {
	return &QuoteUseCase{tierRepo: tierRepo}
}

// Execute finds the tier covering count and returns count x rate.
func (uc *QuoteUseCase) Execute(ctx context.Context, serviceType string, count int64) (*QuoteOutput, error) {
	service, err := lookupService(serviceType)
	if err != nil {
		return nil, err
	}

	tiers, err := uc.tierRepo.List(ctx, service)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate tiers: %w", err)
	}

	for _, tier := range tiers {
		if tier.Covers(count) {
			return &QuoteOutput{
				Tier:   tier,
				Count:  count,
				Amount: tier.Rate.Mul(decimal.NewFromInt(count)).Round(2),
			}, nil
		}
	}

	return nil, domainerror.NewRateTierError(
		domainerror.ErrCodeNoMatchingTier,
		fmt.Sprintf("no %s tier covers %d", service, count),
		domainerror.ErrNoMatchingTier,
	)
}

func lookupService(key string) (entity.ServiceKey, error) {
	def, ok := entity.LookupService(key)
	if !ok {
		return "", domainerror.NewRateTierError(
			domainerror.ErrCodeUnknownTierService,
			fmt.Sprintf("unknown service %q", key),
			domainerror.ErrUnknownService,
		)
	}
	return def.Key, nil
}
