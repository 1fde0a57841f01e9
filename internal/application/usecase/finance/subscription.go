// Package finance contains subscription and expense use cases.
package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

// CreateSubscriptionInput represents the input for creating a subscription.
type CreateSubscriptionInput struct {
	CustomerID uuid.UUID
	PlanName   string
	MRR        decimal.Decimal
	Status     string
}

// CreateSubscriptionUseCase handles subscription creation.
type CreateSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	customerRepo     adapter.CustomerRepository
	clock            adapter.Clock
}

// NewCreateSubscriptionUseCase creates a new CreateSubscriptionUseCase instance.
func NewCreateSubscriptionUseCase(
	subscriptionRepo adapter.SubscriptionRepository,
	customerRepo adapter.CustomerRepository,
	clock adapter.Clock,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		customerRepo:     customerRepo,
		clock:            clock,
	}
}

// Execute validates and stores the subscription.
func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, input CreateSubscriptionInput) (*entity.Subscription, error) {
	planName := strings.TrimSpace(input.PlanName)
	if planName == "" {
		return nil, domainerror.NewFinanceError(
			domainerror.ErrCodeInvalidPlanName,
			"plan name is required",
			domainerror.ErrInvalidPlanName,
		)
	}

	if input.MRR.IsNegative() {
		return nil, domainerror.NewFinanceError(
			domainerror.ErrCodeInvalidMRR,
			"mrr must not be negative",
			domainerror.ErrInvalidMRR,
		)
	}

	status := entity.SubscriptionStatusActive
	if input.Status != "" {
		status = entity.SubscriptionStatus(input.Status)
	}
	if !status.IsValid() {
		return nil, domainerror.NewFinanceError(
			domainerror.ErrCodeInvalidSubscriptionStatus,
			fmt.Sprintf("invalid subscription status %q", input.Status),
			domainerror.ErrInvalidSubscriptionStatus,
		)
	}

	if _, err := uc.customerRepo.FindByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, domainerror.ErrCustomerNotFound) {
			return nil, domainerror.NewFinanceError(
				domainerror.ErrCodeSubscriptionCustomer,
				"customer not found",
				domainerror.ErrCustomerNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	subscription := entity.NewSubscription(input.CustomerID, planName, input.MRR.Round(2), status)
	now := uc.clock.Now().UTC()
	subscription.StartDate = now
	subscription.CreatedAt = now

	if err := uc.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return subscription, nil
}

// ListSubscriptionsUseCase lists subscriptions.
type ListSubscriptionsUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewListSubscriptionsUseCase creates a new ListSubscriptionsUseCase instance.
func NewListSubscriptionsUseCase(subscriptionRepo adapter.SubscriptionRepository) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{subscriptionRepo: subscriptionRepo}
}

// Execute returns subscriptions with the given status, or all when status is empty.
func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, status string) ([]*entity.Subscription, error) {
	s := entity.SubscriptionStatus(status)
	if status != "" && !s.IsValid() {
		return nil, domainerror.NewFinanceError(
			domainerror.ErrCodeInvalidSubscriptionStatus,
			fmt.Sprintf("invalid subscription status %q", status),
			domainerror.ErrInvalidSubscriptionStatus,
		)
	}

	subscriptions, err := uc.subscriptionRepo.List(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subscriptions, nil
}
