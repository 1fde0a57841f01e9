// Package account contains customer account lifecycle use cases.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

// ChangeStatusInput represents the input for an account status change.
type ChangeStatusInput struct {
	CustomerID uuid.UUID
	Reason     string
}

// ChangeStatusOutput represents the output of an account status change.
type ChangeStatusOutput struct {
	Customer       *entity.Customer
	PreviousStatus entity.AccountStatus
}

type transition func(c *entity.Customer, reason string, at time.Time) error

type statusChanger struct {
	customerRepo adapter.CustomerRepository
	clock        adapter.Clock
	metrics      adapter.BillingMetrics
}

func (s statusChanger) change(ctx context.Context, input ChangeStatusInput, apply transition) (*ChangeStatusOutput, error) {
	customer, err := s.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCustomerNotFound) {
			return nil, domainerror.NewCustomerError(
				domainerror.ErrCodeCustomerNotFound,
				"customer not found",
				domainerror.ErrCustomerNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	previous := customer.AccountStatus
	if err := apply(customer, input.Reason, s.clock.Now()); err != nil {
		return nil, transitionError(previous, err)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer status: %w", err)
	}

	s.metrics.AccountStatusChanged(customer.AccountStatus)
	slog.Info("Account status changed",
		"customer_id", customer.ID,
		"from", previous,
		"to", customer.AccountStatus,
		"reason", customer.StatusReason,
	)

	return &ChangeStatusOutput{Customer: customer, PreviousStatus: previous}, nil
}

func transitionError(from entity.AccountStatus, err error) error {
	if errors.Is(err, domainerror.ErrMissingStatusReason) {
		return domainerror.NewCustomerError(
			domainerror.ErrCodeMissingStatusReason,
			"a reason is required",
			err,
		)
	}
	return domainerror.NewCustomerError(
		domainerror.ErrCodeInvalidAccountTransition,
		fmt.Sprintf("transition not allowed from %s", from),
		err,
	)
}

// SuspendAccountUseCase moves an active account to suspended.
type SuspendAccountUseCase struct{ statusChanger }

// NewSuspendAccountUseCase creates a new SuspendAccountUseCase instance.
func NewSuspendAccountUseCase(customerRepo adapter.CustomerRepository, clock adapter.Clock, metrics adapter.BillingMetrics) *SuspendAccountUseCase {
	return &SuspendAccountUseCase{statusChanger{customerRepo: customerRepo, clock: clock, metrics: metrics}}
}

// Execute performs the suspension.
func (uc *SuspendAccountUseCase) Execute(ctx context.Context, input ChangeStatusInput) (*ChangeStatusOutput, error) {
	return uc.change(ctx, input, (*entity.Customer).Suspend)
}

// ShutdownAccountUseCase moves an active or suspended account to shutdown.
type ShutdownAccountUseCase struct{ statusChanger }

// NewShutdownAccountUseCase creates a new ShutdownAccountUseCase instance.
func NewShutdownAccountUseCase(customerRepo adapter.CustomerRepository, clock adapter.Clock, metrics adapter.BillingMetrics) *ShutdownAccountUseCase {
	return &ShutdownAccountUseCase{statusChanger{customerRepo: customerRepo, clock: clock, metrics: metrics}}
}

// Execute performs the shutdown.
func (uc *ShutdownAccountUseCase) Execute(ctx context.Context, input ChangeStatusInput) (*ChangeStatusOutput, error) {
	return uc.change(ctx, input, (*entity.Customer).Shutdown)
}

// ReactivateAccountUseCase returns a suspended or shutdown account to active.
type ReactivateAccountUseCase struct{ statusChanger }

// NewReactivateAccountUseCase creates a new ReactivateAccountUseCase instance.
func NewReactivateAccountUseCase(customerRepo adapter.CustomerRepository, clock adapter.Clock, metrics adapter.BillingMetrics) *ReactivateAccountUseCase {
	return &ReactivateAccountUseCase{statusChanger{customerRepo: customerRepo, clock: clock, metrics: metrics}}
}

// Execute performs the reactivation. An empty reason is recorded as "manual reactivation".
func (uc *ReactivateAccountUseCase) Execute(ctx context.Context, input ChangeStatusInput) (*ChangeStatusOutput, error) {
	if input.Reason == "" {
		input.Reason = "manual reactivation"
	}
	return uc.change(ctx, input, (*entity.Customer).Reactivate)
}
