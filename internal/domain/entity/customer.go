// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

// AccountStatus represents the lifecycle state of a customer account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusShutdown  AccountStatus = "shutdown"
)

// Customer permission keys.
const (
	PermissionViewInvoices      = "view_invoices"
	PermissionViewReports       = "view_reports"
	PermissionMakePayments      = "make_payments"
	PermissionViewSubscriptions = "view_subscriptions"
	PermissionViewDashboard     = "view_dashboard"
	PermissionViewAnalytics     = "view_analytics"
)

// Customer represents a billed customer with its pricing configuration.
type Customer struct {
	ID              uuid.UUID
	Name            string
	Email           string
	Phone           string
	Company         string
	RateCard        map[ServiceKey]decimal.Decimal
	Bundles         []BundleKey
	UsageLimits     map[ServiceKey]int64
	MinimumBalance  decimal.Decimal
	Balance         decimal.Decimal
	AccountStatus   AccountStatus
	StatusReason    string
	StatusChangedAt *time.Time
	Permissions     map[string]bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewCustomer creates an active Customer with default permissions and an empty rate card.
func NewCustomer(name, email string) *Customer {
	now := time.Now().UTC()
	return &Customer{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		RateCard:       make(map[ServiceKey]decimal.Decimal),
		Bundles:        []BundleKey{},
		UsageLimits:    make(map[ServiceKey]int64),
		MinimumBalance: decimal.Zero,
		Balance:        decimal.Zero,
		AccountStatus:  AccountStatusActive,
		Permissions:    DefaultPermissions(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// DefaultPermissions returns the permissions granted to a new customer.
func DefaultPermissions() map[string]bool {
	return map[string]bool{
		PermissionViewInvoices:      true,
		PermissionViewReports:       false,
		PermissionMakePayments:      false,
		PermissionViewSubscriptions: true,
		PermissionViewDashboard:     true,
		PermissionViewAnalytics:     false,
	}
}

// Rate returns the configured unit price for a service.
func (c *Customer) Rate(service ServiceKey) (decimal.Decimal, bool) {
	rate, ok := c.RateCard[service]
	return rate, ok
}

// HasBundle reports whether the customer subscribes to the bundle.
func (c *Customer) HasBundle(key BundleKey) bool {
	for _, b := range c.Bundles {
		if b == key {
			return true
		}
	}
	return false
}

// IsBelowMinimumBalance reports whether the balance has dropped under the configured floor.
func (c *Customer) IsBelowMinimumBalance() bool {
	return c.MinimumBalance.IsPositive() && c.Balance.LessThan(c.MinimumBalance)
}

// Suspend moves an active account to suspended.
func (c *Customer) Suspend(reason string, at time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return domainerror.ErrMissingStatusReason
	}
	if c.AccountStatus != AccountStatusActive {
		return domainerror.ErrInvalidAccountTransition
	}
	c.setStatus(AccountStatusSuspended, reason, at)
	return nil
}

// Shutdown moves an active or suspended account to shutdown.
func (c *Customer) Shutdown(reason string, at time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return domainerror.ErrMissingStatusReason
	}
	if c.AccountStatus == AccountStatusShutdown {
		return domainerror.ErrInvalidAccountTransition
	}
	c.setStatus(AccountStatusShutdown, reason, at)
	return nil
}

// Reactivate moves a suspended or shutdown account back to active.
func (c *Customer) Reactivate(reason string, at time.Time) error {
	if c.AccountStatus == AccountStatusActive {
		return domainerror.ErrInvalidAccountTransition
	}
	c.setStatus(AccountStatusActive, reason, at)
	return nil
}

func (c *Customer) setStatus(status AccountStatus, reason string, at time.Time) {
	at = at.UTC()
	c.AccountStatus = status
	c.StatusReason = reason
	c.StatusChangedAt = &at
	c.UpdatedAt = at
}
