// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionStatus represents the state of a recurring plan.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// IsValid reports whether the status is known.
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusCancelled, SubscriptionStatusExpired:
		return true
	}
	return false
}

// Subscription is a customer's recurring plan contributing to MRR.
type Subscription struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	PlanName   string
	MRR        decimal.Decimal
	Status     SubscriptionStatus
	StartDate  time.Time
	EndDate    *time.Time
	CreatedAt  time.Time
}

// NewSubscription creates a new Subscription starting now.
func NewSubscription(customerID uuid.UUID, planName string, mrr decimal.Decimal, status SubscriptionStatus) *Subscription {
	now := time.Now().UTC()
	return &Subscription{
		ID:         uuid.New(),
		CustomerID: customerID,
		PlanName:   planName,
		MRR:        mrr,
		Status:     status,
		StartDate:  now,
		CreatedAt:  now,
	}
}
