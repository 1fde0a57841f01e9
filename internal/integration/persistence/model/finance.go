// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// RateTierModel represents the rate_tiers table in the database.
type RateTierModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ServiceType string          `gorm:"type:varchar(50);not null;index"`
	TierName    string          `gorm:"type:varchar(100);not null"`
	RangeMin    int64           `gorm:"not null"`
	RangeMax    *int64
	Rate        decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the RateTierModel.
func (RateTierModel) TableName() string {
	return "rate_tiers"
}

// ToEntity converts a RateTierModel to a domain RateTier entity.
func (m *RateTierModel) ToEntity() *entity.RateTier {
	return &entity.RateTier{
		ID:          m.ID,
		ServiceType: entity.ServiceKey(m.ServiceType),
		TierName:    m.TierName,
		RangeMin:    m.RangeMin,
		RangeMax:    m.RangeMax,
		Rate:        m.Rate,
		CreatedAt:   m.CreatedAt,
	}
}

// RateTierModelFromEntity creates a RateTierModel from a domain RateTier entity.
func RateTierModelFromEntity(t *entity.RateTier) *RateTierModel {
	return &RateTierModel{
		ID:          t.ID,
		ServiceType: string(t.ServiceType),
		TierName:    t.TierName,
		RangeMin:    t.RangeMin,
		RangeMax:    t.RangeMax,
		Rate:        t.Rate,
		CreatedAt:   t.CreatedAt,
	}
}

// SubscriptionModel represents the subscriptions table in the database.
type SubscriptionModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PlanName   string          `gorm:"type:varchar(255);not null"`
	MRR        decimal.Decimal `gorm:"column:mrr;type:decimal(15,2);not null"`
	Status     string          `gorm:"type:varchar(20);not null;index"`
	StartDate  time.Time       `gorm:"not null"`
	EndDate    *time.Time
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for the SubscriptionModel.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToEntity converts a SubscriptionModel to a domain Subscription entity.
func (m *SubscriptionModel) ToEntity() *entity.Subscription {
	return &entity.Subscription{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		PlanName:   m.PlanName,
		MRR:        m.MRR,
		Status:     entity.SubscriptionStatus(m.Status),
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		CreatedAt:  m.CreatedAt,
	}
}

// SubscriptionModelFromEntity creates a SubscriptionModel from a domain Subscription entity.
func SubscriptionModelFromEntity(s *entity.Subscription) *SubscriptionModel {
	return &SubscriptionModel{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		PlanName:   s.PlanName,
		MRR:        s.MRR,
		Status:     string(s.Status),
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		CreatedAt:  s.CreatedAt,
	}
}

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description string          `gorm:"type:text"`
	Date        time.Time       `gorm:"not null;index"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:          m.ID,
		Category:    m.Category,
		Amount:      m.Amount,
		Description: m.Description,
		Date:        m.Date,
		CreatedAt:   m.CreatedAt,
	}
}

// ExpenseModelFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseModelFromEntity(e *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:          e.ID,
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}
