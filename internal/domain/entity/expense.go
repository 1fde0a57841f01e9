// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is an operating cost deducted from revenue in analytics.
type Expense struct {
	ID          uuid.UUID
	Category    string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(category string, amount decimal.Decimal, description string, date time.Time) *Expense {
	return &Expense{
		ID:          uuid.New(),
		Category:    category,
		Amount:      amount,
		Description: description,
		Date:        date.UTC(),
		CreatedAt:   time.Now().UTC(),
	}
}
