// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateTier prices a service by usage volume bracket [RangeMin, RangeMax).
// A nil RangeMax means the bracket is unbounded.
type RateTier struct {
	ID          uuid.UUID
	ServiceType ServiceKey
	TierName    string
	RangeMin    int64
	RangeMax    *int64
	Rate        decimal.Decimal
	CreatedAt   time.Time
}

// NewRateTier creates a new RateTier entity.
func NewRateTier(service ServiceKey, name string, rangeMin int64, rangeMax *int64, rate decimal.Decimal) *RateTier {
	return &RateTier{
		ID:          uuid.New(),
		ServiceType: service,
		TierName:    name,
		RangeMin:    rangeMin,
		RangeMax:    rangeMax,
		Rate:        rate,
		CreatedAt:   time.Now().UTC(),
	}
}

// Covers reports whether count falls inside the tier bracket.
func (t *RateTier) Covers(count int64) bool {
	if count < t.RangeMin {
		return false
	}
	return t.RangeMax == nil || count < *t.RangeMax
}
