// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UsageLog records a usage count for one service in one billing period.
// Logs are immutable; several logs for the same service and period are summed.
type UsageLog struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Service    ServiceKey
	Count      int64
	Year       int
	Month      int
	LoggedAt   time.Time
}

// NewUsageLog creates a new UsageLog entity.
func NewUsageLog(customerID uuid.UUID, service ServiceKey, count int64, year, month int) *UsageLog {
	return &UsageLog{
		ID:         uuid.New(),
		CustomerID: customerID,
		Service:    service,
		Count:      count,
		Year:       year,
		Month:      month,
		LoggedAt:   time.Now().UTC(),
	}
}

// SumUsage aggregates logs into a per-service total.
func SumUsage(logs []*UsageLog) map[ServiceKey]int64 {
	totals := make(map[ServiceKey]int64)
	for _, l := range logs {
		totals[l.Service] += l.Count
	}
	return totals
}
