// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// UsageRepository defines the interface for usage log persistence and aggregation.
type UsageRepository interface {
	// Create stores an immutable usage log.
	Create(ctx context.Context, log *entity.UsageLog) error

	// ListByCustomerPeriod returns the raw logs of a customer for a period.
	ListByCustomerPeriod(ctx context.Context, customerID uuid.UUID, year, month int) ([]*entity.UsageLog, error)

	// SumByCustomerPeriod returns per-service totals for a customer and period.
	SumByCustomerPeriod(ctx context.Context, customerID uuid.UUID, year, month int) (map[entity.ServiceKey]int64, error)

	// SumByPeriod returns per-customer, per-service totals for a period.
	SumByPeriod(ctx context.Context, year, month int) (map[uuid.UUID]map[entity.ServiceKey]int64, error)
}
