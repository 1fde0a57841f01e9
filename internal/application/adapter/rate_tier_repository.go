// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// RateTierRepository defines the interface for rate tier persistence operations.
type RateTierRepository interface {
	// Create stores a new rate tier.
	Create(ctx context.Context, tier *entity.RateTier) error

	// List returns tiers ordered by service and range_min; an empty service returns all.
	List(ctx context.Context, service entity.ServiceKey) ([]*entity.RateTier, error)
}
