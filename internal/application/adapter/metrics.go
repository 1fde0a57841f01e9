// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// BillingMetrics records business events for monitoring.
type BillingMetrics interface {
	InvoiceGenerated()
	PaymentRecorded(method entity.PaymentMethod, amount decimal.Decimal)
	AccountStatusChanged(status entity.AccountStatus)
	ReminderActionsFound(action entity.ReminderActionType, count int)
}
