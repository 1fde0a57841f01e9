// Package reminder contains overdue-invoice follow-up use cases.
package reminder

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/domain/entity"
	"github.com/billing-panel/backend/internal/domain/valueobject"
)

// Classification is the outcome of one reminder check.
type Classification struct {
	TotalOverdue int
	Actions      []entity.ReminderAction
	CheckedAt    time.Time
}

// ActionFor maps days overdue onto the reminder ladder. The second result is
// false below the first threshold.
func ActionFor(daysOverdue int, t valueobject.ReminderThresholds) (entity.ReminderActionType, bool) {
	switch {
	case daysOverdue >= t.ShutdownDays:
		return entity.ReminderShutdownAccount, true
	case daysOverdue >= t.SuspendDays:
		return entity.ReminderSuspendAccount, true
	case daysOverdue >= t.FinalReminderDays:
		return entity.ReminderSendFinalReminder, true
	case daysOverdue >= t.ReminderDays:
		return entity.ReminderSendReminder, true
	default:
		return "", false
	}
}

// Classify recommends follow-ups for open invoices and low balances.
// It reads nothing but its arguments.
func Classify(now time.Time, invoices []*entity.Invoice, customers map[uuid.UUID]*entity.Customer, thresholds valueobject.ReminderThresholds) Classification {
	result := Classification{
		Actions:   make([]entity.ReminderAction, 0),
		CheckedAt: now,
	}

	for _, inv := range invoices {
		if !inv.IsOpen() {
			continue
		}
		days := inv.DaysOverdue(now)
		if days <= 0 {
			continue
		}
		result.TotalOverdue++

		customer, ok := customers[inv.CustomerID]
		if !ok || customer.AccountStatus == entity.AccountStatusShutdown {
			continue
		}

		action, ok := ActionFor(days, thresholds)
		if !ok {
			continue
		}
		if action == entity.ReminderSuspendAccount && customer.AccountStatus == entity.AccountStatusSuspended {
			continue
		}

		invoiceID := inv.ID
		result.Actions = append(result.Actions, entity.ReminderAction{
			CustomerID:        customer.ID,
			CustomerName:      customer.Name,
			CustomerEmail:     customer.Email,
			InvoiceID:         &invoiceID,
			AmountDue:         inv.Outstanding(),
			DaysOverdue:       days,
			RecommendedAction: action,
			Reason:            fmt.Sprintf("Invoice %s overdue by %d days", inv.Period(), days),
		})
	}

	lowBalance := make([]*entity.Customer, 0)
	for _, customer := range customers {
		if customer.AccountStatus != entity.AccountStatusShutdown && customer.IsBelowMinimumBalance() {
			lowBalance = append(lowBalance, customer)
		}
	}
	sort.Slice(lowBalance, func(i, j int) bool { return lowBalance[i].Name < lowBalance[j].Name })

	for _, customer := range lowBalance {
		result.Actions = append(result.Actions, entity.ReminderAction{
			CustomerID:        customer.ID,
			CustomerName:      customer.Name,
			CustomerEmail:     customer.Email,
			AmountDue:         customer.MinimumBalance.Sub(customer.Balance),
			RecommendedAction: entity.ReminderLowBalanceAlert,
			Reason: fmt.Sprintf("Balance %s below minimum %s",
				customer.Balance.StringFixed(2), customer.MinimumBalance.StringFixed(2)),
		})
	}

	return result
}
