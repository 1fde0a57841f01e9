// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReminderActionType is the recommended follow-up for an overdue invoice or a low balance.
type ReminderActionType string

const (
	ReminderSendReminder      ReminderActionType = "send_reminder"
	ReminderSendFinalReminder ReminderActionType = "send_final_reminder"
	ReminderSuspendAccount    ReminderActionType = "suspend_account"
	ReminderShutdownAccount   ReminderActionType = "shutdown_account"
	ReminderLowBalanceAlert   ReminderActionType = "send_low_balance_alert"
)

// ReminderAction is a derived recommendation; it is never persisted.
// InvoiceID is nil for low-balance alerts.
type ReminderAction struct {
	CustomerID        uuid.UUID
	CustomerName      string
	CustomerEmail     string
	InvoiceID         *uuid.UUID
	AmountDue         decimal.Decimal
	DaysOverdue       int
	RecommendedAction ReminderActionType
	Reason            string
}
