package dto

import (
	"time"

	"github.com/billing-panel/backend/internal/application/usecase/reminder"
	"github.com/billing-panel/backend/internal/domain/entity"
)

// ReminderActionResponse is one recommended follow-up.
type ReminderActionResponse struct {
	CustomerID        string  `json:"customer_id"`
	CustomerName      string  `json:"customer_name"`
	CustomerEmail     string  `json:"customer_email"`
	InvoiceID         *string `json:"invoice_id,omitempty"`
	AmountDue         float64 `json:"amount_due"`
	DaysOverdue       int     `json:"days_overdue"`
	RecommendedAction string  `json:"recommended_action"`
	Reason            string  `json:"reason"`
}

// PendingInvoicesResponse is the classification of overdue invoices and low balances.
type PendingInvoicesResponse struct {
	TotalOverdue int                      `json:"total_overdue"`
	Actions      []ReminderActionResponse `json:"actions"`
	CheckedAt    time.Time                `json:"checked_at"`
}

// ToReminderActionResponse converts a domain ReminderAction.
func ToReminderActionResponse(a entity.ReminderAction) ReminderActionResponse {
	resp := ReminderActionResponse{
		CustomerID:        a.CustomerID.String(),
		CustomerName:      a.CustomerName,
		CustomerEmail:     a.CustomerEmail,
		AmountDue:         Money(a.AmountDue),
		DaysOverdue:       a.DaysOverdue,
		RecommendedAction: string(a.RecommendedAction),
		Reason:            a.Reason,
	}
	if a.InvoiceID != nil {
		id := a.InvoiceID.String()
		resp.InvoiceID = &id
	}
	return resp
}

// ToPendingInvoicesResponse converts a Classification.
func ToPendingInvoicesResponse(c *reminder.Classification) PendingInvoicesResponse {
	actions := make([]ReminderActionResponse, len(c.Actions))
	for i, a := range c.Actions {
		actions[i] = ToReminderActionResponse(a)
	}
	return PendingInvoicesResponse{
		TotalOverdue: c.TotalOverdue,
		Actions:      actions,
		CheckedAt:    c.CheckedAt,
	}
}
