// Package reminder contains overdue-invoice follow-up use cases.
package reminder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/application/usecase/account"
	"github.com/billing-panel/backend/internal/domain/entity"
)

// ActionOutcome reports what happened to one recommended action.
type ActionOutcome struct {
	Action  entity.ReminderAction
	Done    bool
	Skipped bool
	Error   string
}

// ExecuteActionsOutput summarises a reminder run.
type ExecuteActionsOutput struct {
	Classification *Classification
	Outcomes       []ActionOutcome
	Succeeded      int
	Failed         int
	Skipped        int
}

// ExecuteActionsUseCase classifies open invoices and carries out the recommendations:
// reminder emails are queued, suspensions and shutdowns are applied and announced.
type ExecuteActionsUseCase struct {
	checker     *CheckPendingInvoicesUseCase
	suspend     *account.SuspendAccountUseCase
	shutdown    *account.ShutdownAccountUseCase
	invoiceRepo adapter.InvoiceRepository
	email       adapter.EmailService
}

// NewExecuteActionsUseCase creates a new ExecuteActionsUseCase instance.
func NewExecuteActionsUseCase(
	checker *CheckPendingInvoicesUseCase,
	suspend *account.SuspendAccountUseCase,
	shutdown *account.ShutdownAccountUseCase,
	invoiceRepo adapter.InvoiceRepository,
	email adapter.EmailService,
) *ExecuteActionsUseCase {
	return &ExecuteActionsUseCase{
		checker:     checker,
		suspend:     suspend,
		shutdown:    shutdown,
		invoiceRepo: invoiceRepo,
		email:       email,
	}
}

// Execute runs every action; one failing action does not stop the others.
// A customer changes account status at most once per run: only the most severe
// account action is applied and the others for that customer are skipped.
func (uc *ExecuteActionsUseCase) Execute(ctx context.Context) (*ExecuteActionsOutput, error) {
	classification, err := uc.checker.Execute(ctx)
	if err != nil {
		return nil, err
	}

	out := &ExecuteActionsOutput{
		Classification: classification,
		Outcomes:       make([]ActionOutcome, 0, len(classification.Actions)),
	}

	applied := accountActionPerCustomer(classification.Actions)

	for i, action := range classification.Actions {
		if chosen, ok := applied[action.CustomerID]; ok && isAccountAction(action.RecommendedAction) && chosen != i {
			out.Skipped++
			out.Outcomes = append(out.Outcomes, ActionOutcome{Action: action, Skipped: true})
			slog.Info("Reminder action superseded",
				"customer_id", action.CustomerID,
				"action", action.RecommendedAction,
				"applied", classification.Actions[chosen].RecommendedAction,
			)
			continue
		}

		outcome := ActionOutcome{Action: action, Done: true}
		if err := uc.perform(ctx, action); err != nil {
			outcome.Done = false
			outcome.Error = err.Error()
			out.Failed++
			slog.Error("Reminder action failed",
				"customer_id", action.CustomerID,
				"action", action.RecommendedAction,
				"error", err,
			)
		} else {
			out.Succeeded++
		}
		out.Outcomes = append(out.Outcomes, outcome)
	}

	slog.Info("Reminder actions executed",
		"total_overdue", classification.TotalOverdue,
		"succeeded", out.Succeeded,
		"failed", out.Failed,
		"skipped", out.Skipped,
	)

	return out, nil
}

func isAccountAction(a entity.ReminderActionType) bool {
	return a == entity.ReminderSuspendAccount || a == entity.ReminderShutdownAccount
}

// accountActionPerCustomer picks, per customer, the index of the account action to apply.
// Shutdown outranks suspension; among equals the most overdue invoice wins.
func accountActionPerCustomer(actions []entity.ReminderAction) map[uuid.UUID]int {
	chosen := make(map[uuid.UUID]int)
	for i, action := range actions {
		if !isAccountAction(action.RecommendedAction) {
			continue
		}
		j, ok := chosen[action.CustomerID]
		if !ok {
			chosen[action.CustomerID] = i
			continue
		}
		current := actions[j]
		switch {
		case action.RecommendedAction == entity.ReminderShutdownAccount && current.RecommendedAction != entity.ReminderShutdownAccount:
			chosen[action.CustomerID] = i
		case action.RecommendedAction == current.RecommendedAction && action.DaysOverdue > current.DaysOverdue:
			chosen[action.CustomerID] = i
		}
	}
	return chosen
}

func (uc *ExecuteActionsUseCase) perform(ctx context.Context, action entity.ReminderAction) error {
	notice := adapter.CustomerEmailInput{
		CustomerID:    action.CustomerID,
		CustomerName:  action.CustomerName,
		CustomerEmail: action.CustomerEmail,
		InvoiceID:     action.InvoiceID,
		AmountDue:     action.AmountDue.StringFixed(2),
		DaysOverdue:   action.DaysOverdue,
		Reason:        action.Reason,
	}

	if action.InvoiceID != nil {
		inv, err := uc.invoiceRepo.FindByID(ctx, *action.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}
		notice.Period = inv.Period()
		notice.DueDate = inv.DueDate.Format("02 Jan 2006")
		notice.PaymentLinkURL = inv.PaymentLinkURL
	}

	switch action.RecommendedAction {
	case entity.ReminderSendReminder:
		notice.Template = entity.TemplatePaymentReminder
	case entity.ReminderSendFinalReminder:
		notice.Template = entity.TemplateFinalReminder
	case entity.ReminderLowBalanceAlert:
		notice.Template = entity.TemplateLowBalanceAlert
	case entity.ReminderSuspendAccount:
		if _, err := uc.suspend.Execute(ctx, account.ChangeStatusInput{CustomerID: action.CustomerID, Reason: action.Reason}); err != nil {
			return err
		}
		notice.Template = entity.TemplateAccountSuspended
	case entity.ReminderShutdownAccount:
		if _, err := uc.shutdown.Execute(ctx, account.ChangeStatusInput{CustomerID: action.CustomerID, Reason: action.Reason}); err != nil {
			return err
		}
		notice.Template = entity.TemplateAccountShutdown
	default:
		return fmt.Errorf("unsupported reminder action %q", action.RecommendedAction)
	}

	return uc.email.QueueCustomerNotice(ctx, notice)
}
