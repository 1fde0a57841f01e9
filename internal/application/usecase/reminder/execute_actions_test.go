package reminder

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/application/usecase/account"
	"github.com/billing-panel/backend/internal/application/usecase/usecasetest"
	"github.com/billing-panel/backend/internal/domain/entity"
	"github.com/billing-panel/backend/internal/domain/valueobject"
)

type recordingEmailService struct {
	queued []adapter.CustomerEmailInput
}

func (r *recordingEmailService) SendPaymentRequest(context.Context, adapter.CustomerEmailInput) (*adapter.SendEmailResult, error) {
	return &adapter.SendEmailResult{ProviderID: "unused"}, nil
}

func (r *recordingEmailService) QueueCustomerNotice(_ context.Context, input adapter.CustomerEmailInput) error {
	r.queued = append(r.queued, input)
	return nil
}

func TestExecuteActions(t *testing.T) {
	store := usecasetest.NewStore()
	clock := &usecasetest.Clock{Current: checkTime}
	metrics := usecasetest.NewMetrics()

	late := entity.NewCustomer("Late Co", "late@example.com")
	reminded := entity.NewCustomer("Reminded Co", "reminded@example.com")
	lowBalance := entity.NewCustomer("Low Co", "low@example.com")
	lowBalance.MinimumBalance = decimal.NewFromInt(100)
	for _, c := range []*entity.Customer{late, reminded, lowBalance} {
		store.PutCustomer(c)
	}
	store.PutInvoice(overdueInvoice(late.ID, 20, entity.InvoiceStatusPending))
	store.PutInvoice(overdueInvoice(reminded.ID, 4, entity.InvoiceStatusPending))

	checker := NewCheckPendingInvoicesUseCase(store.Invoices(), store.Customers(), valueobject.DefaultReminderThresholds(), clock, metrics)
	emails := &recordingEmailService{}
	uc := NewExecuteActionsUseCase(
		checker,
		account.NewSuspendAccountUseCase(store.Customers(), clock, metrics),
		account.NewShutdownAccountUseCase(store.Customers(), clock, metrics),
		store.Invoices(),
		emails,
	)

	out, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, out.Classification.TotalOverdue)
	assert.Equal(t, 3, out.Succeeded)
	assert.Equal(t, 0, out.Failed)
	assert.Equal(t, entity.AccountStatusSuspended, store.Customer(late.ID).AccountStatus)
	assert.Equal(t, entity.AccountStatusActive, store.Customer(reminded.ID).AccountStatus)

	templates := make(map[entity.EmailTemplateType]string)
	for _, e := range emails.queued {
		templates[e.Template] = e.CustomerEmail
	}
	assert.Equal(t, map[entity.EmailTemplateType]string{
		entity.TemplateAccountSuspended: "late@example.com",
		entity.TemplatePaymentReminder:  "reminded@example.com",
		entity.TemplateLowBalanceAlert:  "low@example.com",
	}, templates)
	assert.Equal(t, 1, metrics.Actions[entity.ReminderSuspendAccount])
}

func TestExecuteActions_OneAccountChangePerCustomer(t *testing.T) {
	tests := []struct {
		name        string
		daysOverdue []int
		wantStatus  entity.AccountStatus
		wantNotice  entity.EmailTemplateType
	}{
		{
			name:        "two invoices at suspension level",
			daysOverdue: []int{20, 22},
			wantStatus:  entity.AccountStatusSuspended,
			wantNotice:  entity.TemplateAccountSuspended,
		},
		{
			name:        "shutdown outranks suspension",
			daysOverdue: []int{20, 35},
			wantStatus:  entity.AccountStatusShutdown,
			wantNotice:  entity.TemplateAccountShutdown,
		},
		{
			name:        "shutdown listed before suspension",
			daysOverdue: []int{35, 20},
			wantStatus:  entity.AccountStatusShutdown,
			wantNotice:  entity.TemplateAccountShutdown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := usecasetest.NewStore()
			clock := &usecasetest.Clock{Current: checkTime}
			metrics := usecasetest.NewMetrics()

			customer := entity.NewCustomer("Twice Late Co", "twice@example.com")
			store.PutCustomer(customer)
			for i, days := range tt.daysOverdue {
				inv := overdueInvoice(customer.ID, days, entity.InvoiceStatusPending)
				inv.Month = i + 1
				store.PutInvoice(inv)
			}

			checker := NewCheckPendingInvoicesUseCase(store.Invoices(), store.Customers(), valueobject.DefaultReminderThresholds(), clock, metrics)
			emails := &recordingEmailService{}
			uc := NewExecuteActionsUseCase(
				checker,
				account.NewSuspendAccountUseCase(store.Customers(), clock, metrics),
				account.NewShutdownAccountUseCase(store.Customers(), clock, metrics),
				store.Invoices(),
				emails,
			)

			out, err := uc.Execute(context.Background())
			require.NoError(t, err)

			assert.Equal(t, 1, out.Succeeded)
			assert.Equal(t, 0, out.Failed)
			assert.Equal(t, 1, out.Skipped)
			assert.Equal(t, tt.wantStatus, store.Customer(customer.ID).AccountStatus)
			assert.Equal(t, 1, metrics.StatusChanges[tt.wantStatus])

			require.Len(t, emails.queued, 1)
			assert.Equal(t, tt.wantNotice, emails.queued[0].Template)

			for _, o := range out.Outcomes {
				assert.Empty(t, o.Error)
				assert.True(t, o.Done != o.Skipped)
			}
		})
	}
}
