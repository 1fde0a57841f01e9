package reminder

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/domain/entity"
	"github.com/billing-panel/backend/internal/domain/valueobject"
)

var checkTime = time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

func overdueInvoice(customerID uuid.UUID, daysOverdue int, status entity.InvoiceStatus) *entity.Invoice {
	return &entity.Invoice{
		ID:         uuid.New(),
		CustomerID: customerID,
		Year:       2024,
		Month:      2,
		Total:      decimal.NewFromInt(1180),
		PaidAmount: decimal.Zero,
		Status:     status,
		DueDate:    checkTime.Add(-time.Duration(daysOverdue) * 24 * time.Hour).Add(-time.Hour),
	}
}

func TestActionFor(t *testing.T) {
	thresholds := valueobject.DefaultReminderThresholds()

	tests := []struct {
		days   int
		want   entity.ReminderActionType
		wantOK bool
	}{
		{days: 0, wantOK: false},
		{days: 2, wantOK: false},
		{days: 3, want: entity.ReminderSendReminder, wantOK: true},
		{days: 6, want: entity.ReminderSendReminder, wantOK: true},
		{days: 7, want: entity.ReminderSendFinalReminder, wantOK: true},
		{days: 14, want: entity.ReminderSendFinalReminder, wantOK: true},
		{days: 15, want: entity.ReminderSuspendAccount, wantOK: true},
		{days: 20, want: entity.ReminderSuspendAccount, wantOK: true},
		{days: 29, want: entity.ReminderSuspendAccount, wantOK: true},
		{days: 30, want: entity.ReminderShutdownAccount, wantOK: true},
		{days: 35, want: entity.ReminderShutdownAccount, wantOK: true},
	}

	for _, tt := range tests {
		got, ok := ActionFor(tt.days, thresholds)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ActionFor(%d) = (%q, %v), want (%q, %v)", tt.days, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestClassify(t *testing.T) {
	thresholds := valueobject.DefaultReminderThresholds()

	tests := []struct {
		name             string
		accountStatus    entity.AccountStatus
		daysOverdue      int
		invoiceStatus    entity.InvoiceStatus
		wantTotalOverdue int
		wantActions      []entity.ReminderActionType
	}{
		{name: "20 days overdue suspends", accountStatus: entity.AccountStatusActive, daysOverdue: 20, invoiceStatus: entity.InvoiceStatusPending, wantTotalOverdue: 1, wantActions: []entity.ReminderActionType{entity.ReminderSuspendAccount}},
		{name: "35 days overdue shuts down", accountStatus: entity.AccountStatusSuspended, daysOverdue: 35, invoiceStatus: entity.InvoiceStatusPartiallyPaid, wantTotalOverdue: 1, wantActions: []entity.ReminderActionType{entity.ReminderShutdownAccount}},
		{name: "2 days overdue is counted only", accountStatus: entity.AccountStatusActive, daysOverdue: 2, invoiceStatus: entity.InvoiceStatusPending, wantTotalOverdue: 1},
		{name: "paid invoices are skipped", accountStatus: entity.AccountStatusActive, daysOverdue: 40, invoiceStatus: entity.InvoiceStatusPaid},
		{name: "already suspended is not suspended again", accountStatus: entity.AccountStatusSuspended, daysOverdue: 16, invoiceStatus: entity.InvoiceStatusPending, wantTotalOverdue: 1},
		{name: "already suspended stays quiet until shutdown", accountStatus: entity.AccountStatusSuspended, daysOverdue: 29, invoiceStatus: entity.InvoiceStatusPending, wantTotalOverdue: 1},
		{name: "shutdown accounts get nothing", accountStatus: entity.AccountStatusShutdown, daysOverdue: 45, invoiceStatus: entity.InvoiceStatusPending, wantTotalOverdue: 1},
		{name: "not yet due", accountStatus: entity.AccountStatusActive, daysOverdue: -3, invoiceStatus: entity.InvoiceStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customer := entity.NewCustomer("Acme", "acme@example.com")
			customer.AccountStatus = tt.accountStatus
			inv := overdueInvoice(customer.ID, tt.daysOverdue, tt.invoiceStatus)

			got := Classify(checkTime, []*entity.Invoice{inv}, map[uuid.UUID]*entity.Customer{customer.ID: customer}, thresholds)

			if got.TotalOverdue != tt.wantTotalOverdue {
				t.Errorf("TotalOverdue = %d, want %d", got.TotalOverdue, tt.wantTotalOverdue)
			}
			if len(got.Actions) != len(tt.wantActions) {
				t.Fatalf("got %d actions, want %d", len(got.Actions), len(tt.wantActions))
			}
			for i, want := range tt.wantActions {
				a := got.Actions[i]
				if a.RecommendedAction != want {
					t.Errorf("action %d = %s, want %s", i, a.RecommendedAction, want)
				}
				if a.InvoiceID == nil || *a.InvoiceID != inv.ID {
					t.Errorf("action %d missing invoice id", i)
				}
				if a.DaysOverdue != tt.daysOverdue {
					t.Errorf("days overdue = %d, want %d", a.DaysOverdue, tt.daysOverdue)
				}
			}
			if !got.CheckedAt.Equal(checkTime) {
				t.Errorf("CheckedAt = %v, want %v", got.CheckedAt, checkTime)
			}
		})
	}
}

func TestClassify_LowBalance(t *testing.T) {
	low := entity.NewCustomer("Low Co", "low@example.com")
	low.MinimumBalance = decimal.NewFromInt(5000)
	low.Balance = decimal.NewFromInt(1200)

	fine := entity.NewCustomer("Fine Co", "fine@example.com")
	fine.MinimumBalance = decimal.NewFromInt(5000)
	fine.Balance = decimal.NewFromInt(6000)

	noFloor := entity.NewCustomer("No Floor", "nofloor@example.com")
	noFloor.Balance = decimal.NewFromInt(-10)

	customers := map[uuid.UUID]*entity.Customer{low.ID: low, fine.ID: fine, noFloor.ID: noFloor}
	got := Classify(checkTime, nil, customers, valueobject.DefaultReminderThresholds())

	if got.TotalOverdue != 0 {
		t.Errorf("TotalOverdue = %d, want 0", got.TotalOverdue)
	}
	if len(got.Actions) != 1 {
		t.Fatalf("got %d actions, want 1", len(got.Actions))
	}
	a := got.Actions[0]
	if a.RecommendedAction != entity.ReminderLowBalanceAlert || a.CustomerID != low.ID {
		t.Errorf("unexpected action %+v", a)
	}
	if a.InvoiceID != nil {
		t.Error("low balance alert must not reference an invoice")
	}
	if !a.AmountDue.Equal(decimal.NewFromInt(3800)) {
		t.Errorf("shortfall = %s, want 3800", a.AmountDue)
	}
}
