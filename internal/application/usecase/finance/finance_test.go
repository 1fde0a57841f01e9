package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/usecase/usecasetest"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

type memorySubscriptions struct {
	items []*entity.Subscription
}

func (m *memorySubscriptions) Create(_ context.Context, s *entity.Subscription) error {
	m.items = append(m.items, s)
	return nil
}

func (m *memorySubscriptions) List(_ context.Context, status entity.SubscriptionStatus) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, s := range m.items {
		if status == "" || s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

type memoryExpenses struct {
	items []*entity.Expense
}

func (m *memoryExpenses) Create(_ context.Context, e *entity.Expense) error {
	m.items = append(m.items, e)
	return nil
}

func (m *memoryExpenses) List(context.Context) ([]*entity.Expense, error) {
	return m.items, nil
}

func TestCreateSubscription(t *testing.T) {
	store := usecasetest.NewStore()
	customer := entity.NewCustomer("Acme", "billing@acme.test")
	store.PutCustomer(customer)
	clock := &usecasetest.Clock{Current: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}

	subs := &memorySubscriptions{}
	uc := NewCreateSubscriptionUseCase(subs, store.Customers(), clock)

	tests := []struct {
		name     string
		input    CreateSubscriptionInput
		wantCode domainerror.FinanceErrorCode
	}{
		{name: "active by default", input: CreateSubscriptionInput{CustomerID: customer.ID, PlanName: "Growth", MRR: decimal.NewFromInt(25000)}},
		{name: "explicit status", input: CreateSubscriptionInput{CustomerID: customer.ID, PlanName: "Legacy", MRR: decimal.NewFromInt(1000), Status: "cancelled"}},
		{name: "missing plan", input: CreateSubscriptionInput{CustomerID: customer.ID, MRR: decimal.NewFromInt(1)}, wantCode: domainerror.ErrCodeInvalidPlanName},
		{name: "negative mrr", input: CreateSubscriptionInput{CustomerID: customer.ID, PlanName: "X", MRR: decimal.NewFromInt(-1)}, wantCode: domainerror.ErrCodeInvalidMRR},
		{name: "unknown status", input: CreateSubscriptionInput{CustomerID: customer.ID, PlanName: "X", Status: "paused"}, wantCode: domainerror.ErrCodeInvalidSubscriptionStatus},
		{name: "unknown customer", input: CreateSubscriptionInput{CustomerID: uuid.New(), PlanName: "X"}, wantCode: domainerror.ErrCodeSubscriptionCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := uc.Execute(context.Background(), tt.input)
			if tt.wantCode != "" {
				var finErr *domainerror.FinanceError
				if !errors.As(err, &finErr) || finErr.Code != tt.wantCode {
					t.Fatalf("expected code %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !sub.StartDate.Equal(clock.Current) {
				t.Errorf("start date = %v, want %v", sub.StartDate, clock.Current)
			}
		})
	}

	active, err := NewListSubscriptionsUseCase(subs).Execute(context.Background(), "active")
	if err != nil || len(active) != 1 {
		t.Fatalf("active subscriptions = %d, %v", len(active), err)
	}
	if _, err := NewListSubscriptionsUseCase(subs).Execute(context.Background(), "bogus"); !errors.Is(err, domainerror.ErrInvalidSubscriptionStatus) {
		t.Errorf("expected invalid status error, got %v", err)
	}
}

func TestCreateExpense(t *testing.T) {
	clock := &usecasetest.Clock{Current: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	expenses := &memoryExpenses{}
	uc := NewCreateExpenseUseCase(expenses, clock)

	e, err := uc.Execute(context.Background(), CreateExpenseInput{Category: " hosting ", Amount: decimal.RequireFromString("1200.456")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Category != "hosting" || !e.Amount.Equal(decimal.RequireFromString("1200.46")) {
		t.Errorf("got %s %s", e.Category, e.Amount)
	}
	if !e.Date.Equal(clock.Current) {
		t.Errorf("date = %v, want clock time", e.Date)
	}

	if _, err := uc.Execute(context.Background(), CreateExpenseInput{Category: "x", Amount: decimal.Zero}); !errors.Is(err, domainerror.ErrInvalidExpenseAmount) {
		t.Errorf("expected invalid amount, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), CreateExpenseInput{Amount: decimal.NewFromInt(1)}); !errors.Is(err, domainerror.ErrInvalidExpenseCategory) {
		t.Errorf("expected invalid category, got %v", err)
	}

	list, err := NewListExpensesUseCase(expenses).Execute(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %d, %v", len(list), err)
	}
}
