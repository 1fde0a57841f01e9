// Package finance contains subscription and expense use cases.
package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

// CreateExpenseInput represents the input for recording an expense.
type CreateExpenseInput struct {
	Category    string
	Amount      decimal.Decimal
	Description string
	// Date defaults to now when zero.
	Date time.Time
}

// CreateExpenseUseCase handles expense creation.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	clock       adapter.Clock
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(expenseRepo adapter.ExpenseRepository, clock adapter.Clock) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{expenseRepo: expenseRepo, clock: clock}
}

// Execute validates and stores the expense.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*entity.Expense, error) {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domainerror.NewFinanceError(
			domainerror.ErrCodeInvalidExpenseCategory,
			"expense category is required",
			domainerror.ErrInvalidExpenseCategory,
		)
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewFinanceError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"expense amount must be positive",
			domainerror.ErrInvalidExpenseAmount,
		)
	}

	date := input.Date
	if date.IsZero() {
		date = uc.clock.Now()
	}

	expense := entity.NewExpense(category, input.Amount.Round(2), strings.TrimSpace(input.Description), date)
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}

// ListExpensesUseCase lists expenses, newest first.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{expenseRepo: expenseRepo}
}

// Execute returns every recorded expense.
func (uc *ListExpensesUseCase) Execute(ctx context.Context) ([]*entity.Expense, error) {
	expenses, err := uc.expenseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}
