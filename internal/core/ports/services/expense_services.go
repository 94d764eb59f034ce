package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense owned by userID. Returns apperrors.ErrNotFound otherwise.
	GetExpenseByID(ctx context.Context, userID string, expenseID string) (*domain.Expense, error)

	// GetExpenses fetches one page of the user's expenses and applies filter to it in memory.
	// Read failures are logged and yield an empty page.
	GetExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter, limit int, cursor string) domain.ExpensePage
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// AddExpense stamps and stores a new expense for userID and returns it without re-reading.
	AddExpense(ctx context.Context, userID string, expense domain.Expense) (*domain.Expense, error)

	// UpdateExpense applies a partial update. Identifier and timestamp keys in patch are ignored.
	UpdateExpense(ctx context.Context, userID string, expenseID string, patch map[string]any) error

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, userID string, expenseID string) error
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
