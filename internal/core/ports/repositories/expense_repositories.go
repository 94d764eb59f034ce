package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by id. Returns apperrors.ErrNotFound when missing.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByUser returns up to limit expenses owned by userID, newest first,
	// starting after cursor. The returned cursor is nil on the last page.
	ListExpensesByUser(ctx context.Context, userID string, limit int, cursor string) ([]domain.Expense, *string, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense merges patch into the stored expense and stamps updatedAt.
	// A non-empty userID restricts the write to that owner.
	UpdateExpense(ctx context.Context, userID, expenseID string, patch map[string]any, updatedAt int64) error

	// DeleteExpense removes an expense. A non-empty userID restricts the delete to that owner.
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
