package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/utils/analytics"
	"github.com/google/uuid"
)

// DefaultExpensePageSize is used when a listing asks for no particular limit.
const DefaultExpensePageSize = 50

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewExpenseService creates a new expense service.
func NewExpenseService(repo portsrepo.ExpenseRepositoryFacade, opts ...BaseOption) portssvc.ExpenseSvcFacade {
	svc := &expenseService{expenseRepo: repo}
	svc.apply(opts)
	return svc
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) AddExpense(ctx context.Context, userID string, expense domain.Expense) (*domain.Expense, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", apperrors.ErrValidation)
	}
	if err := expense.Normalize(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := s.NowMillis()
	expense.ID = uuid.NewString()
	expense.UserID = userID
	expense.AuditFields = domain.AuditFields{CreatedAt: now, UpdatedAt: now}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense",
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense created successfully", slog.String("expense_id", expense.ID))
	s.Publish(ctx, clients.EventExpenseCreated, userID, expense.ID, map[string]any{
		"amount":   expense.Amount,
		"currency": expense.Currency,
		"category": expense.Category,
		"type":     string(expense.Type),
	})
	return &expense, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	if expenseID == "" {
		return nil, fmt.Errorf("%w: expense ID is required", apperrors.ErrValidation)
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	// someone else's expense is reported as missing
	if expense.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return expense, nil
}

func (s *expenseService) GetExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter, limit int, cursor string) domain.ExpensePage {
	page := domain.ExpensePage{Expenses: []domain.Expense{}}
	if userID == "" {
		s.LogError(ctx, apperrors.ErrValidation, "Cannot list expenses without a user ID")
		return page
	}
	if limit <= 0 {
		limit = DefaultExpensePageSize
	}

	expenses, next, err := s.expenseRepo.ListExpensesByUser(ctx, userID, limit, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses",
			slog.String("user_id", userID))
		return page
	}

	// The limit applies before the in-memory filters, so a page may hold fewer matches than limit.
	page.Expenses = analytics.FilterExpenses(expenses, filter)
	page.NextCursor = next
	return page
}

func (s *expenseService) UpdateExpense(ctx context.Context, userID string, expenseID string, patch map[string]any) error {
	if expenseID == "" {
		return fmt.Errorf("%w: expense ID is required", apperrors.ErrValidation)
	}
	if err := validateExpensePatch(patch); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.expenseRepo.UpdateExpense(ctx, userID, expenseID, patch, s.NowMillis()); err != nil {
		s.LogError(ctx, err, "Failed to update expense",
			slog.String("expense_id", expenseID))
		return err
	}

	s.Publish(ctx, clients.EventExpenseUpdated, userID, expenseID, nil)
	return nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, userID string, expenseID string) error {
	if expenseID == "" {
		return fmt.Errorf("%w: expense ID is required", apperrors.ErrValidation)
	}
	if err := s.expenseRepo.DeleteExpense(ctx, userID, expenseID); err != nil {
		s.LogError(ctx, err, "Failed to delete expense",
			slog.String("expense_id", expenseID))
		return err
	}

	s.Publish(ctx, clients.EventExpenseDeleted, userID, expenseID, nil)
	return nil
}

// validateExpensePatch checks the fields of a partial update and normalizes its date in place.
func validateExpensePatch(patch map[string]any) error {
	if amount, ok := patch["amount"]; ok && amount != nil {
		v, isNumber := amount.(float64)
		if !isNumber {
			return fmt.Errorf("amount must be a number")
		}
		if v < 0 {
			return fmt.Errorf("amount must not be negative")
		}
	}
	if raw, ok := patch["date"]; ok && raw != nil {
		str, isString := raw.(string)
		if !isString {
			return fmt.Errorf("date must be a string")
		}
		date, err := domain.ParseExpenseDate(str)
		if err != nil {
			return err
		}
		patch["date"] = date
	}
	if raw, ok := patch["recurringFrequency"]; ok && raw != nil {
		str, _ := raw.(string)
		if str != "" && !domain.RecurringFrequency(str).IsValid() {
			return fmt.Errorf("unknown recurring frequency %q", str)
		}
	}
	if raw, ok := patch["type"]; ok && raw != nil {
		str, _ := raw.(string)
		if !domain.ExpenseType(str).IsValid() {
			return fmt.Errorf("unknown expense type %q", str)
		}
	}
	return nil
}
