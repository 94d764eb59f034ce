package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/utils/mapping"
	"github.com/SscSPs/expense_tracker/internal/utils/pagination"
)

type ExpenseRepository struct {
	store Store
}

// NewExpenseRepository creates a repository for expense documents.
func NewExpenseRepository(store Store) *ExpenseRepository {
	return &ExpenseRepository{store: store}
}

// Ensure implementation matches interface
var _ portsrepo.ExpenseRepositoryFacade = (*ExpenseRepository)(nil)

// SaveExpense stores a new expense document at the current schema version.
func (r *ExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	body, err := json.Marshal(mapping.ToModelExpense(expense))
	if err != nil {
		return fmt.Errorf("failed to encode expense %s: %w", expense.ID, err)
	}

	doc := models.Document{
		Collection:    models.CollectionExpenses,
		ID:            expense.ID,
		UserID:        expense.UserID,
		Body:          body,
		SchemaVersion: models.ExpenseSchemaVersion,
		AuditFields:   mapping.ToModelAuditFields(expense.AuditFields),
	}
	if err := r.store.Insert(ctx, doc); err != nil {
		return fmt.Errorf("failed to save expense %s: %w", expense.ID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense, migrating legacy documents on read.
func (r *ExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	doc, err := r.store.Get(ctx, models.CollectionExpenses, expenseID)
	if err != nil {
		return nil, err
	}
	expense, err := toDomainExpense(*doc, domain.NowMillis())
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListExpensesByUser returns one page of a user's expenses, newest first.
func (r *ExpenseRepository) ListExpensesByUser(ctx context.Context, userID string, limit int, cursor string) ([]domain.Expense, *string, error) {
	var after *Position
	if cursor != "" {
		createdAt, id, err := pagination.DecodeCursor(cursor)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = &Position{CreatedAt: createdAt, ID: id}
	}

	docs, err := r.store.ListByUser(ctx, models.CollectionExpenses, userID, limit, after)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list expenses for user %s: %w", userID, err)
	}

	readAt := domain.NowMillis()
	expenses := make([]domain.Expense, 0, len(docs))
	for _, doc := range docs {
		expense, err := toDomainExpense(doc, readAt)
		if err != nil {
			return nil, nil, err
		}
		expenses = append(expenses, expense)
	}

	var next *string
	if limit > 0 && len(docs) == limit {
		last := docs[len(docs)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.ID)
		next = &token
	}
	return expenses, next, nil
}

// UpdateExpense merges patch into a stored expense.
func (r *ExpenseRepository) UpdateExpense(ctx context.Context, userID, expenseID string, patch map[string]any, updatedAt int64) error {
	raw, err := encodePatch(patch, &models.Expense{})
	if err != nil {
		return err
	}
	return r.store.Patch(ctx, models.CollectionExpenses, expenseID, userID, raw, updatedAt)
}

// DeleteExpense removes an expense if it exists.
func (r *ExpenseRepository) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	return r.store.Delete(ctx, models.CollectionExpenses, expenseID, userID)
}

func toDomainExpense(doc models.Document, readAt int64) (domain.Expense, error) {
	body, err := models.MigrateExpenseBody(doc.SchemaVersion, doc.Body)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("failed to decode expense %s: %w", doc.ID, err)
	}
	return mapping.ToDomainExpense(doc, *body, readAt), nil
}

// encodePatch serializes a field patch. Timestamps are columns, never body fields.
// The patch must decode into body, the typed document body, with no unknown keys,
// so a merged document always stays readable.
func encodePatch(patch map[string]any, body any) (json.RawMessage, error) {
	clean := make(map[string]any, len(patch))
	for k, v := range patch {
		switch k {
		case "id", "userId", "createdAt", "updatedAt":
			continue
		}
		clean[k] = v
	}
	raw, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode patch: %s", apperrors.ErrValidation, err.Error())
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(body); err != nil {
		return nil, fmt.Errorf("%w: invalid patch: %s", apperrors.ErrValidation, err.Error())
	}
	return raw, nil
}
