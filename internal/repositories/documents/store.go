// Package documents implements the repository ports on top of a generic JSON document store.
// Backends (Postgres, SQLite) only provide Store; entity mapping lives here.
package documents

import (
	"context"
	"encoding/json"

	"github.com/SscSPs/expense_tracker/internal/models"
)

// Position identifies a document in (created_at DESC, id DESC) order.
type Position struct {
	CreatedAt int64
	ID        string
}

// Store is a collection/document store with JSON bodies.
type Store interface {
	// Insert writes a new document. The revision of a new document is 1.
	Insert(ctx context.Context, doc models.Document) error

	// Get returns a document or apperrors.ErrNotFound.
	Get(ctx context.Context, collection, id string) (*models.Document, error)

	// ListByUser returns up to limit documents owned by userID, newest first, strictly after the given position.
	ListByUser(ctx context.Context, collection, userID string, limit int, after *Position) ([]models.Document, error)

	// List returns up to limit documents of a collection, oldest first.
	List(ctx context.Context, collection string, limit int) ([]models.Document, error)

	// Patch merges patch into the body; null values remove fields. A non-empty userID restricts the write to that owner.
	// Returns apperrors.ErrNotFound when no document matched.
	Patch(ctx context.Context, collection, id, userID string, patch json.RawMessage, updatedAt int64) error

	// Replace overwrites the body when the stored revision equals expectedRevision and returns the new revision.
	// Returns apperrors.ErrConflict on a revision mismatch and apperrors.ErrNotFound when the document is gone.
	Replace(ctx context.Context, collection, id string, body json.RawMessage, expectedRevision int64, updatedAt int64) (int64, error)

	// Delete removes a document if present. A non-empty userID restricts the delete to that owner.
	Delete(ctx context.Context, collection, id, userID string) error

	Ping(ctx context.Context) error
}
