package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/repositories/documents"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentColumns = `collection, id, user_id, body, schema_version, revision, created_at, updated_at`

// PgxDocumentStore keeps documents in a single JSONB table.
type PgxDocumentStore struct {
	BaseRepository
}

// NewDocumentStore creates a document store backed by the pool.
func NewDocumentStore(pool *pgxpool.Pool) *PgxDocumentStore {
	return &PgxDocumentStore{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure implementation matches interface
var _ documents.Store = (*PgxDocumentStore)(nil)

func (s *PgxDocumentStore) Insert(ctx context.Context, doc models.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4::jsonb, $5, 1, $6, $7);
	`
	_, err := s.Pool.Exec(ctx, query,
		doc.Collection,
		doc.ID,
		doc.UserID,
		string(doc.Body),
		doc.SchemaVersion,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert %s/%s: %w", doc.Collection, doc.ID, err)
	}
	return nil
}

func (s *PgxDocumentStore) Get(ctx context.Context, collection, id string) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE collection = $1 AND id = $2;`

	doc, err := scanDocument(s.Pool.QueryRow(ctx, query, collection, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return &doc, nil
}

func (s *PgxDocumentStore) ListByUser(ctx context.Context, collection, userID string, limit int, after *documents.Position) ([]models.Document, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		query := `
			SELECT ` + documentColumns + `
			FROM documents
			WHERE collection = $1 AND user_id = $2
			ORDER BY created_at DESC, id DESC
			LIMIT $3;
		`
		rows, err = s.Pool.Query(ctx, query, collection, userID, limit)
	} else {
		query := `
			SELECT ` + documentColumns + `
			FROM documents
			WHERE collection = $1 AND user_id = $2 AND (created_at, id) < ($3, $4)
			ORDER BY created_at DESC, id DESC
			LIMIT $5;
		`
		rows, err = s.Pool.Query(ctx, query, collection, userID, after.CreatedAt, after.ID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return collectDocuments(rows)
}

func (s *PgxDocumentStore) List(ctx context.Context, collection string, limit int) ([]models.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE collection = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2;
	`
	rows, err := s.Pool.Query(ctx, query, collection, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return collectDocuments(rows)
}

// Patch merges at the top level; jsonb_strip_nulls drops fields the patch set to null.
func (s *PgxDocumentStore) Patch(ctx context.Context, collection, id, userID string, patch json.RawMessage, updatedAt int64) error {
	query := `
		UPDATE documents
		SET body = jsonb_strip_nulls(body || $1::jsonb),
			revision = revision + 1,
			updated_at = $2
		WHERE collection = $3 AND id = $4 AND ($5::text = '' OR user_id = $5);
	`
	tag, err := s.Pool.Exec(ctx, query, string(patch), updatedAt, collection, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *PgxDocumentStore) Replace(ctx context.Context, collection, id string, body json.RawMessage, expectedRevision int64, updatedAt int64) (int64, error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer s.Rollback(ctx, tx)

	var current int64
	err = tx.QueryRow(ctx,
		`SELECT revision FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE;`,
		collection, id,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to lock %s/%s: %w", collection, id, err)
	}
	if current != expectedRevision {
		return 0, apperrors.ErrConflict
	}

	var next int64
	err = tx.QueryRow(ctx, `
		UPDATE documents
		SET body = $1::jsonb, revision = revision + 1, updated_at = $2
		WHERE collection = $3 AND id = $4
		RETURNING revision;
	`, string(body), updatedAt, collection, id).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to replace %s/%s: %w", collection, id, err)
	}

	if err := s.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return next, nil
}

func (s *PgxDocumentStore) Delete(ctx context.Context, collection, id, userID string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2 AND ($3::text = '' OR user_id = $3);`
	if _, err := s.Pool.Exec(ctx, query, collection, id, userID); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *PgxDocumentStore) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func scanDocument(row pgx.Row) (models.Document, error) {
	var (
		doc  models.Document
		body []byte
	)
	err := row.Scan(
		&doc.Collection,
		&doc.ID,
		&doc.UserID,
		&body,
		&doc.SchemaVersion,
		&doc.Revision,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	doc.Body = body
	return doc, err
}

func collectDocuments(rows pgx.Rows) ([]models.Document, error) {
	defer rows.Close()
	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Document, error) {
		return scanDocument(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents: %w", err)
	}
	return docs, nil
}
