// Package sqlite is a file-backed document store for local development and single-node installs.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/repositories/documents"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const documentColumns = `collection, id, user_id, body, schema_version, revision, created_at, updated_at`

// DocumentStore keeps documents in a single table with JSON text bodies.
type DocumentStore struct {
	db *sql.DB
}

func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

var _ documents.Store = (*DocumentStore)(nil)

// NewRepositoryProvider wires the repository ports to a SQLite database.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return documents.NewRepositoryProvider(NewDocumentStore(db))
}

func (s *DocumentStore) Insert(ctx context.Context, doc models.Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, json(?), ?, 1, ?, ?)`,
		doc.Collection, doc.ID, doc.UserID, string(doc.Body), doc.SchemaVersion, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("insert %s/%s: %w", doc.Collection, doc.ID, err)
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*models.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return &doc, nil
}

func (s *DocumentStore) ListByUser(ctx context.Context, collection, userID string, limit int, after *documents.Position) ([]models.Document, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if after == nil {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+documentColumns+`
			FROM documents
			WHERE collection = ? AND user_id = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?`,
			collection, userID, limit,
		)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+documentColumns+`
			FROM documents
			WHERE collection = ? AND user_id = ? AND (created_at, id) < (?, ?)
			ORDER BY created_at DESC, id DESC
			LIMIT ?`,
			collection, userID, after.CreatedAt, after.ID, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	return collectDocuments(rows)
}

func (s *DocumentStore) List(ctx context.Context, collection string, limit int) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE collection = ?
		ORDER BY created_at ASC, id ASC
		LIMIT ?`,
		collection, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	return collectDocuments(rows)
}

// Patch applies an RFC 7396 merge patch, so null values remove fields.
func (s *DocumentStore) Patch(ctx context.Context, collection, id, userID string, patch json.RawMessage, updatedAt int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET body = json_patch(body, ?), revision = revision + 1, updated_at = ?
		WHERE collection = ? AND id = ? AND (? = '' OR user_id = ?)`,
		string(patch), updatedAt, collection, id, userID, userID,
	)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) Replace(ctx context.Context, collection, id string, body json.RawMessage, expectedRevision int64, updatedAt int64) (int64, error) {
	var next int64
	err := s.db.QueryRowContext(ctx, `
		UPDATE documents
		SET body = json(?), revision = revision + 1, updated_at = ?
		WHERE collection = ? AND id = ? AND revision = ?
		RETURNING revision`,
		string(body), updatedAt, collection, id, expectedRevision,
	).Scan(&next)
	if err == nil {
		return next, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("replace %s/%s: %w", collection, id, err)
	}

	if _, getErr := s.Get(ctx, collection, id); getErr != nil {
		return 0, getErr
	}
	return 0, apperrors.ErrConflict
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ? AND (? = '' OR user_id = ?)`,
		collection, id, userID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (models.Document, error) {
	var (
		doc  models.Document
		body string
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
	doc.Body = json.RawMessage(body)
	return doc, err
}

func collectDocuments(rows *sql.Rows) ([]models.Document, error) {
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(sqliteErr.Error(), "UNIQUE")
	}
	return false
}
