package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/google/uuid"
)

type DiagnosticsRepository struct {
	store Store
}

func NewDiagnosticsRepository(store Store) *DiagnosticsRepository {
	return &DiagnosticsRepository{store: store}
}

var _ portsrepo.DiagnosticsRepository = (*DiagnosticsRepository)(nil)

func (r *DiagnosticsRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

func (r *DiagnosticsRepository) ListPublicData(ctx context.Context, limit int) ([]portsrepo.DiagnosticDocument, error) {
	docs, err := r.store.List(ctx, models.CollectionPublicData, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list public data: %w", err)
	}

	out := make([]portsrepo.DiagnosticDocument, 0, len(docs))
	for _, doc := range docs {
		data := map[string]any{}
		if err := json.Unmarshal(doc.Body, &data); err != nil {
			return nil, fmt.Errorf("failed to decode public data %s: %w", doc.ID, err)
		}
		out = append(out, portsrepo.DiagnosticDocument{ID: doc.ID, Data: data})
	}
	return out, nil
}

func (r *DiagnosticsRepository) SeedPublicData(ctx context.Context, message string) (string, error) {
	now := time.Now().UTC()
	body, err := json.Marshal(models.PublicData{Message: message, Timestamp: now.Format(time.RFC3339)})
	if err != nil {
		return "", fmt.Errorf("failed to encode public data: %w", err)
	}

	doc := models.Document{
		Collection:  models.CollectionPublicData,
		ID:          uuid.NewString(),
		Body:        body,
		AuditFields: models.AuditFields{CreatedAt: now.UnixMilli(), UpdatedAt: now.UnixMilli()},
	}
	if err := r.store.Insert(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to seed public data: %w", err)
	}
	return doc.ID, nil
}
