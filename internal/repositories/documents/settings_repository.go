package documents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/utils/mapping"
	"github.com/google/uuid"
)

// SettingsRepository stores the single deployment-wide settings document.
type SettingsRepository struct {
	store Store
}

func NewSettingsRepository(store Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

var _ portsrepo.AppSettingsRepository = (*SettingsRepository)(nil)

// FindAppSettings returns the oldest settings document.
func (r *SettingsRepository) FindAppSettings(ctx context.Context) (*domain.AppSettings, error) {
	docs, err := r.store.List(ctx, models.CollectionAppSettings, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to load app settings: %w", err)
	}
	if len(docs) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return toDomainAppSettings(docs[0])
}

func (r *SettingsRepository) CreateAppSettings(ctx context.Context, settings domain.AppSettings) (*domain.AppSettings, error) {
	body, err := json.Marshal(models.AppSettings{LogoURL: settings.LogoURL})
	if err != nil {
		return nil, fmt.Errorf("failed to encode app settings: %w", err)
	}

	now := domain.NowMillis()
	doc := models.Document{
		Collection:  models.CollectionAppSettings,
		ID:          uuid.NewString(),
		Body:        body,
		Revision:    1,
		AuditFields: models.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := r.store.Insert(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create app settings: %w", err)
	}
	created := mapping.ToDomainAppSettings(doc, models.AppSettings{LogoURL: settings.LogoURL})
	return &created, nil
}

// UpdateAppSettings writes settings if the stored version still matches settings.Version.
func (r *SettingsRepository) UpdateAppSettings(ctx context.Context, settings domain.AppSettings) (*domain.AppSettings, error) {
	if settings.ID == "" {
		return nil, fmt.Errorf("%w: settings id is required", apperrors.ErrValidation)
	}
	body, err := json.Marshal(models.AppSettings{LogoURL: settings.LogoURL})
	if err != nil {
		return nil, fmt.Errorf("failed to encode app settings: %w", err)
	}

	now := domain.NowMillis()
	revision, err := r.store.Replace(ctx, models.CollectionAppSettings, settings.ID, body, settings.Version, now)
	if err != nil {
		return nil, err
	}
	return &domain.AppSettings{
		ID:        settings.ID,
		LogoURL:   settings.LogoURL,
		Version:   revision,
		UpdatedAt: now,
	}, nil
}

func toDomainAppSettings(doc models.Document) (*domain.AppSettings, error) {
	var body models.AppSettings
	if err := json.Unmarshal(doc.Body, &body); err != nil {
		return nil, fmt.Errorf("failed to decode app settings %s: %w", doc.ID, err)
	}
	settings := mapping.ToDomainAppSettings(doc, body)
	return &settings, nil
}
