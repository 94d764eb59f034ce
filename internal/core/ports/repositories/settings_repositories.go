package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// AppSettingsRepository persists the deployment-wide settings document.
type AppSettingsRepository interface {
	// FindAppSettings returns the first settings document. Returns apperrors.ErrNotFound when none exists.
	FindAppSettings(ctx context.Context) (*domain.AppSettings, error)

	// CreateAppSettings stores a new settings document and returns it with its id and version.
	CreateAppSettings(ctx context.Context, settings domain.AppSettings) (*domain.AppSettings, error)

	// UpdateAppSettings replaces the document if its stored version still equals settings.Version.
	// Returns apperrors.ErrConflict when another writer got there first.
	UpdateAppSettings(ctx context.Context, settings domain.AppSettings) (*domain.AppSettings, error)
}
