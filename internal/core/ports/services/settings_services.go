package services

import (
	"context"
	"io"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// SettingsSvc owns the deployment-wide settings state.
type SettingsSvc interface {
	// Load paints from the local cache, then reconciles with the store.
	Load(ctx context.Context) (domain.AppSettings, error)

	// Get returns the current in-memory settings.
	Get() domain.AppSettings

	// SetLogoURL updates memory and the local cache now and schedules a debounced store write.
	SetLogoURL(ctx context.Context, logoURL *string) domain.AppSettings

	// UploadLogo stores the image and points the logo URL at it.
	UploadLogo(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (domain.AppSettings, error)

	// Flush writes any pending change immediately.
	Flush(ctx context.Context) error

	// Close flushes and stops the debounce timer.
	Close(ctx context.Context) error
}
