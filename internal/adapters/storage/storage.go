// Package storage uploads receipts and logos to an object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	"github.com/SscSPs/expense_tracker/internal/platform/config"
)

// New builds the object store selected by STORAGE_BACKEND.
func New(ctx context.Context, cfg *config.Config) (clients.ObjectStorage, error) {
	switch cfg.StorageBackend {
	case config.StorageS3:
		return NewS3Storage(ctx, S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			UsePathStyle:  cfg.S3UsePathStyle,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	case config.StorageGCS:
		return NewGCSStorage(ctx, cfg.GCSBucket, []byte(cfg.GCSCredentialsJSON))
	}
	return Disabled{}, nil
}

// Disabled rejects every upload. It is used when no backend is configured.
type Disabled struct{}

var _ clients.ObjectStorage = Disabled{}

func (Disabled) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	return "", fmt.Errorf("object storage: %w", apperrors.ErrNotConfigured)
}

// escapeKey escapes each path segment of an object key for use in a URL.
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
