package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gcs "google.golang.org/api/storage/v1"
)

const gcsPublicHost = "https://storage.googleapis.com"

// GCSStorage stores objects in a Google Cloud Storage (or Firebase Storage) bucket.
type GCSStorage struct {
	service *gcs.Service
	bucket  string
}

var _ clients.ObjectStorage = (*GCSStorage)(nil)

// NewGCSStorage authenticates with the service account JSON, or with application default
// credentials when none is given.
func NewGCSStorage(ctx context.Context, bucket string, credentialsJSON []byte, opts ...option.ClientOption) (*GCSStorage, error) {
	if bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	var (
		creds *google.Credentials
		err   error
	)
	if len(credentialsJSON) > 0 {
		creds, err = google.CredentialsFromJSON(ctx, credentialsJSON, gcs.DevstorageReadWriteScope)
	} else {
		creds, err = google.FindDefaultCredentials(ctx, gcs.DevstorageReadWriteScope)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load GCS credentials: %w", err)
	}

	opts = append([]option.ClientOption{option.WithCredentials(creds)}, opts...)
	service, err := gcs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSStorage{service: service, bucket: bucket}, nil
}

// Upload inserts the object with a media upload and returns its public URL.
func (s *GCSStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	object := &gcs.Object{Name: key, ContentType: contentType}
	_, err := s.service.Objects.Insert(s.bucket, object).
		Media(body, googleapi.ContentType(contentType)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("insert object %s: %w", key, err)
	}
	return gcsObjectURL(s.bucket, key), nil
}

func gcsObjectURL(bucket, key string) string {
	return gcsPublicHost + "/" + bucket + "/" + escapeKey(key)
}
