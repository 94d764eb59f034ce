package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config describes an S3 or S3-compatible (MinIO, R2) bucket.
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UsePathStyle  bool
	PublicBaseURL string
}

// S3Storage stores objects with the AWS SDK v2.
type S3Storage struct {
	client *s3.Client
	cfg    S3Config
}

var _ clients.ObjectStorage = (*S3Storage)(nil)

// NewS3Storage loads the default AWS config, overriding credentials and endpoint when given.
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Storage{client: client, cfg: cfg}, nil
}

// Upload puts the object and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	// The SDK needs a seekable body to sign the payload.
	seeker, ok := body.(io.ReadSeeker)
	if !ok {
		raw, err := io.ReadAll(body)
		if err != nil {
			return "", fmt.Errorf("read upload: %w", err)
		}
		seeker = bytes.NewReader(raw)
		size = int64(len(raw))
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          seeker,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

// PublicURL is where a stored object can be fetched from.
func (s *S3Storage) PublicURL(key string) string {
	escaped := escapeKey(key)
	switch {
	case s.cfg.PublicBaseURL != "":
		return s.cfg.PublicBaseURL + "/" + escaped
	case s.cfg.Endpoint != "":
		return strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, escaped)
}
