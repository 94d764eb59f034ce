package repositories

import (
	"context"
)

// DiagnosticDocument is a raw document returned by the store ping.
type DiagnosticDocument struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// DiagnosticsRepository exercises the document store for health checks.
type DiagnosticsRepository interface {
	Ping(ctx context.Context) error

	// ListPublicData returns up to limit documents of the public diagnostics collection.
	ListPublicData(ctx context.Context, limit int) ([]DiagnosticDocument, error)

	// SeedPublicData writes one diagnostics document and returns its id.
	SeedPublicData(ctx context.Context, message string) (string, error)
}
