package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// DiagnosticsSvc pings the external collaborators.
type DiagnosticsSvc interface {
	TestDocumentStore(ctx context.Context) (*domain.DocumentStoreReport, error)
	TestOCR(ctx context.Context) (*domain.OCRReport, error)
}
