package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
)

const (
	diagnosticsListLimit = 5
	diagnosticsSeedText  = "Hello from the expense tracker!"
)

// StatusCoder is implemented by vendor errors that carry the upstream HTTP status.
type StatusCoder interface {
	HTTPStatus() int
}

// OCRDiagnostics describes the OCR account being checked.
type OCRDiagnostics struct {
	Client             clients.ReceiptOCR
	APIURL             string
	MissingCredentials []string
}

type diagnosticsService struct {
	BaseService
	repo portsrepo.DiagnosticsRepository
	ocr  OCRDiagnostics
}

// NewDiagnosticsService creates the collaborator health checks.
func NewDiagnosticsService(repo portsrepo.DiagnosticsRepository, ocr OCRDiagnostics, opts ...BaseOption) portssvc.DiagnosticsSvc {
	svc := &diagnosticsService{repo: repo, ocr: ocr}
	svc.apply(opts)
	return svc
}

var _ portssvc.DiagnosticsSvc = (*diagnosticsService)(nil)

// TestDocumentStore lists a few public documents, seeding one when the collection is empty.
func (s *diagnosticsService) TestDocumentStore(ctx context.Context) (*domain.DocumentStoreReport, error) {
	if err := s.repo.Ping(ctx); err != nil {
		s.LogError(ctx, err, "Document store ping failed")
		return &domain.DocumentStoreReport{Success: false, Message: "Error connecting to document store"}, err
	}

	docs, err := s.repo.ListPublicData(ctx, diagnosticsListLimit)
	if err != nil {
		s.LogError(ctx, err, "Document store read failed")
		return &domain.DocumentStoreReport{Success: false, Message: "Error reading from document store"}, err
	}

	seeded := false
	if len(docs) == 0 {
		if _, err := s.repo.SeedPublicData(ctx, diagnosticsSeedText); err != nil {
			s.LogError(ctx, err, "Document store write failed")
			return &domain.DocumentStoreReport{Success: false, Message: "Error writing to document store"}, err
		}
		seeded = true
		if docs, err = s.repo.ListPublicData(ctx, diagnosticsListLimit); err != nil {
			return &domain.DocumentStoreReport{Success: false, Message: "Error reading from document store"}, err
		}
	}

	report := &domain.DocumentStoreReport{
		Success:   true,
		Message:   "Document store connection successful",
		Seeded:    seeded,
		Documents: make([]map[string]any, 0, len(docs)),
	}
	for _, d := range docs {
		entry := map[string]any{"id": d.ID}
		for k, v := range d.Data {
			entry[k] = v
		}
		report.Documents = append(report.Documents, entry)
	}
	return report, nil
}

// TestOCR checks the OCR credentials are present and accepted by the vendor.
func (s *diagnosticsService) TestOCR(ctx context.Context) (*domain.OCRReport, error) {
	report := &domain.OCRReport{APIURL: s.ocr.APIURL}
	if len(s.ocr.MissingCredentials) > 0 {
		report.Message = "Missing Veryfi API credentials"
		report.MissingCredentials = s.ocr.MissingCredentials
		return report, fmt.Errorf("veryfi: %w", apperrors.ErrNotConfigured)
	}

	if err := s.ocr.Client.Ping(ctx); err != nil {
		s.LogError(ctx, err, "OCR ping failed")
		report.Message = "Veryfi API request failed"
		var coder StatusCoder
		if errors.As(err, &coder) {
			report.StatusCode = coder.HTTPStatus()
		}
		return report, err
	}

	report.Success = true
	report.Message = "Veryfi API is working correctly"
	return report, nil
}
