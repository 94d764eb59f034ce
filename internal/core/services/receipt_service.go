package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/utils/receipt"
	"golang.org/x/sync/errgroup"
)

type receiptService struct {
	BaseService
	ocr     clients.ReceiptOCR
	storage clients.ObjectStorage
}

// NewReceiptService creates the receipt ingestion service. storage may be nil.
func NewReceiptService(ocr clients.ReceiptOCR, storage clients.ObjectStorage, opts ...BaseOption) portssvc.ReceiptSvc {
	svc := &receiptService{ocr: ocr, storage: storage}
	svc.apply(opts)
	return svc
}

var _ portssvc.ReceiptSvc = (*receiptService)(nil)

func (s *receiptService) ValidateReceiptFile(contentType string, size int64) error {
	return receipt.ValidateFile(contentType, size)
}

// ProcessReceipt runs the OCR call and the archival upload side by side. The upload never fails the request.
func (s *receiptService) ProcessReceipt(ctx context.Context, upload domain.ReceiptUpload) (*domain.ReceiptData, error) {
	if err := s.ValidateReceiptFile(upload.ContentType, upload.Size); err != nil {
		return nil, err
	}

	var (
		doc       *clients.OCRDocument
		storedURL string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = s.ocr.ProcessDocument(gctx, upload)
		return err
	})
	if s.storage != nil {
		g.Go(func() error {
			storedURL = s.archive(gctx, upload)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Receipt OCR failed", slog.String("file_name", upload.FileName))
		return nil, err
	}

	data, err := receipt.Shape(doc, upload.UserID, s.Now().UTC().Format(domain.DateLayout))
	if err != nil {
		s.LogError(ctx, err, "OCR returned incomplete data", slog.String("file_name", upload.FileName))
		return nil, err
	}
	if data.ReceiptURL == "" {
		data.ReceiptURL = storedURL
	}

	s.LogInfo(ctx, "Receipt processed",
		slog.String("receipt_id", data.ID),
		slog.String("source", data.Source),
		slog.Int("warnings", len(data.Warnings)))
	s.Publish(ctx, clients.EventReceiptProcessed, upload.UserID, data.ID, map[string]any{
		"total":    data.Total,
		"currency": data.Currency,
		"source":   data.Source,
	})
	return data, nil
}

func (s *receiptService) ConvertToExpense(r domain.ReceiptData, vendorID string) domain.Expense {
	return receipt.ToExpense(r, vendorID)
}

// archive stores the original file and returns its URL, or "" when storage is unavailable.
func (s *receiptService) archive(ctx context.Context, upload domain.ReceiptUpload) string {
	owner := upload.UserID
	if owner == "" {
		owner = "anonymous"
	}
	key := fmt.Sprintf("receipts/%s/%d_%s", owner, s.NowMillis(), sanitizeFileName(upload.FileName))

	url, err := s.storage.Upload(ctx, key, upload.ContentType, bytes.NewReader(upload.Content), int64(len(upload.Content)))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotConfigured) {
			s.LogError(ctx, err, "Failed to archive receipt", slog.String("key", key))
		}
		return ""
	}
	return url
}

// sanitizeFileName keeps the base name of an uploaded file and drops characters that are awkward in object keys.
func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '?', '#', '%', '"', '\'', '<', '>', ' ':
			return '_'
		}
		return r
	}, name)
}
