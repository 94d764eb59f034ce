package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// ReceiptSvc hands receipt files to the OCR vendor and shapes the result.
type ReceiptSvc interface {
	// ValidateReceiptFile rejects files that are not images or PDFs, or that are too large.
	ValidateReceiptFile(contentType string, size int64) error

	// ProcessReceipt validates, uploads and extracts a receipt.
	ProcessReceipt(ctx context.Context, upload domain.ReceiptUpload) (*domain.ReceiptData, error)

	// ConvertToExpense builds an expense draft from an extracted receipt.
	ConvertToExpense(receipt domain.ReceiptData, vendorID string) domain.Expense
}
