package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	"github.com/SscSPs/expense_tracker/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func receiptUpload(userID string) domain.ReceiptUpload {
	content := []byte("fake-jpeg-bytes")
	return domain.ReceiptUpload{
		FileName:    "my receipt.jpg",
		ContentType: "image/jpeg",
		Size:        int64(len(content)),
		Content:     content,
		UserID:      userID,
	}
}

func TestProcessReceipt_ShapesAndArchives(t *testing.T) {
	ocr := new(MockReceiptOCR)
	storage := new(MockObjectStorage)
	events := new(MockEventPublisher)
	svc := services.NewReceiptService(ocr, storage, services.WithClock(fixedClock), services.WithEventPublisher(events))

	upload := receiptUpload("u1")
	ocr.On("ProcessDocument", mock.Anything, upload).Return(&clients.OCRDocument{
		ID:     json.RawMessage(`123456`),
		Vendor: &clients.OCRVendor{Name: "Corner Cafe"},
		Total:  floatPtr(12.5),
		LineItems: []clients.OCRLineItem{
			{Description: "Latte", Total: floatPtr(4.5)},
		},
	}, nil).Once()
	key := fmt.Sprintf("receipts/u1/%d_my_receipt.jpg", fixedNow.UnixMilli())
	storage.On("Upload", mock.Anything, key, "image/jpeg", mock.Anything, upload.Size).
		Return("https://cdn.test/"+key, nil).Once()
	events.On("Publish", mock.Anything, eventOfType(clients.EventReceiptProcessed)).Return(nil).Once()

	data, err := svc.ProcessReceipt(context.Background(), upload)

	require.NoError(t, err)
	assert.Equal(t, "123456", data.ID)
	assert.Equal(t, "Corner Cafe", data.Vendor.Name)
	assert.Equal(t, 12.5, data.Total)
	assert.Equal(t, "2024-05-15", data.Date)
	assert.Contains(t, data.Warnings, domain.WarningDateMissing)
	assert.Equal(t, domain.ReceiptSourceMobile, data.Source)
	assert.Equal(t, "https://cdn.test/"+key, data.ReceiptURL)
	ocr.AssertExpectations(t)
	storage.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestProcessReceipt_ArchiveFailureIsIgnored(t *testing.T) {
	ocr := new(MockReceiptOCR)
	storage := new(MockObjectStorage)
	svc := services.NewReceiptService(ocr, storage, services.WithClock(fixedClock))

	upload := receiptUpload("")
	ocr.On("ProcessDocument", mock.Anything, upload).Return(&clients.OCRDocument{
		ID:        json.RawMessage(`"abc"`),
		Total:     floatPtr(8),
		Thumbnail: "https://ocr.test/thumb.png",
	}, nil).Once()
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "receipts/anonymous/")
	}), mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError).Once()

	data, err := svc.ProcessReceipt(context.Background(), upload)

	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptSourceWeb, data.Source)
	assert.Equal(t, domain.UnknownVendorName, data.Vendor.Name)
	assert.Equal(t, "https://ocr.test/thumb.png", data.ReceiptURL)
}

func TestProcessReceipt_Errors(t *testing.T) {
	t.Run("unsupported file", func(t *testing.T) {
		ocr := new(MockReceiptOCR)
		svc := services.NewReceiptService(ocr, nil)
		upload := receiptUpload("u1")
		upload.ContentType = "text/plain"

		_, err := svc.ProcessReceipt(context.Background(), upload)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		ocr.AssertNotCalled(t, "ProcessDocument", mock.Anything, mock.Anything)
	})

	t.Run("too large", func(t *testing.T) {
		svc := services.NewReceiptService(new(MockReceiptOCR), nil)
		assert.ErrorIs(t, svc.ValidateReceiptFile("application/pdf", domain.MaxReceiptFileSize+1), apperrors.ErrValidation)
		assert.NoError(t, svc.ValidateReceiptFile("application/pdf", domain.MaxReceiptFileSize))
	})

	t.Run("vendor failure", func(t *testing.T) {
		ocr := new(MockReceiptOCR)
		svc := services.NewReceiptService(ocr, nil)
		ocr.On("ProcessDocument", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

		_, err := svc.ProcessReceipt(context.Background(), receiptUpload("u1"))
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("missing total", func(t *testing.T) {
		ocr := new(MockReceiptOCR)
		svc := services.NewReceiptService(ocr, nil)
		ocr.On("ProcessDocument", mock.Anything, mock.Anything).
			Return(&clients.OCRDocument{ID: json.RawMessage(`1`)}, nil).Once()

		_, err := svc.ProcessReceipt(context.Background(), receiptUpload("u1"))
		assert.ErrorIs(t, err, apperrors.ErrIncompleteReceipt)
	})
}

func TestConvertToExpense(t *testing.T) {
	svc := services.NewReceiptService(new(MockReceiptOCR), nil)
	expense := svc.ConvertToExpense(domain.ReceiptData{
		ID:       "r1",
		Vendor:   domain.ReceiptVendor{Name: "Corner Cafe"},
		Date:     "2024-05-01",
		Total:    9.75,
		Currency: "EUR",
	}, "v1")

	assert.Equal(t, "v1", expense.VendorID)
	assert.Equal(t, "Corner Cafe", expense.VendorName)
	assert.Equal(t, 9.75, expense.Amount)
	assert.Equal(t, "EUR", expense.Currency)
}
