// Package receipt shapes OCR extractions into receipts and expense drafts.
package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	"github.com/go-playground/validator/v10"
)

const (
	defaultCurrency     = "USD"
	defaultCategory     = "Other"
	defaultItemName     = "Item"
	descriptionTopItems = 3
)

var validate = validator.New()

type uploadMeta struct {
	Size int64 `validate:"gt=0,lte=10485760"`
}

// ValidateFile checks the MIME type and size of an upload before any network call.
func ValidateFile(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") && contentType != "application/pdf" {
		return fmt.Errorf("%w: unsupported file type, please upload an image or PDF file", apperrors.ErrValidation)
	}
	if err := validate.Struct(uploadMeta{Size: size}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "lte" {
			return fmt.Errorf("%w: file is too large, the maximum size is 10MB", apperrors.ErrValidation)
		}
		return fmt.Errorf("%w: the receipt file is empty", apperrors.ErrValidation)
	}
	return nil
}

// GenerateDescription builds a short summary from the most expensive line items.
func GenerateDescription(vendorName string, items []clients.OCRLineItem) string {
	if vendorName == "" {
		vendorName = domain.UnknownVendorName
	}

	sorted := make([]clients.OCRLineItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return valueOrZero(sorted[i].Total) > valueOrZero(sorted[j].Total)
	})
	if len(sorted) > descriptionTopItems {
		sorted = sorted[:descriptionTopItems]
	}

	top := make([]string, 0, descriptionTopItems)
	for _, item := range sorted {
		if item.Description != "" {
			top = append(top, item.Description)
		}
	}

	switch len(top) {
	case 0:
		return fmt.Sprintf("Receipt from %s", vendorName)
	case 1:
		return fmt.Sprintf("%s: %s", vendorName, top[0])
	case 2:
		return fmt.Sprintf("%s: %s and %s", vendorName, top[0], top[1])
	default:
		return fmt.Sprintf("%s: %s, %s, and %d more items", vendorName, top[0], top[1], len(items)-2)
	}
}

// Shape converts a raw OCR extraction into receipt data. today is used when no date was read.
// An extraction without an id or a non-zero total is rejected with ErrIncompleteReceipt.
func Shape(doc *clients.OCRDocument, userID, today string) (*domain.ReceiptData, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: The OCR service returned incomplete data", apperrors.ErrIncompleteReceipt)
	}
	id := documentID(doc.ID)
	if id == "" {
		return nil, fmt.Errorf("%w: The OCR service returned incomplete data", apperrors.ErrIncompleteReceipt)
	}
	if doc.Total == nil || *doc.Total == 0 {
		return nil, fmt.Errorf("%w: Could not extract total amount from receipt", apperrors.ErrIncompleteReceipt)
	}

	data := &domain.ReceiptData{
		ID:       id,
		UserID:   userID,
		Date:     doc.Date,
		Total:    *doc.Total,
		Subtotal: doc.Subtotal,
		Tax:      doc.Tax,
		Tip:      doc.Tip,
		Currency: doc.CurrencyCode,
		Category: doc.Category,
		Notes:    doc.Notes,
		OCRText:  doc.OCRText,
		Items:    []domain.ReceiptItem{},
		Source:   domain.ReceiptSourceWeb,
		Warnings: []string{},
	}
	if userID != "" {
		data.Source = domain.ReceiptSourceMobile
	}
	if doc.Vendor != nil {
		data.Vendor = domain.ReceiptVendor{Name: doc.Vendor.Name, Address: doc.Vendor.Address, PhoneNumber: doc.Vendor.PhoneNumber}
	}
	if doc.Payment != nil {
		data.PaymentMethod = doc.Payment.Type
	}

	if data.Vendor.Name == "" {
		data.Vendor.Name = domain.UnknownVendorName
		data.Warnings = append(data.Warnings, domain.WarningVendorMissing)
	}
	if data.Date == "" {
		data.Date = today
		data.Warnings = append(data.Warnings, domain.WarningDateMissing)
	}
	if data.Currency == "" {
		data.Currency = defaultCurrency
	}

	if len(doc.LineItems) == 0 {
		data.Warnings = append(data.Warnings, domain.WarningItemsMissing)
	}
	for _, item := range doc.LineItems {
		desc := item.Description
		if desc == "" {
			desc = defaultItemName
		}
		data.Items = append(data.Items, domain.ReceiptItem{
			Description: desc,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}

	if data.Notes == "" {
		data.Notes = GenerateDescription(data.Vendor.Name, doc.LineItems)
	}

	switch {
	case doc.Thumbnail != "":
		data.ReceiptURL = doc.Thumbnail
	case doc.ImgURL != "":
		data.ReceiptURL = doc.ImgURL
	default:
		data.ReceiptURL = doc.ImgThumbnailURL
	}

	return data, nil
}

// ToExpense turns a processed receipt into an expense draft for the given vendor.
func ToExpense(r domain.ReceiptData, vendorID string) domain.Expense {
	items := make([]domain.ExpenseItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.ExpenseItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}

	currency := r.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	category := r.Category
	if category == "" {
		category = defaultCategory
	}

	return domain.Expense{
		VendorID:      vendorID,
		VendorName:    r.Vendor.Name,
		Date:          normalizeDate(r.Date),
		Amount:        r.Total,
		Currency:      currency,
		Category:      category,
		PaymentMethod: r.PaymentMethod,
		ReceiptURL:    r.ReceiptURL,
		Notes:         r.Notes,
		Items:         items,
		Tax:           r.Tax,
		Type:          domain.ExpenseTypeExpense,
	}
}

var receiptDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	domain.DateLayout,
}

func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Today()
	}
	for _, layout := range receiptDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(domain.DateLayout)
		}
	}
	if len(raw) >= 10 {
		return raw[:10]
	}
	return raw
}

func documentID(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return trimmed
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
