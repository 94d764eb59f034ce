// Package clients declares the outbound integrations the services depend on.
package clients

import (
	"context"
	"encoding/json"
	"io"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// OCRLineItem is a line item as returned by the OCR vendor.
type OCRLineItem struct {
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
	Total       *float64 `json:"total"`
}

// OCRVendor is the merchant block returned by the OCR vendor.
type OCRVendor struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// OCRPayment is the payment block returned by the OCR vendor.
type OCRPayment struct {
	Type string `json:"type"`
}

// OCRDocument is the raw extraction returned by the OCR vendor.
// The id is a JSON number upstream; it is kept raw so both numbers and strings decode.
type OCRDocument struct {
	ID              json.RawMessage `json:"id"`
	Vendor          *OCRVendor      `json:"vendor"`
	Date            string          `json:"date"`
	Total           *float64        `json:"total"`
	Subtotal        *float64        `json:"subtotal"`
	Tax             *float64        `json:"tax"`
	Tip             *float64        `json:"tip"`
	CurrencyCode    string          `json:"currency_code"`
	Payment         *OCRPayment     `json:"payment"`
	LineItems       []OCRLineItem   `json:"line_items"`
	Category        string          `json:"category"`
	Notes           string          `json:"notes"`
	OCRText         string          `json:"ocr_text"`
	Thumbnail       string          `json:"thumbnail"`
	ImgURL          string          `json:"img_url"`
	ImgThumbnailURL string          `json:"img_thumbnail_url"`
}

// ReceiptOCR submits receipt files to an OCR vendor.
type ReceiptOCR interface {
	ProcessDocument(ctx context.Context, upload domain.ReceiptUpload) (*OCRDocument, error)
	Ping(ctx context.Context) error
}

// ShopifyClient reads orders and products from the store.
type ShopifyClient interface {
	ListOrders(ctx context.Context, q domain.OrderQuery) (*domain.OrderPage, error)
	ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error)
}

// ObjectStorage stores uploaded files and returns a URL they can be fetched from.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// Event is a domain event published after a successful write.
type Event struct {
	Type       string         `json:"type"`
	UserID     string         `json:"userId,omitempty"`
	EntityID   string         `json:"entityId,omitempty"`
	OccurredAt int64          `json:"occurredAt"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Event types.
const (
	EventExpenseCreated   = "expense.created"
	EventExpenseUpdated   = "expense.updated"
	EventExpenseDeleted   = "expense.deleted"
	EventVendorCreated    = "vendor.created"
	EventReceiptProcessed = "receipt.processed"
	EventSettingsUpdated  = "settings.updated"
)

// EventPublisher delivers domain events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
