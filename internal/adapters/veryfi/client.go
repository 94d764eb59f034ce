// Package veryfi submits receipt files to the Veryfi OCR API.
package veryfi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	"github.com/SscSPs/expense_tracker/internal/platform/metrics"
)

const (
	DefaultDocumentsURL  = "https://api.veryfi.com/api/v8/partner/documents"
	DefaultCategoriesURL = "https://api.veryfi.com/api/v8/categories/"

	vendorName = "veryfi"
)

// Config carries the credentials and endpoints of the OCR account.
type Config struct {
	ClientID      string
	Username      string
	APIKey        string
	DocumentsURL  string
	CategoriesURL string
	Timeout       time.Duration
}

// Client talks to the Veryfi REST API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	metrics    *metrics.Metrics
	now        func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics records every call on m.
func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithClock overrides the clock used for external ids.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a Veryfi client. Empty endpoints fall back to the public API.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	if cfg.DocumentsURL == "" {
		cfg.DocumentsURL = DefaultDocumentsURL
	}
	if cfg.CategoriesURL == "" {
		cfg.CategoriesURL = DefaultCategoriesURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ clients.ReceiptOCR = (*Client)(nil)

// Configured reports whether all credentials are present.
func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.Username != "" && c.cfg.APIKey != ""
}

// DocumentsURL is the endpoint receipts are posted to.
func (c *Client) DocumentsURL() string {
	return c.cfg.DocumentsURL
}

// ProcessDocument posts the file as multipart form data and decodes the extraction.
func (c *Client) ProcessDocument(ctx context.Context, upload domain.ReceiptUpload) (doc *clients.OCRDocument, err error) {
	if !c.Configured() {
		return nil, fmt.Errorf("veryfi: %w", apperrors.ErrNotConfigured)
	}
	started := time.Now()
	defer func() { c.metrics.ObserveVendorCall(vendorName, started, err) }()

	body, contentType, err := c.encodeUpload(upload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.DocumentsURL, body)
	if err != nil {
		return nil, fmt.Errorf("veryfi: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	slog.DebugContext(ctx, "Submitting receipt to OCR",
		slog.String("file_name", upload.FileName),
		slog.String("content_type", upload.ContentType),
		slog.Int64("size", upload.Size))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("veryfi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp)
	}

	doc = &clients.OCRDocument{}
	if err := json.NewDecoder(resp.Body).Decode(doc); err != nil {
		return nil, fmt.Errorf("veryfi: decode response: %w", err)
	}
	return doc, nil
}

// Ping lists the account's categories, the cheapest authenticated call the API offers.
func (c *Client) Ping(ctx context.Context) (err error) {
	if !c.Configured() {
		return fmt.Errorf("veryfi: %w", apperrors.ErrNotConfigured)
	}
	started := time.Now()
	defer func() { c.metrics.ObserveVendorCall(vendorName, started, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.CategoriesURL, nil)
	if err != nil {
		return fmt.Errorf("veryfi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("veryfi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Client-Id", c.cfg.ClientID)
	req.Header.Set("Authorization", fmt.Sprintf("apikey %s:%s", c.cfg.Username, c.cfg.APIKey))
}

func (c *Client) encodeUpload(upload domain.ReceiptUpload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fileName := upload.FileName
	if fileName == "" {
		fileName = "receipt"
		if upload.IsPDF() {
			fileName = "receipt.pdf"
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", upload.ContentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("veryfi: create file part: %w", err)
	}
	if _, err := part.Write(upload.Content); err != nil {
		return nil, "", fmt.Errorf("veryfi: write file part: %w", err)
	}

	fields := [][2]string{
		{"auto_delete", "false"},
		{"boost_mode", "1"},
		{"external_id", "receipt_" + strconv.FormatInt(c.now().UnixMilli(), 10)},
	}
	if upload.IsPDF() {
		fields = append(fields,
			[2]string{"file_name", fileName},
			[2]string{"document_type", "receipt"},
		)
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("veryfi: write field %s: %w", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("veryfi: close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
