// Package shopify reads orders and products from the Shopify Admin REST API.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	"github.com/SscSPs/expense_tracker/internal/platform/metrics"
)

const (
	APIVersion = "2023-01"

	DefaultOrderLimit   = 50
	DefaultProductLimit = 250

	vendorName   = "shopify"
	maxErrorBody = 8 << 10
)

// APIError carries the status and raw body of a failed Shopify call.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return "Shopify API error: " + e.Body
}

// Client is an Admin API client authenticated with a private app access token.
type Client struct {
	storeURL    string
	accessToken string
	httpClient  *http.Client
	metrics     *metrics.Metrics
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

// NewClient creates a client for the store at storeURL, e.g. https://shop.myshopify.com.
func NewClient(storeURL, accessToken string, timeout time.Duration, opts ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	c := &Client{
		storeURL:    strings.TrimRight(storeURL, "/"),
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ clients.ShopifyClient = (*Client)(nil)

// Configured reports whether the store URL and token are present.
func (c *Client) Configured() bool {
	return c.storeURL != "" && c.accessToken != ""
}

// ListOrders fetches one page of orders. With a cursor the date and status filters are not sent,
// the platform rejects them alongside page_info.
func (c *Client) ListOrders(ctx context.Context, q domain.OrderQuery) (*domain.OrderPage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limitOrDefault(q.Limit, DefaultOrderLimit)))
	if q.Cursor != "" {
		params.Set("page_info", q.Cursor)
	} else {
		if q.StartDate != "" {
			ts, err := isoTimestamp(q.StartDate)
			if err != nil {
				return nil, err
			}
			params.Set("created_at_min", ts)
		}
		if q.EndDate != "" {
			ts, err := isoTimestamp(q.EndDate)
			if err != nil {
				return nil, err
			}
			params.Set("created_at_max", ts)
		}
		if q.Status != "" {
			params.Set("status", q.Status)
		}
	}

	var payload struct {
		Orders []domain.ShopifyOrder `json:"orders"`
	}
	next, err := c.get(ctx, "orders.json", params, &payload)
	if err != nil {
		return nil, err
	}
	if payload.Orders == nil {
		payload.Orders = []domain.ShopifyOrder{}
	}
	return &domain.OrderPage{Orders: payload.Orders, NextCursor: next}, nil
}

// ListProducts fetches one page of products. With a cursor the filters are not sent.
func (c *Client) ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limitOrDefault(q.Limit, DefaultProductLimit)))
	if q.Cursor != "" {
		params.Set("page_info", q.Cursor)
	} else {
		if q.CollectionID != "" {
			params.Set("collection_id", q.CollectionID)
		}
		if q.ProductType != "" {
			params.Set("product_type", q.ProductType)
		}
		if q.Vendor != "" {
			params.Set("vendor", q.Vendor)
		}
	}

	var payload struct {
		Products []domain.ShopifyProduct `json:"products"`
	}
	next, err := c.get(ctx, "products.json", params, &payload)
	if err != nil {
		return nil, err
	}
	if payload.Products == nil {
		payload.Products = []domain.ShopifyProduct{}
	}
	return &domain.ProductPage{Products: payload.Products, NextCursor: next}, nil
}

func (c *Client) get(ctx context.Context, resource string, params url.Values, out any) (next *string, err error) {
	if !c.Configured() {
		return nil, fmt.Errorf("shopify: %w", apperrors.ErrNotConfigured)
	}
	started := time.Now()
	defer func() { c.metrics.ObserveVendorCall(vendorName, started, err) }()

	endpoint := fmt.Sprintf("%s/admin/api/%s/%s?%s", c.storeURL, APIVersion, resource, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("shopify: build request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shopify: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("shopify: decode %s: %w", resource, err)
	}
	return NextCursor(resp.Header.Get("Link")), nil
}

// NextCursor extracts the page_info parameter of the rel="next" link, or nil when there is none.
func NextCursor(linkHeader string) *string {
	if linkHeader == "" {
		return nil
	}
	for _, part := range strings.Split(linkHeader, ",") {
		section := strings.Split(part, ";")
		if len(section) != 2 {
			continue
		}
		rel := strings.TrimSpace(section[1])
		if rel != `rel="next"` {
			continue
		}
		raw := strings.Trim(strings.TrimSpace(section[0]), "<>")
		u, err := url.Parse(raw)
		if err != nil {
			return nil
		}
		cursor := u.Query().Get("page_info")
		if cursor == "" {
			return nil
		}
		return &cursor
	}
	return nil
}

func limitOrDefault(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}

// isoTimestamp normalizes a date or timestamp to a UTC ISO-8601 instant with milliseconds.
func isoTimestamp(raw string) (string, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", domain.DateLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format("2006-01-02T15:04:05.000Z"), nil
		}
	}
	return "", fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, raw)
}

// HTTPStatus returns the upstream status code.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}
