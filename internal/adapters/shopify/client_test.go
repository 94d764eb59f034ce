package shopify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrders_FirstPageSendsFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2023-01/orders.json", r.URL.Path)
		assert.Equal(t, "tok", r.Header.Get("X-Shopify-Access-Token"))

		q := r.URL.Query()
		assert.Equal(t, "50", q.Get("limit"))
		assert.Equal(t, "2024-01-01T00:00:00.000Z", q.Get("created_at_min"))
		assert.Equal(t, "2024-01-31T00:00:00.000Z", q.Get("created_at_max"))
		assert.Equal(t, "any", q.Get("status"))
		assert.Empty(t, q.Get("page_info"))

		w.Header().Set("Link", `<https://shop.test/admin/api/2023-01/orders.json?limit=50&page_info=abc123>; rel="next"`)
		_, _ = w.Write([]byte(`{"orders": [{"id": 1, "total_price": "10.00", "created_at": "2024-01-02T10:00:00Z"}]}`))
	}))
	defer srv.Close()

	page, err := NewClient(srv.URL, "tok", 0).ListOrders(context.Background(), domain.OrderQuery{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		Status:    "any",
	})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, "10.00", page.Orders[0].TotalPrice)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "abc123", *page.NextCursor)
}

func TestListOrders_CursorDropsFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "abc123", q.Get("page_info"))
		assert.Equal(t, "25", q.Get("limit"))
		assert.Empty(t, q.Get("created_at_min"))
		assert.Empty(t, q.Get("status"))
		_, _ = w.Write([]byte(`{"orders": []}`))
	}))
	defer srv.Close()

	page, err := NewClient(srv.URL, "tok", 0).ListOrders(context.Background(), domain.OrderQuery{
		StartDate: "2024-01-01",
		Status:    "any",
		Limit:     25,
		Cursor:    "abc123",
	})
	require.NoError(t, err)
	assert.Empty(t, page.Orders)
	assert.Nil(t, page.NextCursor)
}

func TestListOrders_InvalidDate(t *testing.T) {
	_, err := NewClient("https://shop.test", "tok", 0).ListOrders(context.Background(), domain.OrderQuery{StartDate: "yesterday"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2023-01/products.json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "250", q.Get("limit"))
		assert.Equal(t, "42", q.Get("collection_id"))
		assert.Equal(t, "Shirts", q.Get("product_type"))
		assert.Equal(t, "Acme", q.Get("vendor"))
		_, _ = w.Write([]byte(`{"products": [{"id": 7, "title": "Tee", "variants": [{"price": "19.99", "inventory_quantity": 3}]}]}`))
	}))
	defer srv.Close()

	page, err := NewClient(srv.URL+"/", "tok", 0).ListProducts(context.Background(), domain.ProductQuery{
		CollectionID: "42",
		ProductType:  "Shirts",
		Vendor:       "Acme",
	})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Tee", page.Products[0].Title)
	assert.Equal(t, 3, page.Products[0].Variants[0].InventoryQuantity)
}

func TestAPIErrorPassesStatusThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"errors":"Unavailable Shop"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "tok", 0).ListProducts(context.Background(), domain.ProductQuery{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	assert.Equal(t, `Shopify API error: {"errors":"Unavailable Shop"}`, apiErr.Error())
}

func TestNotConfigured(t *testing.T) {
	_, err := NewClient("", "", 0).ListOrders(context.Background(), domain.OrderQuery{})
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}

func TestNextCursor(t *testing.T) {
	assert.Nil(t, NextCursor(""))
	assert.Nil(t, NextCursor(`<https://shop.test/orders.json?page_info=prev1>; rel="previous"`))

	both := `<https://shop.test/orders.json?page_info=prev1>; rel="previous", <https://shop.test/orders.json?page_info=next2&limit=5>; rel="next"`
	got := NextCursor(both)
	require.NotNil(t, got)
	assert.Equal(t, "next2", *got)
}
