package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// ShopifySvc proxies the store's order and product listings.
type ShopifySvc interface {
	ListOrders(ctx context.Context, q domain.OrderQuery) (*domain.OrderPage, error)
	ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error)

	// SyncOrders follows next-page cursors until exhausted or domain.MaxOrderSyncPages pages were read.
	SyncOrders(ctx context.Context, q domain.OrderQuery) ([]domain.ShopifyOrder, error)

	// Inventory lists one page of products converted to inventory items.
	Inventory(ctx context.Context, q domain.ProductQuery) ([]domain.InventoryItem, *string, error)
}
