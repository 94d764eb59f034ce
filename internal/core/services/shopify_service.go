package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/utils/analytics"
)

type shopifyService struct {
	BaseService
	client clients.ShopifyClient
}

// NewShopifyService creates a new store passthrough service.
func NewShopifyService(client clients.ShopifyClient, opts ...BaseOption) portssvc.ShopifySvc {
	svc := &shopifyService{client: client}
	svc.apply(opts)
	return svc
}

var _ portssvc.ShopifySvc = (*shopifyService)(nil)

func (s *shopifyService) ListOrders(ctx context.Context, q domain.OrderQuery) (*domain.OrderPage, error) {
	page, err := s.client.ListOrders(ctx, q)
	if err != nil {
		s.LogError(ctx, err, "Failed to list orders")
		return nil, err
	}
	return page, nil
}

func (s *shopifyService) ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error) {
	page, err := s.client.ListProducts(ctx, q)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, err
	}
	return page, nil
}

func (s *shopifyService) SyncOrders(ctx context.Context, q domain.OrderQuery) ([]domain.ShopifyOrder, error) {
	orders := []domain.ShopifyOrder{}
	query := q
	query.Cursor = ""

	for pages := 0; pages < domain.MaxOrderSyncPages; pages++ {
		page, err := s.client.ListOrders(ctx, query)
		if err != nil {
			s.LogError(ctx, err, "Order sync failed", slog.Int("pages_read", pages))
			return nil, err
		}
		orders = append(orders, page.Orders...)
		if page.NextCursor == nil || *page.NextCursor == "" {
			break
		}
		query = domain.OrderQuery{Limit: q.Limit, Cursor: *page.NextCursor}
	}

	s.LogDebug(ctx, "Orders synced", slog.Int("orders", len(orders)))
	return orders, nil
}

func (s *shopifyService) Inventory(ctx context.Context, q domain.ProductQuery) ([]domain.InventoryItem, *string, error) {
	page, err := s.ListProducts(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	return analytics.ConvertProductsToInventory(page.Products), page.NextCursor, nil
}
