package dto

import "github.com/SscSPs/expense_tracker/internal/core/domain"

// ListOrdersParams defines query parameters for the order passthrough.
type ListOrdersParams struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Limit     int    `form:"limit,default=50" binding:"min=1,max=250"`
	Cursor    string `form:"cursor"`
	Status    string `form:"status"`
}

// ToQuery converts the parameters into an order query.
func (p ListOrdersParams) ToQuery() domain.OrderQuery {
	return domain.OrderQuery{
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Limit:     p.Limit,
		Cursor:    p.Cursor,
		Status:    p.Status,
	}
}

// OrderParamsEcho repeats the filters of an order request.
type OrderParamsEcho struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
}

// ListOrdersResponse is one page of store orders.
type ListOrdersResponse struct {
	Orders         []domain.ShopifyOrder `json:"orders"`
	NextCursor     *string               `json:"nextCursor"`
	OriginalParams OrderParamsEcho       `json:"originalParams"`
}

// ToListOrdersResponse converts a page of orders, echoing the request filters.
func ToListOrdersResponse(page *domain.OrderPage, p ListOrdersParams) ListOrdersResponse {
	orders := page.Orders
	if orders == nil {
		orders = []domain.ShopifyOrder{}
	}
	return ListOrdersResponse{
		Orders:         orders,
		NextCursor:     page.NextCursor,
		OriginalParams: OrderParamsEcho{StartDate: p.StartDate, EndDate: p.EndDate, Status: p.Status},
	}
}

// ListProductsParams defines query parameters for the product passthrough.
type ListProductsParams struct {
	Limit        int    `form:"limit,default=250" binding:"min=1,max=250"`
	Cursor       string `form:"cursor"`
	CollectionID string `form:"collection_id"`
	ProductType  string `form:"product_type"`
	Vendor       string `form:"vendor"`
}

// ToQuery converts the parameters into a product query.
func (p ListProductsParams) ToQuery() domain.ProductQuery {
	return domain.ProductQuery{
		Limit:        p.Limit,
		Cursor:       p.Cursor,
		CollectionID: p.CollectionID,
		ProductType:  p.ProductType,
		Vendor:       p.Vendor,
	}
}

// ProductParamsEcho repeats the filters of a product request.
type ProductParamsEcho struct {
	CollectionID string `json:"collectionId"`
	ProductType  string `json:"productType"`
	Vendor       string `json:"vendor"`
}

// ListProductsResponse is one page of store products.
type ListProductsResponse struct {
	Products       []domain.ShopifyProduct `json:"products"`
	NextCursor     *string                 `json:"nextCursor"`
	OriginalParams ProductParamsEcho       `json:"originalParams"`
}

// ToListProductsResponse converts a page of products, echoing the request filters.
func ToListProductsResponse(page *domain.ProductPage, p ListProductsParams) ListProductsResponse {
	products := page.Products
	if products == nil {
		products = []domain.ShopifyProduct{}
	}
	return ListProductsResponse{
		Products:       products,
		NextCursor:     page.NextCursor,
		OriginalParams: ProductParamsEcho{CollectionID: p.CollectionID, ProductType: p.ProductType, Vendor: p.Vendor},
	}
}

// InventoryResponse is one page of products in inventory form.
type InventoryResponse struct {
	Items      []domain.InventoryItem `json:"items"`
	NextCursor *string                `json:"nextCursor"`
}

// RevenueParams defines the order filters for the revenue summary.
type RevenueParams struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Status    string `form:"status,default=any"`
}

// ToQuery converts the parameters into the first page of an order sync.
func (p RevenueParams) ToQuery() domain.OrderQuery {
	return domain.OrderQuery{
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    p.Status,
		Limit:     250,
	}
}
