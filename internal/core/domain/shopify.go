package domain

// ShopifyLineItem is a line of a Shopify order.
type ShopifyLineItem struct {
	ID           int64  `json:"id"`
	VariantID    int64  `json:"variant_id"`
	Title        string `json:"title"`
	Quantity     int    `json:"quantity"`
	SKU          string `json:"sku"`
	VariantTitle string `json:"variant_title"`
	Vendor       string `json:"vendor"`
	Price        string `json:"price"`
	Name         string `json:"name"`
}

// ShopifyCustomer is the customer block of a Shopify order.
type ShopifyCustomer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ShopifyOrder is a read-only projection of a Shopify order.
type ShopifyOrder struct {
	ID                  int64             `json:"id"`
	Name                string            `json:"name"`
	Email               string            `json:"email"`
	CreatedAt           string            `json:"created_at"`
	ProcessedAt         string            `json:"processed_at"`
	UpdatedAt           string            `json:"updated_at"`
	TotalPrice          string            `json:"total_price"`
	SubtotalPrice       string            `json:"subtotal_price"`
	TotalTax            string            `json:"total_tax"`
	Currency            string            `json:"currency"`
	FinancialStatus     string            `json:"financial_status"`
	TotalDiscounts      string            `json:"total_discounts"`
	TotalLineItemsPrice string            `json:"total_line_items_price"`
	Customer            *ShopifyCustomer  `json:"customer"`
	LineItems           []ShopifyLineItem `json:"line_items"`
}

// ShopifyProductVariant is a purchasable variant of a product.
type ShopifyProductVariant struct {
	ID                  int64   `json:"id"`
	ProductID           int64   `json:"product_id"`
	Title               string  `json:"title"`
	Price               string  `json:"price"`
	SKU                 string  `json:"sku"`
	Position            int     `json:"position"`
	InventoryPolicy     string  `json:"inventory_policy"`
	CompareAtPrice      *string `json:"compare_at_price"`
	InventoryQuantity   int     `json:"inventory_quantity"`
	InventoryManagement *string `json:"inventory_management"`
}

// ShopifyProductImage is an image attached to a product.
type ShopifyProductImage struct {
	ID         int64   `json:"id"`
	ProductID  int64   `json:"product_id"`
	Position   int     `json:"position"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
	Src        string  `json:"src"`
	VariantIDs []int64 `json:"variant_ids"`
}

// ShopifyProduct is a read-only projection of a Shopify product.
type ShopifyProduct struct {
	ID          int64                   `json:"id"`
	Title       string                  `json:"title"`
	BodyHTML    string                  `json:"body_html"`
	Vendor      string                  `json:"vendor"`
	ProductType string                  `json:"product_type"`
	CreatedAt   string                  `json:"created_at"`
	Handle      string                  `json:"handle"`
	UpdatedAt   string                  `json:"updated_at"`
	PublishedAt string                  `json:"published_at"`
	Status      string                  `json:"status"`
	Tags        string                  `json:"tags"`
	Variants    []ShopifyProductVariant `json:"variants"`
	Images      []ShopifyProductImage   `json:"images"`
}

// InventoryItem is the inventory view of a product.
type InventoryItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// OrderQuery filters a page of orders. Filters are ignored by the platform when Cursor is set.
type OrderQuery struct {
	StartDate string
	EndDate   string
	Limit     int
	Cursor    string
	Status    string
}

// ProductQuery filters a page of products. Filters are ignored by the platform when Cursor is set.
type ProductQuery struct {
	Limit        int
	Cursor       string
	CollectionID string
	ProductType  string
	Vendor       string
}

// OrderPage is one page of orders plus the cursor for the next one.
type OrderPage struct {
	Orders     []ShopifyOrder
	NextCursor *string
}

// ProductPage is one page of products plus the cursor for the next one.
type ProductPage struct {
	Products   []ShopifyProduct
	NextCursor *string
}

// MaxOrderSyncPages bounds a multi-page order sync.
const MaxOrderSyncPages = 10
