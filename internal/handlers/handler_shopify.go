package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// shopifyHandler proxies the store's order and product listings.
type shopifyHandler struct {
	shopifyService portssvc.ShopifySvc
}

func newShopifyHandler(ss portssvc.ShopifySvc) *shopifyHandler {
	return &shopifyHandler{shopifyService: ss}
}

// registerShopifyRoutes registers the public passthrough routes.
func registerShopifyRoutes(r *gin.Engine, shopifyService portssvc.ShopifySvc) {
	h := newShopifyHandler(shopifyService)

	shop := r.Group("/api/shopify")
	{
		shop.GET("/orders", h.listOrders)
		shop.GET("/products", h.listProducts)
	}
}

// registerInventoryRoutes registers the inventory view of the store's products.
func registerInventoryRoutes(rg *gin.RouterGroup, shopifyService portssvc.ShopifySvc) {
	h := newShopifyHandler(shopifyService)
	rg.GET("/inventory", h.inventory)
}

// listOrders godoc
// @Summary List store orders
// @Description One page of orders. When a cursor is given the date and status filters are ignored.
// @Tags shopify
// @Produce json
// @Param   startDate query string false "Earliest creation date"
// @Param   endDate query string false "Latest creation date"
// @Param   limit query int false "Page size" default(50)
// @Param   cursor query string false "Cursor from a previous page"
// @Param   status query string false "Order status"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Credentials not configured or request failed"
// @Router /api/shopify/orders [get]
func (h *shopifyHandler) listOrders(c *gin.Context) {
	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.shopifyService.ListOrders(c.Request.Context(), params.ToQuery())
	if err != nil {
		h.respondError(c, err, "Error fetching Shopify orders: ")
		return
	}

	c.JSON(http.StatusOK, dto.ToListOrdersResponse(page, params))
}

// listProducts godoc
// @Summary List store products
// @Description One page of products. When a cursor is given the collection, type and vendor filters are ignored.
// @Tags shopify
// @Produce json
// @Param   limit query int false "Page size" default(250)
// @Param   cursor query string false "Cursor from a previous page"
// @Param   collection_id query string false "Collection ID"
// @Param   product_type query string false "Product type"
// @Param   vendor query string false "Product vendor"
// @Success 200 {object} dto.ListProductsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Credentials not configured or request failed"
// @Router /api/shopify/products [get]
func (h *shopifyHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.shopifyService.ListProducts(c.Request.Context(), params.ToQuery())
	if err != nil {
		h.respondError(c, err, "Error fetching Shopify products: ")
		return
	}

	c.JSON(http.StatusOK, dto.ToListProductsResponse(page, params))
}

// inventory godoc
// @Summary Inventory
// @Description One page of store products as inventory items
// @Tags shopify
// @Produce json
// @Param   limit query int false "Page size" default(250)
// @Param   cursor query string false "Cursor from a previous page"
// @Param   collection_id query string false "Collection ID"
// @Param   product_type query string false "Product type"
// @Param   vendor query string false "Product vendor"
// @Success 200 {object} dto.InventoryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Credentials not configured or request failed"
// @Security BearerAuth
// @Router /inventory [get]
func (h *shopifyHandler) inventory(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	items, next, err := h.shopifyService.Inventory(c.Request.Context(), params.ToQuery())
	if err != nil {
		h.respondError(c, err, "Error fetching inventory: ")
		return
	}

	c.JSON(http.StatusOK, dto.InventoryResponse{Items: items, NextCursor: next})
}

// respondError passes the platform's status through on API errors.
func (h *shopifyHandler) respondError(c *gin.Context, err error, prefix string) {
	switch {
	case errors.Is(err, apperrors.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Shopify API credentials not configured"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if status, ok := upstreamStatus(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Shopify request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": prefix + err.Error()})
	}
}
