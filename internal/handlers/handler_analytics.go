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

type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvc
}

func newAnalyticsHandler(as portssvc.AnalyticsSvc) *analyticsHandler {
	return &analyticsHandler{analyticsService: as}
}

func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvc) {
	h := newAnalyticsHandler(analyticsService)

	analytics := rg.Group("/analytics")
	{
		analytics.GET("/expenses", h.expenseSummary)
		analytics.GET("/revenue", h.revenueSummary)
		analytics.POST("/correlation", h.correlation)
		analytics.GET("/dashboard", h.dashboard)
	}
}

// expenseSummary godoc
// @Summary Expense summary
// @Description Totals the user's expenses by category, vendor and month. Accepts the expense list filters.
// @Tags analytics
// @Produce json
// @Param   startDate query string false "Earliest date (YYYY-MM-DD)"
// @Param   endDate query string false "Latest date (YYYY-MM-DD)"
// @Param   categories query string false "Comma separated categories"
// @Param   vendorIds query string false "Comma separated vendor IDs"
// @Param   search query string false "Search term"
// @Param   tags query string false "Comma separated tags"
// @Success 200 {object} domain.ExpenseSummary
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to summarise expenses"
// @Security BearerAuth
// @Router /analytics/expenses [get]
func (h *analyticsHandler) expenseSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.analyticsService.ExpenseSummary(c.Request.Context(), userID, params.ToFilter())
	if err != nil {
		logger.Error("Failed to summarise expenses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarise expenses"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// revenueSummary godoc
// @Summary Revenue summary
// @Description Syncs orders from the store (up to 10 pages) and aggregates revenue, top products and daily totals
// @Tags analytics
// @Produce json
// @Param   startDate query string false "Earliest order date"
// @Param   endDate query string false "Latest order date"
// @Param   status query string false "Order status" default(any)
// @Success 200 {object} domain.RevenueSummary
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Store not configured or sync failed"
// @Security BearerAuth
// @Router /analytics/revenue [get]
func (h *analyticsHandler) revenueSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.RevenueParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.analyticsService.RevenueSummary(c.Request.Context(), params.ToQuery())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Shopify API credentials not configured"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if status, ok := upstreamStatus(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build revenue summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build revenue summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// correlation godoc
// @Summary Revenue and traffic correlation
// @Description Joins an order CSV export with a sessions CSV export by date
// @Tags analytics
// @Accept multipart/form-data
// @Produce json
// @Param   orders formData file true "Orders CSV export"
// @Param   sessions formData file true "Sessions CSV export"
// @Success 200 {object} domain.CorrelationAnalysis
// @Failure 400 {object} map[string]string "Missing or unreadable file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /analytics/correlation [post]
func (h *analyticsHandler) correlation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ordersHeader, err := c.FormFile("orders")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing orders file"})
		return
	}
	sessionsHeader, err := c.FormFile("sessions")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing sessions file"})
		return
	}

	orders, err := ordersHeader.Open()
	if err != nil {
		logger.Error("Failed to open orders upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read orders file"})
		return
	}
	defer orders.Close()
	sessions, err := sessionsHeader.Open()
	if err != nil {
		logger.Error("Failed to open sessions upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read sessions file"})
		return
	}
	defer sessions.Close()

	result, err := h.analyticsService.Correlation(c.Request.Context(), orders, sessions)
	if err != nil {
		logger.Warn("Failed to correlate exports", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// dashboard godoc
// @Summary Dashboard totals
// @Description Revenue, expenses, COGS and profit for this month and the last three months
// @Tags analytics
// @Produce json
// @Success 200 {object} domain.DashboardSummary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build dashboard"
// @Security BearerAuth
// @Router /analytics/dashboard [get]
func (h *analyticsHandler) dashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.analyticsService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to build dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
