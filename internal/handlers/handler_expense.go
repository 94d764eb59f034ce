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

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers routes related to expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:id", h.getExpense)
		expenses.PATCH("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
	}
}

// createExpense godoc
// @Summary Record an expense
// @Description Stores a new expense for the signed-in user and returns it
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} domain.Expense
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create expense"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.AddExpense(c.Request.Context(), userID, req.ToDomain())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating expense", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create expense in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		}
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists one page of the user's expenses, newest first. Filters apply to the fetched page only.
// @Tags expenses
// @Produce  json
// @Param   startDate query string false "Earliest date (YYYY-MM-DD), used together with endDate"
// @Param   endDate query string false "Latest date (YYYY-MM-DD), used together with startDate"
// @Param   categories query string false "Comma separated categories"
// @Param   vendorIds query string false "Comma separated vendor IDs"
// @Param   minAmount query number false "Minimum amount"
// @Param   maxAmount query number false "Maximum amount"
// @Param   search query string false "Case-insensitive search over vendor, notes and category"
// @Param   tags query string false "Comma separated tags, any match"
// @Param   limit query int false "Page size" default(50)
// @Param   cursor query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListExpenses", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page := h.expenseService.GetExpenses(c.Request.Context(), userID, params.ToFilter(), params.Limit, params.Cursor)
	c.JSON(http.StatusOK, dto.ToListExpensesResponse(page))
}

// getExpense godoc
// @Summary Get an expense by ID
// @Tags expenses
// @Produce  json
// @Param   id path string true "Expense ID"
// @Success 200 {object} domain.Expense
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to retrieve expense"
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), userID, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Expense not found", slog.String("expense_id", expenseID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			logger.Error("Failed to get expense from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve expense"})
		}
		return
	}

	c.JSON(http.StatusOK, expense)
}

// updateExpense godoc
// @Summary Update an expense
// @Description Applies a partial update. Fields sent as null are cleared; id and timestamps are ignored.
// @Tags expenses
// @Accept  json
// @Param   id path string true "Expense ID"
// @Param   patch body map[string]interface{} true "Fields to change"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to update expense"
// @Security BearerAuth
// @Router /expenses/{id} [patch]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		logger.Warn("Failed to bind JSON for UpdateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.expenseService.UpdateExpense(c.Request.Context(), userID, expenseID, patch); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		default:
			logger.Error("Failed to update expense in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Param   id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to delete expense"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), userID, expenseID); err != nil {
		logger.Error("Failed to delete expense in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}

	c.Status(http.StatusNoContent)
}
