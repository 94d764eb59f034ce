package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// receiptHandler hands receipt uploads to the OCR vendor.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvc
	expenseService portssvc.ExpenseWriterSvc
	posthog        *utils.PosthogClientWrapper
}

func newReceiptHandler(rs portssvc.ReceiptSvc, es portssvc.ExpenseWriterSvc, ph *utils.PosthogClientWrapper) *receiptHandler {
	return &receiptHandler{receiptService: rs, expenseService: es, posthog: ph}
}

// registerReceiptRoutes registers the public upload route. The mobile upload page posts here
// without a session, so the route is rate limited instead.
func registerReceiptRoutes(r *gin.Engine, h *receiptHandler, uploadLimit gin.HandlersChain) {
	r.POST("/api/veryfi/process-receipt", append(uploadLimit, h.processReceipt)...)
}

// registerReceiptConversionRoutes registers the authenticated receipt-to-expense route.
func registerReceiptConversionRoutes(rg *gin.RouterGroup, h *receiptHandler) {
	rg.POST("/receipts/to-expense", h.toExpense)
}

// processReceipt godoc
// @Summary Extract a receipt
// @Description Sends an image or PDF receipt (max 10MB) to the OCR vendor and returns the shaped result. Nothing is saved.
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param   file formData file true "Receipt image or PDF"
// @Param   userId formData string false "Owner of the receipt, sent by the mobile upload page"
// @Success 200 {object} domain.ReceiptData
// @Failure 400 {object} dto.ErrorDetailResponse "Missing or invalid file"
// @Failure 401 {object} dto.ErrorDetailResponse "OCR credentials rejected"
// @Failure 422 {object} dto.ErrorDetailResponse "OCR returned incomplete data"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} dto.ErrorDetailResponse "OCR not configured or server error"
// @Failure 502 {object} dto.ErrorDetailResponse "OCR vendor unavailable"
// @Router /api/veryfi/process-receipt [post]
func (h *receiptHandler) processReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorDetailResponse{Error: "Missing file", Details: "No file was provided in the request"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if err := h.receiptService.ValidateReceiptFile(contentType, header.Size); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorDetailResponse{Error: "Invalid file", Details: err.Error()})
		return
	}

	file, err := header.Open()
	if err != nil {
		logger.Error("Failed to open receipt upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorDetailResponse{Error: "Invalid file", Details: "The uploaded file could not be read"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, domain.MaxReceiptFileSize+1))
	if err != nil {
		logger.Error("Failed to read receipt upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorDetailResponse{Error: "Invalid file", Details: "The uploaded file could not be read"})
		return
	}

	upload := domain.ReceiptUpload{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     content,
		UserID:      c.PostForm("userId"),
	}

	data, err := h.receiptService.ProcessReceipt(c.Request.Context(), upload)
	if err != nil {
		h.respondOCRError(c, err)
		return
	}

	middleware.PosthogEvent(c, h.posthog, "receipt_processed", map[string]any{
		"source":   data.Source,
		"warnings": len(data.Warnings),
		"pdf":      upload.IsPDF(),
	})
	c.JSON(http.StatusOK, data)
}

// respondOCRError maps OCR failures to the error bodies the upload pages understand.
func (h *receiptHandler) respondOCRError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, dto.ErrorDetailResponse{Error: "API configuration error", Details: "Missing API credentials"})
		return
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorDetailResponse{Error: "Invalid file", Details: err.Error()})
		return
	case errors.Is(err, apperrors.ErrIncompleteReceipt):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorDetailResponse{Error: "Incomplete data", Details: "The OCR service returned incomplete data"})
		return
	}

	if status, ok := upstreamStatus(err); ok {
		logger.Warn("OCR vendor rejected the receipt", slog.Int("status", status), slog.String("error", err.Error()))
		switch {
		case status == http.StatusUnauthorized:
			c.JSON(http.StatusUnauthorized, dto.ErrorDetailResponse{
				Error:   "Authentication failed",
				Details: "The Veryfi API credentials are invalid or expired. Please check your API key and client ID.",
			})
		case status >= http.StatusInternalServerError:
			c.JSON(http.StatusBadGateway, dto.ErrorDetailResponse{Error: fmt.Sprintf("Veryfi API error: %d", status), Details: err.Error()})
		default:
			c.JSON(status, dto.ErrorDetailResponse{Error: fmt.Sprintf("Veryfi API error: %d", status), Details: err.Error()})
		}
		return
	}

	logger.Error("Receipt processing failed", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, dto.ErrorDetailResponse{Error: "Server error", Details: err.Error()})
}

// toExpense godoc
// @Summary Convert a receipt to an expense
// @Description Builds an expense draft from a reviewed receipt, and stores it when save is true
// @Tags receipts
// @Accept json
// @Produce json
// @Param   request body dto.ReceiptToExpenseRequest true "Receipt and options"
// @Success 200 {object} domain.Expense "Draft"
// @Success 201 {object} domain.Expense "Saved expense"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save expense"
// @Security BearerAuth
// @Router /receipts/to-expense [post]
func (h *receiptHandler) toExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReceiptToExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.Receipt.Total <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Receipt total is required"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	draft := h.receiptService.ConvertToExpense(req.Receipt, req.VendorID)
	if !req.Save {
		draft.UserID = userID
		c.JSON(http.StatusOK, draft)
		return
	}

	saved, err := h.expenseService.AddExpense(c.Request.Context(), userID, draft)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to save receipt expense", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save expense"})
		}
		return
	}

	c.JSON(http.StatusCreated, saved)
}
