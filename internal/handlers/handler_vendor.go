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

// vendorHandler handles HTTP requests related to vendors.
type vendorHandler struct {
	vendorService portssvc.VendorSvcFacade
}

func newVendorHandler(vs portssvc.VendorSvcFacade) *vendorHandler {
	return &vendorHandler{vendorService: vs}
}

// registerVendorRoutes registers the vendor routes, and the same routes under /payees for older clients.
func registerVendorRoutes(rg *gin.RouterGroup, vendorService portssvc.VendorSvcFacade) {
	h := newVendorHandler(vendorService)

	for _, path := range []string{"/vendors", "/payees"} {
		vendors := rg.Group(path)
		vendors.POST("", h.createVendor)
		vendors.GET("", h.listVendors)
		vendors.GET("/:id", h.getVendor)
		vendors.PATCH("/:id", h.updateVendor)
		vendors.DELETE("/:id", h.deleteVendor)
	}
}

// createVendor godoc
// @Summary Create a vendor
// @Tags vendors
// @Accept  json
// @Produce  json
// @Param   vendor body dto.CreateVendorRequest true "Vendor details"
// @Success 201 {object} domain.Vendor
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create vendor"
// @Security BearerAuth
// @Router /vendors [post]
func (h *vendorHandler) createVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVendor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vendor, err := h.vendorService.AddVendor(c.Request.Context(), userID, req.ToDomain())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create vendor in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vendor"})
		}
		return
	}

	c.JSON(http.StatusCreated, vendor)
}

// listVendors godoc
// @Summary List vendors
// @Description Lists the user's vendors, newest first
// @Tags vendors
// @Produce  json
// @Success 200 {object} dto.ListVendorsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /vendors [get]
func (h *vendorHandler) listVendors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, dto.ListVendorsResponse{Vendors: h.vendorService.GetVendors(c.Request.Context(), userID)})
}

// getVendor godoc
// @Summary Get a vendor by ID
// @Tags vendors
// @Produce  json
// @Param   id path string true "Vendor ID"
// @Success 200 {object} domain.Vendor
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Vendor not found"
// @Failure 500 {object} map[string]string "Failed to retrieve vendor"
// @Security BearerAuth
// @Router /vendors/{id} [get]
func (h *vendorHandler) getVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vendorID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vendor, err := h.vendorService.GetVendorByID(c.Request.Context(), userID, vendorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		} else {
			logger.Error("Failed to get vendor from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vendor"})
		}
		return
	}

	c.JSON(http.StatusOK, vendor)
}

// updateVendor godoc
// @Summary Update a vendor
// @Description Applies a partial update. Fields sent as null are cleared; id and timestamps are ignored.
// @Tags vendors
// @Accept  json
// @Param   id path string true "Vendor ID"
// @Param   patch body map[string]interface{} true "Fields to change"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Vendor not found"
// @Failure 500 {object} map[string]string "Failed to update vendor"
// @Security BearerAuth
// @Router /vendors/{id} [patch]
func (h *vendorHandler) updateVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vendorID := c.Param("id")

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVendor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.vendorService.UpdateVendor(c.Request.Context(), userID, vendorID, patch); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		default:
			logger.Error("Failed to update vendor in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vendor"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteVendor godoc
// @Summary Delete a vendor
// @Description Expenses that name the vendor keep their copy of the vendor name
// @Tags vendors
// @Param   id path string true "Vendor ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to delete vendor"
// @Security BearerAuth
// @Router /vendors/{id} [delete]
func (h *vendorHandler) deleteVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vendorID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.vendorService.DeleteVendor(c.Request.Context(), userID, vendorID); err != nil {
		logger.Error("Failed to delete vendor in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vendor"})
		return
	}

	c.Status(http.StatusNoContent)
}
