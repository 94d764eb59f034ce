package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxLogoSize bounds logo uploads.
const maxLogoSize = 2 << 20

type settingsHandler struct {
	settingsService portssvc.SettingsSvc
}

func newSettingsHandler(ss portssvc.SettingsSvc) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvc) {
	h := newSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("/logo-url", h.updateLogoURL)
		settings.POST("/logo", h.uploadLogo)
	}
}

// getSettings godoc
// @Summary Get app settings
// @Tags settings
// @Produce json
// @Success 200 {object} domain.AppSettings
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsService.Get())
}

// updateLogoURL godoc
// @Summary Set the logo URL
// @Description Takes effect immediately; the store is written shortly after
// @Tags settings
// @Accept json
// @Produce json
// @Param   settings body dto.UpdateLogoURLRequest true "Logo URL, null to clear"
// @Success 200 {object} domain.AppSettings
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /settings/logo-url [put]
func (h *settingsHandler) updateLogoURL(c *gin.Context) {
	var req dto.UpdateLogoURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.settingsService.SetLogoURL(c.Request.Context(), req.Normalized()))
}

// uploadLogo godoc
// @Summary Upload a logo
// @Description Stores the image in object storage and points the logo URL at it
// @Tags settings
// @Accept multipart/form-data
// @Produce json
// @Param   logo formData file true "Logo image (max 2MB)"
// @Success 200 {object} domain.AppSettings
// @Failure 400 {object} map[string]string "Missing or invalid file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Storage not configured or upload failed"
// @Security BearerAuth
// @Router /settings/logo [post]
func (h *settingsHandler) uploadLogo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	header, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing logo file"})
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Logo must be an image"})
		return
	}
	if header.Size > maxLogoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Logo must be 2MB or smaller"})
		return
	}

	file, err := header.Open()
	if err != nil {
		logger.Error("Failed to open logo upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read logo file"})
		return
	}
	defer file.Close()

	settings, err := h.settingsService.UploadLogo(c.Request.Context(), header.Filename, contentType, file, header.Size)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "File storage is not configured"})
		} else {
			logger.Error("Failed to upload logo", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload logo"})
		}
		return
	}

	c.JSON(http.StatusOK, settings)
}
