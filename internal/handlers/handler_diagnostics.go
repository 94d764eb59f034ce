package handlers

import (
	"errors"
	"net/http"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type diagnosticsHandler struct {
	diagnosticsService portssvc.DiagnosticsSvc
}

func newDiagnosticsHandler(ds portssvc.DiagnosticsSvc) *diagnosticsHandler {
	return &diagnosticsHandler{diagnosticsService: ds}
}

func registerDiagnosticsRoutes(r *gin.Engine, diagnosticsService portssvc.DiagnosticsSvc) {
	h := newDiagnosticsHandler(diagnosticsService)

	r.GET("/api/test-firestore", h.testDocumentStore)
	r.GET("/api/test-veryfi", h.testOCR)
}

// testDocumentStore godoc
// @Summary Document store check
// @Description Lists up to 5 public documents, seeding one when there are none
// @Tags diagnostics
// @Produce json
// @Success 200 {object} domain.DocumentStoreReport
// @Failure 500 {object} domain.DocumentStoreReport
// @Router /api/test-firestore [get]
func (h *diagnosticsHandler) testDocumentStore(c *gin.Context) {
	report, err := h.diagnosticsService.TestDocumentStore(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": report.Message,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, report)
}

// testOCR godoc
// @Summary OCR credential check
// @Description Reports missing OCR credentials, then pings the vendor
// @Tags diagnostics
// @Produce json
// @Success 200 {object} domain.OCRReport
// @Failure 500 {object} domain.OCRReport "Credentials missing"
// @Router /api/test-veryfi [get]
func (h *diagnosticsHandler) testOCR(c *gin.Context) {
	report, err := h.diagnosticsService.TestOCR(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if !errors.Is(err, apperrors.ErrNotConfigured) && report.StatusCode >= http.StatusBadRequest {
			status = report.StatusCode
		}
		c.JSON(status, report)
		return
	}
	c.JSON(http.StatusOK, report)
}
