package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type speechHandler struct {
	speechService portssvc.SpeechSvc
}

func newSpeechHandler(ss portssvc.SpeechSvc) *speechHandler {
	return &speechHandler{speechService: ss}
}

// registerSpeechRoutes registers the speech-to-text routes. All of them need a session.
func registerSpeechRoutes(r *gin.Engine, speechService portssvc.SpeechSvc, requireAuth gin.HandlerFunc) {
	h := newSpeechHandler(speechService)

	speech := r.Group("/api/deepgram", requireAuth)
	{
		speech.GET("/transcribe-audio", h.issueKey)
		speech.GET("/state", h.getState)
		speech.PUT("/state", h.setState)
	}
}

// issueKey godoc
// @Summary Speech-to-text key
// @Description Returns the API key the browser uses to open the transcription socket
// @Tags speech
// @Produce json
// @Success 200 {object} dto.SpeechKeyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Key not configured"
// @Security BearerAuth
// @Router /api/deepgram/transcribe-audio [get]
func (h *speechHandler) issueKey(c *gin.Context) {
	key, err := h.speechService.IssueKey(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Deepgram API key not configured"})
		} else {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to issue speech key", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get Deepgram API key"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SpeechKeyResponse{Success: true, APIKey: key})
}

// getState godoc
// @Summary Speech connection state
// @Tags speech
// @Produce json
// @Success 200 {object} dto.SpeechStateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /api/deepgram/state [get]
func (h *speechHandler) getState(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.SpeechStateResponse{State: h.speechService.State(userID)})
}

// setState godoc
// @Summary Report a speech connection state change
// @Tags speech
// @Accept json
// @Produce json
// @Param   state body dto.SpeechStateRequest true "New state"
// @Success 200 {object} dto.SpeechStateResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Transition not allowed from the current state"
// @Security BearerAuth
// @Router /api/deepgram/state [put]
func (h *speechHandler) setState(c *gin.Context) {
	var req dto.SpeechStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	state, err := h.speechService.Transition(userID, domain.SpeechConnectionState(req.State))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "state": state})
		return
	}

	c.JSON(http.StatusOK, dto.SpeechStateResponse{State: state})
}
