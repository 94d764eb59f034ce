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

// authHandler handles PIN sign-in and session requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the routes for authentication.
// Sign-in is public and rate limited; the other routes need a session.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade, signInLimit gin.HandlersChain, requireAuth gin.HandlerFunc) {
	h := newAuthHandler(authService)

	auth := r.Group("/api/auth")
	{
		auth.POST("/signin", append(signInLimit, h.signIn)...)
		auth.POST("/signout", requireAuth, h.signOut)
		auth.GET("/session", requireAuth, h.session)
	}
}

// signIn godoc
// @Summary Sign in with the access PIN
// @Description Checks the shared PIN and starts an anonymous session
// @Tags auth
// @Accept json
// @Produce json
// @Param signin body dto.SignInRequest true "PIN"
// @Success 200 {object} dto.SignInResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} dto.AuthFailureResponse "Invalid PIN"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to sign in"
// @Router /api/auth/signin [post]
func (h *authHandler) signIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SignIn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), req.PIN)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, dto.AuthFailureResponse{Success: false, Message: "Invalid PIN"})
		} else {
			logger.Error("Failed to sign in", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSignInResponse(session))
}

// signOut godoc
// @Summary Sign out
// @Description Revokes the bearer token of the request
// @Tags auth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to sign out"
// @Security BearerAuth
// @Router /api/auth/signout [post]
func (h *authHandler) signOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tokenID, expiresAt, ok := middleware.GetTokenFromContext(c)
	if !ok {
		logger.Warn("Sign-out with a token that has no ID")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), tokenID, expiresAt); err != nil {
		logger.Error("Failed to sign out", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		return
	}

	c.Status(http.StatusNoContent)
}

// session godoc
// @Summary Current session
// @Description Returns the anonymous user behind the bearer token
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /api/auth/session [get]
func (h *authHandler) session(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp := dto.SessionResponse{User: dto.SessionUser{UID: userID, IsAnonymous: true}}
	if _, expiresAt, ok := middleware.GetTokenFromContext(c); ok && !expiresAt.IsZero() {
		resp.ExpiresAt = expiresAt.UnixMilli()
	}
	c.JSON(http.StatusOK, resp)
}
