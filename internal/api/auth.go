package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homeboardapp/backend/internal/middleware"
	"github.com/homeboardapp/backend/internal/service"
)

type AuthHandler struct {
	authService    *service.AuthService
	contextService *service.ContextService
}

func NewAuthHandler(authService *service.AuthService, contextService *service.ContextService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		contextService: contextService,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", middleware.AuthMiddleware(h.authService), h.Logout)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName, req.FirstName, req.LastName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{UserID: user.ID, Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{UserID: user.ID, Token: token})
}

// Logout tears down the browsing session, which clears the active-household
// pointer along with it.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid := middleware.SessionID(c); sid != "" {
		if err := h.contextService.EndSession(c.Request.Context(), sid); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
