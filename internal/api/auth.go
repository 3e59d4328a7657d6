package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devconnect/backend/internal/service"
	"github.com/devconnect/backend/internal/types"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	auth   service.IAuthService
	logger *zap.Logger
}

func NewAuthHandler(auth service.IAuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "User already exists"})
			return
		}
		serverError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, types.TokenResponse{Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid credentials"})
			return
		}
		serverError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, types.TokenResponse{Token: token})
}
