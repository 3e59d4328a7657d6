// Package api implements the HTTP handlers for the DevConnect REST API.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devconnect/backend/internal/middleware"
	"github.com/devconnect/backend/internal/types"
)

// userIDFromContext pulls the authenticated user id set by the auth
// middleware.
func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body and, on failure, writes the itemized
// validation error array.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, types.ValidationErrorResponse{Errors: types.FieldErrors(err)})
		return false
	}
	return true
}

// serverError logs the cause and returns the generic 500 body. Nothing
// about the failure leaks to the client.
func serverError(c *gin.Context, logger *zap.Logger, err error) {
	logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
}
