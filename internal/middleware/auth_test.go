package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/devconnect/backend/internal/testhelpers"
	"github.com/devconnect/backend/internal/types"
)

func newProtectedRouter(validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(validator), func(c *gin.Context) {
		userID := c.MustGet(ContextUserID).(uuid.UUID)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
	})
	return router
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	router := newProtectedRouter(&testhelpers.MockTokenValidator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"msg": "No token, authorization denied"}`, w.Body.String())
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := newProtectedRouter(&testhelpers.MockTokenValidator{})

	for _, header := range []string{"sometoken", "Basic sometoken", "Bearer a b"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.JSONEq(t, `{"msg": "Token is not valid"}`, w.Body.String())
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	validator := new(testhelpers.MockTokenValidator)
	validator.On("ValidateToken", "bad-token").Return(nil, errors.New("signature mismatch"))
	router := newProtectedRouter(validator)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"msg": "Token is not valid"}`, w.Body.String())
	validator.AssertExpectations(t)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	userID := uuid.New()
	validator := new(testhelpers.MockTokenValidator)
	validator.On("ValidateToken", "good-token").Return(&types.TokenClaims{UserID: userID}, nil)
	router := newProtectedRouter(validator)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	validator.AssertExpectations(t)
}
