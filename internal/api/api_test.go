package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/devconnect/backend/internal/api"
	"github.com/devconnect/backend/internal/router"
	"github.com/devconnect/backend/internal/service"
	"github.com/devconnect/backend/internal/testhelpers"
)

// testEnv runs the real router over an in-memory database, with only the
// GitHub proxy mocked out.
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	github *testhelpers.MockGitHubService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	logger := zap.NewNop()
	github := new(testhelpers.MockGitHubService)

	authSvc := service.NewAuthService(db, "test-secret")
	profileSvc := service.NewProfileService(db)
	postSvc := service.NewPostService(db)

	authHandler := api.NewAuthHandler(authSvc, logger)
	profileHandler := api.NewProfileHandler(profileSvc, github, nil, authSvc, logger)
	postHandler := api.NewPostHandler(postSvc, authSvc, logger)

	r := router.SetupRouter(authHandler, profileHandler, postHandler, []string{"http://localhost:5173"}, nil)
	return &testEnv{router: r, db: db, github: github}
}

// do issues a request against the router. A non-nil body is sent as JSON; a
// non-empty token goes into the Authorization header.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns their token.
func (e *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func msgBody(msg string) string {
	return fmt.Sprintf(`{"msg": %q}`, msg)
}
