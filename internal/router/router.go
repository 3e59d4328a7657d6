package router

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/devconnect/backend/internal/api"
	"github.com/devconnect/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	profileHandler *api.ProfileHandler,
	postHandler *api.PostHandler,
	allowedOrigins []string,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	registerTagNames()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(allowedOrigins))

	var mutation []gin.HandlerFunc
	if rateLimiter != nil {
		mutation = append(mutation, rateLimiter.RateLimitMiddleware())
	}

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	profileHandler.RegisterRoutes(v1, mutation...)
	postHandler.RegisterRoutes(v1, mutation...)

	return router
}

// registerTagNames makes validation errors report json field names
// ("status", "skills") instead of Go struct field names.
func registerTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
