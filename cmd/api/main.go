package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/devconnect/backend/config"
	"github.com/devconnect/backend/internal/api"
	"github.com/devconnect/backend/internal/database"
	"github.com/devconnect/backend/internal/logger"
	"github.com/devconnect/backend/internal/middleware"
	"github.com/devconnect/backend/internal/router"
	"github.com/devconnect/backend/internal/server"
	"github.com/devconnect/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(string(config.GetEnvironment()))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.New(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	// Redis is optional: without it the API runs with rate limiting off.
	var rateLimiter *middleware.RateLimiter
	if redisClient, err := database.NewRedisClient(cfg); err != nil {
		zlog.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
	} else {
		rateLimiter = middleware.NewMutationRateLimiter(redisClient)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	postService := service.NewPostService(db)
	githubService := service.NewGitHubService(cfg.GitHubToken)

	var avatarService service.IAvatarService
	if cfg.S3.Enabled() {
		avatarService, err = service.NewAvatarService(context.Background(), db, cfg.S3)
		if err != nil {
			zlog.Fatal("failed to initialize avatar storage", zap.Error(err))
		}
	}

	authHandler := api.NewAuthHandler(authService, zlog)
	profileHandler := api.NewProfileHandler(profileService, githubService, avatarService, authService, zlog)
	postHandler := api.NewPostHandler(postService, authService, zlog)

	engine := router.SetupRouter(authHandler, profileHandler, postHandler, cfg.CORSAllowedOrigins, rateLimiter)
	srv := server.New(engine, net.JoinHostPort(cfg.ServerHost, cfg.ServerPort), zlog)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zlog.Info("received signal", zap.String("signal", sig.String()))
	}

	zlog.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		zlog.Fatal("server shutdown error", zap.Error(err))
	}
	zlog.Info("server stopped")
}
