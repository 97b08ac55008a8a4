package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"authservice/internal/adapter/cache"
	postgres "authservice/internal/adapter/database/postgres"
	pgrepository "authservice/internal/adapter/database/postgres/repository"
	sqlite "authservice/internal/adapter/database/sqlite"
	sqliterepository "authservice/internal/adapter/database/sqlite/repository"
	"authservice/internal/adapter/http/routes"
	"authservice/internal/adapter/token"
	"authservice/internal/core/port"
	"authservice/pkg/config"
	"authservice/pkg/tracing"
)

func StartServer(metrics *tracing.AppMetrics, logger *config.LokiLogger) {
	appConfig, err := config.LoadConfig()

	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		return
	}

	StartServerWithConfig(metrics, logger, appConfig)
}

func StartServerWithConfig(metrics *tracing.AppMetrics, logger *config.LokiLogger, appConfig *config.AppConfig) {
	ctx := context.Background()

	userRepo, cleanup, err := newUserRepository(ctx, appConfig)

	if err != nil {
		slog.Error("Failed to open user store", "error", err)
		return
	}

	defer cleanup()

	redisClient, err := cache.NewClient(ctx, appConfig.RedisURL)

	if err != nil {
		slog.Error("Failed to connect to redis", "error", err)
		return
	}

	defer redisClient.Close()

	tokens := token.NewJwtService(appConfig.JWTSecret, appConfig.AccessTokenTTL)
	refresh := cache.NewRefreshTokenStore(redisClient, appConfig.RefreshTokenTTL)

	container := NewContainer(userRepo, tokens, refresh, metrics)

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		AuthHandler: container.AuthHandler,
		UserHandler: container.UserHandler,
		Tokens:      tokens,
	}, metrics, logger, appConfig)

	slog.Info("Server starting",
		"port", appConfig.Port,
		"environment", appConfig.Environment,
		"database_adapter", appConfig.DatabaseAdapter,
		"rate_limit_enabled", appConfig.RateLimitEnabled,
		"https_enforced", appConfig.EnforceHTTPS)

	srv := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
	}
}

func newUserRepository(ctx context.Context, appConfig *config.AppConfig) (port.UserRepository, func(), error) {
	if appConfig.DatabaseAdapter == "sqlite" {
		db, err := sqlite.NewDB()

		if err != nil {
			return nil, nil, err
		}

		return sqliterepository.NewUserRepository(db), func() { db.Close() }, nil
	}

	db, err := postgres.NewDB(ctx, appConfig.DatabaseURL)

	if err != nil {
		return nil, nil, err
	}

	return pgrepository.NewUserRepository(db), func() { db.Close() }, nil
}
