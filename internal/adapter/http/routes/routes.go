package routes

import (
	"github.com/gin-gonic/gin"

	"authservice/internal/adapter/http/handler"
	"authservice/internal/adapter/http/middleware"
	"authservice/internal/core/port"
	"authservice/pkg/config"
	"authservice/pkg/tracing"
)

type HandlersConfig struct {
	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler
	Tokens      port.TokenService
}

func SetupRouter(handlers HandlersConfig, metrics *tracing.AppMetrics, logger *config.LokiLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, config.GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *tracing.AppMetrics, logger *config.LokiLogger, appConfig *config.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	middleware.SetupGinMiddlewareWithConfig(router, "authservice", metrics, logger, appConfig)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupPublicRoutes(router, handlers.AuthHandler)
	setupProtectedRoutes(router, handlers.UserHandler, handlers.Tokens, metrics)

	return router
}

func setupPublicRoutes(router *gin.Engine, authHandler *handler.AuthHandler) {
	public := router.Group("/")
	{
		public.POST("/signup", authHandler.RegisterByEmailAndPassword)
		public.POST("/auth", authHandler.AuthByEmailAndPassword)
		public.POST("/auth/refresh", authHandler.RefreshToken)
		public.POST("/auth/logout", authHandler.Logout)
	}
}

func setupProtectedRoutes(router *gin.Engine, userHandler *handler.UserHandler, tokens port.TokenService, metrics *tracing.AppMetrics) {
	protected := router.Group("/")
	protected.Use(middleware.JwtAuthMiddleware(tokens, metrics))
	{
		protected.GET("/user/me", userHandler.Me)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupRouterForTests skips telemetry, logging and rate limiting.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupPublicRoutes(router, handlers.AuthHandler)
	setupProtectedRoutes(router, handlers.UserHandler, handlers.Tokens, nil)

	return router
}
