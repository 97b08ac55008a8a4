package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"authservice/pkg/config"
	"authservice/pkg/tracing"
)

func SetupGinMiddleware(router *gin.Engine, serviceName string, metrics *tracing.AppMetrics, logger *config.LokiLogger) {
	SetupGinMiddlewareWithConfig(router, serviceName, metrics, logger, config.GetDefaultConfig())
}

func SetupGinMiddlewareWithConfig(router *gin.Engine, serviceName string, metrics *tracing.AppMetrics, logger *config.LokiLogger, appConfig *config.AppConfig) {
	httpsEnforcer := config.NewHTTPSEnforcer(logger.Logger.Logger)
	router.Use(httpsEnforcer.HTTPSMiddleware())

	router.Use(otelgin.Middleware(serviceName))

	router.Use(CurrentMiddleware())
	router.Use(LoggingMiddleware(logger))

	if appConfig.RateLimitEnabled {
		rateLimiter := NewRateLimiter(logger.Logger.Logger, metrics, appConfig.RateLimitConfigs)
		router.Use(rateLimiter.RateLimitMiddleware())
	}

	router.Use(MetricsMiddleware(metrics))
}
