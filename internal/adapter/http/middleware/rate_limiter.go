package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"authservice/pkg/config"
	"authservice/pkg/tracing"
)

// RateLimiter is a fixed-window limiter keyed by client IP, backed by an
// expiring in-process cache. Credential endpoints get the tight windows.
type RateLimiter struct {
	cache   *cache.Cache
	configs map[string]config.RateLimitConfig
	logger  *zap.Logger
	metrics *tracing.AppMetrics
	mutex   sync.Mutex
}

type rateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

func NewRateLimiter(logger *zap.Logger, metrics *tracing.AppMetrics, configs map[string]config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		cache:   cache.New(5*time.Minute, 10*time.Minute),
		configs: configs,
		logger:  logger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()

		limit, ok := rl.configs[path]

		if !ok {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", path, c.ClientIP())

		if !rl.allow(key, limit) {
			rl.logger.Warn("Rate limit exceeded",
				zap.String("path", path),
				zap.String("ip", c.ClientIP()))

			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path, "ip")
			}

			c.JSON(http.StatusTooManyRequests, gin.H{
				"errors": []string{"Too many requests. Please try again later."},
			})
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path, "ip")
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string, limit config.RateLimitConfig) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()

	if value, found := rl.cache.Get(key); found {
		entry := value.(*rateLimitEntry)

		if now.Before(entry.ResetTime) {
			if entry.Count >= limit.Requests {
				return false
			}

			entry.Count++
			return true
		}
	}

	rl.cache.Set(key, &rateLimitEntry{
		Count:     1,
		ResetTime: now.Add(limit.Window),
	}, limit.Window)

	return true
}
