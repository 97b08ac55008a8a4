package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"authservice/internal/adapter/http/middleware"
	"authservice/pkg/config"
)

func newLimitedRouter(limit int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)

	limiter := middleware.NewRateLimiter(zap.NewNop(), nil, map[string]config.RateLimitConfig{
		"/auth": {Requests: limit, Window: window},
	})

	router := gin.New()
	router.Use(limiter.RateLimitMiddleware())
	router.POST("/auth", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/open", func(c *gin.Context) { c.Status(http.StatusOK) })

	return router
}

func post(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, nil)
	req.RemoteAddr = "10.0.0.1:55555"

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	router := newLimitedRouter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post(router, "/auth").Code)
	}

	rr := post(router, "/auth")

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "Too many requests")
}

func TestRateLimitIgnoresUnconfiguredPaths(t *testing.T) {
	router := newLimitedRouter(1, time.Minute)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, post(router, "/open").Code)
	}
}

func TestRateLimitIsPerClientIP(t *testing.T) {
	router := newLimitedRouter(1, time.Minute)

	first, _ := http.NewRequest("POST", "/auth", nil)
	first.RemoteAddr = "10.0.0.1:55555"

	second, _ := http.NewRequest("POST", "/auth", nil)
	second.RemoteAddr = "10.0.0.2:55555"

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, first)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, second)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, first)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestRateLimitResetsAfterWindow(t *testing.T) {
	router := newLimitedRouter(1, 50*time.Millisecond)

	assert.Equal(t, http.StatusOK, post(router, "/auth").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(router, "/auth").Code)

	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, http.StatusOK, post(router, "/auth").Code)
}
