package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.RateLimitMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiterFailsOpenWhenRedisUnreachable(t *testing.T) {
	// Nothing listens on port 1, so every counter update errors out. An
	// unavailable limiter must not block search traffic.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	router := newLimitedRouter(NewSearchRateLimiter(rdb))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestIsAllowedErrorWhenRedisUnreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	limiter := NewSearchRateLimiter(rdb)

	allowed, _, _, err := limiter.IsAllowed(context.Background(), "203.0.113.7")
	assert.Error(t, err)
	assert.False(t, allowed)
}
