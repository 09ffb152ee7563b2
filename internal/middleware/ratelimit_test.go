package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 0.001)

	for i := 0; i < 3; i++ {
		assert.True(t, bucket.Allow(), "request %d within capacity", i+1)
	}
	assert.False(t, bucket.Allow(), "bucket exhausted")
	assert.Greater(t, bucket.GetRetryAfter(), 0)
}

func TestTokenBucketRefills(t *testing.T) {
	// 100 tokens/second so the refill is observable without a long sleep.
	bucket := NewTokenBucket(1, 100)

	assert.True(t, bucket.Allow())
	assert.False(t, bucket.Allow())

	time.Sleep(50 * time.Millisecond)
	assert.True(t, bucket.Allow(), "token refilled after waiting")
}

func TestRateLimiterEvictsIdleBuckets(t *testing.T) {
	rl := &RateLimiter{
		buckets: make(map[string]*TokenBucket),
		config:  RateLimitConfig{Limit: 2, Window: time.Hour},
	}

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))

	// Age one bucket past the idle cutoff.
	rl.buckets["10.0.0.1"].lastRefill = time.Now().Add(-2 * bucketIdleTimeout)

	rl.evictIdle(bucketIdleTimeout)

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	assert.NotContains(t, rl.buckets, "10.0.0.1")
	assert.Contains(t, rl.buckets, "10.0.0.2", "active buckets survive eviction")
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(NewRateLimiter(RateLimitConfig{Limit: 2, Window: time.Hour}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)

	limited := do("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))
	assert.Contains(t, limited.Body.String(), "RATE_LIMITED")

	// Buckets are per client IP.
	assert.Equal(t, http.StatusOK, do("10.0.0.2").Code)
}
