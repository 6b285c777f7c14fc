package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

func TestClientRateLimiter_BurstThenRefill(t *testing.T) {
	clock := &manualClock{now: time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC)}
	limiter := NewClientRateLimiter(10, 2, clock.Now)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"), "buckets are per client")

	clock.now = clock.now.Add(7 * time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
}

func TestClientRateLimiter_DropsIdleClients(t *testing.T) {
	clock := &manualClock{now: time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC)}
	limiter := NewClientRateLimiter(10, 1, clock.Now)

	limiter.Allow("10.0.0.1")
	clock.now = clock.now.Add(limiterIdleTTL + time.Minute)
	limiter.Allow("10.0.0.2")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.clients, "10.0.0.1")
	assert.Contains(t, limiter.clients, "10.0.0.2")
}

func TestRateLimit_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clock := &manualClock{now: time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC)}

	router := gin.New()
	router.POST("/submit", RateLimit(NewClientRateLimiter(10, 1, clock.Now)), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/submit", nil))
	assert.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/submit", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"error":"too many requests"}`, second.Body.String())
}
