package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// newRateLimitedRouter builds a router with the auth rate limit middleware
// and a trivial endpoint.
func newRateLimitedRouter(rps float64, burst int) *gin.Engine {
	router := gin.New()
	router.Use(AuthRateLimitMiddleware(rps, burst, testLogger()))
	router.POST("/auth", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestAuthRateLimitMiddleware_AllowsWithinBurst(t *testing.T) {
	router := newRateLimitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}
}

func TestAuthRateLimitMiddleware_BlocksOverBurst(t *testing.T) {
	router := newRateLimitedRouter(0.001, 1)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(second, req)

	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "rate_limit_exceeded")
}

func TestAuthRateLimitMiddleware_IndependentBucketsPerIP(t *testing.T) {
	router := newRateLimitedRouter(0.001, 1)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth", nil)
	req.RemoteAddr = "10.0.0.3:1234"
	router.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	// A different IP still has a full bucket.
	other := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth", nil)
	req.RemoteAddr = "10.0.0.4:1234"
	router.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)
}
