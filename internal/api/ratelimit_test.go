package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(perSec float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RateLimit(perSec, burst), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestRateLimitAllowsBurstThenThrottles(t *testing.T) {
	r := newRateLimitedRouter(0.0001, 3)

	get := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get("10.0.0.1"), "request %d within burst", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, get("10.0.0.1"))

	// Buckets are per IP: another client is unaffected.
	assert.Equal(t, http.StatusOK, get("10.0.0.2"))
}
