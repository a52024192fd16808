package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedEngine(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", rl.Handler(), func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	return r
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	r := newLimitedEngine(NewRateLimiter(0.001, 2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_SeparateKeys(t *testing.T) {
	r := newLimitedEngine(NewRateLimiter(0.001, 1))

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, addr)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.getLimiter("a")
	rl.limiters["a"].lastSeen = time.Now().Add(-time.Hour)
	rl.getLimiter("b")

	rl.Cleanup()

	_, hasA := rl.limiters["a"]
	_, hasB := rl.limiters["b"]
	assert.False(t, hasA)
	assert.True(t, hasB)
}
