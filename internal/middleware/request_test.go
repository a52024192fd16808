package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gradewise-dev/gradewise/internal/types"
	"github.com/stretchr/testify/assert"
)

func newRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID(), RequestLogger(), Metrics())
	r.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ctx.GetString(types.ContextRequestIDKey))
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	rec := httptest.NewRecorder()
	newRequestIDRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := rec.Header().Get(types.RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(types.RequestIDHeader, "abc-123")

	rec := httptest.NewRecorder()
	newRequestIDRouter().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(types.RequestIDHeader))
	assert.Equal(t, "abc-123", rec.Body.String())
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		query      string
		allowQuery bool
		wantToken  string
	}{
		{name: "header", header: "Bearer abc", wantToken: "abc"},
		{name: "lowercase scheme", header: "bearer abc", wantToken: "abc"},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "missing", wantToken: ""},
		{name: "query not allowed", query: "abc"},
		{name: "query allowed", query: "abc", allowQuery: true, wantToken: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws?token="+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = req

			token, problem := bearerToken(ctx, tt.allowQuery)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantToken == "", problem != "")
		})
	}
}
