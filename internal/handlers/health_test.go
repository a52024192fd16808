package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gradewise-dev/gradewise/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	r := testutil.NewRouter(t)

	rec := testutil.Do(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestMetricsEndpoint(t *testing.T) {
	r := testutil.NewRouter(t)

	testutil.Do(t, r, http.MethodGet, "/api/health", "", nil)

	rec := testutil.Do(t, r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gradewise_http_requests_total")
}
