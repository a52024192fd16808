package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gradewise-dev/gradewise/internal/metrics"
)

// Metrics records request counts and latency by route template.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		metrics.IncInFlight()
		defer metrics.DecInFlight()

		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RecordHTTPRequest(ctx.Request.Method, path, strconv.Itoa(ctx.Writer.Status()), time.Since(start))
	}
}
