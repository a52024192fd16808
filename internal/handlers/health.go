package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gradewise-dev/gradewise/db"
)

func HealthCheck(c *gin.Context) {
	status, code, message := "ok", http.StatusOK, "Gradewise is running"

	if err := db.Ping(c.Request.Context(), 2*time.Second); err != nil {
		status, code, message = "degraded", http.StatusServiceUnavailable, err.Error()
	}

	c.JSON(code, gin.H{
		"status":    status,
		"message":   message,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
