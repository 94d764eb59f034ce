package middleware

import (
	"time"

	"github.com/SscSPs/expense_tracker/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records latency and status per matched route.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
