package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/instantfun/soundboard/internal/metrics"
)

// MetricsMiddleware collects HTTP request metrics for Prometheus. The route
// template is used as the path label so /api/sounds/:id stays one series.
func MetricsMiddleware() gin.HandlerFunc {
	m := metrics.Get()

	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(startTime).Seconds()

		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration)
	}
}
