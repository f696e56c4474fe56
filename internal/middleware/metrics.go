package middleware

import (
	"time"

	"github.com/SscSPs/boutique_ops/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware records request count and latency per matched route.
func PrometheusMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
