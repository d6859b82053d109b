package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics records latency per route template. Requests that match no route
// share one label so probing clients cannot grow the series count.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		switch route {
		case "":
			route = unmatchedRoute
		case "/metrics":
			return
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
