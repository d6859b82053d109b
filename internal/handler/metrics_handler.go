package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/service"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

type upstreamPinger interface {
	Ping(ctx context.Context) error
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics  *service.MetricsService
	upstream upstreamPinger
	timeout  time.Duration
}

// NewMetricsHandler constructs a metrics handler. upstream may be nil, in
// which case readiness always succeeds.
func NewMetricsHandler(metrics *service.MetricsService, upstream upstreamPinger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, upstream: upstream, timeout: 3 * time.Second}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the PBIS API answers its health check.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.upstream == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	if err := h.upstream.Ping(ctx); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
