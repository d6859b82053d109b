package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestMetricsHandlerReady(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/ready", nil, nil)
	NewMetricsHandler(nil, fakePinger{}).Ready(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	down := appErrors.New(appErrors.ErrUpstream.Code, http.StatusServiceUnavailable, "pbis api health check failed")
	c, rec = newContext(http.MethodGet, "/ready", nil, nil)
	NewMetricsHandler(nil, fakePinger{err: down}).Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, appErrors.ErrUpstream.Code, errorCode(t, rec))
}

func TestMetricsHandlerPrometheusDisabled(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/metrics", nil, nil)
	NewMetricsHandler(nil, nil).Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, c.Writer.Status())
}
