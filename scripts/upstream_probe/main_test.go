package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/pkg/config"
	"github.com/noah-isme/pbis-gateway/pkg/pbisapi"
)

func TestRunProbesCountsCriticalFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := pbisapi.New(config.UpstreamConfig{BaseURL: server.URL}, zap.NewNop())
	probes := selectProbes(defaultProbes(models.DateRange{Start: "2025-03-01", End: "2025-03-28"}, 4, 2025), "health, dashboard, board")
	require.Len(t, probes, 3)

	results := runProbes(context.Background(), client, probes, time.Second)

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Error(t, results[2].Err)
	assert.Equal(t, 1, criticalFailures(results))
}

func TestSelectProbesEmptyKeepsAll(t *testing.T) {
	all := defaultProbes(models.DateRange{}, 3, 2025)
	assert.Len(t, selectProbes(all, " "), len(all))
}
