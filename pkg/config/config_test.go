package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PBIS_API_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultUpstreamURL, cfg.Upstream.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Upstream.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.CICO.SaveDebounce)
	assert.Equal(t, 28, cfg.DateRange.DefaultDays)
	assert.Equal(t, "pbis_session", cfg.Session.CookieName)
}

func TestLoadUpstreamOverride(t *testing.T) {
	t.Setenv("PBIS_API_URL", "https://pbis.example.org/ ")
	t.Setenv("CICO_SAVE_DEBOUNCE", "250ms")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.org, https://b.example.org")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://pbis.example.org", cfg.Upstream.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.CICO.SaveDebounce)
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, cfg.CORS.AllowedOrigins)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("garbage", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}
