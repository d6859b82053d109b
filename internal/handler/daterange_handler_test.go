package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/middleware"
	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/internal/repository"
	"github.com/noah-isme/pbis-gateway/internal/service"
)

func newDateRangeHandlerForTest() (*DateRangeHandler, *service.DateRangeService, *service.Broadcaster) {
	broadcaster := service.NewBroadcaster(nil, nil)
	svc := service.NewDateRangeService(repository.NewMemorySessionRepository(), broadcaster, nil, 28)
	return NewDateRangeHandler(svc, broadcaster), svc, broadcaster
}

func TestDateRangeHandlerGetPersistsQueryRange(t *testing.T) {
	h, _, _ := newDateRangeHandlerForTest()

	c, rec := newContext(http.MethodGet, "/api/v1/date-range?startDate=2025-03-01&endDate=2025-03-28", nil, teacherSession)
	middleware.WithResponseMeta()(c)
	h.Get(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var resolved models.ResolvedDateRange
	envelope := decodeEnvelope(t, rec, &resolved)
	assert.Equal(t, "2025-03-01", resolved.Start)
	assert.Equal(t, models.DateRangeFromQuery, resolved.Source)
	assert.Equal(t, "query", envelope.Meta["date_range_source"])

	c, rec = newContext(http.MethodGet, "/api/v1/date-range", nil, teacherSession)
	h.Get(c)

	decodeEnvelope(t, rec, &resolved)
	assert.Equal(t, "2025-03-28", resolved.End)
	assert.Equal(t, models.DateRangeFromSession, resolved.Source)
}

func TestDateRangeHandlerPutRejectsInvertedRange(t *testing.T) {
	h, _, _ := newDateRangeHandlerForTest()

	c, rec := newContext(http.MethodPut, "/api/v1/date-range",
		models.DateRange{Start: "2025-04-10", End: "2025-04-01"}, teacherSession)
	h.Put(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDateRangeHandlerNavUsesDefaultWindow(t *testing.T) {
	h, _, _ := newDateRangeHandlerForTest()

	c, rec := newContext(http.MethodGet, "/api/v1/nav", nil, adminSession)
	h.Nav(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var nav struct {
		DateRange models.ResolvedDateRange `json:"date_range"`
	}
	decodeEnvelope(t, rec, &nav)
	assert.Equal(t, models.DateRangeFromDefault, nav.DateRange.Source)
}

func TestDateRangeHandlerEventsStreamsChanges(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, svc, broadcaster := newDateRangeHandlerForTest()
	h.keepAlive = 20 * time.Millisecond

	router := gin.New()
	router.GET("/events", func(c *gin.Context) {
		c.Set(middleware.ContextSessionKey, teacherSession)
		c.Next()
	}, h.Events)
	server := httptest.NewServer(router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
	require.Eventually(t, func() bool { return broadcaster.Subscribers(teacherSession.ID) == 1 },
		time.Second, 10*time.Millisecond)

	_, err = svc.Set(context.Background(), teacherSession.ID, models.DateRange{Start: "2025-05-01", End: "2025-05-20"})
	require.NoError(t, err)

	scanner := bufio.NewScanner(resp.Body)
	var sawEvent bool
	for scanner.Scan() {
		line := scanner.Text()
		if line == "event:date-range" {
			sawEvent = true
			continue
		}
		if sawEvent && strings.HasPrefix(line, "data:") {
			assert.Contains(t, line, "2025-05-20")
			break
		}
	}
	assert.True(t, sawEvent, "date-range event not received")
}
