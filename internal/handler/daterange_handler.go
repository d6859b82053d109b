package handler

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/middleware"
	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

type dateRangeService interface {
	Resolve(ctx context.Context, sessionID string, query models.DateRange) (models.ResolvedDateRange, error)
	Set(ctx context.Context, sessionID string, r models.DateRange) (models.DateRange, error)
}

type dateRangeSubscriber interface {
	Subscribe(sessionID string) (<-chan models.DateRange, func())
}

// DateRangeHandler serves the shared reporting window and its change stream.
type DateRangeHandler struct {
	service     dateRangeService
	broadcaster dateRangeSubscriber
	keepAlive   time.Duration
}

// NewDateRangeHandler constructs the handler.
func NewDateRangeHandler(service dateRangeService, broadcaster dateRangeSubscriber) *DateRangeHandler {
	return &DateRangeHandler{service: service, broadcaster: broadcaster, keepAlive: 25 * time.Second}
}

// Nav godoc
// @Summary Navigation shell
// @Tags Navigation
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /nav [get]
func (h *DateRangeHandler) Nav(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	resolved, err := h.service.Resolve(c.Request.Context(), session.ID, models.DateRange{})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NavResponse{
		User:        session.User,
		Links:       dto.NavLinks(session.User),
		DateRange:   resolved,
		Permissions: dto.PermissionsFor(session.User),
	})
}

// Get godoc
// @Summary Current date range
// @Description Resolves query, then session, then default window
// @Tags DateRange
// @Produce json
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /date-range [get]
func (h *DateRangeHandler) Get(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	resolved, err := h.service.Resolve(c.Request.Context(), session.ID, dateRangeQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "date_range_source", resolved.Source)
	response.OK(c, resolved, middleware.ExtractMeta(c))
}

// Put godoc
// @Summary Change date range
// @Description Persists the window for the session and notifies its other tabs
// @Tags DateRange
// @Accept json
// @Produce json
// @Param payload body models.DateRange true "Date range"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /date-range [put]
func (h *DateRangeHandler) Put(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req models.DateRange
	if !bindJSON(c, &req, "invalid date range payload") {
		return
	}
	saved, err := h.service.Set(c.Request.Context(), session.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, saved)
}

// Events godoc
// @Summary Date range change stream
// @Description Server-sent events carrying each change of the session's window
// @Tags DateRange
// @Produce text/event-stream
// @Router /date-range/events [get]
func (h *DateRangeHandler) Events(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	events, cancel := h.broadcaster.Subscribe(session.ID)
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()
	ctx := c.Request.Context()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case r, open := <-events:
			if !open {
				return false
			}
			c.SSEvent("date-range", r)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}
