package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/middleware"
	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

type dashboardService interface {
	Page(ctx context.Context, session *models.Session, query models.DateRange) (*dto.DashboardResponse, error)
	Refresh(ctx context.Context) error
}

type chartService interface {
	Trend(ctx context.Context, sessionID string, query models.DateRange) ([]byte, error)
	Big5(ctx context.Context, sessionID string, query models.DateRange, dimension string) ([]byte, error)
	Tiers(ctx context.Context) ([]byte, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
	charts  chartService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService, charts chartService) *DashboardHandler {
	return &DashboardHandler{service: service, charts: charts}
}

// Page godoc
// @Summary School-wide dashboard
// @Tags Dashboard
// @Produce json
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Page(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	page, err := h.service.Page(c.Request.Context(), session, dateRangeQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "date_range_source", page.DateRange.Source)
	response.OK(c, page, middleware.ExtractMeta(c))
}

// Refresh godoc
// @Summary Recompute the dashboard aggregate
// @Tags Dashboard
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /dashboard/refresh [post]
func (h *DashboardHandler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// TrendChart godoc
// @Summary Weekly incident trend chart
// @Tags Charts
// @Produce png
// @Router /charts/trend.png [get]
func (h *DashboardHandler) TrendChart(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	png, err := h.charts.Trend(c.Request.Context(), session.ID, dateRangeQuery(c))
	writePNG(c, png, err)
}

// Big5Chart godoc
// @Summary Big-5 breakdown chart
// @Tags Charts
// @Produce png
// @Param dimension path string true "locations, times or behaviors"
// @Router /charts/big5/{dimension} [get]
func (h *DashboardHandler) Big5Chart(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	dimension := strings.TrimSuffix(c.Param("dimension"), ".png")
	png, err := h.charts.Big5(c.Request.Context(), session.ID, dateRangeQuery(c), dimension)
	writePNG(c, png, err)
}

// TiersChart godoc
// @Summary Tier distribution chart
// @Tags Charts
// @Produce png
// @Router /charts/tiers.png [get]
func (h *DashboardHandler) TiersChart(c *gin.Context) {
	png, err := h.charts.Tiers(c.Request.Context())
	writePNG(c, png, err)
}

func writePNG(c *gin.Context, png []byte, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "private, max-age=60")
	c.Data(http.StatusOK, "image/png", png)
}
