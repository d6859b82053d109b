package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

type tier1Reporter interface {
	Tier1Report(ctx context.Context, sessionID string, query models.DateRange) (*dto.Tier1ReportResponse, error)
}

type reportService interface {
	CICOReport(ctx context.Context, month int) (*dto.CICOReportResponse, error)
	Tier3Report(ctx context.Context, sessionID string, query models.DateRange) (*dto.Tier3ReportResponse, error)
	CICOAnalysis(ctx context.Context, req models.CICOAnalysisRequest) (*models.Narrative, error)
}

// ReportHandler exposes the tier reports and AI analyses.
type ReportHandler struct {
	tier1   tier1Reporter
	reports reportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(tier1 tier1Reporter, reports reportService) *ReportHandler {
	return &ReportHandler{tier1: tier1, reports: reports}
}

// Tier1 godoc
// @Summary Tier 1 school-wide report
// @Tags Reports
// @Produce json
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /reports/tier1 [get]
func (h *ReportHandler) Tier1(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	report, err := h.tier1.Tier1Report(c.Request.Context(), session.ID, dateRangeQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// Tier3 godoc
// @Summary Tier 3 report
// @Tags Reports
// @Produce json
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /reports/tier3 [get]
func (h *ReportHandler) Tier3(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	report, err := h.reports.Tier3Report(c.Request.Context(), session.ID, dateRangeQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// CICO godoc
// @Summary CICO decision report
// @Tags Reports
// @Produce json
// @Param month query int false "3-12, defaults to the current month"
// @Success 200 {object} response.Envelope
// @Router /cico/report [get]
func (h *ReportHandler) CICO(c *gin.Context) {
	month, ok := monthQuery(c)
	if !ok {
		return
	}
	report, err := h.reports.CICOReport(c.Request.Context(), month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// CICOAnalysis godoc
// @Summary AI analysis of CICO data
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body models.CICOAnalysisRequest true "Analysis request"
// @Success 200 {object} response.Envelope
// @Router /cico/ai-analysis [post]
func (h *ReportHandler) CICOAnalysis(c *gin.Context) {
	var req models.CICOAnalysisRequest
	if !bindJSON(c, &req, "invalid analysis payload") {
		return
	}
	narrative, err := h.reports.CICOAnalysis(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, narrative)
}
