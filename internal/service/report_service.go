package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type reportUpstream interface {
	CICOReport(ctx context.Context, month int) (models.CICOReport, error)
	Tier3Report(ctx context.Context, r models.DateRange) (models.Tier3Report, error)
	AICICOAnalysis(ctx context.Context, req models.CICOAnalysisRequest) (string, error)
}

// ReportService serves the CICO and tier-3 reports and AI CICO analyses.
// The tier-1 report lives on DashboardService because it shares the cached
// aggregate.
type ReportService struct {
	upstream  reportUpstream
	ranges    rangeResolver
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(upstream reportUpstream, ranges rangeResolver, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ReportService{upstream: upstream, ranges: ranges, validator: validate, logger: logger, now: time.Now}
}

// CICOReport returns the decision report for month, defaulting to the current
// month when it falls inside the CICO school year.
func (s *ReportService) CICOReport(ctx context.Context, month int) (*dto.CICOReportResponse, error) {
	if month == 0 {
		month = s.defaultMonth()
	}
	if err := validateCICOMonth(month); err != nil {
		return nil, err
	}
	report, err := s.upstream.CICOReport(ctx, month)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no CICO report for month %d", month))
		}
		return nil, err
	}
	if report == nil {
		report = models.CICOReport{}
	}
	return &dto.CICOReportResponse{Month: month, Report: report}, nil
}

// Tier3Report returns the tier-3 aggregate over the resolved window.
func (s *ReportService) Tier3Report(ctx context.Context, sessionID string, query models.DateRange) (*dto.Tier3ReportResponse, error) {
	resolved, err := s.ranges.Resolve(ctx, sessionID, query)
	if err != nil {
		return nil, err
	}
	report, err := s.upstream.Tier3Report(ctx, resolved.DateRange)
	if err != nil {
		return nil, err
	}
	if report.Students == nil {
		report.Students = []map[string]interface{}{}
	}
	return &dto.Tier3ReportResponse{DateRange: resolved, Report: report}, nil
}

// CICOAnalysis asks the AI to interpret CICO data and renders the answer.
func (s *ReportService) CICOAnalysis(ctx context.Context, req models.CICOAnalysisRequest) (*models.Narrative, error) {
	if req.Month != 0 {
		if err := validateCICOMonth(req.Month); err != nil {
			return nil, err
		}
	}
	if req.Month == 0 && req.StudentCode == "" && len(req.Data) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "month, student_code or data is required")
	}
	text, err := s.upstream.AICICOAnalysis(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("cico analysis generated", zap.Int("month", req.Month), zap.Int("length", len(text)))
	return renderNarrative(text)
}

func (s *ReportService) defaultMonth() int {
	month := int(s.now().Month())
	if month < models.CICOFirstMonth {
		return models.CICOFirstMonth
	}
	return month
}
