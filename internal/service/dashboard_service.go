package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/pkg/markdown"
)

const dashboardCachePrefix = "dashboard:"

type dashboardUpstream interface {
	Dashboard(ctx context.Context, r models.DateRange) (models.Dashboard, error)
	RefreshDashboard(ctx context.Context) error
}

type rangeResolver interface {
	Resolve(ctx context.Context, sessionID string, query models.DateRange) (models.ResolvedDateRange, error)
}

// DashboardService composes the dashboard page from the upstream aggregate.
type DashboardService struct {
	upstream  dashboardUpstream
	ranges    rangeResolver
	cache     *CacheService
	logger    *zap.Logger
	apiPrefix string
}

// NewDashboardService constructs a DashboardService instance.
func NewDashboardService(upstream dashboardUpstream, ranges rangeResolver, cache *CacheService, logger *zap.Logger, apiPrefix string) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		upstream:  upstream,
		ranges:    ranges,
		cache:     cache,
		logger:    logger,
		apiPrefix: strings.TrimRight(apiPrefix, "/"),
	}
}

// Page resolves the session's window and renders the dashboard view.
func (s *DashboardService) Page(ctx context.Context, session *models.Session, query models.DateRange) (*dto.DashboardResponse, error) {
	resolved, err := s.ranges.Resolve(ctx, session.ID, query)
	if err != nil {
		return nil, err
	}
	aggregate, err := s.Aggregate(ctx, resolved.DateRange)
	if err != nil {
		return nil, err
	}

	html, err := markdown.ToHTML(aggregate.AIComment)
	if err != nil {
		s.logger.Warn("failed to render dashboard comment", zap.Error(err))
	}

	return &dto.DashboardResponse{
		Dashboard:     aggregate,
		DateRange:     resolved,
		AICommentHTML: html,
		Charts:        s.chartLinks(resolved.DateRange),
		Permissions:   dto.PermissionsFor(session.User),
	}, nil
}

// Aggregate returns the upstream dashboard for r, served from cache when fresh.
func (s *DashboardService) Aggregate(ctx context.Context, r models.DateRange) (models.Dashboard, error) {
	key := dashboardCachePrefix + r.Start + ":" + r.End
	var cached models.Dashboard
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	aggregate, err := s.upstream.Dashboard(ctx, r)
	if err != nil {
		return models.Dashboard{}, err
	}
	if aggregate.Error == "" {
		s.cache.Set(ctx, key, aggregate)
	}
	return aggregate, nil
}

// Refresh asks the upstream to reload its data and drops cached aggregates.
func (s *DashboardService) Refresh(ctx context.Context) error {
	if err := s.upstream.RefreshDashboard(ctx); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, dashboardCachePrefix)
	return nil
}

// Tier1Report is the school-wide report over the resolved window.
func (s *DashboardService) Tier1Report(ctx context.Context, sessionID string, query models.DateRange) (*dto.Tier1ReportResponse, error) {
	resolved, err := s.ranges.Resolve(ctx, sessionID, query)
	if err != nil {
		return nil, err
	}
	aggregate, err := s.Aggregate(ctx, resolved.DateRange)
	if err != nil {
		return nil, err
	}

	resp := &dto.Tier1ReportResponse{
		DateRange:    resolved,
		Summary:      aggregate.Summary,
		Trends:       aggregate.Trends,
		Big5:         aggregate.Big5,
		Functions:    aggregate.Functions,
		SafetyAlerts: aggregate.SafetyAlerts,
	}
	if aggregate.AIComment != "" {
		html, err := markdown.ToHTML(aggregate.AIComment)
		if err != nil {
			s.logger.Warn("failed to render report narrative", zap.Error(err))
		}
		resp.Narrative = &models.Narrative{Markdown: aggregate.AIComment, HTML: html}
	}
	return resp, nil
}

func (s *DashboardService) chartLinks(r models.DateRange) dto.DashboardCharts {
	query := fmt.Sprintf("?startDate=%s&endDate=%s", r.Start, r.End)
	base := s.apiPrefix + "/charts"
	return dto.DashboardCharts{
		Trend:     base + "/trend.png" + query,
		Locations: base + "/big5/locations.png" + query,
		Times:     base + "/big5/times.png" + query,
		Behaviors: base + "/big5/behaviors.png" + query,
		Tiers:     base + "/tiers.png",
	}
}
