package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/pkg/chart"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type dashboardAggregator interface {
	Aggregate(ctx context.Context, r models.DateRange) (models.Dashboard, error)
}

type tierDistribution interface {
	Distribution(ctx context.Context) ([]dto.TierCount, error)
}

// ChartService renders dashboard charts as PNG.
type ChartService struct {
	dashboards dashboardAggregator
	tiers      tierDistribution
	ranges     rangeResolver
	renderer   *chart.Renderer
}

// NewChartService constructs a ChartService instance.
func NewChartService(dashboards dashboardAggregator, tiers tierDistribution, ranges rangeResolver, renderer *chart.Renderer) *ChartService {
	if renderer == nil {
		renderer = chart.NewRenderer()
	}
	return &ChartService{dashboards: dashboards, tiers: tiers, ranges: ranges, renderer: renderer}
}

// Trend plots daily incident counts over the resolved window.
func (s *ChartService) Trend(ctx context.Context, sessionID string, query models.DateRange) ([]byte, error) {
	aggregate, err := s.aggregate(ctx, sessionID, query)
	if err != nil {
		return nil, err
	}

	points := make([]chart.Point, 0, len(aggregate.Trends))
	for _, tp := range aggregate.Trends {
		day, err := time.Parse(models.DateLayout, tp.Date)
		if err != nil {
			continue
		}
		points = append(points, chart.Point{Time: day, Value: tp.Count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	return chartResult(s.renderer.Trend("Incidents per day", []chart.Series{{Name: "Incidents", Points: points}}))
}

// Big5 draws the breakdown for one dimension: locations, times or behaviors.
func (s *ChartService) Big5(ctx context.Context, sessionID string, query models.DateRange, dimension string) ([]byte, error) {
	aggregate, err := s.aggregate(ctx, sessionID, query)
	if err != nil {
		return nil, err
	}
	values, ok := aggregate.Big5.Dimension(dimension)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown chart dimension "+dimension)
	}

	slices := make([]chart.Slice, 0, len(values))
	for _, v := range values {
		slices = append(slices, chart.Slice{Label: v.Name, Value: v.Value})
	}
	return chartResult(s.renderer.Bars("Incidents by "+dimension, slices))
}

// Tiers draws the enrolled tier distribution.
func (s *ChartService) Tiers(ctx context.Context) ([]byte, error) {
	counts, err := s.tiers.Distribution(ctx)
	if err != nil {
		return nil, err
	}
	slices := make([]chart.Slice, 0, len(counts))
	for _, c := range counts {
		slices = append(slices, chart.Slice{Label: c.Tier, Value: float64(c.Count)})
	}
	return chartResult(s.renderer.Pie("Tier distribution", slices))
}

func (s *ChartService) aggregate(ctx context.Context, sessionID string, query models.DateRange) (models.Dashboard, error) {
	resolved, err := s.ranges.Resolve(ctx, sessionID, query)
	if err != nil {
		return models.Dashboard{}, err
	}
	return s.dashboards.Aggregate(ctx, resolved.DateRange)
}

func chartResult(png []byte, err error) ([]byte, error) {
	if err != nil {
		if errors.Is(err, chart.ErrNoData) {
			return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "no data to chart")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render chart")
	}
	return png, nil
}
