package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type fakeDashboardUpstream struct {
	dashboard models.Dashboard
	calls     int
	refreshes int
}

func (f *fakeDashboardUpstream) Dashboard(context.Context, models.DateRange) (models.Dashboard, error) {
	f.calls++
	return f.dashboard, nil
}

func (f *fakeDashboardUpstream) RefreshDashboard(context.Context) error {
	f.refreshes++
	return nil
}

type memoryCache struct {
	entries map[string]models.Dashboard
	deleted []string
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	v, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*dest.(*models.Dashboard) = v
	return nil
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.entries[key] = value.(models.Dashboard)
	return nil
}

func (m *memoryCache) DeletePrefix(_ context.Context, prefix string) error {
	m.deleted = append(m.deleted, prefix)
	m.entries = map[string]models.Dashboard{}
	return nil
}

func sampleDashboard() models.Dashboard {
	return models.Dashboard{
		Summary: models.DashboardSummary{TotalIncidents: 12, AvgIntensity: 2.5},
		Trends: []models.TrendPoint{
			{Date: "2025-03-03", Count: 2},
			{Date: "2025-03-02", Count: 4},
			{Date: "bad", Count: 1},
		},
		Big5: models.Big5{
			Locations: []models.NamedValue{{Name: "Classroom", Value: 7}, {Name: "Hall", Value: 5}},
		},
		AIComment: "**Incidents** rose.",
	}
}

func newDashboardFixture() (*DashboardService, *fakeDashboardUpstream, *memoryCache, *DateRangeService) {
	upstream := &fakeDashboardUpstream{dashboard: sampleDashboard()}
	cache := &memoryCache{entries: map[string]models.Dashboard{}}
	ranges, _ := newDateRangeService()
	svc := NewDashboardService(upstream, ranges, NewCacheService(cache, time.Minute, nil), nil, "/api/v1/")
	return svc, upstream, cache, ranges
}

func TestDashboardPageRendersCommentAndPermissions(t *testing.T) {
	svc, upstream, _, _ := newDashboardFixture()
	session := &models.Session{ID: "s1", User: models.User{ID: "t01", Role: models.RoleTeacher}}

	page, err := svc.Page(context.Background(), session, models.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Summary.TotalIncidents)
	assert.Contains(t, page.AICommentHTML, "<strong>Incidents</strong>")
	assert.Equal(t, models.DateRangeFromDefault, page.DateRange.Source)
	assert.Equal(t, "/api/v1/charts/trend.png?startDate=2025-03-18&endDate=2025-04-15", page.Charts.Trend)
	assert.False(t, page.Permissions.CanRefreshDashboard)

	_, err = svc.Page(context.Background(), session, models.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.calls)
}

func TestDashboardRefreshInvalidatesCache(t *testing.T) {
	svc, upstream, cache, _ := newDashboardFixture()
	r := models.DateRange{Start: "2025-03-01", End: "2025-03-31"}

	_, err := svc.Aggregate(context.Background(), r)
	require.NoError(t, err)
	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, []string{dashboardCachePrefix}, cache.deleted)

	_, err = svc.Aggregate(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
	assert.Equal(t, 1, upstream.refreshes)
}

func TestDashboardAggregateSkipsCachingErrors(t *testing.T) {
	svc, upstream, cache, _ := newDashboardFixture()
	upstream.dashboard = models.Dashboard{Error: "no data"}

	agg, err := svc.Aggregate(context.Background(), models.DateRange{Start: "2025-03-01", End: "2025-03-02"})
	require.NoError(t, err)
	assert.Equal(t, "no data", agg.Error)
	assert.Empty(t, cache.entries)
}

func TestTier1ReportIncludesNarrative(t *testing.T) {
	svc, _, _, _ := newDashboardFixture()

	report, err := svc.Tier1Report(context.Background(), "s1", models.DateRange{Start: "2025-03-01", End: "2025-03-31"})
	require.NoError(t, err)
	assert.Equal(t, models.DateRangeFromQuery, report.DateRange.Source)
	require.NotNil(t, report.Narrative)
	assert.Equal(t, "**Incidents** rose.", report.Narrative.Markdown)
}

type staticDistribution []dto.TierCount

func (s staticDistribution) Distribution(context.Context) ([]dto.TierCount, error) {
	return s, nil
}

func TestChartServiceRendersPNG(t *testing.T) {
	dashboards, _, _, ranges := newDashboardFixture()
	svc := NewChartService(dashboards, staticDistribution{{Tier: models.Tier1, Count: 10}, {Tier: models.Tier3, Count: 2}}, ranges, nil)
	ctx := context.Background()

	trend, err := svc.Trend(ctx, "s1", models.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), trend[:4])

	bars, err := svc.Big5(ctx, "s1", models.DateRange{}, "locations")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), bars[:4])

	pie, err := svc.Tiers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), pie[:4])
}

func TestChartServiceMissingData(t *testing.T) {
	dashboards, _, _, ranges := newDashboardFixture()
	svc := NewChartService(dashboards, staticDistribution{}, ranges, nil)
	ctx := context.Background()

	_, err := svc.Big5(ctx, "s1", models.DateRange{}, "weather")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Big5(ctx, "s1", models.DateRange{}, "times")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Tiers(ctx)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
