package pbisapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/pbis-gateway/internal/models"
)

func rangeQuery(r models.DateRange) url.Values {
	q := url.Values{}
	if r.Start != "" {
		q.Set("start_date", r.Start)
	}
	if r.End != "" {
		q.Set("end_date", r.End)
	}
	return q
}

type narrativeReply struct {
	Analysis string `json:"analysis"`
	Minutes  string `json:"minutes"`
	Content  string `json:"content"`
}

func (r narrativeReply) text() string {
	switch {
	case r.Analysis != "":
		return r.Analysis
	case r.Minutes != "":
		return r.Minutes
	default:
		return r.Content
	}
}

// Dashboard fetches the aggregate for a date range.
func (c *Client) Dashboard(ctx context.Context, r models.DateRange) (models.Dashboard, error) {
	var d models.Dashboard
	err := c.Do(ctx, http.MethodGet, "/analytics/dashboard", rangeQuery(r), nil, &d)
	return d, err
}

// RefreshDashboard asks the API to recompute cached analytics.
func (c *Client) RefreshDashboard(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, "/analytics/dashboard/refresh", nil, nil, nil)
}

// MeetingAnalysis returns tier meeting candidates for a range.
func (c *Client) MeetingAnalysis(ctx context.Context, r models.DateRange) (models.MeetingAnalysis, error) {
	var m models.MeetingAnalysis
	err := c.Do(ctx, http.MethodGet, "/analytics/meeting", rangeQuery(r), nil, &m)
	return m, err
}

// AIMeetingMinutes drafts minutes for a period.
func (c *Client) AIMeetingMinutes(ctx context.Context, req models.MeetingMinutesRequest) (string, error) {
	var reply narrativeReply
	if err := c.Do(ctx, http.MethodPost, "/analytics/ai-meeting-minutes", nil, req, &reply); err != nil {
		return "", err
	}
	return reply.text(), nil
}

// AICICOAnalysis drafts a narrative over CICO data.
func (c *Client) AICICOAnalysis(ctx context.Context, req models.CICOAnalysisRequest) (string, error) {
	var reply narrativeReply
	if err := c.Do(ctx, http.MethodPost, "/analytics/ai-cico-analysis", nil, req, &reply); err != nil {
		return "", err
	}
	return reply.text(), nil
}

// Tier3Report fetches the tier-3 aggregate for a range.
func (c *Client) Tier3Report(ctx context.Context, r models.DateRange) (models.Tier3Report, error) {
	var rep models.Tier3Report
	err := c.Do(ctx, http.MethodGet, "/analytics/tier3-report", rangeQuery(r), nil, &rep)
	return rep, err
}
