package pbisapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/noah-isme/pbis-gateway/internal/models"
)

func monthQuery(month int) url.Values {
	return url.Values{"month": []string{strconv.Itoa(month)}}
}

// CICODaily lists each student's value for date.
func (c *Client) CICODaily(ctx context.Context, date string) ([]models.CICODailyEntry, error) {
	var entries []models.CICODailyEntry
	err := c.Do(ctx, http.MethodGet, "/cico/daily", url.Values{"date": []string{date}}, nil, &entries)
	return entries, err
}

// SaveCICODaily submits a whole day in one request.
func (c *Client) SaveCICODaily(ctx context.Context, batch models.CICODailyBatch) error {
	return c.Do(ctx, http.MethodPost, "/cico/daily", nil, batch, nil)
}

// CICOMonthly fetches the month's grid. A missing sheet is reported as not found.
func (c *Client) CICOMonthly(ctx context.Context, month int) (models.CICOMonthly, error) {
	var m models.CICOMonthly
	err := c.Do(ctx, http.MethodGet, "/cico/monthly", monthQuery(month), nil, &m)
	if err == nil && m.Month == 0 {
		m.Month = month
	}
	return m, err
}

// GenerateCICOMonthly creates the month's sheet.
func (c *Client) GenerateCICOMonthly(ctx context.Context, month int) error {
	return c.Do(ctx, http.MethodPost, "/cico/generate", nil, models.CICOGenerateRequest{Month: month}, nil)
}

// UpdateCICOCells writes a batch of cell changes.
func (c *Client) UpdateCICOCells(ctx context.Context, req models.MonthlyUpdateRequest) error {
	return c.Do(ctx, http.MethodPost, "/cico/monthly/update", nil, req, nil)
}

// UpdateCICOSettings changes a student's sheet settings.
func (c *Client) UpdateCICOSettings(ctx context.Context, req models.CICOSettingsRequest) error {
	return c.Do(ctx, http.MethodPost, "/cico/settings", nil, req, nil)
}

// ToggleTier2 sets a student's Tier 2 flag in a monthly sheet.
func (c *Client) ToggleTier2(ctx context.Context, req models.Tier2ToggleRequest) error {
	return c.Do(ctx, http.MethodPost, "/cico/tier2-toggle", nil, req, nil)
}

// BusinessDays lists weekdays minus holidays for a month.
func (c *Client) BusinessDays(ctx context.Context, year, month int) (models.BusinessDays, error) {
	q := monthQuery(month)
	q.Set("year", strconv.Itoa(year))
	var bd models.BusinessDays
	err := c.Do(ctx, http.MethodGet, "/cico/business-days", q, nil, &bd)
	return bd, err
}

// CICOReport fetches the monthly decision report.
func (c *Client) CICOReport(ctx context.Context, month int) (models.CICOReport, error) {
	var rep models.CICOReport
	err := c.Do(ctx, http.MethodGet, "/cico/report", monthQuery(month), nil, &rep)
	return rep, err
}
