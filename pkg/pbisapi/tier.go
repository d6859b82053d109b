package pbisapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/pbis-gateway/internal/models"
)

// TierStatus lists every student's tier flags.
func (c *Client) TierStatus(ctx context.Context) (models.TierStatusList, error) {
	var list models.TierStatusList
	err := c.Do(ctx, http.MethodGet, "/tier/status", nil, nil, &list)
	return list, err
}

// UpdateTier toggles tier columns for one student.
func (c *Client) UpdateTier(ctx context.Context, req models.TierUpdateRequest) error {
	return c.Do(ctx, http.MethodPut, "/tier/status", nil, req, nil)
}

// UpdateEnrollment flips a student's enrollment flag.
func (c *Client) UpdateEnrollment(ctx context.Context, req models.EnrollmentUpdateRequest) error {
	return c.Do(ctx, http.MethodPut, "/tier/enrollment", nil, req, nil)
}

// UpdateBeAble links a BeAble code.
func (c *Client) UpdateBeAble(ctx context.Context, req models.BeAbleUpdateRequest) error {
	return c.Do(ctx, http.MethodPut, "/tier/beable", nil, req, nil)
}

// ChangeStudentTier moves a student to a tier.
func (c *Client) ChangeStudentTier(ctx context.Context, req models.StudentTierChange) error {
	return c.Do(ctx, http.MethodPost, "/students/tier-update", nil, req, nil)
}

// CICORecords lists daily Tier 2 cards in the order they were entered.
func (c *Client) CICORecords(ctx context.Context, filter models.CICORecordFilter) ([]models.CICORecord, error) {
	q := url.Values{}
	if filter.StudentCode != "" {
		q.Set("student_code", filter.StudentCode)
	}
	if filter.StartDate != "" {
		q.Set("start_date", filter.StartDate)
	}
	if filter.EndDate != "" {
		q.Set("end_date", filter.EndDate)
	}
	var records []models.CICORecord
	err := c.Do(ctx, http.MethodGet, "/tier/cico", q, nil, &records)
	return records, err
}

// AddCICORecord appends a day's card.
func (c *Client) AddCICORecord(ctx context.Context, in models.CICORecordInput) error {
	return c.Do(ctx, http.MethodPost, "/tier/cico", nil, in, nil)
}

// StudentDetail looks a student up by name.
func (c *Client) StudentDetail(ctx context.Context, name string) (models.StudentDetail, error) {
	var d models.StudentDetail
	err := c.Do(ctx, http.MethodGet, "/students/"+pathEscape(name), nil, nil, &d)
	return d, err
}

// StudentAnalysis fetches derived analytics for a student.
func (c *Client) StudentAnalysis(ctx context.Context, name string) (models.StudentAnalysis, error) {
	var a models.StudentAnalysis
	err := c.Do(ctx, http.MethodGet, "/students/"+pathEscape(name)+"/analysis", nil, nil, &a)
	return a, err
}
