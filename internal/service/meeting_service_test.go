package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type fakeMeetingUpstream struct {
	list     models.MeetingNoteList
	appended []models.MeetingNote
	filters  []models.MeetingNoteFilter
	minutes  string
	analysis models.MeetingAnalysis
	analyzed []models.DateRange
}

func (f *fakeMeetingUpstream) MeetingNotes(_ context.Context, filter models.MeetingNoteFilter) (models.MeetingNoteList, error) {
	f.filters = append(f.filters, filter)
	return f.list, nil
}

func (f *fakeMeetingUpstream) AppendMeetingNote(_ context.Context, note models.MeetingNote) error {
	f.appended = append(f.appended, note)
	return nil
}

func (f *fakeMeetingUpstream) AIMeetingMinutes(context.Context, models.MeetingMinutesRequest) (string, error) {
	return f.minutes, nil
}

func (f *fakeMeetingUpstream) MeetingAnalysis(_ context.Context, r models.DateRange) (models.MeetingAnalysis, error) {
	f.analyzed = append(f.analyzed, r)
	return f.analysis, nil
}

func newMeetingService(upstream *fakeMeetingUpstream) *MeetingService {
	ranges, _ := newDateRangeService()
	svc := NewMeetingService(upstream, ranges, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 4, 15, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestMeetingListNewestFirst(t *testing.T) {
	early := time.Date(2025, 4, 10, 8, 0, 0, 0, time.UTC)
	late := early.Add(3 * time.Hour)
	upstream := &fakeMeetingUpstream{list: models.MeetingNoteList{
		Notes: []models.MeetingNote{
			{ID: "a", Date: "2025-04-02"},
			{ID: "b", Date: "2025-04-10", CreatedAt: &early},
			{ID: "c", Date: "2025-04-10", CreatedAt: &late},
		},
	}}
	svc := newMeetingService(upstream)

	resp, err := svc.List(context.Background(), models.MeetingNoteFilter{MeetingType: models.MeetingTier2})
	require.NoError(t, err)
	assert.Equal(t, "c", resp.Notes[0].ID)
	assert.Equal(t, "b", resp.Notes[1].ID)
	assert.Equal(t, "a", resp.Notes[2].ID)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, models.MeetingTier2, upstream.filters[0].MeetingType)
}

func TestMeetingListRejectsBadFilter(t *testing.T) {
	svc := newMeetingService(&fakeMeetingUpstream{})

	_, err := svc.List(context.Background(), models.MeetingNoteFilter{MeetingType: "tier9"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.List(context.Background(), models.MeetingNoteFilter{StartDate: "04/01/2025"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMeetingAppendStampsAuthorAndDate(t *testing.T) {
	upstream := &fakeMeetingUpstream{}
	svc := newMeetingService(upstream)

	note, err := svc.Append(context.Background(), models.User{ID: "t01"}, models.MeetingNote{
		ID:          "forged",
		MeetingType: models.MeetingTier3,
		Content:     "  Reviewed FBA data. ",
		Author:      "admin",
		StudentCode: "2315",
	})
	require.NoError(t, err)
	assert.Equal(t, "t01", note.Author)
	assert.Equal(t, "2025-04-15", note.Date)
	assert.Empty(t, note.ID)
	assert.Equal(t, "Reviewed FBA data.", upstream.appended[0].Content)
}

func TestMeetingAppendRejectsInvertedPeriod(t *testing.T) {
	upstream := &fakeMeetingUpstream{}
	svc := newMeetingService(upstream)

	_, err := svc.Append(context.Background(), models.User{ID: "t01"}, models.MeetingNote{
		MeetingType: models.MeetingTier1,
		Date:        "2025-04-15",
		Content:     "x",
		PeriodStart: "2025-04-30",
		PeriodEnd:   "2025-04-01",
	})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, upstream.appended)
}

func TestMeetingMinutesRenderMarkdown(t *testing.T) {
	upstream := &fakeMeetingUpstream{minutes: "## Decisions\n- Move **2315** to Tier 2"}
	svc := newMeetingService(upstream)

	narrative, err := svc.Minutes(context.Background(), models.MeetingMinutesRequest{StartDate: "2025-04-01", EndDate: "2025-04-15"})
	require.NoError(t, err)
	assert.Equal(t, upstream.minutes, narrative.Markdown)
	assert.True(t, strings.Contains(narrative.HTML, "<h2>Decisions</h2>"))
	assert.True(t, strings.Contains(narrative.HTML, "<strong>2315</strong>"))

	_, err = svc.Minutes(context.Background(), models.MeetingMinutesRequest{StartDate: "2025-04-15", EndDate: "2025-04-01"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMeetingAnalysisUsesSessionRange(t *testing.T) {
	upstream := &fakeMeetingUpstream{}
	svc := newMeetingService(upstream)

	resp, err := svc.Analysis(context.Background(), "sess-1", models.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, models.DateRangeFromDefault, resp.DateRange.Source)
	assert.Equal(t, []models.DateRange{{Start: "2025-03-18", End: "2025-04-15"}}, upstream.analyzed)
}
