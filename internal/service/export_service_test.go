package service

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
	"github.com/noah-isme/pbis-gateway/pkg/storage"
)

type exportSourcesStub struct {
	meetingFilters []models.MeetingNoteFilter
}

func (s *exportSourcesStub) Monthly(_ context.Context, month int) (models.CICOMonthly, error) {
	sheet := aprilSheet()
	sheet.Month = month
	return sheet, nil
}

func (s *exportSourcesStub) Board(context.Context) (*dto.TierBoardResponse, error) {
	return &dto.TierBoardResponse{
		Students: []dto.TierStudent{
			{StudentStatus: models.StudentStatus{Code: "2315", Name: "Minji", Tier2CICO: "O"}, Tier: models.Tier2CICO},
		},
		Summary: []dto.TierCount{{Tier: models.Tier1, Count: 0}, {Tier: models.Tier2CICO, Count: 1}},
	}, nil
}

func (s *exportSourcesStub) Tier3Report(context.Context, models.DateRange) (models.Tier3Report, error) {
	return models.Tier3Report{
		Students: []map[string]interface{}{
			{"weekly_avg": 2.5, "name": "Minji", "class": "2-3", "is_emergency": true},
			{"name": "Joon", "class": "3-1", "note": nil},
		},
		Summary: map[string]interface{}{"total": float64(2)},
	}, nil
}

func (s *exportSourcesStub) MeetingNotes(_ context.Context, filter models.MeetingNoteFilter) (models.MeetingNoteList, error) {
	s.meetingFilters = append(s.meetingFilters, filter)
	return models.MeetingNoteList{Notes: []models.MeetingNote{
		{Date: "2025-04-01", MeetingType: models.MeetingTier1, Content: "Reviewed referrals."},
		{Date: "2025-04-08", MeetingType: models.MeetingTier2, StudentCode: "2315", Content: "Started CICO."},
	}}, nil
}

type exportCounter struct {
	kinds []string
}

func (c *exportCounter) RecordExport(kind, format string) {
	c.kinds = append(c.kinds, kind+"/"+format)
}

func newExportServiceForTest(t *testing.T) (*ExportService, *exportSourcesStub, *exportCounter, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	sources := &exportSourcesStub{}
	counter := &exportCounter{}
	ranges, _ := newDateRangeService()
	svc := NewExportService(
		ExportSources{CICO: sources, Tiers: sources, Tier3: sources, Meetings: sources},
		ranges, store, signer, nil, counter, nil,
		ExportConfig{APIPrefix: "/api/v1/"},
	)
	return svc, sources, counter, dir
}

func tokenFrom(t *testing.T, url string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(url, "/api/v1/exports/"), url)
	return strings.TrimPrefix(url, "/api/v1/exports/")
}

func TestExportCICOMonthlyCSV(t *testing.T) {
	svc, _, counter, _ := newExportServiceForTest(t)
	session := &models.Session{ID: "sess-1"}

	result, err := svc.Generate(context.Background(), session, models.ExportRequest{Kind: "cico_monthly", Format: "CSV", Month: 4})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Rows)
	assert.True(t, strings.HasPrefix(result.FileName, "cico_monthly_month04_"))
	assert.Equal(t, []string{"cico_monthly/csv"}, counter.kinds)

	download, err := svc.Open(tokenFrom(t, result.DownloadURL))
	require.NoError(t, err)
	defer download.File.Close()
	body, err := io.ReadAll(download.File)
	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", download.ContentType)
	firstLine := strings.SplitN(string(body), "\n", 2)[0]
	assert.Contains(t, firstLine, "Target behavior")
	assert.Contains(t, firstLine, "Achieved")
}

func TestExportCICORequiresMonth(t *testing.T) {
	svc, _, counter, _ := newExportServiceForTest(t)

	_, err := svc.Generate(context.Background(), &models.Session{ID: "s"}, models.ExportRequest{Kind: "cico_monthly", Format: "xlsx"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, counter.kinds)
}

func TestExportRejectsUnknownKindOrFormat(t *testing.T) {
	svc, _, _, _ := newExportServiceForTest(t)

	_, err := svc.Generate(context.Background(), nil, models.ExportRequest{Kind: "grades", Format: "csv"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	_, err = svc.Generate(context.Background(), nil, models.ExportRequest{Kind: "tier_status", Format: "docx"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportTierStatusXLSXAndPDF(t *testing.T) {
	svc, _, counter, _ := newExportServiceForTest(t)

	for _, format := range []string{"xlsx", "pdf"} {
		result, err := svc.Generate(context.Background(), &models.Session{ID: "s"}, models.ExportRequest{Kind: "tier_status", Format: format})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Rows)
		assert.True(t, strings.HasSuffix(result.FileName, "."+format))
	}
	assert.Equal(t, []string{"tier_status/xlsx", "tier_status/pdf"}, counter.kinds)
}

func TestExportMeetingNotesUsesResolvedRange(t *testing.T) {
	svc, sources, _, _ := newExportServiceForTest(t)

	result, err := svc.Generate(context.Background(), &models.Session{ID: "s"}, models.ExportRequest{Kind: "meeting_notes", Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	require.Len(t, sources.meetingFilters, 1)
	assert.Equal(t, "2025-03-18", sources.meetingFilters[0].StartDate)
	assert.Equal(t, "2025-04-15", sources.meetingFilters[0].EndDate)
}

func TestTier3ExportColumnsAreStable(t *testing.T) {
	svc, _, _, _ := newExportServiceForTest(t)

	dataset, label, err := svc.buildTier3Dataset(context.Background(), models.DateRange{Start: "2025-04-01", End: "2025-04-30"})
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01_2025-04-30", label)
	assert.Equal(t, []string{"name", "class", "is_emergency", "note", "weekly_avg"}, dataset.Headers)
	assert.Equal(t, []string{"Minji", "2-3", "O", "", "2.5"}, dataset.Rows[0])
	require.Len(t, dataset.Sections, 1)
	assert.Equal(t, "total: 2", dataset.Sections[0].Body)
}

func TestExportOpenRejectsTamperedToken(t *testing.T) {
	svc, _, _, _ := newExportServiceForTest(t)

	result, err := svc.Generate(context.Background(), nil, models.ExportRequest{Kind: "tier_status", Format: "csv"})
	require.NoError(t, err)
	token := tokenFrom(t, result.DownloadURL)

	_, err = svc.Open(token + "00")
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestExportOpenMissingFile(t *testing.T) {
	svc, _, _, dir := newExportServiceForTest(t)

	result, err := svc.Generate(context.Background(), nil, models.ExportRequest{Kind: "tier_status", Format: "csv"})
	require.NoError(t, err)
	require.NoError(t, os.Remove(dir+"/"+result.FileName))

	_, err = svc.Open(tokenFrom(t, result.DownloadURL))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "na", sanitizeFilename(""))
	assert.Equal(t, "2025-04-01_2025-04-30", sanitizeFilename("2025-04-01 2025-04-30"))
	assert.Equal(t, "a-b-c", sanitizeFilename("a/b:c"))
}
