package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type fakeTierUpstream struct {
	list     models.TierStatusList
	updates  []models.TierUpdateRequest
	changes  []models.StudentTierChange
	enrolled []models.EnrollmentUpdateRequest
	records  []models.CICORecord
	filters  []models.CICORecordFilter
	added    []models.CICORecordInput
}

func (f *fakeTierUpstream) TierStatus(context.Context) (models.TierStatusList, error) {
	return f.list, nil
}

func (f *fakeTierUpstream) UpdateTier(_ context.Context, req models.TierUpdateRequest) error {
	f.updates = append(f.updates, req)
	return nil
}

func (f *fakeTierUpstream) UpdateEnrollment(_ context.Context, req models.EnrollmentUpdateRequest) error {
	f.enrolled = append(f.enrolled, req)
	return nil
}

func (f *fakeTierUpstream) UpdateBeAble(context.Context, models.BeAbleUpdateRequest) error {
	return nil
}

func (f *fakeTierUpstream) ChangeStudentTier(_ context.Context, req models.StudentTierChange) error {
	f.changes = append(f.changes, req)
	return nil
}

func (f *fakeTierUpstream) CICORecords(_ context.Context, filter models.CICORecordFilter) ([]models.CICORecord, error) {
	f.filters = append(f.filters, filter)
	return f.records, nil
}

func (f *fakeTierUpstream) AddCICORecord(_ context.Context, in models.CICORecordInput) error {
	f.added = append(f.added, in)
	return nil
}

type staticNames struct {
	names map[string]string
	err   error
}

func (s staticNames) CodeNames(context.Context) (map[string]string, error) {
	return s.names, s.err
}

func TestTierBoardJoinsNamesAndCounts(t *testing.T) {
	upstream := &fakeTierUpstream{list: models.TierStatusList{
		Students: []models.StudentStatus{
			{Code: "2111", Tier2CICO: "O"},
			{Code: "2112", Tier2CICO: "O", Tier3: "O"},
			{Code: "2113"},
			{Code: "2114", Tier3Plus: "O", Enrolled: "X"},
		},
		EnrolledCount: 3,
		TotalCount:    4,
	}}
	svc := NewTierService(upstream, staticNames{names: map[string]string{"2111": "Kim"}}, nil, nil)

	board, err := svc.Board(context.Background())
	require.NoError(t, err)
	assert.False(t, board.Generated)
	assert.Equal(t, "Kim", board.Students[0].Name)
	assert.Equal(t, models.Tier2CICO, board.Students[0].Tier)
	assert.Equal(t, models.Tier3, board.Students[1].Tier)
	assert.Equal(t, models.Tier1, board.Students[2].Tier)
	assert.Equal(t, 3, board.EnrolledCount)
	assert.Equal(t, 4, board.TotalCount)

	counts := map[string]int{}
	for _, c := range board.Summary {
		counts[c.Tier] = c.Count
	}
	assert.Equal(t, map[string]int{
		models.Tier1:     1,
		models.Tier2CICO: 1,
		models.Tier2SST:  0,
		models.Tier3:     1,
		models.Tier3Plus: 0,
	}, counts)
}

func TestTierBoardFallsBackToPresets(t *testing.T) {
	svc := NewTierService(&fakeTierUpstream{}, staticNames{err: errors.New("offline")}, nil, nil)

	board, err := svc.Board(context.Background())
	require.NoError(t, err)
	assert.True(t, board.Generated)
	assert.Len(t, board.Students, 150)
	assert.Equal(t, 150, board.TotalCount)
	assert.Equal(t, models.Tier1, board.Summary[0].Tier)
	assert.Equal(t, 150, board.Summary[0].Count)
}

func TestTierChangeValidatesTierLabel(t *testing.T) {
	upstream := &fakeTierUpstream{}
	svc := NewTierService(upstream, staticNames{}, nil, nil)

	err := svc.ChangeTier(context.Background(), models.StudentTierChange{StudentCode: "2111", Tier: "Tier 9"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.ChangeTier(context.Background(), models.StudentTierChange{StudentCode: "2111", Tier: models.Tier2SST}))
	assert.Len(t, upstream.changes, 1)

	bad := "Y"
	err = svc.UpdateTier(context.Background(), models.TierUpdateRequest{Code: "2111", Tier3: &bad})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, upstream.updates)
}

func TestTier2RecordsShowsRecentCards(t *testing.T) {
	upstream := &fakeTierUpstream{list: models.TierStatusList{Students: []models.StudentStatus{
		{Code: "2111"},
		{Code: "2112", Tier2CICO: "O"},
		{Code: "2113", Tier2CICO: "O", Enrolled: "X"},
		{Code: "2114", Tier2CICO: "O"},
	}}}
	for day := 1; day <= 9; day++ {
		rate := 50
		if day%2 == 0 {
			rate = 100
		}
		upstream.records = append(upstream.records, models.CICORecord{
			Date: fmt.Sprintf("2024-05-%02d", day), StudentCode: "2112", AchievementRate: rate,
		})
	}
	svc := NewTierService(upstream, staticNames{}, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 9, 10, 0, 0, 0, time.UTC) }

	page, err := svc.Tier2Records(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, page.Students, 2)
	assert.Equal(t, "2112", page.Selected)
	assert.Equal(t, "2112", upstream.filters[0].StudentCode)
	require.Len(t, page.Records, 7)
	assert.Equal(t, "2024-05-03", page.Records[0].Date)
	assert.True(t, page.TodayDone)
	assert.Equal(t, 71, page.AverageRate)
	assert.Equal(t, "2024-05-09", page.Today)
}

func TestTier2RecordsWithoutTier2Students(t *testing.T) {
	upstream := &fakeTierUpstream{list: models.TierStatusList{Students: []models.StudentStatus{{Code: "2111"}}}}
	svc := NewTierService(upstream, staticNames{}, nil, nil)

	page, err := svc.Tier2Records(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, page.Students)
	assert.Empty(t, page.Selected)
	assert.Empty(t, page.Records)
	assert.Empty(t, upstream.filters)
}

func TestAddTier2RecordComputesRate(t *testing.T) {
	upstream := &fakeTierUpstream{}
	svc := NewTierService(upstream, staticNames{}, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 9, 10, 0, 0, 0, time.UTC) }

	saved, err := svc.AddTier2Record(context.Background(), models.CICORecordInput{
		StudentCode: "2112", Target1: "o", Target2: "X", AchievementRate: 100,
	}, "Ms. Kim")
	require.NoError(t, err)
	assert.Equal(t, 50, saved.AchievementRate)
	assert.Equal(t, "2024-05-09", saved.Date)
	assert.Equal(t, "Ms. Kim", saved.EnteredBy)
	require.Len(t, upstream.added, 1)
	assert.Equal(t, "O", upstream.added[0].Target1)

	_, err = svc.AddTier2Record(context.Background(), models.CICORecordInput{StudentCode: "2112", Target1: "O"}, "Ms. Kim")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Len(t, upstream.added, 1)
}
