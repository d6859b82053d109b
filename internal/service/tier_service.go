package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type tierUpstream interface {
	TierStatus(ctx context.Context) (models.TierStatusList, error)
	UpdateTier(ctx context.Context, req models.TierUpdateRequest) error
	UpdateEnrollment(ctx context.Context, req models.EnrollmentUpdateRequest) error
	UpdateBeAble(ctx context.Context, req models.BeAbleUpdateRequest) error
	ChangeStudentTier(ctx context.Context, req models.StudentTierChange) error
	CICORecords(ctx context.Context, filter models.CICORecordFilter) ([]models.CICORecord, error)
	AddCICORecord(ctx context.Context, in models.CICORecordInput) error
}

// tier2RecentRecords is how many of a student's latest cards the page shows.
const tier2RecentRecords = 7

type codeNamer interface {
	CodeNames(ctx context.Context) (map[string]string, error)
}

// TierService builds the tier status board and forwards tier edits.
type TierService struct {
	upstream  tierUpstream
	names     codeNamer
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTierService constructs a TierService instance.
func NewTierService(upstream tierUpstream, names codeNamer, validate *validator.Validate, logger *zap.Logger) *TierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TierService{upstream: upstream, names: names, validator: validate, logger: logger, now: time.Now}
}

// Board joins tier status with roster names and counts students per tier.
// When no status rows exist yet the preset roster slots are shown at Tier 1.
func (s *TierService) Board(ctx context.Context) (*dto.TierBoardResponse, error) {
	list, err := s.upstream.TierStatus(ctx)
	if err != nil {
		return nil, err
	}

	names, err := s.names.CodeNames(ctx)
	if err != nil {
		s.logger.Warn("roster names unavailable, tier board shows codes only", zap.Error(err))
		names = map[string]string{}
	}

	rows := list.Students
	generated := false
	if len(rows) == 0 {
		generated = true
		for _, preset := range RosterPresets() {
			rows = append(rows, models.StudentStatus{Code: preset.Code, Class: preset.Class, CurrentTier: models.Tier1})
		}
	}

	counts := make(map[string]int, len(models.TierOrder))
	students := make([]dto.TierStudent, 0, len(rows))
	enrolled := 0
	for _, row := range rows {
		if name, ok := names[row.Code]; ok && name != "" {
			row.Name = name
		}
		tier := row.ComputedTier()
		if row.IsEnrolled() {
			enrolled++
			counts[tier]++
		}
		students = append(students, dto.TierStudent{StudentStatus: row, Tier: tier})
	}

	summary := make([]dto.TierCount, 0, len(models.TierOrder))
	for _, tier := range models.TierOrder {
		summary = append(summary, dto.TierCount{Tier: tier, Count: counts[tier]})
	}

	total := list.TotalCount
	if total == 0 || generated {
		total = len(students)
	}
	if list.EnrolledCount > 0 && !generated {
		enrolled = list.EnrolledCount
	}

	return &dto.TierBoardResponse{
		Students:      students,
		Summary:       summary,
		EnrolledCount: enrolled,
		TotalCount:    total,
		Generated:     generated,
	}, nil
}

// Distribution returns enrolled student counts per tier in tier order.
func (s *TierService) Distribution(ctx context.Context) ([]dto.TierCount, error) {
	board, err := s.Board(ctx)
	if err != nil {
		return nil, err
	}
	return board.Summary, nil
}

// UpdateTier toggles tier flags for a student.
func (s *TierService) UpdateTier(ctx context.Context, req models.TierUpdateRequest) error {
	if err := s.validate(req, "invalid tier update"); err != nil {
		return err
	}
	return s.upstream.UpdateTier(ctx, req)
}

// UpdateEnrollment flips a student's enrollment.
func (s *TierService) UpdateEnrollment(ctx context.Context, req models.EnrollmentUpdateRequest) error {
	if err := s.validate(req, "invalid enrollment update"); err != nil {
		return err
	}
	return s.upstream.UpdateEnrollment(ctx, req)
}

// UpdateBeAble links a student to a BeAble code.
func (s *TierService) UpdateBeAble(ctx context.Context, req models.BeAbleUpdateRequest) error {
	if err := s.validate(req, "invalid BeAble update"); err != nil {
		return err
	}
	return s.upstream.UpdateBeAble(ctx, req)
}

// ChangeTier moves a student to a single tier.
func (s *TierService) ChangeTier(ctx context.Context, req models.StudentTierChange) error {
	if err := s.validate(req, "invalid tier change"); err != nil {
		return err
	}
	return s.upstream.ChangeStudentTier(ctx, req)
}

// Tier2Records builds the Tier 2 card page. An empty code selects the first
// Tier 2 student.
func (s *TierService) Tier2Records(ctx context.Context, code string) (*dto.Tier2RecordsResponse, error) {
	board, err := s.Board(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now().Format(models.DateLayout)
	page := &dto.Tier2RecordsResponse{
		Students: make([]dto.TierStudent, 0),
		Records:  make([]models.CICORecord, 0),
		Today:    today,
	}
	for _, student := range board.Students {
		if student.Tier == models.Tier2CICO && student.IsEnrolled() {
			page.Students = append(page.Students, student)
		}
	}

	page.Selected = strings.TrimSpace(code)
	if page.Selected == "" && len(page.Students) > 0 {
		page.Selected = page.Students[0].Code
	}
	if page.Selected == "" {
		return page, nil
	}

	records, err := s.upstream.CICORecords(ctx, models.CICORecordFilter{StudentCode: page.Selected})
	if err != nil {
		return nil, err
	}
	if len(records) > tier2RecentRecords {
		records = records[len(records)-tier2RecentRecords:]
	}
	total := 0
	for _, record := range records {
		if record.Date == today {
			page.TodayDone = true
		}
		total += record.AchievementRate
	}
	if len(records) > 0 {
		page.Records = records
		page.AverageRate = int(math.Round(float64(total) / float64(len(records))))
	}
	return page, nil
}

// AddTier2Record appends a day's card. The date defaults to today and the
// author to enteredBy; the achievement rate is the share of targets met.
func (s *TierService) AddTier2Record(ctx context.Context, in models.CICORecordInput, enteredBy string) (models.CICORecordInput, error) {
	in.StudentCode = strings.TrimSpace(in.StudentCode)
	in.Target1 = strings.ToUpper(strings.TrimSpace(in.Target1))
	in.Target2 = strings.ToUpper(strings.TrimSpace(in.Target2))
	if strings.TrimSpace(in.Date) == "" {
		in.Date = s.now().Format(models.DateLayout)
	}
	if strings.TrimSpace(in.EnteredBy) == "" {
		in.EnteredBy = enteredBy
	}
	if err := s.validate(in, "invalid CICO record"); err != nil {
		return models.CICORecordInput{}, err
	}

	met := 0
	for _, target := range []string{in.Target1, in.Target2} {
		if target == "O" {
			met++
		}
	}
	in.AchievementRate = met * 100 / 2

	if err := s.upstream.AddCICORecord(ctx, in); err != nil {
		return models.CICORecordInput{}, err
	}
	return in, nil
}

func (s *TierService) validate(req interface{}, message string) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	return nil
}
