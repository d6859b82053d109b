package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
	"github.com/noah-isme/pbis-gateway/pkg/markdown"
)

type meetingUpstream interface {
	MeetingNotes(ctx context.Context, filter models.MeetingNoteFilter) (models.MeetingNoteList, error)
	AppendMeetingNote(ctx context.Context, note models.MeetingNote) error
	AIMeetingMinutes(ctx context.Context, req models.MeetingMinutesRequest) (string, error)
	MeetingAnalysis(ctx context.Context, r models.DateRange) (models.MeetingAnalysis, error)
}

// MeetingService handles the append-only meeting log and its AI minutes.
type MeetingService struct {
	upstream  meetingUpstream
	ranges    rangeResolver
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewMeetingService constructs a MeetingService instance.
func NewMeetingService(upstream meetingUpstream, ranges rangeResolver, validate *validator.Validate, logger *zap.Logger) *MeetingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MeetingService{upstream: upstream, ranges: ranges, validator: validate, logger: logger, now: time.Now}
}

// List returns the filtered notes, newest meeting date first.
func (s *MeetingService) List(ctx context.Context, filter models.MeetingNoteFilter) (*dto.MeetingNotesResponse, error) {
	if filter.MeetingType != "" {
		if err := s.validator.Var(filter.MeetingType, "oneof=tier1 tier2 tier3 consultation"); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown meeting type")
		}
	}
	for _, date := range []string{filter.StartDate, filter.EndDate} {
		if date == "" {
			continue
		}
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "dates must be YYYY-MM-DD")
		}
	}

	list, err := s.upstream.MeetingNotes(ctx, filter)
	if err != nil {
		return nil, err
	}
	notes := list.Notes
	if notes == nil {
		notes = []models.MeetingNote{}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Date != notes[j].Date {
			return notes[i].Date > notes[j].Date
		}
		return createdAt(notes[i]).After(createdAt(notes[j]))
	})

	total := list.Total
	if total < len(notes) {
		total = len(notes)
	}
	return &dto.MeetingNotesResponse{Notes: notes, Total: total}, nil
}

// Append records a note authored by the session user. Notes cannot be edited afterwards.
func (s *MeetingService) Append(ctx context.Context, author models.User, note models.MeetingNote) (models.MeetingNote, error) {
	note.Content = strings.TrimSpace(note.Content)
	note.StudentCode = strings.TrimSpace(note.StudentCode)
	if note.Date == "" {
		note.Date = s.now().Format(models.DateLayout)
	}
	if err := s.validator.Struct(note); err != nil {
		return models.MeetingNote{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid meeting note")
	}
	if note.PeriodStart != "" && note.PeriodEnd != "" {
		if err := (models.DateRange{Start: note.PeriodStart, End: note.PeriodEnd}).Validate(); err != nil {
			return models.MeetingNote{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
	}
	note.ID = ""
	note.CreatedAt = nil
	note.Author = author.ID
	if author.Name != "" {
		note.Author = author.Name
	}

	if err := s.upstream.AppendMeetingNote(ctx, note); err != nil {
		return models.MeetingNote{}, err
	}
	return note, nil
}

// Minutes asks the AI for meeting minutes over a period and renders them.
func (s *MeetingService) Minutes(ctx context.Context, req models.MeetingMinutesRequest) (*models.Narrative, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "start_date and end_date are required")
	}
	if err := (models.DateRange{Start: req.StartDate, End: req.EndDate}).Validate(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	text, err := s.upstream.AIMeetingMinutes(ctx, req)
	if err != nil {
		return nil, err
	}
	return renderNarrative(text)
}

// Analysis returns emergency and tier-2 candidate lists for the resolved window.
func (s *MeetingService) Analysis(ctx context.Context, sessionID string, query models.DateRange) (*dto.MeetingAnalysisResponse, error) {
	resolved, err := s.ranges.Resolve(ctx, sessionID, query)
	if err != nil {
		return nil, err
	}
	analysis, err := s.upstream.MeetingAnalysis(ctx, resolved.DateRange)
	if err != nil {
		return nil, err
	}
	return &dto.MeetingAnalysisResponse{DateRange: resolved, Analysis: analysis}, nil
}

func createdAt(note models.MeetingNote) time.Time {
	if note.CreatedAt == nil {
		return time.Time{}
	}
	return *note.CreatedAt
}

func renderNarrative(text string) (*models.Narrative, error) {
	html, err := markdown.ToHTML(text)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render narrative")
	}
	return &models.Narrative{Markdown: text, HTML: html}, nil
}
