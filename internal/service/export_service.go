package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
	"github.com/noah-isme/pbis-gateway/pkg/export"
	"github.com/noah-isme/pbis-gateway/pkg/storage"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type cicoSheetSource interface {
	Monthly(ctx context.Context, month int) (models.CICOMonthly, error)
}

type tierBoardSource interface {
	Board(ctx context.Context) (*dto.TierBoardResponse, error)
}

type tier3Source interface {
	Tier3Report(ctx context.Context, r models.DateRange) (models.Tier3Report, error)
}

type meetingNoteSource interface {
	MeetingNotes(ctx context.Context, filter models.MeetingNoteFilter) (models.MeetingNoteList, error)
}

type exportRecorder interface {
	RecordExport(kind, format string)
}

// ExportSources are the data providers for each export kind.
type ExportSources struct {
	CICO     cicoSheetSource
	Tiers    tierBoardSource
	Tier3    tier3Source
	Meetings meetingNoteSource
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
	// CleanupInterval of zero disables the background sweep.
	CleanupInterval time.Duration
}

// ExportDownload is an opened export ready to stream.
type ExportDownload struct {
	File        *os.File
	FileName    string
	ContentType string
	ExpiresAt   time.Time
}

// ExportService builds datasets from upstream data and persists rendered files
// behind signed download links.
type ExportService struct {
	sources   ExportSources
	ranges    rangeResolver
	storage   fileStorage
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	metrics   exportRecorder
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(sources ExportSources, ranges rangeResolver, store fileStorage, signer *storage.SignedURLSigner, validate *validator.Validate, metrics exportRecorder, logger *zap.Logger, cfg ExportConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = time.Hour
		if signer != nil {
			cfg.ResultTTL = signer.TTL()
		}
	}
	cfg.APIPrefix = strings.TrimRight(cfg.APIPrefix, "/")
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	return &ExportService{
		sources:   sources,
		ranges:    ranges,
		storage:   store,
		signer:    signer,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Generate renders the requested export synchronously and returns a signed link.
func (s *ExportService) Generate(ctx context.Context, session *models.Session, req models.ExportRequest) (*models.ExportResult, error) {
	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	renderer, err := export.RendererFor(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	dataset, label, err := s.buildDataset(ctx, session, req)
	if err != nil {
		return nil, err
	}
	payload, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	id := uuid.NewString()
	filename := s.buildFilename(req.Kind, label, renderer.Extension())
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}
	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		_ = s.storage.Delete(relPath)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export link")
	}

	if s.metrics != nil {
		s.metrics.RecordExport(req.Kind, string(format))
	}
	s.logger.Info("export generated",
		zap.String("export_id", id),
		zap.String("kind", req.Kind),
		zap.String("format", string(format)),
		zap.Int("rows", len(dataset.Rows)),
	)

	return &models.ExportResult{
		ID:          id,
		FileName:    filepath.Base(relPath),
		DownloadURL: fmt.Sprintf("%s/exports/%s", s.cfg.APIPrefix, token),
		ExpiresAt:   expiresAt,
		Rows:        len(dataset.Rows),
	}, nil
}

// Open validates token and opens the stored export file.
func (s *ExportService) Open(token string) (*ExportDownload, error) {
	link, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	file, err := s.storage.Open(link.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export file no longer exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export file")
	}
	name := filepath.Base(link.Path)
	contentType := "application/octet-stream"
	if format, err := export.ParseFormat(strings.TrimPrefix(filepath.Ext(name), ".")); err == nil {
		if renderer, err := export.RendererFor(format); err == nil {
			contentType = renderer.ContentType()
		}
	}
	return &ExportDownload{File: file, FileName: name, ContentType: contentType, ExpiresAt: link.ExpiresAt}, nil
}

// Cleanup removes files older than the configured result TTL.
func (s *ExportService) Cleanup() ([]string, error) {
	return s.storage.CleanupOlderThan(s.cfg.ResultTTL)
}

// StartCleanup boots a goroutine that purges expired exports periodically.
func (s *ExportService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := s.Cleanup()
				if err != nil {
					s.logger.Sugar().Warnw("export cleanup failed", "error", err)
					continue
				}
				if len(removed) > 0 {
					s.logger.Sugar().Infow("expired exports removed", "count", len(removed))
				}
			}
		}
	}()
}

func (s *ExportService) buildFilename(kind, label, ext string) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s.%s", kind, sanitizeFilename(label), timestamp, ext)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

func (s *ExportService) buildDataset(ctx context.Context, session *models.Session, req models.ExportRequest) (export.Dataset, string, error) {
	switch req.Kind {
	case models.ExportCICOMonthly:
		return s.buildCICODataset(ctx, req.Month)
	case models.ExportTierStatus:
		return s.buildTierDataset(ctx)
	case models.ExportTier3Report:
		r, err := s.exportRange(ctx, session, req)
		if err != nil {
			return export.Dataset{}, "", err
		}
		return s.buildTier3Dataset(ctx, r)
	case models.ExportMeetingNotes:
		r, err := s.exportRange(ctx, session, req)
		if err != nil {
			return export.Dataset{}, "", err
		}
		return s.buildMeetingDataset(ctx, r)
	default:
		return export.Dataset{}, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export kind %s", req.Kind))
	}
}

func (s *ExportService) exportRange(ctx context.Context, session *models.Session, req models.ExportRequest) (models.DateRange, error) {
	sessionID := ""
	if session != nil {
		sessionID = session.ID
	}
	resolved, err := s.ranges.Resolve(ctx, sessionID, models.DateRange{Start: req.StartDate, End: req.EndDate})
	if err != nil {
		return models.DateRange{}, err
	}
	return resolved.DateRange, nil
}

func (s *ExportService) buildCICODataset(ctx context.Context, month int) (export.Dataset, string, error) {
	if month == 0 {
		return export.Dataset{}, "", appErrors.Clone(appErrors.ErrValidation, "month is required for cico exports")
	}
	sheet, err := s.sources.CICO.Monthly(ctx, month)
	if err != nil {
		return export.Dataset{}, "", err
	}

	columns := append([]models.CICODayColumn(nil), sheet.DayColumns...)
	sort.Slice(columns, func(i, j int) bool { return columns[i].Day < columns[j].Day })

	headers := []string{"Class", "No", "Code", "Target behavior", "Scale", "Goal"}
	for _, col := range columns {
		headers = append(headers, strconv.Itoa(col.Day))
	}
	headers = append(headers, "Rate", "Achieved")

	rows := make([][]string, 0, len(sheet.Students))
	for _, student := range sheet.Students {
		row := []string{student.Class, student.Number, student.Code, student.TargetBehavior, student.Scale, student.GoalCriterion}
		for _, col := range columns {
			row = append(row, student.Days[strconv.Itoa(col.Day)])
		}
		row = append(row, student.Rate, student.Achieved)
		rows = append(rows, row)
	}

	label := fmt.Sprintf("month%02d", month)
	return export.Dataset{
		Title:   fmt.Sprintf("CICO monthly sheet - month %d", month),
		Headers: headers,
		Rows:    rows,
	}, label, nil
}

func (s *ExportService) buildTierDataset(ctx context.Context) (export.Dataset, string, error) {
	board, err := s.sources.Tiers.Board(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	headers := []string{"Code", "Name", "Class", "Enrolled", "Tier", "Tier 1", "Tier 2 (CICO)", "Tier 2 (SST)", "Tier 3", "Tier 3+", "BeAble code", "Changed", "Memo"}
	rows := make([][]string, 0, len(board.Students))
	for _, st := range board.Students {
		rows = append(rows, []string{
			st.Code, st.Name, st.Class, st.Enrolled, st.Tier,
			st.Tier1, st.Tier2CICO, st.Tier2SST, st.Tier3, st.Tier3Plus,
			st.BeAbleCode, st.ChangedDate, st.Memo,
		})
	}
	sections := make([]export.Section, 0, 1)
	if len(board.Summary) > 0 {
		parts := make([]string, 0, len(board.Summary))
		for _, count := range board.Summary {
			parts = append(parts, fmt.Sprintf("%s: %d", count.Tier, count.Count))
		}
		sections = append(sections, export.Section{Heading: "Summary", Body: strings.Join(parts, "\n")})
	}
	return export.Dataset{
		Title:    "Tier status",
		Headers:  headers,
		Rows:     rows,
		Sections: sections,
	}, s.now().Format("20060102"), nil
}

func (s *ExportService) buildTier3Dataset(ctx context.Context, r models.DateRange) (export.Dataset, string, error) {
	report, err := s.sources.Tier3.Tier3Report(ctx, r)
	if err != nil {
		return export.Dataset{}, "", err
	}

	seen := make(map[string]struct{})
	var headers []string
	for _, student := range report.Students {
		for key := range student {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			headers = append(headers, key)
		}
	}
	sort.Slice(headers, func(i, j int) bool { return tier3ColumnLess(headers[i], headers[j]) })
	if len(headers) == 0 {
		headers = []string{"name"}
	}

	rows := make([][]string, 0, len(report.Students))
	for _, student := range report.Students {
		row := make([]string, len(headers))
		for i, key := range headers {
			row[i] = formatCell(student[key])
		}
		rows = append(rows, row)
	}

	var sections []export.Section
	if len(report.Summary) > 0 {
		keys := make([]string, 0, len(report.Summary))
		for key := range report.Summary {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, key := range keys {
			lines = append(lines, fmt.Sprintf("%s: %s", key, formatCell(report.Summary[key])))
		}
		sections = append(sections, export.Section{Heading: "Summary", Body: strings.Join(lines, "\n")})
	}

	return export.Dataset{
		Title:    fmt.Sprintf("Tier 3 report %s to %s", r.Start, r.End),
		Headers:  headers,
		Rows:     rows,
		Sections: sections,
	}, r.Start + "_" + r.End, nil
}

func (s *ExportService) buildMeetingDataset(ctx context.Context, r models.DateRange) (export.Dataset, string, error) {
	list, err := s.sources.Meetings.MeetingNotes(ctx, models.MeetingNoteFilter{StartDate: r.Start, EndDate: r.End})
	if err != nil {
		return export.Dataset{}, "", err
	}
	notes := append([]models.MeetingNote(nil), list.Notes...)
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].Date > notes[j].Date })

	rows := make([][]string, 0, len(notes))
	sections := make([]export.Section, 0, len(notes))
	for _, note := range notes {
		rows = append(rows, []string{note.Date, note.MeetingType, note.StudentCode, note.Author, note.Content})
		heading := note.Date + " " + note.MeetingType
		if note.StudentCode != "" {
			heading += " (" + note.StudentCode + ")"
		}
		sections = append(sections, export.Section{Heading: heading, Body: note.Content})
	}
	return export.Dataset{
		Title:    fmt.Sprintf("Meeting notes %s to %s", r.Start, r.End),
		Headers:  []string{"Date", "Type", "Student", "Author", "Content"},
		Rows:     rows,
		Sections: sections,
	}, r.Start + "_" + r.End, nil
}

// tier3ColumnLess keeps identifying columns first, then alphabetical.
func tier3ColumnLess(a, b string) bool {
	rank := func(key string) int {
		switch strings.ToLower(key) {
		case "name":
			return 0
		case "code", "student_code":
			return 1
		case "class":
			return 2
		default:
			return 3
		}
	}
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}

func formatCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "O"
		}
		return "X"
	default:
		return fmt.Sprint(v)
	}
}
