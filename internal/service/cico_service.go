package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
	"github.com/noah-isme/pbis-gateway/pkg/jobs"
)

const (
	cicoFlushJob         = "cico.flush"
	defaultCICODebounce  = 1500 * time.Millisecond
	cicoCycleOptionLimit = 3
)

type cicoUpstream interface {
	CICOMonthly(ctx context.Context, month int) (models.CICOMonthly, error)
	BusinessDays(ctx context.Context, year, month int) (models.BusinessDays, error)
	UpdateCICOCells(ctx context.Context, req models.MonthlyUpdateRequest) error
	GenerateCICOMonthly(ctx context.Context, month int) error
	UpdateCICOSettings(ctx context.Context, req models.CICOSettingsRequest) error
	ToggleTier2(ctx context.Context, req models.Tier2ToggleRequest) error
	CICODaily(ctx context.Context, date string) ([]models.CICODailyEntry, error)
	SaveCICODaily(ctx context.Context, batch models.CICODailyBatch) error
	CICOReport(ctx context.Context, month int) (models.CICOReport, error)
}

type cicoFlushRecorder interface {
	RecordCICOFlush(ok bool, cells int)
}

// CICOGridConfig tunes batching of grid edits.
type CICOGridConfig struct {
	Debounce time.Duration
	Workers  int
}

type gridKey struct {
	session string
	month   int
}

type cellKey struct {
	row int
	col int
}

// gridState is one session's editor for one month. All fields are guarded by mu.
type gridState struct {
	mu         sync.Mutex
	generation uint64
	grid       *models.CICOGrid
	pending    map[cellKey]string
	inflight   int
	timer      *time.Timer
	status     models.SaveStatus
}

type flushBatch struct {
	key     gridKey
	state   *gridState
	updates []models.CellUpdate
}

// CICOGridService edits monthly CICO sheets. Edits are applied locally at once
// and written upstream in one batch per debounce window.
type CICOGridService struct {
	upstream  cicoUpstream
	validator *validator.Validate
	logger    *zap.Logger
	metrics   cicoFlushRecorder
	debounce  time.Duration
	queue     *jobs.Queue
	now       func() time.Time

	mu    sync.Mutex
	grids map[gridKey]*gridState
}

// NewCICOGridService constructs a CICOGridService. Start must be called before
// batches can be flushed in the background.
func NewCICOGridService(upstream cicoUpstream, validate *validator.Validate, metrics cicoFlushRecorder, logger *zap.Logger, cfg CICOGridConfig) *CICOGridService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultCICODebounce
	}
	svc := &CICOGridService{
		upstream:  upstream,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		debounce:  cfg.Debounce,
		now:       time.Now,
		grids:     make(map[gridKey]*gridState),
	}
	svc.queue = jobs.NewQueue("cico-flush", svc.handleFlush, jobs.QueueConfig{
		Workers: cfg.Workers,
		Logger:  logger,
	})
	return svc
}

// Start launches the flush workers.
func (s *CICOGridService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Shutdown writes every pending batch and drains the flush queue.
func (s *CICOGridService) Shutdown(ctx context.Context) error {
	err := s.FlushAll(ctx)
	s.queue.Stop(ctx)
	return err
}

// Load fetches the month's sheet and business days together and installs the
// joined grid as the session's editor. A load that finishes after a newer
// load for the same grid started is discarded with ErrStale.
func (s *CICOGridService) Load(ctx context.Context, sessionID string, month int) (*models.CICOGrid, error) {
	if err := validateCICOMonth(month); err != nil {
		return nil, err
	}

	state := s.state(gridKey{session: sessionID, month: month}, true)
	state.mu.Lock()
	state.generation++
	generation := state.generation
	state.mu.Unlock()

	year := s.now().Year()
	var (
		monthly models.CICOMonthly
		days    models.BusinessDays
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.upstream.CICOMonthly(gctx, month)
		if err != nil {
			if appErrors.Is(err, appErrors.ErrNotFound) {
				return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status,
					fmt.Sprintf("CICO sheet for month %d has not been generated", month))
			}
			return err
		}
		monthly = m
		return nil
	})
	g.Go(func() error {
		bd, err := s.upstream.BusinessDays(gctx, year, month)
		if err != nil {
			return err
		}
		days = bd
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	grid := buildCICOGrid(monthly, days, year, month)

	state.mu.Lock()
	defer state.mu.Unlock()
	if state.generation != generation {
		s.logger.Debug("discarding superseded CICO load",
			zap.String("session_id", sessionID), zap.Int("month", month), zap.Uint64("generation", generation))
		return nil, appErrors.Clone(appErrors.ErrStale, "a newer load of this grid is in progress")
	}
	for k, v := range state.pending {
		if row := grid.row(k.row); row != nil {
			if day, ok := grid.dayForCol(k.col); ok {
				row.Days[strconv.Itoa(day)] = v
			}
		}
	}
	state.grid = grid.CICOGrid
	state.grid.Status = state.status
	return cloneGrid(state.grid), nil
}

// Edit applies one cell interaction and schedules it for the next batch.
func (s *CICOGridService) Edit(ctx context.Context, sessionID string, month int, edit models.CellEdit) (*models.CellEditResult, error) {
	if err := s.validator.Struct(edit); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cell edit")
	}
	key := gridKey{session: sessionID, month: month}
	state := s.state(key, false)
	if state == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "grid is not loaded")
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if state.grid == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "grid is not loaded")
	}
	view := gridView{state.grid}
	row := view.row(edit.Row)
	if row == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d is not in this grid", edit.Row))
	}
	day, ok := view.dayForCol(edit.Col)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("column %d is not an editable business day", edit.Col))
	}

	dayKey := strconv.Itoa(day)
	current := row.Days[dayKey]
	var next string
	switch edit.Action {
	case models.CellEditCycle:
		if row.Inline {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("scale %q is edited inline", row.Scale))
		}
		next = NextCICOValue(row.Options, current)
	case models.CellEditSet:
		next = strings.TrimSpace(edit.Value)
		if !row.Inline && next != "" && !containsString(row.Options, next) {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("value %q is not one of %s", next, strings.Join(row.Options, ", ")))
		}
	}

	row.Days[dayKey] = next
	if state.pending == nil {
		state.pending = make(map[cellKey]string)
	}
	state.pending[cellKey{row: edit.Row, col: edit.Col}] = next
	state.status.State = models.SavePending
	state.status.Pending = len(state.pending)
	state.grid.Status = state.status

	if state.timer != nil {
		state.timer.Stop()
	}
	state.timer = time.AfterFunc(s.debounce, func() { s.dispatch(key, state) })

	return &models.CellEditResult{Row: edit.Row, Col: edit.Col, Value: next, Status: state.status}, nil
}

// Status reports the save status of a grid; unknown grids are idle.
func (s *CICOGridService) Status(sessionID string, month int) models.SaveStatus {
	state := s.state(gridKey{session: sessionID, month: month}, false)
	if state == nil {
		return models.SaveStatus{State: models.SaveIdle}
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.snapshot()
}

// Flush writes the grid's pending batch immediately instead of waiting for
// the debounce window.
func (s *CICOGridService) Flush(ctx context.Context, sessionID string, month int) (models.SaveStatus, error) {
	key := gridKey{session: sessionID, month: month}
	state := s.state(key, false)
	if state == nil {
		return models.SaveStatus{State: models.SaveIdle}, nil
	}
	var err error
	if batch := state.drain(key); batch != nil {
		err = s.send(ctx, batch)
	}
	return s.Status(sessionID, month), err
}

// FlushAll writes every pending batch synchronously.
func (s *CICOGridService) FlushAll(ctx context.Context) error {
	s.mu.Lock()
	states := make(map[gridKey]*gridState, len(s.grids))
	for k, v := range s.grids {
		states[k] = v
	}
	s.mu.Unlock()

	var errs []error
	for key, state := range states {
		if batch := state.drain(key); batch != nil {
			if err := s.send(ctx, batch); err != nil {
				errs = append(errs, fmt.Errorf("session %s month %d: %w", key.session, key.month, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Release flushes and forgets every grid of a session.
func (s *CICOGridService) Release(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	owned := make(map[gridKey]*gridState)
	for k, v := range s.grids {
		if k.session == sessionID {
			owned[k] = v
			delete(s.grids, k)
		}
	}
	s.mu.Unlock()

	var errs []error
	for key, state := range owned {
		if batch := state.drain(key); batch != nil {
			if err := s.send(ctx, batch); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Generate creates the month's sheet upstream.
func (s *CICOGridService) Generate(ctx context.Context, req models.CICOGenerateRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "month must be between 3 and 12")
	}
	return s.upstream.GenerateCICOMonthly(ctx, req.Month)
}

// UpdateSettings changes a student's sheet settings.
func (s *CICOGridService) UpdateSettings(ctx context.Context, req models.CICOSettingsRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}
	return s.upstream.UpdateCICOSettings(ctx, req)
}

// ToggleTier2 sets whether a student's row in a monthly sheet counts as Tier 2.
func (s *CICOGridService) ToggleTier2(ctx context.Context, req models.Tier2ToggleRequest) error {
	req.StudentCode = strings.TrimSpace(req.StudentCode)
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tier 2 toggle")
	}
	return s.upstream.ToggleTier2(ctx, req)
}

// Daily lists the batch input page for date, defaulting to today.
func (s *CICOGridService) Daily(ctx context.Context, date string) (string, []models.CICODailyEntry, error) {
	if date == "" {
		date = s.now().Format(models.DateLayout)
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be YYYY-MM-DD")
	}
	entries, err := s.upstream.CICODaily(ctx, date)
	if err != nil {
		return "", nil, err
	}
	if entries == nil {
		entries = []models.CICODailyEntry{}
	}
	return date, entries, nil
}

// SaveDaily submits every value of the batch input page in one request.
func (s *CICOGridService) SaveDaily(ctx context.Context, batch models.CICODailyBatch) error {
	if err := s.validator.Struct(batch); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid daily batch")
	}
	return s.upstream.SaveCICODaily(ctx, batch)
}

// Report fetches the month's decision report.
func (s *CICOGridService) Report(ctx context.Context, month int) (models.CICOReport, error) {
	if err := validateCICOMonth(month); err != nil {
		return nil, err
	}
	return s.upstream.CICOReport(ctx, month)
}

// Monthly fetches the raw sheet without touching editor state.
func (s *CICOGridService) Monthly(ctx context.Context, month int) (models.CICOMonthly, error) {
	if err := validateCICOMonth(month); err != nil {
		return models.CICOMonthly{}, err
	}
	return s.upstream.CICOMonthly(ctx, month)
}

func (s *CICOGridService) state(key gridKey, create bool) *gridState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.grids[key]
	if !ok && create {
		state = &gridState{pending: make(map[cellKey]string), status: models.SaveStatus{State: models.SaveIdle}}
		s.grids[key] = state
	}
	return state
}

func (s *CICOGridService) dispatch(key gridKey, state *gridState) {
	batch := state.drain(key)
	if batch == nil {
		return
	}
	err := s.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: cicoFlushJob, Payload: batch})
	if err != nil {
		s.logger.Warn("failed to enqueue CICO flush",
			zap.String("session_id", key.session), zap.Int("month", key.month), zap.Error(err))
		if s.metrics != nil {
			s.metrics.RecordCICOFlush(false, len(batch.updates))
		}
		state.finish(err, s.now())
	}
}

func (s *CICOGridService) handleFlush(ctx context.Context, job jobs.Job) error {
	batch, ok := job.Payload.(*flushBatch)
	if !ok {
		return fmt.Errorf("unexpected payload %T", job.Payload)
	}
	return s.send(ctx, batch)
}

func (s *CICOGridService) send(ctx context.Context, batch *flushBatch) error {
	err := s.upstream.UpdateCICOCells(ctx, models.MonthlyUpdateRequest{
		Month:   batch.key.month,
		Updates: batch.updates,
	})
	if s.metrics != nil {
		s.metrics.RecordCICOFlush(err == nil, len(batch.updates))
	}
	if err != nil {
		s.logger.Warn("CICO batch flush failed",
			zap.String("session_id", batch.key.session),
			zap.Int("month", batch.key.month),
			zap.Int("cells", len(batch.updates)),
			zap.Error(err))
	}
	batch.state.finish(err, s.now())
	return err
}

// drain takes the pending cells as one batch and cancels the debounce timer.
func (g *gridState) drain(key gridKey) *flushBatch {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	if len(g.pending) == 0 {
		return nil
	}
	updates := make([]models.CellUpdate, 0, len(g.pending))
	for k, v := range g.pending {
		updates = append(updates, models.CellUpdate{Row: k.row, Col: k.col, Value: v})
	}
	sort.Slice(updates, func(i, j int) bool {
		if updates[i].Row != updates[j].Row {
			return updates[i].Row < updates[j].Row
		}
		return updates[i].Col < updates[j].Col
	})
	g.pending = make(map[cellKey]string)
	g.inflight++
	g.status.State = models.SaveSaving
	g.status.Pending = 0
	g.syncGrid()
	return &flushBatch{key: key, state: g, updates: updates}
}

func (g *gridState) finish(err error, at time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inflight > 0 {
		g.inflight--
	}
	if err != nil {
		g.status.State = models.SaveFailed
		g.status.LastError = appErrors.FromError(err).Message
	} else {
		saved := at.UTC()
		g.status.State = models.SaveSaved
		g.status.LastError = ""
		g.status.SavedAt = &saved
	}
	switch {
	case len(g.pending) > 0:
		g.status.State = models.SavePending
	case g.inflight > 0:
		g.status.State = models.SaveSaving
	}
	g.status.Pending = len(g.pending)
	g.syncGrid()
}

func (g *gridState) snapshot() models.SaveStatus {
	status := g.status
	if status.State == "" {
		status.State = models.SaveIdle
	}
	return status
}

func (g *gridState) syncGrid() {
	if g.grid != nil {
		g.grid.Status = g.status
	}
}

// NextCICOValue cycles value through options, then empty, then back to the first option.
func NextCICOValue(options []string, value string) string {
	if len(options) == 0 {
		return value
	}
	if value == "" {
		return options[0]
	}
	for i, opt := range options {
		if opt == value {
			if i == len(options)-1 {
				return ""
			}
			return options[i+1]
		}
	}
	return options[0]
}

// ScaleOptions derives the click-to-cycle options of a scale. Scales with
// more than three values, such as 0-5 or percentages, are edited inline.
func ScaleOptions(scale string) ([]string, bool) {
	normalised := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(scale), " ", ""))
	var options []string
	switch {
	case normalised == "O/X" || normalised == "OX" || normalised == "O,X":
		options = []string{"O", "X"}
	case normalised == "0-1":
		options = []string{"0", "1"}
	case normalised == "0-2" || normalised == "0~2":
		options = []string{"0", "1", "2"}
	}
	if len(options) == 0 || len(options) > cicoCycleOptionLimit {
		return nil, true
	}
	return options, false
}

func validateCICOMonth(month int) error {
	if month < models.CICOFirstMonth || month > models.CICOLastMonth {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("month must be between %d and %d", models.CICOFirstMonth, models.CICOLastMonth))
	}
	return nil
}

type gridView struct {
	*models.CICOGrid
}

func (v gridView) row(number int) *models.CICOGridRow {
	for i := range v.Rows {
		if v.Rows[i].Row == number {
			return &v.Rows[i]
		}
	}
	return nil
}

func (v gridView) dayForCol(col int) (int, bool) {
	for _, dc := range v.DayColumns {
		if dc.Col == col {
			return dc.Day, true
		}
	}
	return 0, false
}

func buildCICOGrid(monthly models.CICOMonthly, days models.BusinessDays, year, month int) gridView {
	business := make(map[int]struct{}, len(days.Days))
	for _, d := range days.Days {
		business[d] = struct{}{}
	}

	columns := make([]models.CICODayColumn, 0, len(monthly.DayColumns))
	for _, dc := range monthly.DayColumns {
		if _, ok := business[dc.Day]; !ok {
			continue
		}
		if dc.Date == "" {
			dc.Date = time.Date(year, time.Month(month), dc.Day, 0, 0, 0, 0, time.UTC).Format(models.DateLayout)
		}
		columns = append(columns, dc)
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].Day < columns[j].Day })

	rows := make([]models.CICOGridRow, 0, len(monthly.Students))
	for _, student := range monthly.Students {
		if student.Days == nil {
			student.Days = make(map[string]string)
		}
		options, inline := ScaleOptions(student.Scale)
		rows = append(rows, models.CICOGridRow{CICORow: student, Options: options, Inline: inline})
	}

	holidays := days.Holidays
	if holidays == nil {
		holidays = []models.Holiday{}
	}

	return gridView{&models.CICOGrid{
		Month:      month,
		Year:       year,
		DayColumns: columns,
		Rows:       rows,
		Holidays:   holidays,
		Status:     models.SaveStatus{State: models.SaveIdle},
	}}
}

func cloneGrid(src *models.CICOGrid) *models.CICOGrid {
	out := *src
	out.DayColumns = append([]models.CICODayColumn(nil), src.DayColumns...)
	out.Holidays = append([]models.Holiday(nil), src.Holidays...)
	out.Rows = make([]models.CICOGridRow, len(src.Rows))
	for i, row := range src.Rows {
		days := make(map[string]string, len(row.Days))
		for k, v := range row.Days {
			days[k] = v
		}
		row.Days = days
		row.Options = append([]string(nil), row.Options...)
		out.Rows[i] = row
	}
	return &out
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
