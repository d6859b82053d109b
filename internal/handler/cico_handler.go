package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

type cicoService interface {
	Load(ctx context.Context, sessionID string, month int) (*models.CICOGrid, error)
	Edit(ctx context.Context, sessionID string, month int, edit models.CellEdit) (*models.CellEditResult, error)
	Status(sessionID string, month int) models.SaveStatus
	Flush(ctx context.Context, sessionID string, month int) (models.SaveStatus, error)
	Generate(ctx context.Context, req models.CICOGenerateRequest) error
	UpdateSettings(ctx context.Context, req models.CICOSettingsRequest) error
	ToggleTier2(ctx context.Context, req models.Tier2ToggleRequest) error
	Daily(ctx context.Context, date string) (string, []models.CICODailyEntry, error)
	SaveDaily(ctx context.Context, batch models.CICODailyBatch) error
}

type cellEditRequest struct {
	Month int `json:"month"`
	models.CellEdit
}

// CICOHandler serves the monthly grid editor and the daily batch input.
type CICOHandler struct {
	service cicoService
}

// NewCICOHandler constructs a CICOHandler.
func NewCICOHandler(service cicoService) *CICOHandler {
	return &CICOHandler{service: service}
}

// Grid godoc
// @Summary Load the monthly CICO grid
// @Tags CICO
// @Produce json
// @Param month query int true "3-12"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /cico/grid [get]
func (h *CICOHandler) Grid(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	month, ok := requiredMonth(c)
	if !ok {
		return
	}
	grid, err := h.service.Load(c.Request.Context(), session.ID, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.CICOGridResponse{Grid: grid, Permissions: dto.PermissionsFor(session.User)})
}

// EditCell godoc
// @Summary Edit one grid cell
// @Description Applies the edit locally and schedules a debounced batch save
// @Tags CICO
// @Accept json
// @Produce json
// @Param payload body cellEditRequest true "Edit"
// @Success 200 {object} response.Envelope
// @Router /cico/grid/cells [post]
func (h *CICOHandler) EditCell(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req cellEditRequest
	if !bindJSON(c, &req, "invalid cell edit") {
		return
	}
	result, err := h.service.Edit(c.Request.Context(), session.ID, req.Month, req.CellEdit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Status godoc
// @Summary Grid save status
// @Tags CICO
// @Produce json
// @Param month query int true "3-12"
// @Success 200 {object} response.Envelope
// @Router /cico/grid/status [get]
func (h *CICOHandler) Status(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	month, ok := requiredMonth(c)
	if !ok {
		return
	}
	response.OK(c, h.service.Status(session.ID, month))
}

// Flush godoc
// @Summary Save pending grid edits now
// @Tags CICO
// @Produce json
// @Param month query int true "3-12"
// @Success 200 {object} response.Envelope
// @Router /cico/grid/flush [post]
func (h *CICOHandler) Flush(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	month, ok := requiredMonth(c)
	if !ok {
		return
	}
	status, err := h.service.Flush(c.Request.Context(), session.ID, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, status)
}

// Generate godoc
// @Summary Create a month's sheet
// @Tags CICO
// @Accept json
// @Param payload body models.CICOGenerateRequest true "Month"
// @Success 204 {object} response.Envelope
// @Router /cico/generate [post]
func (h *CICOHandler) Generate(c *gin.Context) {
	var req models.CICOGenerateRequest
	if !bindJSON(c, &req, "invalid generate request") {
		return
	}
	if err := h.service.Generate(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Settings godoc
// @Summary Update a student's sheet settings
// @Tags CICO
// @Accept json
// @Param payload body models.CICOSettingsRequest true "Settings"
// @Success 204 {object} response.Envelope
// @Router /cico/settings [post]
func (h *CICOHandler) Settings(c *gin.Context) {
	var req models.CICOSettingsRequest
	if !bindJSON(c, &req, "invalid settings request") {
		return
	}
	if err := h.service.UpdateSettings(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ToggleTier2 godoc
// @Summary Mark a student's monthly row as Tier 2
// @Tags CICO
// @Accept json
// @Param payload body models.Tier2ToggleRequest true "Toggle"
// @Success 204 {object} response.Envelope
// @Router /cico/tier2-toggle [post]
func (h *CICOHandler) ToggleTier2(c *gin.Context) {
	var req models.Tier2ToggleRequest
	if !bindJSON(c, &req, "invalid tier 2 toggle") {
		return
	}
	if err := h.service.ToggleTier2(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Daily godoc
// @Summary Daily batch input values
// @Tags CICO
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} response.Envelope
// @Router /cico/daily [get]
func (h *CICOHandler) Daily(c *gin.Context) {
	date, entries, err := h.service.Daily(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.CICODailyResponse{Date: date, Entries: entries})
}

// SaveDaily godoc
// @Summary Submit the daily batch
// @Tags CICO
// @Accept json
// @Param payload body models.CICODailyBatch true "Batch"
// @Success 204 {object} response.Envelope
// @Router /cico/daily [post]
func (h *CICOHandler) SaveDaily(c *gin.Context) {
	var batch models.CICODailyBatch
	if !bindJSON(c, &batch, "invalid daily batch") {
		return
	}
	if err := h.service.SaveDaily(c.Request.Context(), batch); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func requiredMonth(c *gin.Context) (int, bool) {
	month, ok := monthQuery(c)
	if !ok {
		return 0, false
	}
	if month == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "month is required"))
		return 0, false
	}
	return month, true
}
