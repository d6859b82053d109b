package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

type tierService interface {
	Board(ctx context.Context) (*dto.TierBoardResponse, error)
	UpdateTier(ctx context.Context, req models.TierUpdateRequest) error
	UpdateEnrollment(ctx context.Context, req models.EnrollmentUpdateRequest) error
	UpdateBeAble(ctx context.Context, req models.BeAbleUpdateRequest) error
	ChangeTier(ctx context.Context, req models.StudentTierChange) error
	Tier2Records(ctx context.Context, code string) (*dto.Tier2RecordsResponse, error)
	AddTier2Record(ctx context.Context, in models.CICORecordInput, enteredBy string) (models.CICORecordInput, error)
}

type studentService interface {
	Detail(ctx context.Context, name string) (*dto.StudentDetailResponse, error)
	Analysis(ctx context.Context, name string) (models.StudentAnalysis, error)
}

type bipService interface {
	Get(ctx context.Context, code string) (models.BIP, error)
	Save(ctx context.Context, code string, plan models.BIP, author string) (models.BIP, error)
	Suggest(ctx context.Context, code string, req models.BIPSuggestRequest) (*models.BIPSuggestion, error)
	SuggestHypothesis(ctx context.Context, code string, req models.BIPStageRequest) (*models.BIPSuggestion, error)
	SuggestStrategies(ctx context.Context, code string, req models.BIPStageRequest) (*models.BIPSuggestion, error)
}

// StudentHandler serves tier status, student detail and behavior plans.
type StudentHandler struct {
	tiers    tierService
	students studentService
	bips     bipService
}

// NewStudentHandler constructs a StudentHandler.
func NewStudentHandler(tiers tierService, students studentService, bips bipService) *StudentHandler {
	return &StudentHandler{tiers: tiers, students: students, bips: bips}
}

// TierStatus godoc
// @Summary Tier status board
// @Tags Tiers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tier/status [get]
func (h *StudentHandler) TierStatus(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	board, err := h.tiers.Board(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	board.Permissions = dto.PermissionsFor(session.User)
	response.OK(c, board)
}

// UpdateTier godoc
// @Summary Toggle tier columns
// @Tags Tiers
// @Accept json
// @Param payload body models.TierUpdateRequest true "Tier flags"
// @Success 204 {object} response.Envelope
// @Router /tier/status [put]
func (h *StudentHandler) UpdateTier(c *gin.Context) {
	var req models.TierUpdateRequest
	if !bindJSON(c, &req, "invalid tier update") {
		return
	}
	if err := h.tiers.UpdateTier(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateEnrollment godoc
// @Summary Set enrollment
// @Tags Tiers
// @Accept json
// @Param payload body models.EnrollmentUpdateRequest true "Enrollment"
// @Success 204 {object} response.Envelope
// @Router /tier/enrollment [put]
func (h *StudentHandler) UpdateEnrollment(c *gin.Context) {
	var req models.EnrollmentUpdateRequest
	if !bindJSON(c, &req, "invalid enrollment update") {
		return
	}
	if err := h.tiers.UpdateEnrollment(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateBeAble godoc
// @Summary Set BeAble code
// @Tags Tiers
// @Accept json
// @Param payload body models.BeAbleUpdateRequest true "BeAble code"
// @Success 204 {object} response.Envelope
// @Router /tier/beable [put]
func (h *StudentHandler) UpdateBeAble(c *gin.Context) {
	var req models.BeAbleUpdateRequest
	if !bindJSON(c, &req, "invalid beable update") {
		return
	}
	if err := h.tiers.UpdateBeAble(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ChangeTier godoc
// @Summary Move a student to a tier
// @Tags Tiers
// @Accept json
// @Param payload body models.StudentTierChange true "Tier change"
// @Success 204 {object} response.Envelope
// @Router /students/tier-update [post]
func (h *StudentHandler) ChangeTier(c *gin.Context) {
	var req models.StudentTierChange
	if !bindJSON(c, &req, "invalid tier change") {
		return
	}
	if err := h.tiers.ChangeTier(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Tier2Records godoc
// @Summary Tier 2 daily card page
// @Description Lists Tier 2 students with the selected student's last seven cards
// @Tags Tiers
// @Produce json
// @Param student_code query string false "Defaults to the first Tier 2 student"
// @Success 200 {object} response.Envelope
// @Router /tier/cico [get]
func (h *StudentHandler) Tier2Records(c *gin.Context) {
	page, err := h.tiers.Tier2Records(c.Request.Context(), c.Query("student_code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// AddTier2Record godoc
// @Summary Enter a Tier 2 daily card
// @Tags Tiers
// @Accept json
// @Produce json
// @Param payload body models.CICORecordInput true "Card"
// @Success 201 {object} response.Envelope
// @Router /tier/cico [post]
func (h *StudentHandler) AddTier2Record(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var in models.CICORecordInput
	if !bindJSON(c, &in, "invalid CICO record") {
		return
	}
	saved, err := h.tiers.AddTier2Record(c.Request.Context(), in, displayName(session.User))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, saved)
}

// Detail godoc
// @Summary Student detail
// @Description Unknown students return found=false with a back link instead of 404
// @Tags Students
// @Produce json
// @Param name path string true "Student name"
// @Success 200 {object} response.Envelope
// @Router /students/{name} [get]
func (h *StudentHandler) Detail(c *gin.Context) {
	detail, err := h.students.Detail(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

// Analysis godoc
// @Summary Student behavior analysis
// @Tags Students
// @Produce json
// @Param name path string true "Student name"
// @Success 200 {object} response.Envelope
// @Router /students/{name}/analysis [get]
func (h *StudentHandler) Analysis(c *gin.Context) {
	analysis, err := h.students.Analysis(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, analysis)
}

// GetBIP godoc
// @Summary Behavior intervention plan
// @Tags BIP
// @Produce json
// @Param code path string true "Student code"
// @Success 200 {object} response.Envelope
// @Router /bip/{code} [get]
func (h *StudentHandler) GetBIP(c *gin.Context) {
	plan, err := h.bips.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, plan)
}

// SaveBIP godoc
// @Summary Save a behavior intervention plan
// @Tags BIP
// @Accept json
// @Produce json
// @Param code path string true "Student code"
// @Param payload body models.BIP true "Plan"
// @Success 200 {object} response.Envelope
// @Router /bip/{code} [post]
func (h *StudentHandler) SaveBIP(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var plan models.BIP
	if !bindJSON(c, &plan, "invalid plan") {
		return
	}
	saved, err := h.bips.Save(c.Request.Context(), c.Param("code"), plan, displayName(session.User))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, saved)
}

// SuggestBIP godoc
// @Summary AI suggestion merged into a plan preview
// @Description Nothing is saved; the merged plan is returned for review
// @Tags BIP
// @Accept json
// @Produce json
// @Param code path string true "Student code"
// @Param payload body models.BIPSuggestRequest true "AI request"
// @Success 200 {object} response.Envelope
// @Router /bip/{code}/ai-suggest [post]
func (h *StudentHandler) SuggestBIP(c *gin.Context) {
	var req models.BIPSuggestRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req, "invalid suggestion request") {
			return
		}
	}
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student code is required"))
		return
	}
	suggestion, err := h.bips.Suggest(c.Request.Context(), code, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, suggestion)
}

// SuggestHypothesis godoc
// @Summary AI draft of the target behavior, hypothesis and goals
// @Description Nothing is saved; the merged plan is returned for review
// @Tags BIP
// @Accept json
// @Produce json
// @Param code path string true "Student code"
// @Param payload body models.BIPStageRequest false "Unsaved draft"
// @Success 200 {object} response.Envelope
// @Router /bip/{code}/ai-hypothesis [post]
func (h *StudentHandler) SuggestHypothesis(c *gin.Context) {
	h.stagedSuggestion(c, h.bips.SuggestHypothesis)
}

// SuggestStrategies godoc
// @Summary AI draft of the four strategy sections
// @Description Needs a target behavior or hypothesis; nothing is saved
// @Tags BIP
// @Accept json
// @Produce json
// @Param code path string true "Student code"
// @Param payload body models.BIPStageRequest false "Unsaved draft"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /bip/{code}/ai-strategies [post]
func (h *StudentHandler) SuggestStrategies(c *gin.Context) {
	h.stagedSuggestion(c, h.bips.SuggestStrategies)
}

func (h *StudentHandler) stagedSuggestion(c *gin.Context, suggest func(context.Context, string, models.BIPStageRequest) (*models.BIPSuggestion, error)) {
	var req models.BIPStageRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req, "invalid suggestion request") {
			return
		}
	}
	suggestion, err := suggest(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, suggestion)
}

func displayName(user models.User) string {
	if name := strings.TrimSpace(user.Name); name != "" {
		return name
	}
	return user.ID
}
