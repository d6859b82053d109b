package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

type boardService interface {
	List(ctx context.Context) ([]models.BoardPost, error)
	Create(ctx context.Context, author models.User, req models.BoardPostRequest) error
	Delete(ctx context.Context, id string) error
}

type meetingService interface {
	List(ctx context.Context, filter models.MeetingNoteFilter) (*dto.MeetingNotesResponse, error)
	Append(ctx context.Context, author models.User, note models.MeetingNote) (models.MeetingNote, error)
	Minutes(ctx context.Context, req models.MeetingMinutesRequest) (*models.Narrative, error)
	Analysis(ctx context.Context, sessionID string, query models.DateRange) (*dto.MeetingAnalysisResponse, error)
}

// BoardHandler serves the announcement board and the meeting log.
type BoardHandler struct {
	board    boardService
	meetings meetingService
}

// NewBoardHandler constructs a BoardHandler.
func NewBoardHandler(board boardService, meetings meetingService) *BoardHandler {
	return &BoardHandler{board: board, meetings: meetings}
}

// Posts godoc
// @Summary List board posts
// @Tags Board
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /board [get]
func (h *BoardHandler) Posts(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	posts, err := h.board.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.BoardResponse{Posts: posts, Permissions: dto.PermissionsFor(session.User)})
}

// CreatePost godoc
// @Summary Publish a board post
// @Tags Board
// @Accept json
// @Param payload body models.BoardPostRequest true "Post"
// @Success 201 {object} response.Envelope
// @Router /board [post]
func (h *BoardHandler) CreatePost(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req models.BoardPostRequest
	if !bindJSON(c, &req, "invalid post payload") {
		return
	}
	if err := h.board.Create(c.Request.Context(), session.User, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"title": req.Title})
}

// DeletePost godoc
// @Summary Delete a board post
// @Tags Board
// @Param id path string true "Post ID"
// @Success 204 {object} response.Envelope
// @Router /board/{id} [delete]
func (h *BoardHandler) DeletePost(c *gin.Context) {
	if err := h.board.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Notes godoc
// @Summary List meeting notes
// @Tags Meetings
// @Produce json
// @Param type query string false "tier1, tier2, tier3 or consultation"
// @Param student query string false "Student code"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /meeting-notes [get]
func (h *BoardHandler) Notes(c *gin.Context) {
	r := dateRangeQuery(c)
	filter := models.MeetingNoteFilter{
		MeetingType: c.Query("type"),
		StudentCode: c.Query("student"),
		StartDate:   r.Start,
		EndDate:     r.End,
	}
	notes, err := h.meetings.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, notes)
}

// AppendNote godoc
// @Summary Record a meeting note
// @Tags Meetings
// @Accept json
// @Param payload body models.MeetingNote true "Note"
// @Success 201 {object} response.Envelope
// @Router /meeting-notes [post]
func (h *BoardHandler) AppendNote(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var note models.MeetingNote
	if !bindJSON(c, &note, "invalid meeting note") {
		return
	}
	saved, err := h.meetings.Append(c.Request.Context(), session.User, note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, saved)
}

// Minutes godoc
// @Summary AI meeting minutes
// @Tags Meetings
// @Accept json
// @Param payload body models.MeetingMinutesRequest true "Period"
// @Success 200 {object} response.Envelope
// @Router /meeting-notes/ai-minutes [post]
func (h *BoardHandler) Minutes(c *gin.Context) {
	var req models.MeetingMinutesRequest
	if !bindJSON(c, &req, "invalid minutes request") {
		return
	}
	narrative, err := h.meetings.Minutes(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, narrative)
}

// Analysis godoc
// @Summary Tier meeting candidates
// @Tags Meetings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /meeting-notes/analysis [get]
func (h *BoardHandler) Analysis(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	analysis, err := h.meetings.Analysis(c.Request.Context(), session.ID, dateRangeQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, analysis)
}
