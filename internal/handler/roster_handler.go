package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

type rosterService interface {
	Codes(ctx context.Context) ([]models.RosterCode, error)
	SaveCodes(ctx context.Context, req models.RosterCodesRequest) (int, error)
	Structure(ctx context.Context) (models.RosterStructure, error)
}

// RosterHandler serves the class roster and code editor.
type RosterHandler struct {
	service rosterService
}

// NewRosterHandler constructs a RosterHandler.
func NewRosterHandler(service rosterService) *RosterHandler {
	return &RosterHandler{service: service}
}

// Structure godoc
// @Summary Class roster
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster [get]
func (h *RosterHandler) Structure(c *gin.Context) {
	roster, err := h.service.Structure(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, roster)
}

// Codes godoc
// @Summary Roster codes with presets
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster/codes [get]
func (h *RosterHandler) Codes(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	codes, err := h.service.Codes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	named := 0
	for _, code := range codes {
		if code.Name != "" {
			named++
		}
	}
	response.OK(c, dto.RosterCodesResponse{Codes: codes, Named: named, Permissions: dto.PermissionsFor(session.User)})
}

// SaveCodes godoc
// @Summary Replace the code mapping
// @Description Uploads every named row and overwrites the stored mapping
// @Tags Roster
// @Accept json
// @Param payload body models.RosterCodesRequest true "Codes"
// @Success 200 {object} response.Envelope
// @Router /roster/codes [post]
func (h *RosterHandler) SaveCodes(c *gin.Context) {
	var req models.RosterCodesRequest
	if !bindJSON(c, &req, "invalid roster codes") {
		return
	}
	saved, err := h.service.SaveCodes(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"saved": saved})
}
