package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

type auditLister interface {
	List(ctx context.Context, filter models.AuditFilter) ([]dto.AuditLogView, error)
}

// AuditHandler lists the admin audit trail.
type AuditHandler struct {
	service auditLister
}

// NewAuditHandler constructs an AuditHandler.
func NewAuditHandler(service auditLister) *AuditHandler {
	return &AuditHandler{service: service}
}

// List godoc
// @Summary Recent admin actions
// @Tags Admin
// @Produce json
// @Param user_id query string false "Filter by actor"
// @Param action query string false "Filter by action"
// @Param limit query int false "At most 500"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := h.service.List(c.Request.Context(), models.AuditFilter{
		UserID: c.Query("user_id"),
		Action: c.Query("action"),
		Limit:  limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, logs)
}
