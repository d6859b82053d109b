package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/internal/service"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

type exportService interface {
	Generate(ctx context.Context, session *models.Session, req models.ExportRequest) (*models.ExportResult, error)
	Open(token string) (*service.ExportDownload, error)
}

// ExportHandler generates export files and streams them back.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Create godoc
// @Summary Generate an export
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body models.ExportRequest true "Export"
// @Success 201 {object} response.Envelope
// @Router /exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req models.ExportRequest
	if !bindJSON(c, &req, "invalid export request") {
		return
	}
	result, err := h.service.Generate(c.Request.Context(), session, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Download godoc
// @Summary Download an export
// @Description The signed token is the credential; no session is required
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	download, err := h.service.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close()

	info, err := download.File.Stat()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.FileName))
	c.Header("Cache-Control", "private, no-store")
	c.DataFromReader(http.StatusOK, info.Size(), download.ContentType, download.File, nil)
}
