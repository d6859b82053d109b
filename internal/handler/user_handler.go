package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

type userAdminService interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, req models.CreateUserRequest) error
	Delete(ctx context.Context, actor models.User, userID string) error
	UpdateRole(ctx context.Context, actor models.User, req models.UpdateRoleRequest) error
	UpdatePassword(ctx context.Context, req models.UpdatePasswordRequest) error
	Holidays(ctx context.Context) ([]models.Holiday, error)
	AddHoliday(ctx context.Context, h models.Holiday) error
	DeleteHoliday(ctx context.Context, date string) error
}

// UserHandler serves the admin pages for accounts and holidays.
type UserHandler struct {
	service userAdminService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(service userAdminService) *UserHandler {
	return &UserHandler{service: service}
}

// List godoc
// @Summary List users
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, users)
}

// Create godoc
// @Summary Create user
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body models.CreateUserRequest true "User"
// @Success 201 {object} response.Envelope
// @Router /admin/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if !bindJSON(c, &req, "invalid user payload") {
		return
	}
	if err := h.service.Create(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": req.ID})
}

// Delete godoc
// @Summary Delete user
// @Tags Admin
// @Param id path string true "User ID"
// @Success 204 {object} response.Envelope
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), session.User, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags Admin
// @Accept json
// @Param id path string true "User ID"
// @Param payload body models.UpdateRoleRequest true "Role"
// @Success 204 {object} response.Envelope
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req models.UpdateRoleRequest
	if !bindJSON(c, &req, "invalid role payload") {
		return
	}
	req.UserID = c.Param("id")
	if err := h.service.UpdateRole(c.Request.Context(), session.User, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdatePassword godoc
// @Summary Reset a user's password
// @Tags Admin
// @Accept json
// @Param id path string true "User ID"
// @Param payload body models.UpdatePasswordRequest true "Password"
// @Success 204 {object} response.Envelope
// @Router /admin/users/{id}/password [put]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req models.UpdatePasswordRequest
	if !bindJSON(c, &req, "invalid password payload") {
		return
	}
	req.UserID = c.Param("id")
	if err := h.service.UpdatePassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Holidays godoc
// @Summary List holidays
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/holidays [get]
func (h *UserHandler) Holidays(c *gin.Context) {
	holidays, err := h.service.Holidays(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, holidays)
}

// AddHoliday godoc
// @Summary Add holiday
// @Tags Admin
// @Accept json
// @Param payload body models.Holiday true "Holiday"
// @Success 201 {object} response.Envelope
// @Router /admin/holidays [post]
func (h *UserHandler) AddHoliday(c *gin.Context) {
	var req models.Holiday
	if !bindJSON(c, &req, "invalid holiday payload") {
		return
	}
	if err := h.service.AddHoliday(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, req)
}

// DeleteHoliday godoc
// @Summary Delete holiday
// @Tags Admin
// @Param date path string true "YYYY-MM-DD"
// @Success 204 {object} response.Envelope
// @Router /admin/holidays/{date} [delete]
func (h *UserHandler) DeleteHoliday(c *gin.Context) {
	if err := h.service.DeleteHoliday(c.Request.Context(), c.Param("date")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
