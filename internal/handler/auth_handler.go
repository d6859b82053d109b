package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, session *models.Session, meta models.LoginRequest) error
}

type gridReleaser interface {
	Release(ctx context.Context, sessionID string) error
}

// CookieConfig describes the session cookie handed to browsers.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service authService
	grids   gridReleaser
	cookie  CookieConfig
	logger  *zap.Logger
}

// NewAuthHandler creates a new handler. grids may be nil.
func NewAuthHandler(svc authService, grids gridReleaser, cookie CookieConfig, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cookie.Name == "" {
		cookie.Name = "pbis_session"
	}
	return &AuthHandler{service: svc, grids: grids, cookie: cookie, logger: logger}
}

// Login godoc
// @Summary Authenticate user
// @Description Verifies credentials with the PBIS API and opens a session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req, "invalid login payload") {
		return
	}
	meta := requestMeta(c)
	req.IP, req.UserAgent = meta.IP, meta.UserAgent

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, res.Token, 0, "/", "", h.cookie.Secure, true)
	response.JSON(c, http.StatusOK, res, nil)
}

// Logout godoc
// @Summary Logout current session
// @Description Flushes pending CICO edits, destroys the session and clears the cookie
// @Tags Authentication
// @Produce json
// @Success 204 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	if h.grids != nil {
		if err := h.grids.Release(c.Request.Context(), session.ID); err != nil {
			h.logger.Warn("pending cico edits failed to save at logout",
				zap.String("session_id", session.ID), zap.Error(err))
		}
	}
	if err := h.service.Logout(c.Request.Context(), session, requestMeta(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.NoContent(c)
}

// Me godoc
// @Summary Get current user
// @Description Returns the signed-in user and their permissions
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	response.OK(c, gin.H{
		"user":        session.User,
		"session_id":  session.ID,
		"permissions": dto.PermissionsFor(session.User),
	})
}
