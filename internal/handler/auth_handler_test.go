package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type fakeAuthService struct {
	loginReq   models.LoginRequest
	loginErr   error
	loggedOut  *models.Session
	logoutMeta models.LoginRequest
}

func (f *fakeAuthService) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	f.loginReq = req
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.LoginResponse{Token: "signed-token", SessionID: "sess-1", User: models.User{ID: req.UserID, Role: models.RoleTeacher}}, nil
}

func (f *fakeAuthService) Logout(_ context.Context, session *models.Session, meta models.LoginRequest) error {
	f.loggedOut = session
	f.logoutMeta = meta
	return nil
}

type fakeGridReleaser struct {
	released []string
	err      error
}

func (f *fakeGridReleaser) Release(_ context.Context, sessionID string) error {
	f.released = append(f.released, sessionID)
	return f.err
}

func TestAuthHandlerLoginSetsSessionCookie(t *testing.T) {
	svc := &fakeAuthService{}
	h := NewAuthHandler(svc, nil, CookieConfig{Name: "pbis_session", Secure: true}, nil)

	c, rec := newContext(http.MethodPost, "/api/v1/auth/login", models.LoginRequest{UserID: "t01", Password: "pw"}, nil)
	c.Request.Header.Set("User-Agent", "dashboard-test")
	h.Login(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t01", svc.loginReq.UserID)
	assert.Equal(t, "dashboard-test", svc.loginReq.UserAgent)

	cookie := rec.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "pbis_session=signed-token")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Secure")
	assert.Contains(t, cookie, "SameSite=Lax")

	var res models.LoginResponse
	decodeEnvelope(t, rec, &res)
	assert.Equal(t, "sess-1", res.SessionID)
}

func TestAuthHandlerLoginRejectsBadCredentials(t *testing.T) {
	svc := &fakeAuthService{loginErr: appErrors.Clone(appErrors.ErrUnauthorized, "invalid user id or password")}
	h := NewAuthHandler(svc, nil, CookieConfig{}, nil)

	c, rec := newContext(http.MethodPost, "/api/v1/auth/login", models.LoginRequest{UserID: "t01", Password: "nope"}, nil)
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

func TestAuthHandlerLoginRejectsMalformedBody(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, nil, CookieConfig{}, nil)

	c, rec := newContext(http.MethodPost, "/api/v1/auth/login", "{not json", nil)
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(t, rec))
}

func TestAuthHandlerLogoutReleasesGridsAndClearsCookie(t *testing.T) {
	svc := &fakeAuthService{}
	grids := &fakeGridReleaser{err: errors.New("upstream down")}
	h := NewAuthHandler(svc, grids, CookieConfig{Name: "pbis_session"}, nil)

	c, rec := newContext(http.MethodPost, "/api/v1/auth/logout", nil, teacherSession)
	h.Logout(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, []string{teacherSession.ID}, grids.released)
	require.NotNil(t, svc.loggedOut)
	assert.Equal(t, teacherSession.ID, svc.loggedOut.ID)

	cookie := rec.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(cookie, "pbis_session=;"), cookie)
	assert.Contains(t, cookie, "Max-Age=0")
}

func TestAuthHandlerLogoutRequiresSession(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, nil, CookieConfig{}, nil)

	c, rec := newContext(http.MethodPost, "/api/v1/auth/logout", nil, nil)
	h.Logout(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerMeReportsPermissions(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, nil, CookieConfig{}, nil)

	c, rec := newContext(http.MethodGet, "/api/v1/auth/me", nil, adminSession)
	h.Me(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		SessionID   string `json:"session_id"`
		Permissions struct {
			IsAdmin bool `json:"is_admin"`
		} `json:"permissions"`
	}
	decodeEnvelope(t, rec, &payload)
	assert.Equal(t, adminSession.ID, payload.SessionID)
	assert.True(t, payload.Permissions.IsAdmin)
}
