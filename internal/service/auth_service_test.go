package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/internal/repository"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type fakeAuthUpstream struct {
	user models.User
	err  error
	hits int
}

func (f *fakeAuthUpstream) Login(_ context.Context, userID, password string) (models.User, error) {
	f.hits++
	if f.err != nil {
		return models.User{}, f.err
	}
	return f.user, nil
}

type memoryAuditWriter struct {
	logs []*models.AuditLog
}

func (m *memoryAuditWriter) Create(_ context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func newAuthService(upstream authUpstream) (*AuthService, *repository.MemorySessionRepository, *memoryAuditWriter) {
	store := repository.NewMemorySessionRepository()
	writer := &memoryAuditWriter{}
	svc := NewAuthService(upstream, store, nil, NewAuditService(writer, nil), nil, "test-secret")
	return svc, store, writer
}

func TestAuthServiceLoginCreatesSession(t *testing.T) {
	upstream := &fakeAuthUpstream{user: models.User{ID: "t01", Role: models.RoleTeacher}}
	svc, store, writer := newAuthService(upstream)

	resp, err := svc.Login(context.Background(), models.LoginRequest{UserID: " t01 ", Password: "pw", IP: "10.0.0.1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "t01", resp.User.ID)

	stored, err := store.GetSession(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, stored.User.Role)

	session, err := svc.Current(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.SessionID, session.ID)

	require.Len(t, writer.logs, 1)
	assert.Equal(t, models.AuditActionLogin, writer.logs[0].Action)
}

func TestAuthServiceTokenHasNoExpiry(t *testing.T) {
	svc, _, _ := newAuthService(&fakeAuthUpstream{user: models.User{ID: "t01"}})
	resp, err := svc.Login(context.Background(), models.LoginRequest{UserID: "t01", Password: "pw"})
	require.NoError(t, err)

	claims := &models.SessionClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(resp.Token, claims)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
	assert.Equal(t, resp.SessionID, claims.SessionID)
}

func TestAuthServiceLoginValidation(t *testing.T) {
	upstream := &fakeAuthUpstream{}
	svc, _, _ := newAuthService(upstream)

	_, err := svc.Login(context.Background(), models.LoginRequest{UserID: "t01"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, upstream.hits)
}

func TestAuthServiceLoginPropagatesUpstreamRejection(t *testing.T) {
	svc, _, _ := newAuthService(&fakeAuthUpstream{err: appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid password")})

	_, err := svc.Login(context.Background(), models.LoginRequest{UserID: "t01", Password: "bad"})
	require.Error(t, err)
	assert.Equal(t, "Invalid password", appErrors.FromError(err).Message)
}

func TestAuthServiceCurrentRejectsForeignTokens(t *testing.T) {
	svc, _, _ := newAuthService(&fakeAuthUpstream{})

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, models.SessionClaims{
		SessionID:        "s1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: sessionIssuer, IssuedAt: jwt.NewNumericDate(time.Now())},
	})
	token, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.Current(context.Background(), token)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	_, err = svc.Current(context.Background(), "")
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLogoutDestroysSession(t *testing.T) {
	svc, store, writer := newAuthService(&fakeAuthUpstream{user: models.User{ID: "t01"}})
	resp, err := svc.Login(context.Background(), models.LoginRequest{UserID: "t01", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, store.SaveDateRange(context.Background(), resp.SessionID, models.DateRange{Start: "2025-03-01", End: "2025-03-10"}))

	session, err := svc.Current(context.Background(), resp.Token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), session, models.LoginRequest{}))

	_, err = svc.Current(context.Background(), resp.Token)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
	_, err = store.GetDateRange(context.Background(), resp.SessionID)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
	assert.Len(t, writer.logs, 2)
}
