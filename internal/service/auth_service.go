package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/internal/repository"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

const sessionIssuer = "pbis-gateway"

type authUpstream interface {
	Login(ctx context.Context, userID, password string) (models.User, error)
}

// AuthService owns the session lifecycle: created at login, destroyed at
// logout, trusted in between with no expiry.
type AuthService struct {
	upstream  authUpstream
	store     repository.SessionStore
	validator *validator.Validate
	audit     *AuditService
	logger    *zap.Logger
	secret    []byte
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(upstream authUpstream, store repository.SessionStore, validate *validator.Validate, audit *AuditService, logger *zap.Logger, secret string) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{
		upstream:  upstream,
		store:     store,
		validator: validate,
		audit:     audit,
		logger:    logger,
		secret:    []byte(secret),
		now:       time.Now,
	}
}

// Login verifies credentials upstream and opens a session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "user id and password are required")
	}

	user, err := s.upstream.Login(ctx, strings.TrimSpace(req.UserID), req.Password)
	if err != nil {
		return nil, err
	}
	if user.ID == "" {
		user.ID = strings.TrimSpace(req.UserID)
	}

	now := s.now().UTC()
	session := &models.Session{ID: uuid.NewString(), User: user, CreatedAt: now}
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}

	token, err := s.sign(session.ID, now)
	if err != nil {
		_ = s.store.DeleteSession(ctx, session.ID)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:    user.ID,
		Action:    models.AuditActionLogin,
		Resource:  "session",
		IP:        req.IP,
		UserAgent: req.UserAgent,
	})

	return &models.LoginResponse{
		Token:     token,
		SessionID: session.ID,
		User:      user,
		IssuedAt:  now,
	}, nil
}

// Current resolves a session token. Any failure is reported as unauthorized.
func (s *AuthService) Current(ctx context.Context, token string) (*models.Session, error) {
	sessionID, err := s.parse(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return session, nil
}

// Logout destroys the session along with its persisted date range.
func (s *AuthService) Logout(ctx context.Context, session *models.Session, meta models.LoginRequest) error {
	if session == nil {
		return appErrors.ErrUnauthorized
	}
	if err := s.store.DeleteSession(ctx, session.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}
	s.audit.Record(ctx, AuditEntry{
		UserID:    session.User.ID,
		Action:    models.AuditActionLogout,
		Resource:  "session",
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	})
	return nil
}

func (s *AuthService) sign(sessionID string, issuedAt time.Time) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("session secret missing")
	}
	claims := models.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   sessionIssuer,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *AuthService) parse(token string) (string, error) {
	if token == "" {
		return "", errors.New("empty token")
	}
	claims := &models.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.SessionID == "" {
		return "", errors.New("session claim missing")
	}
	return claims.SessionID, nil
}
