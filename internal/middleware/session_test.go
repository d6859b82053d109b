package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/internal/service"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
	"github.com/noah-isme/pbis-gateway/pkg/logger"
)

type stubResolver map[string]*models.Session

func (s stubResolver) Current(_ context.Context, token string) (*models.Session, error) {
	session, ok := s[token]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session not found")
	}
	return session, nil
}

var sessions = stubResolver{
	"teacher-token": {ID: "s1", User: models.User{ID: "t01", Role: models.RoleTeacher}},
	"admin-token":   {ID: "s2", User: models.User{ID: "admin", Role: models.RoleAdmin}},
}

func newGatedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Session(sessions, "pbis_session"))
	handlers := append(extra, func(c *gin.Context) {
		c.String(http.StatusOK, CurrentSession(c).User.ID+"|"+c.GetString(logger.ContextUserKey))
	})
	router.GET("/area", handlers...)
	router.POST("/users/:id", handlers...)
	return router
}

func TestSessionAcceptsCookieAndBearer(t *testing.T) {
	router := newGatedRouter()

	req := httptest.NewRequest(http.MethodGet, "/area", nil)
	req.AddCookie(&http.Cookie{Name: "pbis_session", Value: "teacher-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t01|t01", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/area", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin|admin", rec.Body.String())
}

func TestSessionRejectsAPIWithUnauthorized(t *testing.T) {
	router := newGatedRouter()

	for _, header := range []string{"", "Bearer nope", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/area", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestSessionRedirectsBrowsersToLogin(t *testing.T) {
	router := newGatedRouter()

	req := httptest.NewRequest(http.MethodGet, "/area?tab=2", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?next=%2Farea%3Ftab%3D2", rec.Header().Get("Location"))
}

func TestRequireAdmin(t *testing.T) {
	router := newGatedRouter(RequireAdmin())

	req := httptest.NewRequest(http.MethodGet, "/area", nil)
	req.Header.Set("Authorization", "Bearer teacher-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/area", nil)
	req.Header.Set("Authorization", "Bearer teacher-token")
	req.Header.Set("Accept", "text/html")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/area", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

type recordingAuditWriter struct {
	mu   sync.Mutex
	logs []*models.AuditLog
}

func (w *recordingAuditWriter) Create(_ context.Context, log *models.AuditLog) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.logs = append(w.logs, log)
	return nil
}

func TestAuditRecordsSuccessfulMutations(t *testing.T) {
	writer := &recordingAuditWriter{}
	auditSvc := service.NewAuditService(writer, nil)
	router := newGatedRouter(Audit(auditSvc, models.AuditActionUserDelete, "user"))

	req := httptest.NewRequest(http.MethodPost, "/users/t02", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, writer.logs, 1)
	log := writer.logs[0]
	assert.Equal(t, "admin", log.UserID)
	assert.Equal(t, "user", log.Resource)
	require.NotNil(t, log.ResourceID)
	assert.Equal(t, "t02", *log.ResourceID)
	assert.Equal(t, "test-agent", log.UserAgent)
}

func TestAuditSkipsFailedRequests(t *testing.T) {
	writer := &recordingAuditWriter{}
	auditSvc := service.NewAuditService(writer, nil)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/fail", Audit(auditSvc, models.AuditActionHolidayAdd, "holiday"), func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fail", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, writer.logs)
}
