package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/middleware"
	"github.com/noah-isme/pbis-gateway/internal/models"
)

type responseEnvelope struct {
	Data  json.RawMessage        `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

var (
	teacherSession = &models.Session{ID: "sess-teacher", User: models.User{ID: "t01", Name: "Ms. Kim", Role: models.RoleTeacher}}
	adminSession   = &models.Session{ID: "sess-admin", User: models.User{ID: "admin", Role: models.RoleAdmin}}
)

// newContext builds a gin test context carrying session and an optional JSON body.
func newContext(method, target string, body interface{}, session *models.Session) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var payload []byte
	if body != nil {
		if raw, ok := body.(string); ok {
			payload = []byte(raw)
		} else {
			payload, _ = json.Marshal(body)
		}
	}
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(payload))
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	if session != nil {
		c.Set(middleware.ContextSessionKey, session)
	}
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if data != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}
	return envelope
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	envelope := decodeEnvelope(t, rec, nil)
	require.NotNil(t, envelope.Error, rec.Body.String())
	code, _ := envelope.Error["code"].(string)
	return code
}
