package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type fakeStudentService struct {
	studentService
}

func (fakeStudentService) Detail(_ context.Context, name string) (*dto.StudentDetailResponse, error) {
	return &dto.StudentDetailResponse{Found: false, Message: name + " was not found", Back: "/tier"}, nil
}

type fakeTierService struct {
	tierService
	recordsFor string
	added      models.CICORecordInput
	enteredBy  string
}

func (f *fakeTierService) Tier2Records(_ context.Context, code string) (*dto.Tier2RecordsResponse, error) {
	f.recordsFor = code
	return &dto.Tier2RecordsResponse{Selected: code, TodayDone: true}, nil
}

func (f *fakeTierService) AddTier2Record(_ context.Context, in models.CICORecordInput, enteredBy string) (models.CICORecordInput, error) {
	f.added = in
	f.enteredBy = enteredBy
	in.EnteredBy = enteredBy
	return in, nil
}

type fakeBIPService struct {
	bipService
	savedCode   string
	savedAuthor string
	stage       string
	stageDraft  *models.BIP
}

func (f *fakeBIPService) SuggestHypothesis(_ context.Context, code string, req models.BIPStageRequest) (*models.BIPSuggestion, error) {
	f.stage = "hypothesis:" + code
	f.stageDraft = req.Draft
	return &models.BIPSuggestion{Matched: map[string]string{"Goals": "AI goals"}}, nil
}

func (f *fakeBIPService) SuggestStrategies(_ context.Context, code string, req models.BIPStageRequest) (*models.BIPSuggestion, error) {
	f.stage = "strategies:" + code
	f.stageDraft = req.Draft
	return nil, appErrors.Clone(appErrors.ErrValidation, "write the target behavior first")
}

func (f *fakeBIPService) Save(_ context.Context, code string, plan models.BIP, author string) (models.BIP, error) {
	f.savedCode = code
	f.savedAuthor = author
	return plan, nil
}

func TestStudentHandlerDetailUnknownStudentIsNotAnError(t *testing.T) {
	h := NewStudentHandler(nil, fakeStudentService{}, nil)

	c, rec := newContext(http.MethodGet, "/api/v1/students/Nobody", nil, teacherSession)
	c.Params = gin.Params{{Key: "name", Value: "Nobody"}}
	h.Detail(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var res dto.StudentDetailResponse
	decodeEnvelope(t, rec, &res)
	assert.False(t, res.Found)
	assert.Equal(t, "/tier", res.Back)
	assert.Nil(t, res.Detail)
}

func TestStudentHandlerSaveBIPRecordsAuthor(t *testing.T) {
	bips := &fakeBIPService{}
	h := NewStudentHandler(nil, nil, bips)

	c, rec := newContext(http.MethodPost, "/api/v1/bip/S001", models.BIP{}, teacherSession)
	c.Params = gin.Params{{Key: "code", Value: "S001"}}
	h.SaveBIP(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "S001", bips.savedCode)
	assert.Equal(t, "Ms. Kim", bips.savedAuthor)
}

func TestStudentHandlerTier2Records(t *testing.T) {
	tiers := &fakeTierService{}
	h := NewStudentHandler(tiers, nil, nil)

	c, rec := newContext(http.MethodGet, "/api/v1/tier/cico?student_code=2112", nil, teacherSession)
	h.Tier2Records(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2112", tiers.recordsFor)
	var page dto.Tier2RecordsResponse
	decodeEnvelope(t, rec, &page)
	assert.True(t, page.TodayDone)
}

func TestStudentHandlerAddTier2RecordUsesSessionName(t *testing.T) {
	tiers := &fakeTierService{}
	h := NewStudentHandler(tiers, nil, nil)

	body := models.CICORecordInput{StudentCode: "2112", Target1: "O", Target2: "X", Memo: "calm day"}
	c, rec := newContext(http.MethodPost, "/api/v1/tier/cico", body, teacherSession)
	h.AddTier2Record(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Ms. Kim", tiers.enteredBy)
	assert.Equal(t, "calm day", tiers.added.Memo)
}

func TestStudentHandlerStagedBIPSuggestions(t *testing.T) {
	bips := &fakeBIPService{}
	h := NewStudentHandler(nil, nil, bips)

	c, rec := newContext(http.MethodPost, "/api/v1/bip/S001/ai-hypothesis", nil, teacherSession)
	c.Params = gin.Params{{Key: "code", Value: "S001"}}
	h.SuggestHypothesis(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hypothesis:S001", bips.stage)
	assert.Nil(t, bips.stageDraft)

	draft := models.BIPStageRequest{Draft: &models.BIP{Hypothesis: "unsaved"}}
	c, rec = newContext(http.MethodPost, "/api/v1/bip/S001/ai-strategies", draft, teacherSession)
	c.Params = gin.Params{{Key: "code", Value: "S001"}}
	h.SuggestStrategies(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "strategies:S001", bips.stage)
	require.NotNil(t, bips.stageDraft)
	assert.Equal(t, "unsaved", bips.stageDraft.Hypothesis)
}
