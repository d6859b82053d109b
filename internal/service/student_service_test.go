package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type fakeStudentUpstream struct {
	detail models.StudentDetail
	err    error
}

func (f fakeStudentUpstream) StudentDetail(context.Context, string) (models.StudentDetail, error) {
	return f.detail, f.err
}

func (f fakeStudentUpstream) StudentAnalysis(context.Context, string) (models.StudentAnalysis, error) {
	return models.StudentAnalysis{"pattern": "afternoon"}, f.err
}

func TestStudentDetailFound(t *testing.T) {
	svc := NewStudentService(fakeStudentUpstream{detail: models.StudentDetail{
		Profile: models.StudentProfile{StudentCode: "2111", TotalIncidents: 4},
	}}, nil)

	resp, err := svc.Detail(context.Background(), "2111")
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, 4, resp.Detail.Profile.TotalIncidents)
}

func TestStudentDetailNotFoundRendersBackLink(t *testing.T) {
	svc := NewStudentService(fakeStudentUpstream{err: appErrors.Clone(appErrors.ErrNotFound, "Student not found")}, nil)

	resp, err := svc.Detail(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Equal(t, "Student not found", resp.Message)
	assert.Equal(t, "/", resp.Back)
	assert.Nil(t, resp.Detail)
}

func TestStudentDetailUpstreamFailure(t *testing.T) {
	svc := NewStudentService(fakeStudentUpstream{err: appErrors.ErrUpstream}, nil)

	_, err := svc.Detail(context.Background(), "2111")
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}
