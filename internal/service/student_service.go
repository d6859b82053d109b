package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/dto"
	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

const studentNotFoundMessage = "Student not found"

type studentUpstream interface {
	StudentDetail(ctx context.Context, name string) (models.StudentDetail, error)
	StudentAnalysis(ctx context.Context, name string) (models.StudentAnalysis, error)
}

// StudentService serves the per-student detail page.
type StudentService struct {
	upstream studentUpstream
	logger   *zap.Logger
}

// NewStudentService constructs a StudentService instance.
func NewStudentService(upstream studentUpstream, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{upstream: upstream, logger: logger}
}

// Detail returns the student's aggregate. An unknown student is a normal
// page state with a back link, not an error.
func (s *StudentService) Detail(ctx context.Context, name string) (*dto.StudentDetailResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return notFoundStudent(studentNotFoundMessage), nil
	}
	detail, err := s.upstream.StudentDetail(ctx, name)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			message := appErrors.FromError(err).Message
			if message == "" || message == appErrors.ErrNotFound.Message {
				message = studentNotFoundMessage
			}
			return notFoundStudent(message), nil
		}
		return nil, err
	}
	return &dto.StudentDetailResponse{Found: true, Detail: &detail}, nil
}

// Analysis returns the upstream analysis for a student.
func (s *StudentService) Analysis(ctx context.Context, name string) (models.StudentAnalysis, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student name is required")
	}
	return s.upstream.StudentAnalysis(ctx, name)
}

func notFoundStudent(message string) *dto.StudentDetailResponse {
	return &dto.StudentDetailResponse{Found: false, Message: message, Back: "/"}
}
