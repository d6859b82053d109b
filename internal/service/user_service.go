package service

import (
	"context"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type userAdminUpstream interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) error
	DeleteUser(ctx context.Context, userID string) error
	UpdateUserRole(ctx context.Context, req models.UpdateRoleRequest) error
	UpdateUserPassword(ctx context.Context, req models.UpdatePasswordRequest) error
	ListHolidays(ctx context.Context) ([]models.Holiday, error)
	AddHoliday(ctx context.Context, h models.Holiday) error
	DeleteHoliday(ctx context.Context, date string) error
}

// UserService administers accounts and school holidays.
type UserService struct {
	upstream  userAdminUpstream
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(upstream userAdminUpstream, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{upstream: upstream, validator: validate, logger: logger}
}

// List returns every account ordered by id.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.upstream.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Create registers a new account.
func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) error {
	req.ID = strings.TrimSpace(req.ID)
	req.Role = models.UserRole(strings.ToLower(string(req.Role)))
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}
	return s.upstream.CreateUser(ctx, req)
}

// Delete removes an account. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actor models.User, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "user id is required")
	}
	if userID == actor.ID {
		return appErrors.Clone(appErrors.ErrValidation, "you cannot delete your own account")
	}
	return s.upstream.DeleteUser(ctx, userID)
}

// UpdateRole changes a user's role and class.
func (s *UserService) UpdateRole(ctx context.Context, actor models.User, req models.UpdateRoleRequest) error {
	req.NewRole = models.UserRole(strings.ToLower(string(req.NewRole)))
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role change")
	}
	if req.UserID == actor.ID && req.NewRole != models.RoleAdmin {
		return appErrors.Clone(appErrors.ErrValidation, "you cannot remove your own admin role")
	}
	return s.upstream.UpdateUserRole(ctx, req)
}

// UpdatePassword replaces a user's password.
func (s *UserService) UpdatePassword(ctx context.Context, req models.UpdatePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid password change")
	}
	return s.upstream.UpdateUserPassword(ctx, req)
}

// Holidays lists closures by date.
func (s *UserService) Holidays(ctx context.Context) ([]models.Holiday, error) {
	holidays, err := s.upstream.ListHolidays(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(holidays, func(i, j int) bool { return holidays[i].Date < holidays[j].Date })
	return holidays, nil
}

// AddHoliday registers a closure.
func (s *UserService) AddHoliday(ctx context.Context, h models.Holiday) error {
	h.Name = strings.TrimSpace(h.Name)
	if err := s.validator.Struct(h); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid holiday")
	}
	return s.upstream.AddHoliday(ctx, h)
}

// DeleteHoliday removes a closure.
func (s *UserService) DeleteHoliday(ctx context.Context, date string) error {
	if err := s.validator.Var(date, "required,datetime=2006-01-02"); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be YYYY-MM-DD")
	}
	return s.upstream.DeleteHoliday(ctx, date)
}
