package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type fakeUserAdmin struct {
	users    []models.User
	holidays []models.Holiday
	created  []models.CreateUserRequest
	deleted  []string
	roles    []models.UpdateRoleRequest
	added    []models.Holiday
	removed  []string
}

func (f *fakeUserAdmin) ListUsers(context.Context) ([]models.User, error) { return f.users, nil }

func (f *fakeUserAdmin) CreateUser(_ context.Context, req models.CreateUserRequest) error {
	f.created = append(f.created, req)
	return nil
}

func (f *fakeUserAdmin) DeleteUser(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUserAdmin) UpdateUserRole(_ context.Context, req models.UpdateRoleRequest) error {
	f.roles = append(f.roles, req)
	return nil
}

func (f *fakeUserAdmin) UpdateUserPassword(context.Context, models.UpdatePasswordRequest) error {
	return nil
}

func (f *fakeUserAdmin) ListHolidays(context.Context) ([]models.Holiday, error) {
	return f.holidays, nil
}

func (f *fakeUserAdmin) AddHoliday(_ context.Context, h models.Holiday) error {
	f.added = append(f.added, h)
	return nil
}

func (f *fakeUserAdmin) DeleteHoliday(_ context.Context, date string) error {
	f.removed = append(f.removed, date)
	return nil
}

var adminActor = models.User{ID: "admin", Role: models.RoleAdmin}

func TestUserServiceCreateNormalisesRole(t *testing.T) {
	upstream := &fakeUserAdmin{}
	svc := NewUserService(upstream, nil, nil)

	err := svc.Create(context.Background(), models.CreateUserRequest{ID: " t02 ", Password: "secret", Role: "Teacher"})
	require.NoError(t, err)
	require.Len(t, upstream.created, 1)
	assert.Equal(t, "t02", upstream.created[0].ID)
	assert.Equal(t, models.RoleTeacher, upstream.created[0].Role)

	err = svc.Create(context.Background(), models.CreateUserRequest{ID: "t03", Password: "secret", Role: "principal"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserServiceGuardsOwnAccount(t *testing.T) {
	upstream := &fakeUserAdmin{}
	svc := NewUserService(upstream, nil, nil)

	err := svc.Delete(context.Background(), adminActor, "admin")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	err = svc.UpdateRole(context.Background(), adminActor, models.UpdateRoleRequest{UserID: "admin", NewRole: models.RoleTeacher})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.Delete(context.Background(), adminActor, "t01"))
	require.NoError(t, svc.UpdateRole(context.Background(), adminActor, models.UpdateRoleRequest{UserID: "t01", NewRole: "ADMIN"}))
	assert.Equal(t, []string{"t01"}, upstream.deleted)
	assert.Equal(t, models.RoleAdmin, upstream.roles[0].NewRole)
}

func TestUserServiceSortsListings(t *testing.T) {
	upstream := &fakeUserAdmin{
		users:    []models.User{{ID: "t02"}, {ID: "admin"}, {ID: "t01"}},
		holidays: []models.Holiday{{Date: "2025-05-05", Name: "Children's Day"}, {Date: "2025-03-01", Name: "Independence"}},
	}
	svc := NewUserService(upstream, nil, nil)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", users[0].ID)

	holidays, err := svc.Holidays(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", holidays[0].Date)
}

func TestUserServiceHolidayValidation(t *testing.T) {
	upstream := &fakeUserAdmin{}
	svc := NewUserService(upstream, nil, nil)

	err := svc.AddHoliday(context.Background(), models.Holiday{Date: "05/05/2025", Name: "x"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	err = svc.DeleteHoliday(context.Background(), "tomorrow")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.AddHoliday(context.Background(), models.Holiday{Date: "2025-05-05", Name: " Children's Day "}))
	require.NoError(t, svc.DeleteHoliday(context.Background(), "2025-05-05"))
	assert.Equal(t, "Children's Day", upstream.added[0].Name)
	assert.Equal(t, []string{"2025-05-05"}, upstream.removed)
}
