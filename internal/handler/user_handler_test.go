package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type fakeUserAdmin struct {
	userAdminService
	actor      models.User
	roleChange models.UpdateRoleRequest
}

func (f *fakeUserAdmin) Delete(_ context.Context, actor models.User, userID string) error {
	f.actor = actor
	if actor.ID == userID {
		return appErrors.Clone(appErrors.ErrValidation, "you cannot delete your own account")
	}
	return nil
}

func (f *fakeUserAdmin) UpdateRole(_ context.Context, actor models.User, req models.UpdateRoleRequest) error {
	f.actor = actor
	f.roleChange = req
	return nil
}

func TestUserHandlerDeletePassesActor(t *testing.T) {
	svc := &fakeUserAdmin{}
	h := NewUserHandler(svc)

	c, _ := newContext(http.MethodDelete, "/api/v1/admin/users/t02", nil, adminSession)
	c.Params = gin.Params{{Key: "id", Value: "t02"}}
	h.Delete(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, adminSession.User.ID, svc.actor.ID)

	c, rec := newContext(http.MethodDelete, "/api/v1/admin/users/admin", nil, adminSession)
	c.Params = gin.Params{{Key: "id", Value: "admin"}}
	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandlerUpdateRoleTakesIDFromPath(t *testing.T) {
	svc := &fakeUserAdmin{}
	h := NewUserHandler(svc)

	c, _ := newContext(http.MethodPut, "/api/v1/admin/users/t05/role", map[string]string{"user_id": "ignored", "new_role": "admin"}, adminSession)
	c.Params = gin.Params{{Key: "id", Value: "t05"}}
	h.UpdateRole(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, "t05", svc.roleChange.UserID)
	assert.Equal(t, models.RoleAdmin, svc.roleChange.NewRole)
}
