package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

type fakeAuditStore struct {
	created []*models.AuditLog
	filter  models.AuditFilter
	err     error
}

func (f *fakeAuditStore) Create(_ context.Context, log *models.AuditLog) error {
	f.created = append(f.created, log)
	return f.err
}

func (f *fakeAuditStore) List(_ context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	f.filter = filter
	out := make([]models.AuditLog, 0, len(f.created))
	for i := len(f.created) - 1; i >= 0; i-- {
		out = append(out, *f.created[i])
	}
	return out, nil
}

func TestAuditServiceRecordSerialisesValues(t *testing.T) {
	store := &fakeAuditStore{}
	svc := NewAuditService(store, nil)

	svc.Record(context.Background(), AuditEntry{
		UserID:     "admin",
		Action:     models.AuditActionHolidayAdd,
		Resource:   "holiday",
		ResourceID: "2025-05-05",
		Values:     map[string]string{"name": "Children's Day"},
	})

	require.Len(t, store.created, 1)
	log := store.created[0]
	require.NotNil(t, log.ResourceID)
	assert.Equal(t, "2025-05-05", *log.ResourceID)
	assert.JSONEq(t, `{"name":"Children's Day"}`, string(log.NewValues))
}

func TestAuditServiceRecordSwallowsStoreFailure(t *testing.T) {
	svc := NewAuditService(&fakeAuditStore{err: errors.New("db down")}, nil)
	assert.NotPanics(t, func() {
		svc.Record(context.Background(), AuditEntry{UserID: "admin", Action: models.AuditActionUserDelete})
	})
}

func TestAuditServiceListNormalisesFilter(t *testing.T) {
	store := &fakeAuditStore{}
	store.created = []*models.AuditLog{
		{ID: "1", UserID: "admin", Action: models.AuditActionLogin, CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)},
		{ID: "2", UserID: "admin", Action: models.AuditActionRosterSave, NewValues: []byte(`{"saved":3}`)},
	}
	svc := NewAuditService(store, nil)

	views, err := svc.List(context.Background(), models.AuditFilter{UserID: " admin ", Action: "roster_save"})
	require.NoError(t, err)

	assert.Equal(t, models.AuditFilter{UserID: "admin", Action: models.AuditActionRosterSave}, store.filter)
	require.Len(t, views, 2)
	assert.Equal(t, "2", views[0].ID)
	assert.JSONEq(t, `{"saved":3}`, string(views[0].Values))
	assert.Nil(t, views[1].Values)
}

func TestAuditServiceListDisabled(t *testing.T) {
	_, err := NewAuditService(nil, nil).List(context.Background(), models.AuditFilter{})
	assert.True(t, appErrors.Is(err, appErrors.ErrDisabled))
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}
