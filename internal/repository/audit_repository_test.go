package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pbis-gateway/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestAuditRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.AuditLog{UserID: "admin", Action: models.AuditActionRosterSave, Resource: "roster_codes"}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "resource", "resource_id", "new_values", "ip_address", "user_agent", "created_at"}).
		AddRow("a1", "admin", models.AuditActionUserDelete, "users", "t02", []byte(`{}`), "10.0.0.1", "curl", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM audit_logs WHERE 1=1 AND user_id = $1 AND action = $2 ORDER BY created_at DESC LIMIT $3")).
		WithArgs("admin", models.AuditActionUserDelete, 100).
		WillReturnRows(rows)

	logs, err := repo.List(context.Background(), models.AuditFilter{UserID: "admin", Action: models.AuditActionUserDelete})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].ResourceID)
	assert.Equal(t, "t02", *logs[0].ResourceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
