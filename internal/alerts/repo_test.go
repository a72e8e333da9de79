package alerts

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/serpcat/serp-backend/pkg/db/models"
	"github.com/serpcat/serp-backend/pkg/enums"
)

func setupAlertsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS alerts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'Active',
  priority TEXT NOT NULL DEFAULT 'Medium',
  emergency_type TEXT NOT NULL DEFAULT 'Other',
  latitude REAL NOT NULL,
  longitude REAL NOT NULL,
  contact_name TEXT,
  contact_phone TEXT,
  contact_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

func mustCreateTestAlert(t *testing.T, repo *Repository, status enums.AlertStatus, priority enums.AlertPriority) *models.Alert {
	t.Helper()
	alert := &models.Alert{
		ID:            uuid.New(),
		Name:          fmt.Sprintf("alert-%s", uuid.NewString()[:8]),
		Description:   "test alert",
		Status:        status,
		Priority:      priority,
		EmergencyType: enums.EmergencyTypeFire,
		Latitude:      40.4168,
		Longitude:     -3.7038,
	}
	created, err := repo.Create(context.Background(), alert)
	require.NoError(t, err)
	return created
}

func TestAlertRepositoryFlow(t *testing.T) {
	conn := setupAlertsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created := mustCreateTestAlert(t, repo, enums.AlertStatusActive, enums.AlertPriorityHigh)
	require.NotEqual(t, uuid.Nil, created.ID)

	fetched, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, enums.AlertPriorityHigh, fetched.Priority)

	fetched.Status = enums.AlertStatusSolved
	updated, err := repo.Update(ctx, fetched)
	require.NoError(t, err)
	assert.Equal(t, enums.AlertStatusSolved, updated.Status)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAlertRepositoryDeleteMissing(t *testing.T) {
	conn := setupAlertsTestDB(t)
	repo := NewRepository(conn)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAlertRepositoryListFiltersByStatus(t *testing.T) {
	conn := setupAlertsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	mustCreateTestAlert(t, repo, enums.AlertStatusActive, enums.AlertPriorityLow)
	mustCreateTestAlert(t, repo, enums.AlertStatusPending, enums.AlertPriorityHigh)
	mustCreateTestAlert(t, repo, enums.AlertStatusSolved, enums.AlertPriorityCritical)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pending := enums.AlertStatusPending
	filtered, err := repo.List(ctx, &pending)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, enums.AlertStatusPending, filtered[0].Status)
}

func TestAlertRepositoryCountByStatus(t *testing.T) {
	conn := setupAlertsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	mustCreateTestAlert(t, repo, enums.AlertStatusActive, enums.AlertPriorityLow)
	mustCreateTestAlert(t, repo, enums.AlertStatusActive, enums.AlertPriorityHigh)
	mustCreateTestAlert(t, repo, enums.AlertStatusSolved, enums.AlertPriorityMedium)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[enums.AlertStatusActive])
	assert.Equal(t, int64(1), counts[enums.AlertStatusSolved])
	assert.Zero(t, counts[enums.AlertStatusPending])
}
