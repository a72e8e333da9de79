package alerts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/serpcat/serp-backend/pkg/db/models"
	"github.com/serpcat/serp-backend/pkg/enums"
)

// Repository exposes alert persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new alert and returns the persisted model.
func (r *Repository) Create(ctx context.Context, alert *models.Alert) (*models.Alert, error) {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(alert).Error; err != nil {
		return nil, err
	}
	return alert, nil
}

// Update persists all fields of the alert.
func (r *Repository) Update(ctx context.Context, alert *models.Alert) (*models.Alert, error) {
	if err := r.db.WithContext(ctx).Save(alert).Error; err != nil {
		return nil, err
	}
	return alert, nil
}

// Delete removes the alert. Assignments cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Alert{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID loads an alert by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Alert, error) {
	var alert models.Alert
	if err := r.db.WithContext(ctx).First(&alert, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// List returns the full alert snapshot, optionally filtered by status.
// Ordering happens in memory, not in the query.
func (r *Repository) List(ctx context.Context, status *enums.AlertStatus) ([]models.Alert, error) {
	query := r.db.WithContext(ctx).Model(&models.Alert{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var out []models.Alert
	if err := query.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ArchiveSolvedBefore flips Solved alerts older than the cutoff to Archived.
// Returns the number of alerts archived.
func (r *Repository) ArchiveSolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("status = ? AND updated_at < ?", enums.AlertStatusSolved, cutoff).
		Update("status", enums.AlertStatusArchived)
	return result.RowsAffected, result.Error
}

// CountByStatus groups the alert table by status.
func (r *Repository) CountByStatus(ctx context.Context) (map[enums.AlertStatus]int64, error) {
	type row struct {
		Status enums.AlertStatus
		Count  int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enums.AlertStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
