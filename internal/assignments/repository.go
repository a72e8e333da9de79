package assignments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/serpcat/serp-backend/pkg/db/models"
)

// Repository exposes alert-resource assignment persistence.
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

// ReplaceForAlert swaps the alert's assignment set for the given resources
// in one transaction. The previous set is removed entirely, so assigning is
// idempotent.
func (r *Repository) ReplaceForAlert(ctx context.Context, alertID uuid.UUID, resourceIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Assignment{}, "alert_id = ?", alertID).Error; err != nil {
			return err
		}
		if len(resourceIDs) == 0 {
			return nil
		}

		rows := make([]models.Assignment, 0, len(resourceIDs))
		for _, resourceID := range resourceIDs {
			rows = append(rows, models.Assignment{
				ID:         uuid.New(),
				AlertID:    alertID,
				ResourceID: resourceID,
			})
		}
		return tx.Create(&rows).Error
	})
}

// ListByAlert returns the alert's assignments ordered by assignment time.
func (r *Repository) ListByAlert(ctx context.Context, alertID uuid.UUID) ([]models.Assignment, error) {
	var out []models.Assignment
	err := r.db.WithContext(ctx).
		Where("alert_id = ?", alertID).
		Order("assigned_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByResource returns every assignment held by the resource.
func (r *Repository) ListByResource(ctx context.Context, resourceID uuid.UUID) ([]models.Assignment, error) {
	var out []models.Assignment
	err := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("assigned_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MapResourceIDsByAlerts groups assigned resource ids by alert for the given alerts.
func (r *Repository) MapResourceIDsByAlerts(ctx context.Context, alertIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	if len(alertIDs) == 0 {
		return map[uuid.UUID][]uuid.UUID{}, nil
	}

	var rows []models.Assignment
	err := r.db.WithContext(ctx).
		Where("alert_id IN ?", alertIDs).
		Order("assigned_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID][]uuid.UUID, len(alertIDs))
	for _, row := range rows {
		out[row.AlertID] = append(out[row.AlertID], row.ResourceID)
	}
	return out, nil
}
