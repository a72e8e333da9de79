package resources

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/serpcat/serp-backend/pkg/db/models"
	"github.com/serpcat/serp-backend/pkg/enums"
)

// Repository exposes resource persistence operations.
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

// Create inserts a new resource and returns the persisted model.
func (r *Repository) Create(ctx context.Context, resource *models.Resource) (*models.Resource, error) {
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

// Update persists all fields of the resource.
func (r *Repository) Update(ctx context.Context, resource *models.Resource) (*models.Resource, error) {
	if err := r.db.WithContext(ctx).Save(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

// Delete removes the resource. Assignments cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Resource{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID loads a resource by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	var resource models.Resource
	if err := r.db.WithContext(ctx).First(&resource, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// List returns the full resource snapshot, optionally filtered.
func (r *Repository) List(ctx context.Context, input ListResourcesInput) ([]models.Resource, error) {
	query := r.db.WithContext(ctx).Model(&models.Resource{})
	if input.Status != nil {
		query = query.Where("status = ?", *input.Status)
	}
	if input.Type != nil {
		query = query.Where("resource_type = ?", *input.Type)
	}

	var out []models.Resource
	if err := query.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CountByIDs reports how many of the given ids exist.
func (r *Repository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Resource{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

// CountByStatus groups the resource table by status.
func (r *Repository) CountByStatus(ctx context.Context) (map[enums.ResourceStatus]int64, error) {
	type row struct {
		Status enums.ResourceStatus
		Count  int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Resource{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enums.ResourceStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// MarkStaleUnknown flips resources not updated since the cutoff to Unknown.
// Returns the number of resources changed.
func (r *Repository) MarkStaleUnknown(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Resource{}).
		Where("updated_at < ? AND status <> ?", cutoff, enums.ResourceStatusUnknown).
		Update("status", enums.ResourceStatusUnknown)
	return result.RowsAffected, result.Error
}
