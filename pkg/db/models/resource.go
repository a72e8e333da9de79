package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/serpcat/serp-backend/pkg/enums"
)

// Resource is a field unit (vehicle or equipment) that responds to alerts.
type Resource struct {
	ID           uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string               `gorm:"type:text;not null"`
	ResourceType enums.ResourceType   `gorm:"column:resource_type;type:text;not null;default:'Unknown'"`
	Status       enums.ResourceStatus `gorm:"type:text;not null;default:'Unknown'"`
	Latitude     *float64
	Longitude    *float64
	Responsible  *string
	Telephone    *string
	Email        *string
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
