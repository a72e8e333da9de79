package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/serpcat/serp-backend/pkg/enums"
)

// Alert is a reported emergency requiring response.
type Alert struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string              `gorm:"type:text;not null"`
	Description   string              `gorm:"type:text;not null"`
	Status        enums.AlertStatus   `gorm:"type:text;not null;default:'Active'"`
	Priority      enums.AlertPriority `gorm:"type:text;not null;default:'Medium'"`
	EmergencyType enums.EmergencyType `gorm:"column:emergency_type;type:text;not null;default:'Other'"`
	Latitude      float64             `gorm:"not null"`
	Longitude     float64             `gorm:"not null"`
	ContactName   *string             `gorm:"column:contact_name"`
	ContactPhone  *string             `gorm:"column:contact_phone"`
	ContactID     *string             `gorm:"column:contact_id"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
