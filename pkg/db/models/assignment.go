package models

import (
	"time"

	"github.com/google/uuid"
)

// Assignment links a resource to the alert it is responding to. The pair is
// unique; a resource may hold assignments to several alerts at once.
type Assignment struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AlertID    uuid.UUID `gorm:"column:alert_id;type:uuid;not null;uniqueIndex:idx_assignments_alert_resource"`
	ResourceID uuid.UUID `gorm:"column:resource_id;type:uuid;not null;uniqueIndex:idx_assignments_alert_resource"`
	AssignedAt time.Time `gorm:"column:assigned_at;autoCreateTime"`
}
