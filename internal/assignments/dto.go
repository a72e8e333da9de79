package assignments

import (
	"time"

	"github.com/google/uuid"

	"github.com/serpcat/serp-backend/pkg/db/models"
)

// AssignmentDTO is the transport shape for an alert-resource link.
type AssignmentDTO struct {
	ID         uuid.UUID `json:"id"`
	AlertID    uuid.UUID `json:"alert_id"`
	ResourceID uuid.UUID `json:"resource_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

func FromModel(a *models.Assignment) *AssignmentDTO {
	if a == nil {
		return nil
	}
	return &AssignmentDTO{
		ID:         a.ID,
		AlertID:    a.AlertID,
		ResourceID: a.ResourceID,
		AssignedAt: a.AssignedAt,
	}
}

func FromModels(rows []models.Assignment) []AssignmentDTO {
	out := make([]AssignmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
