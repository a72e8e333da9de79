package alerts

import (
	"time"

	"github.com/google/uuid"

	"github.com/serpcat/serp-backend/pkg/db/models"
	"github.com/serpcat/serp-backend/pkg/enums"
)

// AlertDTO is the transport shape for an alert.
type AlertDTO struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Status        enums.AlertStatus   `json:"status"`
	Priority      enums.AlertPriority `json:"priority"`
	EmergencyType enums.EmergencyType `json:"emergency_type"`
	Latitude      float64             `json:"latitude"`
	Longitude     float64             `json:"longitude"`
	ContactName   *string             `json:"contact_name,omitempty"`
	ContactPhone  *string             `json:"contact_phone,omitempty"`
	ContactID     *string             `json:"contact_id,omitempty"`
	ResourceIDs   []uuid.UUID         `json:"resource_ids"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// CreateAlertInput holds the validated payload to create an alert.
type CreateAlertInput struct {
	Name          string
	Description   string
	Status        *enums.AlertStatus
	Priority      *enums.AlertPriority
	EmergencyType *enums.EmergencyType
	Latitude      float64
	Longitude     float64
	ContactName   *string
	ContactPhone  *string
	ContactID     *string
}

// UpdateAlertInput holds optional mutation values for an alert.
type UpdateAlertInput struct {
	Name          *string
	Description   *string
	Status        *enums.AlertStatus
	Priority      *enums.AlertPriority
	EmergencyType *enums.EmergencyType
	Latitude      *float64
	Longitude     *float64
	ContactName   *string
	ContactPhone  *string
	ContactID     *string
}

// ListAlertsInput filters and orders the alert snapshot.
type ListAlertsInput struct {
	Status    *enums.AlertStatus
	Direction SortDirection
}

func FromModel(a *models.Alert, resourceIDs []uuid.UUID) *AlertDTO {
	if a == nil {
		return nil
	}
	if resourceIDs == nil {
		resourceIDs = []uuid.UUID{}
	}
	return &AlertDTO{
		ID:            a.ID,
		Name:          a.Name,
		Description:   a.Description,
		Status:        a.Status,
		Priority:      a.Priority,
		EmergencyType: a.EmergencyType,
		Latitude:      a.Latitude,
		Longitude:     a.Longitude,
		ContactName:   a.ContactName,
		ContactPhone:  a.ContactPhone,
		ContactID:     a.ContactID,
		ResourceIDs:   resourceIDs,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (c CreateAlertInput) ToModel() *models.Alert {
	alert := &models.Alert{
		Name:          c.Name,
		Description:   c.Description,
		Status:        enums.AlertStatusActive,
		Priority:      enums.AlertPriorityMedium,
		EmergencyType: enums.EmergencyTypeOther,
		Latitude:      c.Latitude,
		Longitude:     c.Longitude,
		ContactName:   c.ContactName,
		ContactPhone:  c.ContactPhone,
		ContactID:     c.ContactID,
	}
	if c.Status != nil {
		alert.Status = *c.Status
	}
	if c.Priority != nil {
		alert.Priority = *c.Priority
	}
	if c.EmergencyType != nil {
		alert.EmergencyType = *c.EmergencyType
	}
	return alert
}

// ApplyTo copies the set fields onto the model.
func (u UpdateAlertInput) ApplyTo(alert *models.Alert) {
	if u.Name != nil {
		alert.Name = *u.Name
	}
	if u.Description != nil {
		alert.Description = *u.Description
	}
	if u.Status != nil {
		alert.Status = *u.Status
	}
	if u.Priority != nil {
		alert.Priority = *u.Priority
	}
	if u.EmergencyType != nil {
		alert.EmergencyType = *u.EmergencyType
	}
	if u.Latitude != nil {
		alert.Latitude = *u.Latitude
	}
	if u.Longitude != nil {
		alert.Longitude = *u.Longitude
	}
	if u.ContactName != nil {
		alert.ContactName = u.ContactName
	}
	if u.ContactPhone != nil {
		alert.ContactPhone = u.ContactPhone
	}
	if u.ContactID != nil {
		alert.ContactID = u.ContactID
	}
}
