package resources

import (
	"time"

	"github.com/google/uuid"

	"github.com/serpcat/serp-backend/pkg/db/models"
	"github.com/serpcat/serp-backend/pkg/enums"
)

// ResourceDTO is the transport shape for a field resource.
type ResourceDTO struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	ResourceType enums.ResourceType   `json:"resource_type"`
	Status       enums.ResourceStatus `json:"status"`
	Latitude     *float64             `json:"latitude,omitempty"`
	Longitude    *float64             `json:"longitude,omitempty"`
	Responsible  *string              `json:"responsible,omitempty"`
	Telephone    *string              `json:"telephone,omitempty"`
	Email        *string              `json:"email,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// CreateResourceInput holds the validated payload to register a resource.
type CreateResourceInput struct {
	Name         string
	ResourceType *enums.ResourceType
	Status       *enums.ResourceStatus
	Latitude     *float64
	Longitude    *float64
	Responsible  *string
	Telephone    *string
	Email        *string
}

// UpdateResourceInput holds optional mutation values for a resource.
type UpdateResourceInput struct {
	Name         *string
	ResourceType *enums.ResourceType
	Status       *enums.ResourceStatus
	Latitude     *float64
	Longitude    *float64
	Responsible  *string
	Telephone    *string
	Email        *string
}

// ListResourcesInput filters the resource snapshot.
type ListResourcesInput struct {
	Status *enums.ResourceStatus
	Type   *enums.ResourceType
}

func FromModel(r *models.Resource) *ResourceDTO {
	if r == nil {
		return nil
	}
	return &ResourceDTO{
		ID:           r.ID,
		Name:         r.Name,
		ResourceType: r.ResourceType,
		Status:       r.Status,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		Responsible:  r.Responsible,
		Telephone:    r.Telephone,
		Email:        r.Email,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (c CreateResourceInput) ToModel() *models.Resource {
	resource := &models.Resource{
		Name:         c.Name,
		ResourceType: enums.ResourceTypeUnknown,
		Status:       enums.ResourceStatusUnknown,
		Latitude:     c.Latitude,
		Longitude:    c.Longitude,
		Responsible:  c.Responsible,
		Telephone:    c.Telephone,
		Email:        c.Email,
	}
	if c.ResourceType != nil {
		resource.ResourceType = *c.ResourceType
	}
	if c.Status != nil {
		resource.Status = *c.Status
	}
	return resource
}

// ApplyTo copies the set fields onto the model.
func (u UpdateResourceInput) ApplyTo(resource *models.Resource) {
	if u.Name != nil {
		resource.Name = *u.Name
	}
	if u.ResourceType != nil {
		resource.ResourceType = *u.ResourceType
	}
	if u.Status != nil {
		resource.Status = *u.Status
	}
	if u.Latitude != nil {
		resource.Latitude = u.Latitude
	}
	if u.Longitude != nil {
		resource.Longitude = u.Longitude
	}
	if u.Responsible != nil {
		resource.Responsible = u.Responsible
	}
	if u.Telephone != nil {
		resource.Telephone = u.Telephone
	}
	if u.Email != nil {
		resource.Email = u.Email
	}
}
