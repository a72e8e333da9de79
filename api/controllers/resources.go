package controllers

import (
	"net/http"
	"strings"

	"github.com/serpcat/serp-backend/api/responses"
	"github.com/serpcat/serp-backend/api/validators"
	resourcesvc "github.com/serpcat/serp-backend/internal/resources"
	"github.com/serpcat/serp-backend/pkg/enums"
	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
	"github.com/serpcat/serp-backend/pkg/logger"
)

type createResourceRequest struct {
	Name         string   `json:"name" validate:"required"`
	ResourceType *string  `json:"resource_type,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Responsible  *string  `json:"responsible,omitempty"`
	Telephone    *string  `json:"telephone,omitempty"`
	Email        *string  `json:"email,omitempty" validate:"omitempty,email"`
}

type updateResourceRequest struct {
	Name         *string  `json:"name,omitempty"`
	ResourceType *string  `json:"resource_type,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Responsible  *string  `json:"responsible,omitempty"`
	Telephone    *string  `json:"telephone,omitempty"`
	Email        *string  `json:"email,omitempty" validate:"omitempty,email"`
}

func parseResourceTypeField(raw *string) (*enums.ResourceType, error) {
	if raw == nil {
		return nil, nil
	}
	resourceType, err := enums.ParseResourceType(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid resource type").
			WithDetails(map[string]any{"field": "resource_type"})
	}
	return &resourceType, nil
}

func parseResourceStatusField(raw *string) (*enums.ResourceStatus, error) {
	if raw == nil {
		return nil, nil
	}
	status, err := enums.ParseResourceStatus(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid resource status").
			WithDetails(map[string]any{"field": "status"})
	}
	return &status, nil
}

func (req createResourceRequest) toInput() (resourcesvc.CreateResourceInput, error) {
	resourceType, err := parseResourceTypeField(req.ResourceType)
	if err != nil {
		return resourcesvc.CreateResourceInput{}, err
	}
	status, err := parseResourceStatusField(req.Status)
	if err != nil {
		return resourcesvc.CreateResourceInput{}, err
	}
	return resourcesvc.CreateResourceInput{
		Name:         strings.TrimSpace(req.Name),
		ResourceType: resourceType,
		Status:       status,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Responsible:  req.Responsible,
		Telephone:    req.Telephone,
		Email:        req.Email,
	}, nil
}

func (req updateResourceRequest) toInput() (resourcesvc.UpdateResourceInput, error) {
	resourceType, err := parseResourceTypeField(req.ResourceType)
	if err != nil {
		return resourcesvc.UpdateResourceInput{}, err
	}
	status, err := parseResourceStatusField(req.Status)
	if err != nil {
		return resourcesvc.UpdateResourceInput{}, err
	}
	return resourcesvc.UpdateResourceInput{
		Name:         req.Name,
		ResourceType: resourceType,
		Status:       status,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Responsible:  req.Responsible,
		Telephone:    req.Telephone,
		Email:        req.Email,
	}, nil
}

// CreateResource registers a field resource.
func CreateResource(svc resourcesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "resource service unavailable"))
			return
		}

		var body createResourceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resource, err := svc.CreateResource(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, resource)
	}
}

// UpdateResource applies a partial update to a resource.
func UpdateResource(svc resourcesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "resource service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "resourceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateResourceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resource, err := svc.UpdateResource(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resource)
	}
}

// DeleteResource removes a resource. Assignments cascade away with it.
func DeleteResource(svc resourcesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "resource service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "resourceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteResource(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// GetResource returns a single resource.
func GetResource(svc resourcesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "resource service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "resourceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resource, err := svc.GetResource(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resource)
	}
}

// ListResources returns the resource snapshot, optionally filtered by
// status or type.
func ListResources(svc resourcesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "resource service unavailable"))
			return
		}

		var input resourcesvc.ListResourcesInput

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := parseResourceStatusField(&raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Status = status
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
			resourceType, err := parseResourceTypeField(&raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Type = resourceType
		}

		resources, err := svc.ListResources(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resources)
	}
}

// ListResourceAssignments returns the alerts a resource is committed to.
func ListResourceAssignments(svc resourcesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "resource service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "resourceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListAssignments(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}
