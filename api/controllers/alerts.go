package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/serpcat/serp-backend/api/responses"
	"github.com/serpcat/serp-backend/api/validators"
	alertsvc "github.com/serpcat/serp-backend/internal/alerts"
	"github.com/serpcat/serp-backend/pkg/enums"
	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
	"github.com/serpcat/serp-backend/pkg/logger"
)

type createAlertRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Status        *string  `json:"status,omitempty"`
	Priority      *string  `json:"priority,omitempty"`
	EmergencyType *string  `json:"emergency_type,omitempty"`
	Latitude      *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	ContactName   *string  `json:"contact_name,omitempty"`
	ContactPhone  *string  `json:"contact_phone,omitempty"`
	ContactID     *string  `json:"contact_id,omitempty"`
}

type updateAlertRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Priority      *string  `json:"priority,omitempty"`
	EmergencyType *string  `json:"emergency_type,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	ContactName   *string  `json:"contact_name,omitempty"`
	ContactPhone  *string  `json:"contact_phone,omitempty"`
	ContactID     *string  `json:"contact_id,omitempty"`
}

type assignResourcesRequest struct {
	ResourcesIDs []string `json:"resourcesIDs" validate:"required"`
}

func parseAlertStatusField(raw *string) (*enums.AlertStatus, error) {
	if raw == nil {
		return nil, nil
	}
	status, err := enums.ParseAlertStatus(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status").
			WithDetails(map[string]any{"field": "status"})
	}
	return &status, nil
}

func parseAlertPriorityField(raw *string) (*enums.AlertPriority, error) {
	if raw == nil {
		return nil, nil
	}
	priority, err := enums.ParseAlertPriority(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid priority").
			WithDetails(map[string]any{"field": "priority"})
	}
	return &priority, nil
}

func parseEmergencyTypeField(raw *string) (*enums.EmergencyType, error) {
	if raw == nil {
		return nil, nil
	}
	emergencyType, err := enums.ParseEmergencyType(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid emergency type").
			WithDetails(map[string]any{"field": "emergency_type"})
	}
	return &emergencyType, nil
}

func (req createAlertRequest) toInput() (alertsvc.CreateAlertInput, error) {
	status, err := parseAlertStatusField(req.Status)
	if err != nil {
		return alertsvc.CreateAlertInput{}, err
	}
	priority, err := parseAlertPriorityField(req.Priority)
	if err != nil {
		return alertsvc.CreateAlertInput{}, err
	}
	emergencyType, err := parseEmergencyTypeField(req.EmergencyType)
	if err != nil {
		return alertsvc.CreateAlertInput{}, err
	}
	return alertsvc.CreateAlertInput{
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		Status:        status,
		Priority:      priority,
		EmergencyType: emergencyType,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
		ContactID:     req.ContactID,
	}, nil
}

func (req updateAlertRequest) toInput() (alertsvc.UpdateAlertInput, error) {
	status, err := parseAlertStatusField(req.Status)
	if err != nil {
		return alertsvc.UpdateAlertInput{}, err
	}
	priority, err := parseAlertPriorityField(req.Priority)
	if err != nil {
		return alertsvc.UpdateAlertInput{}, err
	}
	emergencyType, err := parseEmergencyTypeField(req.EmergencyType)
	if err != nil {
		return alertsvc.UpdateAlertInput{}, err
	}
	return alertsvc.UpdateAlertInput{
		Name:          req.Name,
		Description:   req.Description,
		Status:        status,
		Priority:      priority,
		EmergencyType: emergencyType,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
		ContactID:     req.ContactID,
	}, nil
}

// CreateAlert registers a new emergency alert.
func CreateAlert(svc alertsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alert service unavailable"))
			return
		}

		var body createAlertRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		alert, err := svc.CreateAlert(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, alert)
	}
}

// UpdateAlert applies a partial update to an alert.
func UpdateAlert(svc alertsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alert service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "alertID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateAlertRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		alert, err := svc.UpdateAlert(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, alert)
	}
}

// DeleteAlert removes an alert and its assignments.
func DeleteAlert(svc alertsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alert service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "alertID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteAlert(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// GetAlert returns a single alert with its assigned resource ids.
func GetAlert(svc alertsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alert service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "alertID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		alert, err := svc.GetAlert(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, alert)
	}
}

// ListAlerts returns the alert snapshot ordered by priority. Resolved alerts
// sink to the bottom regardless of direction.
func ListAlerts(svc alertsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alert service unavailable"))
			return
		}

		status, err := validators.QueryAlertStatus(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		alerts, err := svc.ListAlerts(r.Context(), alertsvc.ListAlertsInput{
			Status:    status,
			Direction: alertsvc.ParseSortDirection(validators.QuerySortDirection(r)),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, alerts)
	}
}

// AssignAlertResources replaces the full set of resources on an alert.
func AssignAlertResources(svc alertsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alert service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "alertID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body assignResourcesRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resourceIDs := make([]uuid.UUID, 0, len(body.ResourcesIDs))
		for _, raw := range body.ResourcesIDs {
			resourceID, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid resource id").
					WithDetails(map[string]any{"field": "resourcesIDs", "value": raw}))
				return
			}
			resourceIDs = append(resourceIDs, resourceID)
		}

		alert, err := svc.AssignResources(r.Context(), id, resourceIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, alert)
	}
}
