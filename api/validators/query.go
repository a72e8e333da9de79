package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/serpcat/serp-backend/pkg/enums"
	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
)

// PathUUID parses a chi route parameter as a UUID.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").
			WithDetails(map[string]any{"field": name})
	}
	return id, nil
}

// QueryAlertStatus reads the optional status filter. Returns nil when absent.
func QueryAlertStatus(r *http.Request) (*enums.AlertStatus, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("status"))
	if raw == "" {
		return nil, nil
	}
	status, err := enums.ParseAlertStatus(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter").
			WithDetails(map[string]any{"field": "status"})
	}
	return &status, nil
}

// QuerySortDirection reads the optional sort direction, defaulting to
// highest priority first.
func QuerySortDirection(r *http.Request) string {
	direction := strings.TrimSpace(r.URL.Query().Get("direction"))
	if direction == "" {
		direction = strings.TrimSpace(r.URL.Query().Get("sort"))
	}
	return direction
}
