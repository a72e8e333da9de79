package controllers

import (
	"net/http"

	"github.com/serpcat/serp-backend/api/responses"
	statsvc "github.com/serpcat/serp-backend/internal/stats"
	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
	"github.com/serpcat/serp-backend/pkg/logger"
)

// GetStats returns the dashboard counters in one round trip.
func GetStats(svc statsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stats service unavailable"))
			return
		}

		stats, err := svc.GetStats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
