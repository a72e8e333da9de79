package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/serpcat/serp-backend/api/controllers"
	"github.com/serpcat/serp-backend/api/middleware"
	alertsvc "github.com/serpcat/serp-backend/internal/alerts"
	authsvc "github.com/serpcat/serp-backend/internal/auth"
	resourcesvc "github.com/serpcat/serp-backend/internal/resources"
	statsvc "github.com/serpcat/serp-backend/internal/stats"
	usersvc "github.com/serpcat/serp-backend/internal/users"
	"github.com/serpcat/serp-backend/pkg/config"
	"github.com/serpcat/serp-backend/pkg/db"
	"github.com/serpcat/serp-backend/pkg/enums"
	"github.com/serpcat/serp-backend/pkg/logger"
	"github.com/serpcat/serp-backend/pkg/metrics"
	"github.com/serpcat/serp-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	Redis       *redis.Client
	Sessions    middleware.SessionChecker
	Auth        authsvc.Service
	Alerts      alertsvc.Service
	Resources   resourcesvc.Service
	Stats       statsvc.Service
	Users       usersvc.Service
	HTTPMetrics *metrics.HTTPMetrics
	Registry    prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	var dbPing, cachePing controllers.Pinger
	if deps.DB != nil {
		dbPing = deps.DB
	}
	if deps.Redis != nil {
		cachePing = deps.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbPing, cachePing, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).
			Get("/session", controllers.AuthSession(deps.Auth, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.SnapshotSeq())

		r.Get("/ping", controllers.PrivatePing())

		dispatchers := middleware.RequireRole(logg,
			enums.UserRoleEmergencyCenter,
			enums.UserRoleEmergencyOperator,
		)
		fieldEditors := middleware.RequireRole(logg,
			enums.UserRoleEmergencyCenter,
			enums.UserRoleEmergencyOperator,
			enums.UserRoleResourcePersonnel,
		)
		centerOnly := middleware.RequireRole(logg, enums.UserRoleEmergencyCenter)

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", controllers.ListAlerts(deps.Alerts, logg))
			r.With(dispatchers).Post("/", controllers.CreateAlert(deps.Alerts, logg))
			r.Route("/{alertID}", func(r chi.Router) {
				r.Get("/", controllers.GetAlert(deps.Alerts, logg))
				r.With(dispatchers).Patch("/", controllers.UpdateAlert(deps.Alerts, logg))
				r.With(dispatchers).Delete("/", controllers.DeleteAlert(deps.Alerts, logg))
				r.With(dispatchers).Post("/assign", controllers.AssignAlertResources(deps.Alerts, logg))
			})
		})

		resourceRoutes := func(r chi.Router) {
			r.Get("/", controllers.ListResources(deps.Resources, logg))
			r.With(dispatchers).Post("/", controllers.CreateResource(deps.Resources, logg))
			r.Route("/{resourceID}", func(r chi.Router) {
				r.Get("/", controllers.GetResource(deps.Resources, logg))
				r.Get("/assignments", controllers.ListResourceAssignments(deps.Resources, logg))
				r.With(fieldEditors).Patch("/", controllers.UpdateResource(deps.Resources, logg))
				r.With(dispatchers).Delete("/", controllers.DeleteResource(deps.Resources, logg))
			})
		}
		r.Route("/resources", resourceRoutes)
		// Legacy alias kept for older dashboard builds.
		r.Route("/devices", resourceRoutes)

		r.Get("/stats", controllers.GetStats(deps.Stats, logg))

		r.Route("/users", func(r chi.Router) {
			r.Use(centerOnly)
			r.Get("/", controllers.ListUsers(deps.Users, logg))
			r.Post("/", controllers.CreateUser(deps.Users, logg))
			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", controllers.GetUser(deps.Users, logg))
				r.Patch("/", controllers.UpdateUser(deps.Users, logg))
				r.Delete("/", controllers.DeleteUser(deps.Users, logg))
			})
		})
	})

	return r
}
