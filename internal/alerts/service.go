package alerts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/serpcat/serp-backend/pkg/db"
	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
	"github.com/serpcat/serp-backend/pkg/logger"
)

// Service exposes alert management operations.
type Service interface {
	CreateAlert(ctx context.Context, input CreateAlertInput) (*AlertDTO, error)
	UpdateAlert(ctx context.Context, id uuid.UUID, input UpdateAlertInput) (*AlertDTO, error)
	DeleteAlert(ctx context.Context, id uuid.UUID) error
	GetAlert(ctx context.Context, id uuid.UUID) (*AlertDTO, error)
	ListAlerts(ctx context.Context, input ListAlertsInput) ([]AlertDTO, error)
	AssignResources(ctx context.Context, alertID uuid.UUID, resourceIDs []uuid.UUID) (*AlertDTO, error)
}

type assignmentStore interface {
	ReplaceForAlert(ctx context.Context, alertID uuid.UUID, resourceIDs []uuid.UUID) error
	MapResourceIDsByAlerts(ctx context.Context, alertIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
}

type resourceChecker interface {
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type service struct {
	repo        *Repository
	assignments assignmentStore
	resources   resourceChecker
	logg        *logger.Logger
}

// NewService constructs an alert service instance.
func NewService(repo *Repository, assignments assignmentStore, resources resourceChecker, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("alert repository required")
	}
	if assignments == nil {
		return nil, fmt.Errorf("assignment store required")
	}
	if resources == nil {
		return nil, fmt.Errorf("resource checker required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, assignments: assignments, resources: resources, logg: logg}, nil
}

func (s *service) CreateAlert(ctx context.Context, input CreateAlertInput) (*AlertDTO, error) {
	alert := input.ToModel()
	created, err := s.repo.Create(ctx, alert)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating alert")
	}

	ctx = s.logg.WithAlertID(ctx, created.ID.String())
	s.logg.Info(ctx, "alert created")
	return FromModel(created, nil), nil
}

func (s *service) UpdateAlert(ctx context.Context, id uuid.UUID, input UpdateAlertInput) (*AlertDTO, error) {
	alert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, alertLookupError(err)
	}

	input.ApplyTo(alert)
	updated, err := s.repo.Update(ctx, alert)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating alert")
	}

	resourceIDs, err := s.resourceIDsFor(ctx, updated.ID)
	if err != nil {
		return nil, err
	}
	return FromModel(updated, resourceIDs), nil
}

func (s *service) DeleteAlert(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return alertLookupError(err)
	}
	ctx = s.logg.WithAlertID(ctx, id.String())
	s.logg.Info(ctx, "alert deleted")
	return nil
}

func (s *service) GetAlert(ctx context.Context, id uuid.UUID) (*AlertDTO, error) {
	alert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, alertLookupError(err)
	}

	resourceIDs, err := s.resourceIDsFor(ctx, alert.ID)
	if err != nil {
		return nil, err
	}
	return FromModel(alert, resourceIDs), nil
}

func (s *service) ListAlerts(ctx context.Context, input ListAlertsInput) ([]AlertDTO, error) {
	rows, err := s.repo.List(ctx, input.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing alerts")
	}

	sorted := SortByPriority(rows, input.Direction)

	alertIDs := make([]uuid.UUID, 0, len(sorted))
	for _, alert := range sorted {
		alertIDs = append(alertIDs, alert.ID)
	}
	byAlert, err := s.assignments.MapResourceIDsByAlerts(ctx, alertIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading alert assignments")
	}

	out := make([]AlertDTO, 0, len(sorted))
	for i := range sorted {
		out = append(out, *FromModel(&sorted[i], byAlert[sorted[i].ID]))
	}
	return out, nil
}

// AssignResources replaces the alert's assignment set. Every referenced
// resource must exist; on any miss nothing changes.
func (s *service) AssignResources(ctx context.Context, alertID uuid.UUID, resourceIDs []uuid.UUID) (*AlertDTO, error) {
	alert, err := s.repo.FindByID(ctx, alertID)
	if err != nil {
		return nil, alertLookupError(err)
	}

	unique := dedupe(resourceIDs)
	if len(unique) > 0 {
		count, err := s.resources.CountByIDs(ctx, unique)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking resources")
		}
		if count != int64(len(unique)) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "one or more resources not found")
		}
	}

	if err := s.assignments.ReplaceForAlert(ctx, alertID, unique); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "duplicate assignment")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assigning resources")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"alert_id":       alertID.String(),
		"resource_count": len(unique),
	})
	s.logg.Info(ctx, "alert assignments replaced")

	return FromModel(alert, unique), nil
}

func (s *service) resourceIDsFor(ctx context.Context, alertID uuid.UUID) ([]uuid.UUID, error) {
	byAlert, err := s.assignments.MapResourceIDsByAlerts(ctx, []uuid.UUID{alertID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading alert assignments")
	}
	return byAlert[alertID], nil
}

func alertLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "alert not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading alert")
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
