package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/serpcat/serp-backend/internal/assignments"
	"github.com/serpcat/serp-backend/pkg/db/models"
	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
	"github.com/serpcat/serp-backend/pkg/logger"
)

// Service exposes resource management operations.
type Service interface {
	CreateResource(ctx context.Context, input CreateResourceInput) (*ResourceDTO, error)
	UpdateResource(ctx context.Context, id uuid.UUID, input UpdateResourceInput) (*ResourceDTO, error)
	DeleteResource(ctx context.Context, id uuid.UUID) error
	GetResource(ctx context.Context, id uuid.UUID) (*ResourceDTO, error)
	ListResources(ctx context.Context, input ListResourcesInput) ([]ResourceDTO, error)
	ListAssignments(ctx context.Context, resourceID uuid.UUID) ([]assignments.AssignmentDTO, error)
}

type assignmentReader interface {
	ListByResource(ctx context.Context, resourceID uuid.UUID) ([]models.Assignment, error)
}

type service struct {
	repo        *Repository
	assignments assignmentReader
	logg        *logger.Logger
}

// NewService constructs a resource service instance.
func NewService(repo *Repository, assignmentsRepo assignmentReader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("resource repository required")
	}
	if assignmentsRepo == nil {
		return nil, fmt.Errorf("assignment reader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, assignments: assignmentsRepo, logg: logg}, nil
}

func (s *service) CreateResource(ctx context.Context, input CreateResourceInput) (*ResourceDTO, error) {
	created, err := s.repo.Create(ctx, input.ToModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating resource")
	}

	ctx = s.logg.WithResourceID(ctx, created.ID.String())
	s.logg.Info(ctx, "resource registered")
	return FromModel(created), nil
}

func (s *service) UpdateResource(ctx context.Context, id uuid.UUID, input UpdateResourceInput) (*ResourceDTO, error) {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, resourceLookupError(err)
	}

	input.ApplyTo(resource)
	updated, err := s.repo.Update(ctx, resource)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating resource")
	}
	return FromModel(updated), nil
}

func (s *service) DeleteResource(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return resourceLookupError(err)
	}
	ctx = s.logg.WithResourceID(ctx, id.String())
	s.logg.Info(ctx, "resource deleted")
	return nil
}

func (s *service) GetResource(ctx context.Context, id uuid.UUID) (*ResourceDTO, error) {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, resourceLookupError(err)
	}
	return FromModel(resource), nil
}

func (s *service) ListResources(ctx context.Context, input ListResourcesInput) ([]ResourceDTO, error) {
	rows, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing resources")
	}

	out := make([]ResourceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

// ListAssignments returns the resource's current assignments. The resource
// must exist; an empty set is not an error.
func (s *service) ListAssignments(ctx context.Context, resourceID uuid.UUID) ([]assignments.AssignmentDTO, error) {
	if _, err := s.repo.FindByID(ctx, resourceID); err != nil {
		return nil, resourceLookupError(err)
	}

	rows, err := s.assignments.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing resource assignments")
	}
	return assignments.FromModels(rows), nil
}

func resourceLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "resource not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading resource")
}
