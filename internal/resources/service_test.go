package resources

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"

	"github.com/serpcat/serp-backend/pkg/db/models"
	"github.com/serpcat/serp-backend/pkg/enums"
	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
	"github.com/serpcat/serp-backend/pkg/logger"
)

type fakeAssignmentReader struct {
	byResource map[uuid.UUID][]models.Assignment
}

func (f *fakeAssignmentReader) ListByResource(_ context.Context, resourceID uuid.UUID) ([]models.Assignment, error) {
	return f.byResource[resourceID], nil
}

func newTestService(t *testing.T) (Service, *Repository, *fakeAssignmentReader) {
	t.Helper()
	conn := setupResourcesTestDB(t)
	repo := NewRepository(conn)
	reader := &fakeAssignmentReader{byResource: map[uuid.UUID][]models.Assignment{}}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	svc, err := NewService(repo, reader, logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo, reader
}

func TestServiceCreateResourceDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)

	dto, err := svc.CreateResource(context.Background(), CreateResourceInput{Name: "unit 12"})
	if err != nil {
		t.Fatalf("CreateResource: %v", err)
	}
	if dto.ResourceType != enums.ResourceTypeUnknown {
		t.Errorf("type: got %s, want %s", dto.ResourceType, enums.ResourceTypeUnknown)
	}
	if dto.Status != enums.ResourceStatusUnknown {
		t.Errorf("status: got %s, want %s", dto.Status, enums.ResourceStatusUnknown)
	}
}

func TestServiceUpdateResourcePartial(t *testing.T) {
	svc, repo, _ := newTestService(t)
	created := mustCreateTestResource(t, repo, enums.ResourceTypeAmbulance, enums.ResourceStatusAvailable)

	status := enums.ResourceStatusMaintenance
	dto, err := svc.UpdateResource(context.Background(), created.ID, UpdateResourceInput{Status: &status})
	if err != nil {
		t.Fatalf("UpdateResource: %v", err)
	}
	if dto.Status != enums.ResourceStatusMaintenance {
		t.Errorf("status: got %s, want %s", dto.Status, enums.ResourceStatusMaintenance)
	}
	if dto.ResourceType != enums.ResourceTypeAmbulance {
		t.Errorf("type should be untouched: got %s", dto.ResourceType)
	}
}

func TestServiceGetResourceNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetResource(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestServiceListAssignments(t *testing.T) {
	svc, repo, reader := newTestService(t)
	created := mustCreateTestResource(t, repo, enums.ResourceTypePolice, enums.ResourceStatusBusy)

	alertID := uuid.New()
	reader.byResource[created.ID] = []models.Assignment{
		{ID: uuid.New(), AlertID: alertID, ResourceID: created.ID},
	}

	out, err := svc.ListAssignments(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("ListAssignments: %v", err)
	}
	if len(out) != 1 || out[0].AlertID != alertID {
		t.Fatalf("unexpected assignments: %+v", out)
	}
}

func TestServiceListAssignmentsUnknownResource(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ListAssignments(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
