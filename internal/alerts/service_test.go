package alerts

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"

	"github.com/serpcat/serp-backend/pkg/enums"
	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
	"github.com/serpcat/serp-backend/pkg/logger"
)

type fakeAssignmentStore struct {
	byAlert    map[uuid.UUID][]uuid.UUID
	replaceErr error
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{byAlert: map[uuid.UUID][]uuid.UUID{}}
}

func (f *fakeAssignmentStore) ReplaceForAlert(_ context.Context, alertID uuid.UUID, resourceIDs []uuid.UUID) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.byAlert[alertID] = resourceIDs
	return nil
}

func (f *fakeAssignmentStore) MapResourceIDsByAlerts(_ context.Context, alertIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := map[uuid.UUID][]uuid.UUID{}
	for _, id := range alertIDs {
		if ids, ok := f.byAlert[id]; ok {
			out[id] = ids
		}
	}
	return out, nil
}

type fakeResourceChecker struct {
	known map[uuid.UUID]bool
}

func (f *fakeResourceChecker) CountByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	for _, id := range ids {
		if f.known[id] {
			count++
		}
	}
	return count, nil
}

func newTestService(t *testing.T) (Service, *Repository, *fakeAssignmentStore, *fakeResourceChecker) {
	t.Helper()
	conn := setupAlertsTestDB(t)
	repo := NewRepository(conn)
	assignments := newFakeAssignmentStore()
	resources := &fakeResourceChecker{known: map[uuid.UUID]bool{}}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	svc, err := NewService(repo, assignments, resources, logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo, assignments, resources
}

func TestServiceCreateAlertDefaults(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	dto, err := svc.CreateAlert(context.Background(), CreateAlertInput{
		Name:        "warehouse fire",
		Description: "smoke visible from the street",
		Latitude:    40.0,
		Longitude:   -3.0,
	})
	if err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}
	if dto.Status != enums.AlertStatusActive {
		t.Errorf("status: got %s, want %s", dto.Status, enums.AlertStatusActive)
	}
	if dto.Priority != enums.AlertPriorityMedium {
		t.Errorf("priority: got %s, want %s", dto.Priority, enums.AlertPriorityMedium)
	}
	if dto.EmergencyType != enums.EmergencyTypeOther {
		t.Errorf("emergency type: got %s, want %s", dto.EmergencyType, enums.EmergencyTypeOther)
	}
	if dto.ResourceIDs == nil || len(dto.ResourceIDs) != 0 {
		t.Errorf("expected empty resource ids, got %v", dto.ResourceIDs)
	}
}

func TestServiceGetAlertNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.GetAlert(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestServiceUpdateAlertPartial(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	created := mustCreateTestAlert(t, repo, enums.AlertStatusActive, enums.AlertPriorityLow)

	status := enums.AlertStatusPending
	dto, err := svc.UpdateAlert(context.Background(), created.ID, UpdateAlertInput{Status: &status})
	if err != nil {
		t.Fatalf("UpdateAlert: %v", err)
	}
	if dto.Status != enums.AlertStatusPending {
		t.Errorf("status: got %s, want %s", dto.Status, enums.AlertStatusPending)
	}
	if dto.Priority != enums.AlertPriorityLow {
		t.Errorf("priority should be untouched: got %s", dto.Priority)
	}
}

func TestServiceListAlertsSorted(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	mustCreateTestAlert(t, repo, enums.AlertStatusSolved, enums.AlertPriorityCritical)
	mustCreateTestAlert(t, repo, enums.AlertStatusActive, enums.AlertPriorityLow)
	mustCreateTestAlert(t, repo, enums.AlertStatusPending, enums.AlertPriorityHigh)

	out, err := svc.ListAlerts(context.Background(), ListAlertsInput{Direction: SortDesc})
	if err != nil {
		t.Fatalf("ListAlerts: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d alerts, want 3", len(out))
	}
	if out[0].Priority != enums.AlertPriorityHigh || out[0].Status != enums.AlertStatusPending {
		t.Errorf("position 0: got %s/%s", out[0].Status, out[0].Priority)
	}
	if out[2].Status != enums.AlertStatusSolved {
		t.Errorf("resolved alert should sort last, got %s", out[2].Status)
	}
}

func TestServiceAssignResourcesReplacesSet(t *testing.T) {
	svc, repo, assignments, resources := newTestService(t)
	created := mustCreateTestAlert(t, repo, enums.AlertStatusActive, enums.AlertPriorityHigh)

	first := uuid.New()
	second := uuid.New()
	resources.known[first] = true
	resources.known[second] = true

	dto, err := svc.AssignResources(context.Background(), created.ID, []uuid.UUID{first, first, second})
	if err != nil {
		t.Fatalf("AssignResources: %v", err)
	}
	if len(dto.ResourceIDs) != 2 {
		t.Fatalf("expected duplicates removed, got %v", dto.ResourceIDs)
	}

	dto, err = svc.AssignResources(context.Background(), created.ID, []uuid.UUID{second})
	if err != nil {
		t.Fatalf("AssignResources (replace): %v", err)
	}
	if len(dto.ResourceIDs) != 1 || dto.ResourceIDs[0] != second {
		t.Fatalf("expected assignment set replaced, got %v", dto.ResourceIDs)
	}
	if got := assignments.byAlert[created.ID]; len(got) != 1 {
		t.Fatalf("store should hold the replacement set, got %v", got)
	}
}

func TestServiceAssignResourcesUnknownResource(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	created := mustCreateTestAlert(t, repo, enums.AlertStatusActive, enums.AlertPriorityHigh)

	_, err := svc.AssignResources(context.Background(), created.ID, []uuid.UUID{uuid.New()})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for unknown resource, got %v", err)
	}
}

func TestServiceAssignResourcesEmptySetClears(t *testing.T) {
	svc, repo, assignments, resources := newTestService(t)
	created := mustCreateTestAlert(t, repo, enums.AlertStatusActive, enums.AlertPriorityHigh)

	resourceID := uuid.New()
	resources.known[resourceID] = true
	if _, err := svc.AssignResources(context.Background(), created.ID, []uuid.UUID{resourceID}); err != nil {
		t.Fatalf("AssignResources: %v", err)
	}

	dto, err := svc.AssignResources(context.Background(), created.ID, nil)
	if err != nil {
		t.Fatalf("AssignResources (clear): %v", err)
	}
	if len(dto.ResourceIDs) != 0 {
		t.Fatalf("expected cleared set, got %v", dto.ResourceIDs)
	}
	if got := assignments.byAlert[created.ID]; len(got) != 0 {
		t.Fatalf("store should be cleared, got %v", got)
	}
}
