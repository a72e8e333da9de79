package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	alertsvc "github.com/serpcat/serp-backend/internal/alerts"
	"github.com/serpcat/serp-backend/pkg/logger"
	"github.com/serpcat/serp-backend/pkg/types"
)

type stubAlertService struct {
	created     *alertsvc.CreateAlertInput
	listInput   *alertsvc.ListAlertsInput
	assignedTo  uuid.UUID
	assignedIDs []uuid.UUID
	alert       *alertsvc.AlertDTO
	alerts      []alertsvc.AlertDTO
	err         error
}

func (s *stubAlertService) CreateAlert(_ context.Context, input alertsvc.CreateAlertInput) (*alertsvc.AlertDTO, error) {
	s.created = &input
	return s.alert, s.err
}

func (s *stubAlertService) UpdateAlert(context.Context, uuid.UUID, alertsvc.UpdateAlertInput) (*alertsvc.AlertDTO, error) {
	return s.alert, s.err
}

func (s *stubAlertService) DeleteAlert(context.Context, uuid.UUID) error {
	return s.err
}

func (s *stubAlertService) GetAlert(context.Context, uuid.UUID) (*alertsvc.AlertDTO, error) {
	return s.alert, s.err
}

func (s *stubAlertService) ListAlerts(_ context.Context, input alertsvc.ListAlertsInput) ([]alertsvc.AlertDTO, error) {
	s.listInput = &input
	return s.alerts, s.err
}

func (s *stubAlertService) AssignResources(_ context.Context, alertID uuid.UUID, resourceIDs []uuid.UUID) (*alertsvc.AlertDTO, error) {
	s.assignedTo = alertID
	s.assignedIDs = resourceIDs
	return s.alert, s.err
}

func testControllerLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func withAlertParam(req *http.Request, alertID string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("alertID", alertID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateAlertAppliesDefaults(t *testing.T) {
	stub := &stubAlertService{alert: &alertsvc.AlertDTO{ID: uuid.New()}}
	body := strings.NewReader(`{"name":"Warehouse fire","description":"Smoke visible","latitude":40.4,"longitude":-3.7}`)
	req := httptest.NewRequest(http.MethodPost, "/api/alerts", body)
	rec := httptest.NewRecorder()

	CreateAlert(stub, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if stub.created == nil {
		t.Fatal("expected CreateAlert to be invoked")
	}
	if stub.created.Status != nil || stub.created.Priority != nil {
		t.Fatal("status and priority must stay unset so the service applies defaults")
	}
}

func TestCreateAlertRejectsUnknownPriority(t *testing.T) {
	stub := &stubAlertService{}
	body := strings.NewReader(`{"name":"x","description":"y","latitude":1,"longitude":1,"priority":"urgent"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/alerts", body)
	rec := httptest.NewRecorder()

	CreateAlert(stub, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if stub.created != nil {
		t.Fatal("service must not be reached with an invalid priority")
	}
}

func TestListAlertsParsesSortDirection(t *testing.T) {
	stub := &stubAlertService{alerts: []alertsvc.AlertDTO{}}
	req := httptest.NewRequest(http.MethodGet, "/api/alerts?sort=asc", nil)
	rec := httptest.NewRecorder()

	ListAlerts(stub, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if stub.listInput == nil || stub.listInput.Direction != alertsvc.SortAsc {
		t.Fatalf("expected ascending direction, got %+v", stub.listInput)
	}
}

func TestListAlertsRejectsUnknownStatus(t *testing.T) {
	stub := &stubAlertService{}
	req := httptest.NewRequest(http.MethodGet, "/api/alerts?status=open", nil)
	rec := httptest.NewRecorder()

	ListAlerts(stub, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAssignAlertResources(t *testing.T) {
	alertID := uuid.New()
	first := uuid.New()
	second := uuid.New()
	stub := &stubAlertService{alert: &alertsvc.AlertDTO{ID: alertID, ResourceIDs: []uuid.UUID{first, second}}}

	payload := `{"resourcesIDs":["` + first.String() + `","` + second.String() + `"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/alerts/"+alertID.String()+"/assign", strings.NewReader(payload))
	req = withAlertParam(req, alertID.String())
	rec := httptest.NewRecorder()

	AssignAlertResources(stub, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if stub.assignedTo != alertID {
		t.Fatalf("expected alert %s got %s", alertID, stub.assignedTo)
	}
	if len(stub.assignedIDs) != 2 {
		t.Fatalf("expected 2 resource ids got %d", len(stub.assignedIDs))
	}
}

func TestAssignAlertResourcesRejectsBadID(t *testing.T) {
	alertID := uuid.New()
	stub := &stubAlertService{}

	req := httptest.NewRequest(http.MethodPost, "/api/alerts/"+alertID.String()+"/assign", strings.NewReader(`{"resourcesIDs":["not-a-uuid"]}`))
	req = withAlertParam(req, alertID.String())
	rec := httptest.NewRecorder()

	AssignAlertResources(stub, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if stub.assignedIDs != nil {
		t.Fatal("service must not be reached with an invalid resource id")
	}
}

func TestAssignAlertResourcesEmptySetClears(t *testing.T) {
	alertID := uuid.New()
	stub := &stubAlertService{alert: &alertsvc.AlertDTO{ID: alertID, ResourceIDs: []uuid.UUID{}}}

	req := httptest.NewRequest(http.MethodPost, "/api/alerts/"+alertID.String()+"/assign", strings.NewReader(`{"resourcesIDs":[]}`))
	req = withAlertParam(req, alertID.String())
	rec := httptest.NewRecorder()

	AssignAlertResources(stub, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if stub.assignedIDs == nil || len(stub.assignedIDs) != 0 {
		t.Fatalf("expected empty id set, got %v", stub.assignedIDs)
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
}

func TestGetAlertRejectsInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/alerts/nope", nil)
	req = withAlertParam(req, "nope")
	rec := httptest.NewRecorder()

	GetAlert(&stubAlertService{}, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
