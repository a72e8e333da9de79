package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/serpcat/serp-backend/pkg/enums"
	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
)

type fakeAlertCounter struct {
	counts map[enums.AlertStatus]int64
	err    error
}

func (f *fakeAlertCounter) CountByStatus(context.Context) (map[enums.AlertStatus]int64, error) {
	return f.counts, f.err
}

type fakeResourceCounter struct {
	counts map[enums.ResourceStatus]int64
	err    error
}

func (f *fakeResourceCounter) CountByStatus(context.Context) (map[enums.ResourceStatus]int64, error) {
	return f.counts, f.err
}

func TestGetStats(t *testing.T) {
	svc, err := NewService(
		&fakeAlertCounter{counts: map[enums.AlertStatus]int64{
			enums.AlertStatusActive:   3,
			enums.AlertStatusPending:  1,
			enums.AlertStatusSolved:   2,
			enums.AlertStatusArchived: 9,
		}},
		&fakeResourceCounter{counts: map[enums.ResourceStatus]int64{
			enums.ResourceStatusAvailable:   4,
			enums.ResourceStatusBusy:        2,
			enums.ResourceStatusMaintenance: 1,
			enums.ResourceStatusUnknown:     3,
		}},
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	got, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	want := Stats{
		Active:         3,
		Pending:        1,
		Solved:         2,
		TotalResources: 10,
		Available:      4,
		Busy:           2,
		Maintenance:    1,
	}
	if *got != want {
		t.Fatalf("got %+v, want %+v", *got, want)
	}
}

func TestGetStatsCounterFailure(t *testing.T) {
	svc, err := NewService(
		&fakeAlertCounter{err: errors.New("db gone")},
		&fakeResourceCounter{},
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetStats(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected INTERNAL_ERROR, got %v", err)
	}
}
