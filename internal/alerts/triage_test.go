package alerts

import (
	"testing"

	"github.com/google/uuid"

	"github.com/serpcat/serp-backend/pkg/db/models"
	"github.com/serpcat/serp-backend/pkg/enums"
)

func alert(name string, status enums.AlertStatus, priority enums.AlertPriority) models.Alert {
	return models.Alert{ID: uuid.New(), Name: name, Status: status, Priority: priority}
}

func names(alerts []models.Alert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.Name
	}
	return out
}

func assertOrder(t *testing.T, got []models.Alert, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d alerts, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("position %d: got %q, want %q (full order %v)", i, got[i].Name, name, names(got))
		}
	}
}

func TestSortByPriorityDescending(t *testing.T) {
	input := []models.Alert{
		alert("solved-critical", enums.AlertStatusSolved, enums.AlertPriorityCritical),
		alert("active-low", enums.AlertStatusActive, enums.AlertPriorityLow),
		alert("pending-high", enums.AlertStatusPending, enums.AlertPriorityHigh),
	}

	got := SortByPriority(input, SortDesc)
	assertOrder(t, got, []string{"pending-high", "active-low", "solved-critical"})
}

func TestSortByPriorityResolvedSinkBothDirections(t *testing.T) {
	input := []models.Alert{
		alert("archived-critical", enums.AlertStatusArchived, enums.AlertPriorityCritical),
		alert("solved-high", enums.AlertStatusSolved, enums.AlertPriorityHigh),
		alert("active-low", enums.AlertStatusActive, enums.AlertPriorityLow),
		alert("active-critical", enums.AlertStatusActive, enums.AlertPriorityCritical),
	}

	desc := SortByPriority(input, SortDesc)
	assertOrder(t, desc, []string{"active-critical", "active-low", "archived-critical", "solved-high"})

	asc := SortByPriority(input, SortAsc)
	assertOrder(t, asc, []string{"active-low", "active-critical", "solved-high", "archived-critical"})
}

func TestSortByPriorityIsStableForTies(t *testing.T) {
	input := []models.Alert{
		alert("first-medium", enums.AlertStatusActive, enums.AlertPriorityMedium),
		alert("second-medium", enums.AlertStatusPending, enums.AlertPriorityMedium),
		alert("third-medium", enums.AlertStatusActive, enums.AlertPriorityMedium),
	}

	for _, direction := range []SortDirection{SortDesc, SortAsc} {
		got := SortByPriority(input, direction)
		assertOrder(t, got, []string{"first-medium", "second-medium", "third-medium"})
	}
}

func TestSortByPriorityIsIdempotent(t *testing.T) {
	input := []models.Alert{
		alert("solved-low", enums.AlertStatusSolved, enums.AlertPriorityLow),
		alert("active-high", enums.AlertStatusActive, enums.AlertPriorityHigh),
		alert("pending-critical", enums.AlertStatusPending, enums.AlertPriorityCritical),
		alert("active-medium", enums.AlertStatusActive, enums.AlertPriorityMedium),
	}

	once := SortByPriority(input, SortDesc)
	twice := SortByPriority(once, SortDesc)
	assertOrder(t, twice, names(once))
}

func TestSortByPriorityUnknownPriorityRanksLowest(t *testing.T) {
	input := []models.Alert{
		alert("active-mystery", enums.AlertStatusActive, enums.AlertPriority("Mystery")),
		alert("active-low", enums.AlertStatusActive, enums.AlertPriorityLow),
	}

	got := SortByPriority(input, SortDesc)
	assertOrder(t, got, []string{"active-low", "active-mystery"})

	got = SortByPriority(input, SortAsc)
	assertOrder(t, got, []string{"active-mystery", "active-low"})
}

func TestSortByPriorityDoesNotMutateInput(t *testing.T) {
	input := []models.Alert{
		alert("b", enums.AlertStatusActive, enums.AlertPriorityLow),
		alert("a", enums.AlertStatusActive, enums.AlertPriorityCritical),
	}

	_ = SortByPriority(input, SortDesc)
	assertOrder(t, input, []string{"b", "a"})
}

func TestParseSortDirection(t *testing.T) {
	tests := []struct {
		raw  string
		want SortDirection
	}{
		{"asc", SortAsc},
		{"ASC", SortAsc},
		{" asc ", SortAsc},
		{"desc", SortDesc},
		{"", SortDesc},
		{"sideways", SortDesc},
	}
	for _, tc := range tests {
		if got := ParseSortDirection(tc.raw); got != tc.want {
			t.Errorf("ParseSortDirection(%q): got %q, want %q", tc.raw, got, tc.want)
		}
	}
}
