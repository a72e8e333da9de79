package alerts

import (
	"sort"
	"strings"

	"github.com/serpcat/serp-backend/pkg/db/models"
)

// SortDirection orders alerts by priority rank.
type SortDirection string

const (
	SortDesc SortDirection = "desc"
	SortAsc  SortDirection = "asc"
)

// ParseSortDirection normalizes raw query input. Anything that is not "asc"
// falls back to descending, the dashboard default.
func ParseSortDirection(value string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(value), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// SortByPriority orders alerts for triage. Resolved alerts (Solved or
// Archived) always sink below unresolved ones no matter the direction; the
// direction only flips the priority comparison inside each partition. The
// sort is stable, so ties keep their incoming order.
func SortByPriority(alerts []models.Alert, direction SortDirection) []models.Alert {
	sorted := append([]models.Alert(nil), alerts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		aResolved := a.Status.IsResolved()
		bResolved := b.Status.IsResolved()
		if aResolved != bResolved {
			return !aResolved
		}

		aRank := a.Priority.Rank()
		bRank := b.Priority.Rank()
		if aRank == bRank {
			return false
		}
		if direction == SortAsc {
			return aRank < bRank
		}
		return aRank > bRank
	})
	return sorted
}
