package stats

import (
	"github.com/serpcat/serp-backend/pkg/db/models"
	"github.com/serpcat/serp-backend/pkg/enums"
)

// Stats is the dashboard summary computed from alert and resource snapshots.
// Archived alerts are deliberately absent: the dashboard only tracks the
// working set.
type Stats struct {
	Active         int64 `json:"active"`
	Pending        int64 `json:"pending"`
	Solved         int64 `json:"solved"`
	TotalResources int64 `json:"totalResources"`
	Available      int64 `json:"available"`
	Busy           int64 `json:"busy"`
	Maintenance    int64 `json:"maintenance"`
}

// Aggregate computes the summary from in-memory snapshots. Unknown statuses
// count toward the resource total but no named bucket.
func Aggregate(alerts []models.Alert, resources []models.Resource) Stats {
	alertCounts := make(map[enums.AlertStatus]int64, 4)
	for _, alert := range alerts {
		alertCounts[alert.Status]++
	}

	resourceCounts := make(map[enums.ResourceStatus]int64, 4)
	for _, resource := range resources {
		resourceCounts[resource.Status]++
	}

	return FromCounts(alertCounts, resourceCounts, int64(len(resources)))
}

// FromCounts builds the summary from pre-grouped status counts.
func FromCounts(alerts map[enums.AlertStatus]int64, resources map[enums.ResourceStatus]int64, totalResources int64) Stats {
	return Stats{
		Active:         alerts[enums.AlertStatusActive],
		Pending:        alerts[enums.AlertStatusPending],
		Solved:         alerts[enums.AlertStatusSolved],
		TotalResources: totalResources,
		Available:      resources[enums.ResourceStatusAvailable],
		Busy:           resources[enums.ResourceStatusBusy],
		Maintenance:    resources[enums.ResourceStatusMaintenance],
	}
}
