package enums

import "fmt"

// AlertStatus is the lifecycle state of an emergency alert.
type AlertStatus string

const (
	AlertStatusActive   AlertStatus = "Active"
	AlertStatusPending  AlertStatus = "Pending"
	AlertStatusSolved   AlertStatus = "Solved"
	AlertStatusArchived AlertStatus = "Archived"
)

var validAlertStatuses = []AlertStatus{
	AlertStatusActive,
	AlertStatusPending,
	AlertStatusSolved,
	AlertStatusArchived,
}

// String implements fmt.Stringer.
func (s AlertStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known AlertStatus.
func (s AlertStatus) IsValid() bool {
	for _, candidate := range validAlertStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsResolved reports whether the alert no longer needs response.
// Resolved alerts sort after every unresolved one regardless of priority.
func (s AlertStatus) IsResolved() bool {
	return s == AlertStatusSolved || s == AlertStatusArchived
}

// ParseAlertStatus converts raw input into an AlertStatus.
func ParseAlertStatus(value string) (AlertStatus, error) {
	for _, candidate := range validAlertStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid alert status %q", value)
}
