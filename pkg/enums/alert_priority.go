package enums

import "fmt"

// AlertPriority is the triage urgency assigned to an alert.
type AlertPriority string

const (
	AlertPriorityCritical AlertPriority = "Critical"
	AlertPriorityHigh     AlertPriority = "High"
	AlertPriorityMedium   AlertPriority = "Medium"
	AlertPriorityLow      AlertPriority = "Low"
)

var validAlertPriorities = []AlertPriority{
	AlertPriorityCritical,
	AlertPriorityHigh,
	AlertPriorityMedium,
	AlertPriorityLow,
}

var alertPriorityRanks = map[AlertPriority]int{
	AlertPriorityCritical: 4,
	AlertPriorityHigh:     3,
	AlertPriorityMedium:   2,
	AlertPriorityLow:      1,
}

// String implements fmt.Stringer.
func (p AlertPriority) String() string {
	return string(p)
}

// IsValid reports whether the value is a known AlertPriority.
func (p AlertPriority) IsValid() bool {
	_, ok := alertPriorityRanks[p]
	return ok
}

// Rank returns the numeric urgency used for ordering. Unknown priorities
// rank 0 so they fall behind every recognized value instead of failing.
func (p AlertPriority) Rank() int {
	return alertPriorityRanks[p]
}

// ParseAlertPriority converts raw input into an AlertPriority.
func ParseAlertPriority(value string) (AlertPriority, error) {
	for _, candidate := range validAlertPriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid alert priority %q", value)
}
