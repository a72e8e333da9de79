package enums

import "fmt"

// ResourceStatus is the availability state of a field resource.
type ResourceStatus string

const (
	ResourceStatusUnknown     ResourceStatus = "Unknown"
	ResourceStatusAvailable   ResourceStatus = "Available"
	ResourceStatusBusy        ResourceStatus = "Busy"
	ResourceStatusMaintenance ResourceStatus = "Maintenance"
)

var validResourceStatuses = []ResourceStatus{
	ResourceStatusUnknown,
	ResourceStatusAvailable,
	ResourceStatusBusy,
	ResourceStatusMaintenance,
}

// String implements fmt.Stringer.
func (s ResourceStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ResourceStatus.
func (s ResourceStatus) IsValid() bool {
	for _, candidate := range validResourceStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseResourceStatus converts raw input into a ResourceStatus.
func ParseResourceStatus(value string) (ResourceStatus, error) {
	for _, candidate := range validResourceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid resource status %q", value)
}
