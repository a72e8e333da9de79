package enums

import "fmt"

// ResourceType identifies the kind of field unit.
type ResourceType string

const (
	ResourceTypeUnknown   ResourceType = "Unknown"
	ResourceTypeAmbulance ResourceType = "Ambulance"
	ResourceTypePolice    ResourceType = "Police"
	ResourceTypeFiretruck ResourceType = "Firetruck"
)

var validResourceTypes = []ResourceType{
	ResourceTypeUnknown,
	ResourceTypeAmbulance,
	ResourceTypePolice,
	ResourceTypeFiretruck,
}

// IsValid reports whether the value is a known ResourceType.
func (t ResourceType) IsValid() bool {
	for _, candidate := range validResourceTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseResourceType converts raw input into a ResourceType.
func ParseResourceType(value string) (ResourceType, error) {
	for _, candidate := range validResourceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid resource type %q", value)
}
