package enums

import "fmt"

// EmergencyType categorizes what kind of incident an alert describes.
type EmergencyType string

const (
	EmergencyTypeFire            EmergencyType = "Fire"
	EmergencyTypeMedical         EmergencyType = "Medical"
	EmergencyTypeAccident        EmergencyType = "Accident"
	EmergencyTypeNaturalDisaster EmergencyType = "Natural Disaster"
	EmergencyTypeOther           EmergencyType = "Other"
)

var validEmergencyTypes = []EmergencyType{
	EmergencyTypeFire,
	EmergencyTypeMedical,
	EmergencyTypeAccident,
	EmergencyTypeNaturalDisaster,
	EmergencyTypeOther,
}

// IsValid reports whether the value is a known EmergencyType.
func (e EmergencyType) IsValid() bool {
	for _, candidate := range validEmergencyTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEmergencyType converts raw input into an EmergencyType.
func ParseEmergencyType(value string) (EmergencyType, error) {
	for _, candidate := range validEmergencyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid emergency type %q", value)
}
