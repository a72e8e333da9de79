package enums

import "fmt"

// UserRole determines which views a session may reach.
type UserRole string

const (
	UserRoleEmergencyCenter   UserRole = "emergency_center"
	UserRoleEmergencyOperator UserRole = "emergency_operator"
	UserRoleResourcePersonnel UserRole = "resource_personnel"
)

var validUserRoles = []UserRole{
	UserRoleEmergencyCenter,
	UserRoleEmergencyOperator,
	UserRoleResourcePersonnel,
}

// LoginRoute is where unauthenticated clients are sent.
const LoginRoute = "/login"

var defaultRoutesByRole = map[UserRole]string{
	UserRoleEmergencyCenter:   "/dashboard",
	UserRoleEmergencyOperator: "/operator",
	UserRoleResourcePersonnel: "/resource",
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	_, ok := defaultRoutesByRole[r]
	return ok
}

// DefaultRoute returns the landing route for the role. Unknown roles fall
// back to the login route so a bad claim never grants a protected view.
func (r UserRole) DefaultRoute() string {
	if route, ok := defaultRoutesByRole[r]; ok {
		return route
	}
	return LoginRoute
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
