package models

import "fmt"

// UserRole enum
type UserRole string

const (
	RoleCitizen     UserRole = "CITIZEN"
	RoleSuperAdmin  UserRole = "SUPER_ADMIN"
	RoleEngineering UserRole = "ENGINEERING"
	RoleWard        UserRole = "WARD"
	RoleWater       UserRole = "WATER"
	RoleTraffic     UserRole = "TRAFFIC"
	RoleContractor  UserRole = "CONTRACTOR"
)

// ParseRole validates a role string coming off the wire.
func ParseRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleCitizen, RoleSuperAdmin, RoleEngineering, RoleWard, RoleWater,
		RoleTraffic, RoleContractor:
		return UserRole(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Department maps a departmental role to the department tag it owns.
func (r UserRole) Department() (DepartmentType, bool) {
	switch r {
	case RoleEngineering:
		return DeptEngineering, true
	case RoleWard:
		return DeptWard, true
	case RoleWater:
		return DeptWater, true
	case RoleTraffic:
		return DeptTraffic, true
	}
	return "", false
}

// IsOfficial reports whether the role belongs to the administrative side
// of the portal (super-admin or a departmental official).
func (r UserRole) IsOfficial() bool {
	if r == RoleSuperAdmin {
		return true
	}
	_, ok := r.Department()
	return ok
}
