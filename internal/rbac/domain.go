// Package rbac resolves console roles and evaluates permission guards.
package rbac

import (
	"errors"
	"strings"
)

// Role is one of the closed set of console roles.
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleFacilityAdmin Role = "facility_admin"
	RoleStaff         Role = "staff"
	RoleGroomer       Role = "groomer"
	RoleCustomer      Role = "customer"

	// RoleUnresolved marks a caller whose role signal has not resolved yet.
	// It is never a member of the catalog.
	RoleUnresolved Role = ""
)

// ErrUnknownRole indicates a role value outside the closed enumeration.
var ErrUnknownRole = errors.New("rbac: unknown role")

// Roles lists the closed enumeration in privilege order, highest first.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleFacilityAdmin, RoleStaff, RoleGroomer, RoleCustomer}
}

// Valid reports whether the role belongs to the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleFacilityAdmin, RoleStaff, RoleGroomer, RoleCustomer:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a raw signal value into a Role.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return RoleUnresolved, ErrUnknownRole
	}
	return role, nil
}

// Permission is an opaque capability atom. Atoms are flat names and are
// never parameterized or combined.
type Permission string

// Mode selects how a required permission set is matched.
type Mode int

const (
	// Any matches when the role holds at least one required permission.
	Any Mode = iota
	// All matches only when the role holds every required permission.
	All
)

// Decision is the three-valued outcome of a guard evaluation. Consumers
// render nothing while Indeterminate, protected content on Allowed and an
// optional fallback on Denied.
type Decision int

const (
	Indeterminate Decision = iota
	Allowed
	Denied
)

// String implements fmt.Stringer for logging.
func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	default:
		return "indeterminate"
	}
}
