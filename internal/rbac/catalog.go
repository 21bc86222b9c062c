package rbac

import "sort"

// Capability atoms understood by the console.
const (
	PermProcessRefund     Permission = "process_refund"
	PermViewRevenue       Permission = "view_revenue"
	PermExportReports     Permission = "export_reports"
	PermManageFacilities  Permission = "manage_facilities"
	PermManageStaff       Permission = "manage_staff"
	PermManageServices    Permission = "manage_services"
	PermManageBookings    Permission = "manage_bookings"
	PermReviewBookings    Permission = "review_bookings"
	PermViewBookings      Permission = "view_bookings"
	PermViewNotifications Permission = "view_notifications"
	PermRequestBooking    Permission = "request_booking"
	PermCancelOwnBooking  Permission = "cancel_own_booking"
)

// Catalog maps each role to its granted permission set. The mapping is
// fixed at construction and immutable afterwards; there is no runtime
// grant or revoke.
type Catalog struct {
	grants map[Role]map[Permission]struct{}
}

// NewCatalog builds a catalog from role grants. The input is copied so
// later mutation of the argument cannot change the catalog.
func NewCatalog(grants map[Role][]Permission) *Catalog {
	c := &Catalog{grants: make(map[Role]map[Permission]struct{}, len(grants))}
	for role, perms := range grants {
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		c.grants[role] = set
	}
	return c
}

// DefaultCatalog returns the built-in role to permission mapping.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[Role][]Permission{
		RoleSuperAdmin: {
			PermProcessRefund, PermViewRevenue, PermExportReports,
			PermManageFacilities, PermManageStaff, PermManageServices,
			PermManageBookings, PermReviewBookings, PermViewBookings,
			PermViewNotifications,
		},
		RoleFacilityAdmin: {
			PermProcessRefund, PermViewRevenue, PermExportReports,
			PermManageStaff, PermManageServices,
			PermManageBookings, PermReviewBookings, PermViewBookings,
			PermViewNotifications,
		},
		RoleStaff: {
			PermManageBookings, PermReviewBookings, PermViewBookings,
			PermViewNotifications,
		},
		RoleGroomer: {
			PermViewBookings, PermViewNotifications,
		},
		RoleCustomer: {
			PermRequestBooking, PermCancelOwnBooking,
		},
	})
}

// PermissionsFor returns the permission set granted to role, sorted for
// stable output. Unknown roles fail with ErrUnknownRole so callers cannot
// mistake an unresolved role for an explicitly empty grant.
func (c *Catalog) PermissionsFor(role Role) ([]Permission, error) {
	set, err := c.grantSet(role)
	if err != nil {
		return nil, err
	}
	perms := make([]Permission, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms, nil
}

// grantSet is the lookup primitive shared with the engine. A valid role
// absent from the grants map holds zero permissions, which is distinct
// from an unknown role.
func (c *Catalog) grantSet(role Role) (map[Permission]struct{}, error) {
	if !role.Valid() {
		return nil, ErrUnknownRole
	}
	return c.grants[role], nil
}
