package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("  Facility_Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleFacilityAdmin, role)

	_, err = ParseRole("superuser")
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestCatalogUnknownRole(t *testing.T) {
	catalog := DefaultCatalog()
	_, err := catalog.PermissionsFor(Role("manager"))
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestCatalogCoversEveryRole(t *testing.T) {
	catalog := DefaultCatalog()
	for _, role := range Roles() {
		perms, err := catalog.PermissionsFor(role)
		require.NoError(t, err, "role %s", role)
		assert.NotEmpty(t, perms, "role %s", role)
	}
}

func TestCatalogImmutableAfterConstruction(t *testing.T) {
	grants := map[Role][]Permission{RoleStaff: {PermViewBookings}}
	catalog := NewCatalog(grants)
	grants[RoleStaff] = append(grants[RoleStaff], PermProcessRefund)

	engine := NewEngine(catalog)
	ok, err := engine.Evaluate(RoleStaff, []Permission{PermProcessRefund}, Any)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateAny(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	tests := []struct {
		name     string
		role     Role
		required []Permission
		want     bool
	}{
		{"groomer holds view_bookings", RoleGroomer, []Permission{PermViewBookings}, true},
		{"one of many suffices", RoleGroomer, []Permission{PermProcessRefund, PermViewBookings}, true},
		{"customer lacks revenue", RoleCustomer, []Permission{PermViewRevenue}, false},
		{"empty set is vacuously true", RoleCustomer, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Evaluate(tt.role, tt.required, Any)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateAll(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	tests := []struct {
		name     string
		role     Role
		required []Permission
		want     bool
	}{
		{"facility admin holds both", RoleFacilityAdmin, []Permission{PermViewRevenue, PermExportReports}, true},
		{"groomer misses one", RoleGroomer, []Permission{PermViewBookings, PermReviewBookings}, false},
		{"empty set is vacuously true", RoleGroomer, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Evaluate(tt.role, tt.required, All)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateMatchesCatalogAlgebra(t *testing.T) {
	catalog := DefaultCatalog()
	engine := NewEngine(catalog)
	required := []Permission{PermViewRevenue, PermViewBookings, PermRequestBooking}

	for _, role := range Roles() {
		granted, err := catalog.PermissionsFor(role)
		require.NoError(t, err)
		set := make(map[Permission]bool, len(granted))
		for _, p := range granted {
			set[p] = true
		}

		wantAny := false
		wantAll := true
		for _, p := range required {
			if set[p] {
				wantAny = true
			} else {
				wantAll = false
			}
		}

		gotAny, err := engine.Evaluate(role, required, Any)
		require.NoError(t, err)
		assert.Equal(t, wantAny, gotAny, "any mode for %s", role)

		gotAll, err := engine.Evaluate(role, required, All)
		require.NoError(t, err)
		assert.Equal(t, wantAll, gotAll, "all mode for %s", role)
	}
}

func TestEvaluateUnknownRole(t *testing.T) {
	engine := NewEngine(DefaultCatalog())
	_, err := engine.Evaluate(Role("intern"), []Permission{PermViewBookings}, Any)
	assert.ErrorIs(t, err, ErrUnknownRole)
}
