package rbac_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DigitariaWebs/puneet-sub015/internal/rbac"
	_ "github.com/DigitariaWebs/puneet-sub015/testing"
)

func newTestRouter(fallback rbac.Role) chi.Router {
	engine := rbac.NewEngine(rbac.DefaultCatalog())
	routes := rbac.NewAccessEvaluator(engine, false)
	routes.Register("console.revenue", rbac.RouteRule{Required: []rbac.Permission{rbac.PermViewRevenue}})
	mw := rbac.Middleware{
		Roles: rbac.NewRoleContext(fallback),
		Guard: rbac.NewGuard(engine, routes),
	}

	r := chi.NewRouter()
	r.Use(mw.WithRole)
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }
	r.With(mw.RequireAny(rbac.PermReviewBookings)).Get("/review", ok)
	r.With(mw.RequireAll(rbac.PermViewRevenue, rbac.PermExportReports)).Get("/reports", ok)
	r.With(mw.RequireRoute("console.revenue")).Get("/revenue", ok)

	rbac.NewPermissionsHandler(nil, rbac.DefaultCatalog()).MountRoutes(r)
	return r
}

func doRequest(t *testing.T, router chi.Router, path, role string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if role != "" {
		req.AddCookie(&http.Cookie{Name: rbac.SignalCookie, Value: role})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareRequireAny(t *testing.T) {
	router := newTestRouter(rbac.RoleUnresolved)

	assert.Equal(t, http.StatusNoContent, doRequest(t, router, "/review", "staff").Code)
	assert.Equal(t, http.StatusForbidden, doRequest(t, router, "/review", "customer").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, router, "/review", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, router, "/review", "garbage").Code)
}

func TestMiddlewareRequireAll(t *testing.T) {
	router := newTestRouter(rbac.RoleUnresolved)

	assert.Equal(t, http.StatusNoContent, doRequest(t, router, "/reports", "facility_admin").Code)
	assert.Equal(t, http.StatusForbidden, doRequest(t, router, "/reports", "staff").Code)
}

func TestMiddlewareRequireRoute(t *testing.T) {
	router := newTestRouter(rbac.RoleUnresolved)

	assert.Equal(t, http.StatusNoContent, doRequest(t, router, "/revenue", "super_admin").Code)
	assert.Equal(t, http.StatusForbidden, doRequest(t, router, "/revenue", "groomer").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, router, "/revenue", "").Code)
}

func TestMiddlewareHeaderSignal(t *testing.T) {
	router := newTestRouter(rbac.RoleUnresolved)

	req := httptest.NewRequest(http.MethodGet, "/review", nil)
	req.Header.Set(rbac.SignalHeader, "staff")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMiddlewareFallbackRole(t *testing.T) {
	router := newTestRouter(rbac.RoleCustomer)

	// Absent signal resolves to the least-privileged fallback, which may
	// not review bookings.
	assert.Equal(t, http.StatusForbidden, doRequest(t, router, "/review", "").Code)
}

func TestPermissionsEndpoint(t *testing.T) {
	router := newTestRouter(rbac.RoleUnresolved)

	rec := doRequest(t, router, "/me/permissions", "groomer")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Role        rbac.Role         `json:"role"`
		Resolved    bool              `json:"resolved"`
		Permissions []rbac.Permission `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, rbac.RoleGroomer, body.Role)
	assert.True(t, body.Resolved)
	assert.ElementsMatch(t, []rbac.Permission{rbac.PermViewBookings, rbac.PermViewNotifications}, body.Permissions)

	rec = doRequest(t, router, "/me/permissions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Resolved)
	assert.Empty(t, body.Permissions)
}
