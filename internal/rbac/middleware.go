package rbac

import (
	"context"
	"log/slog"
	"net/http"
)

// SignalKey is the key carrying the role signal at the HTTP edge. The
// value is set by the session collaborator as a cookie with one-year
// expiry; a header of the same shape is accepted for API callers.
const (
	SignalCookie = "user_role"
	SignalHeader = "X-User-Role"
)

type roleCtxKey struct{}

// Middleware wires role resolution and permission enforcement into the
// HTTP router.
type Middleware struct {
	Roles  RoleContext
	Guard  *Guard
	Logger *slog.Logger
}

// WithRole resolves the user_role signal and stores the outcome in the
// request context for downstream guards. Resolution never fails the
// request; a garbage signal simply stays unresolved.
func (m Middleware) WithRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(SignalHeader)
		if raw == "" {
			if cookie, err := r.Cookie(SignalCookie); err == nil {
				raw = cookie.Value
			}
		}
		role := m.Roles.Resolve(raw)
		if role == RoleUnresolved && raw != "" && m.Logger != nil {
			m.Logger.Warn("unrecognized role signal", slog.String("value", raw))
		}
		ctx := context.WithValue(r.Context(), roleCtxKey{}, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RoleFromContext returns the role resolved for the request, or
// RoleUnresolved when WithRole has not run or the signal did not resolve.
func RoleFromContext(ctx context.Context) Role {
	role, _ := ctx.Value(roleCtxKey{}).(Role)
	return role
}

// RequireAny admits the request when the caller holds at least one of the
// given permissions.
func (m Middleware) RequireAny(perms ...Permission) func(http.Handler) http.Handler {
	return m.require(Any, perms)
}

// RequireAll admits the request only when the caller holds every given
// permission.
func (m Middleware) RequireAll(perms ...Permission) func(http.Handler) http.Handler {
	return m.require(All, perms)
}

// RequireRoute admits the request per the registered rule for the route
// identifier.
func (m Middleware) RequireRoute(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.respond(w, r, next, m.Guard.Route(RoleFromContext(r.Context()), route))
		})
	}
}

func (m Middleware) require(mode Mode, perms []Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.respond(w, r, next, m.Guard.Capability(RoleFromContext(r.Context()), mode, perms...))
		})
	}
}

// respond maps the three-valued guard contract onto HTTP: Indeterminate
// means the caller has not identified itself, Denied means it has and may
// not proceed.
func (m Middleware) respond(w http.ResponseWriter, r *http.Request, next http.Handler, decision Decision) {
	switch decision {
	case Allowed:
		next.ServeHTTP(w, r)
	case Denied:
		if m.Logger != nil {
			m.Logger.Warn("access denied",
				slog.String("path", r.URL.Path),
				slog.String("role", string(RoleFromContext(r.Context()))))
		}
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	default:
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	}
}
