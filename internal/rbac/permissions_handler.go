package rbac

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DigitariaWebs/puneet-sub015/internal/platform/httpx"
)

// PermissionsHandler reports the caller's effective grants so rendering
// collaborators can decide visibility without duplicating catalog logic.
type PermissionsHandler struct {
	logger  *slog.Logger
	catalog *Catalog
}

// NewPermissionsHandler builds a PermissionsHandler instance.
func NewPermissionsHandler(logger *slog.Logger, catalog *Catalog) *PermissionsHandler {
	return &PermissionsHandler{logger: logger, catalog: catalog}
}

// MountRoutes registers permission introspection routes.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.Get("/me/permissions", h.currentPermissions)
}

type permissionsResponse struct {
	Role        Role         `json:"role"`
	Resolved    bool         `json:"resolved"`
	Permissions []Permission `json:"permissions"`
}

func (h *PermissionsHandler) currentPermissions(w http.ResponseWriter, r *http.Request) {
	role := RoleFromContext(r.Context())
	if role == RoleUnresolved {
		httpx.JSON(w, http.StatusOK, permissionsResponse{Role: RoleUnresolved, Resolved: false, Permissions: []Permission{}})
		return
	}
	perms, err := h.catalog.PermissionsFor(role)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("list permissions", slog.Any("error", err))
		}
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, permissionsResponse{Role: role, Resolved: true, Permissions: perms})
}
