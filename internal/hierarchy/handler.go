package hierarchy

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/opshive/orgtree/internal/domain"
	"github.com/opshive/orgtree/internal/pkg/ctxlog"
	"github.com/opshive/orgtree/internal/pkg/httputil"
)

// Handler handles HTTP requests for the hierarchy module.
type Handler struct {
	service *Service
}

// NewHandler creates a new hierarchy handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers hierarchy routes. Callers must wrap them with
// authentication and an admin/sub-admin role gate.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/tree", h.GetTree)
}

// GetTree handles GET /tree. The response is the array form matching the
// requester's role: sub-admin branches with nested users for an admin, a flat
// user list for a sub-admin.
func (h *Handler) GetTree(w http.ResponseWriter, r *http.Request) {
	account := httputil.GetAccount(r.Context())
	if account == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tree, err := h.service.VisibleTree(r.Context(), account)
	if err != nil {
		if errors.Is(err, ErrTreeForbidden) {
			httputil.Error(w, http.StatusForbidden, err.Error())
			return
		}
		ctxlog.FromContext(r.Context()).Error("internal error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if account.Role == domain.RoleAdmin {
		httputil.Success(w, http.StatusOK, tree.Branches)
		return
	}
	httputil.Success(w, http.StatusOK, tree.Users)
}
