package identity

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/opshive/orgtree/internal/domain"
	"github.com/opshive/orgtree/internal/pkg/ctxlog"
	"github.com/opshive/orgtree/internal/pkg/httputil"
	"github.com/opshive/orgtree/internal/pkg/metrics"
)

// Handler handles HTTP requests for the identity module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new identity handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers public identity routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Get("/parents", h.ListParents)
	})
}

// RegisterProtectedRoutes registers routes that require authentication.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/me", h.Me)
}

// SignupRequest represents the signup request body.
type SignupRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=255"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required,oneof=admin sub-admin user"`
	ParentID *string `json:"parent_id"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the account view returned by signup and login, with the
// freshly issued bearer token. The password hash never leaves the service.
type AuthResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	ParentID  *string     `json:"parent_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	Token     string      `json:"token"`
}

func toAuthResponse(account *domain.Account, token string) AuthResponse {
	return AuthResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Role:      account.Role,
		ParentID:  account.ParentID,
		CreatedAt: account.CreatedAt,
		Token:     token,
	}
}

// Signup handles POST /auth/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	account, token, err := h.service.Signup(r.Context(), SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		ParentID: req.ParentID,
	})
	if err != nil {
		metrics.RecordAuthAttempt("signup", "failure")
		h.handleServiceError(r, w, err)
		return
	}

	metrics.RecordAuthAttempt("signup", "success")
	httputil.Success(w, http.StatusCreated, toAuthResponse(account, token))
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	account, token, err := h.service.Login(r.Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.RecordAuthAttempt("login", "failure")
		h.handleServiceError(r, w, err)
		return
	}

	metrics.RecordAuthAttempt("login", "success")
	httputil.Success(w, http.StatusOK, toAuthResponse(account, token))
}

// ListParents handles GET /auth/parents?role=. It backs the signup flow by
// listing the accounts a new sub-admin or user may attach to.
func (h *Handler) ListParents(w http.ResponseWriter, r *http.Request) {
	role := domain.Role(r.URL.Query().Get("role"))

	candidates, err := h.service.ListParentCandidates(r.Context(), role)
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.Success(w, http.StatusOK, candidates)
}

// Me handles GET /me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	account := httputil.GetAccount(r.Context())
	if account == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	httputil.Success(w, http.StatusOK, account)
}

func (h *Handler) handleServiceError(r *http.Request, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmailExists),
		errors.Is(err, ErrInvalidHierarchy),
		errors.Is(err, ErrInvalidRole):
		httputil.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		httputil.Error(w, http.StatusUnauthorized, err.Error())
	default:
		ctxlog.FromContext(r.Context()).Error("internal error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
