package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shutter-safari/api/internal/api/shared"
	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/platform/logger"
	"github.com/shutter-safari/api/internal/service"
)

// UserHandler handles account and role requests.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger

	// ignoreRequestedRole makes registration drop the role in the body so
	// new accounts always start as plain users.
	ignoreRequestedRole bool
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}
	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// IgnoreRequestedRoles makes CreateUser register every account with the
// default role regardless of the role in the request body.
func (h *UserHandler) IgnoreRequestedRoles() *UserHandler {
	h.ignoreRequestedRole = true
	return h
}

// ListUsers handles GET /users and GET /all-users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// CreateUser handles POST /users. A user whose email is already registered
// is reported with a message and nothing is written.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if h.ignoreRequestedRole && req.Role != "" {
		log.Warn("requested role ignored on registration", slog.String("role", req.Role))
		req.Role = ""
	}

	result, err := h.userService.CreateUser(r.Context(), req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if result.Existed {
		log.Debug("user already exists")
		shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "user already exists"})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"insertedId": result.InsertedID})
}

// CheckRole handles GET /users/{role}/{email}. The response is {<role>: bool}.
func (h *UserHandler) CheckRole(w http.ResponseWriter, r *http.Request) {
	role, err := domain.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	email := chi.URLParam(r, "email")

	holds, err := h.userService.CheckRole(r.Context(), callerEmail(r), email, role)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check role")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RoleCheckResponse(role, holds))
}

// UpsertUser handles PUT /user/{id}.
func (h *UserHandler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathObjectID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.userService.UpsertUser(r.Context(), id, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// DeleteUser handles DELETE /user/{id}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathObjectID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.userService.DeleteUser(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// UpdateUserRole handles PUT /update-user-role/{id} and returns the updated
// user document.
func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathObjectID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.UpdateUserRole(r.Context(), id, domain.Role(req.RoleID))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("user role updated",
		slog.String("user_id", id.Hex()),
		slog.String("role", string(user.Role)))
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}
