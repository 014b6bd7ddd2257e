package handlers

import (
	"net/http"

	"github.com/copapymes/league-system/middleware"
	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(us services.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// CreateHandler handles POST /users
func (h *UserHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateUserInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	// Managers may only create player accounts.
	callerRole, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}
	if callerRole == models.RoleManager && input.Role != models.RolePlayer {
		forbiddenResponse(w, "managers may only create player accounts")
		return
	}

	user, err := h.userService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusCreated, user, "user created")
}

// GetByIDHandler handles GET /users/{userID}
func (h *UserHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, user, "")
}

// ListHandler handles GET /users
func (h *UserHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var roleFilter *models.UserRole
	if roleStr := r.URL.Query().Get("role"); roleStr != "" {
		role := models.UserRole(roleStr)
		roleFilter = &role
	}

	users, err := h.userService.List(r.Context(), roleFilter)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, users, "")
}

// StatsHandler handles GET /users/stats
func (h *UserHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.userService.Stats(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, stats, "")
}

// UpdateHandler handles PUT /users/{userID}
func (h *UserHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.UpdateUserInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	user, err := h.userService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, user, "user updated")
}

// DeleteHandler handles DELETE /users/{userID}
func (h *UserHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, nil, "user deleted")
}
