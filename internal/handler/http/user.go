package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	CreateUser(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	DeactivateUser(w http.ResponseWriter, r *http.Request)
	ActivateUser(w http.ResponseWriter, r *http.Request)
	GetPermissions(w http.ResponseWriter, r *http.Request)
	ReplacePermissions(w http.ResponseWriter, r *http.Request)
	ResetPermissions(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// CreateUser implements UserHandler.
func (h *UserHandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	var createReq user.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.userService.Create(r.Context(), createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created successfully", user.ToResponse(created))
}

// GetUser implements UserHandler.
func (h *UserHandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.ToResponse(u))
}

// ListUsers implements UserHandler.
func (h *UserHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	listReq := user.ListUsersRequest{
		Page:   page,
		Limit:  limit,
		Search: r.URL.Query().Get("search"),
	}
	if role := r.URL.Query().Get("role"); role != "" {
		listReq.Role = &role
	}

	users, total, err := h.userService.List(r.Context(), listReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, user.ToResponse(u))
	}
	response.SuccessWithMeta(w, items, paginationMeta(page, limit, total))
}

// UpdateUser implements UserHandler.
func (h *UserHandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var updateReq user.UpdateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	if err := h.userService.Update(r.Context(), updateReq); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated successfully", nil)
}

// DeactivateUser implements UserHandler. Deactivated accounts keep their
// refresh tokens out; access tokens stay valid until they expire.
func (h *UserHandlerImpl) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userService.Deactivate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("User deactivated", "user_id", id)
	response.SuccessWithMessage(w, "User deactivated successfully", nil)
}

// ActivateUser implements UserHandler.
func (h *UserHandlerImpl) ActivateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userService.Activate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User activated successfully", nil)
}

type permissionsResponse struct {
	Permissions []string `json:"permissions"`
	Overridden  bool     `json:"overridden"`
}

// GetPermissions implements UserHandler. Overridden reports whether the set
// is an explicit override rather than the role defaults.
func (h *UserHandlerImpl) GetPermissions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	permissions, overridden, err := h.userService.Permissions(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	names := make([]string, 0, len(permissions))
	for _, p := range permissions {
		names = append(names, string(p))
	}
	response.Success(w, permissionsResponse{Permissions: names, Overridden: overridden})
}

// ReplacePermissions implements UserHandler. The new set takes effect on the
// user's next login or token refresh.
func (h *UserHandlerImpl) ReplacePermissions(w http.ResponseWriter, r *http.Request) {
	var replaceReq user.ReplacePermissionsRequest

	if err := json.NewDecoder(r.Body).Decode(&replaceReq); err != nil {
		slog.Error("ReplacePermissions decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.userService.ReplacePermissions(r.Context(), id, replaceReq); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("User permissions replaced", "user_id", id)
	response.SuccessWithMessage(w, "Permissions updated successfully", nil)
}

// ResetPermissions implements UserHandler.
func (h *UserHandlerImpl) ResetPermissions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userService.ResetPermissions(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("User permissions reset to role defaults", "user_id", id)
	response.SuccessWithMessage(w, "Permissions reset to role defaults", nil)
}
