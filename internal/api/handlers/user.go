package handlers

import (
	"errors"
	"net/http"

	"github.com/dom/link-appender/internal/api/middleware"
	"github.com/dom/link-appender/internal/domain"
	"github.com/dom/link-appender/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN CUSTOMER"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=1"`
	Role     *string `json:"role" validate:"omitempty,oneof=ADMIN CUSTOMER"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		renderError(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.userService.Create(r.Context(), service.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			renderError(w, r, http.StatusConflict, "Username already exists")
		case errors.Is(err, domain.ErrInvalidRole):
			renderError(w, r, http.StatusBadRequest, "Invalid role")
		default:
			renderError(w, r, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	if users == nil {
		users = []*domain.User{}
	}
	render.JSON(w, r, users)
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	reqCtx, ok := middleware.GetRequestContext(r.Context())
	if !ok {
		renderError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetByID(r.Context(), reqCtx.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			renderError(w, r, http.StatusNotFound, "User not found")
			return
		}
		renderError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	render.JSON(w, r, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			renderError(w, r, http.StatusNotFound, "User not found")
			return
		}
		renderError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	render.JSON(w, r, user)
}

// Update permits admins to modify any user and customers to modify themselves.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	reqCtx, ok := middleware.GetRequestContext(r.Context())
	if !ok {
		renderError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusNotFound, "User not found")
		return
	}

	if reqCtx.UserID != id && reqCtx.Role != domain.RoleAdmin {
		renderError(w, r, http.StatusForbidden, "Forbidden")
		return
	}

	var req UpdateUserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid request")
		return
	}

	input := service.UpdateUserInput{
		Username: req.Username,
		Password: req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.userService.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			renderError(w, r, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrInvalidRole):
			renderError(w, r, http.StatusBadRequest, "Invalid role")
		default:
			renderError(w, r, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	render.JSON(w, r, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusNotFound, "User not found")
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			renderError(w, r, http.StatusNotFound, "User not found")
			return
		}
		renderError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
