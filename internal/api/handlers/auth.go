package handlers

import (
	"errors"
	"net/http"

	"github.com/dom/link-appender/internal/service"
	"github.com/go-chi/render"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	TokenID   string `json:"tokenId"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expiresAt"`
	Token     string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		renderError(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrLoginFailed) {
			renderError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		renderError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	render.JSON(w, r, LoginResponse{
		TokenID:   result.TokenID.String(),
		UserID:    result.UserID.String(),
		Username:  result.Username,
		Role:      string(result.Role),
		ExpiresAt: result.ExpiresAt,
		Token:     result.Token,
	})
}
