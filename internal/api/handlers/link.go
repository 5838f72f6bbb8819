package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dom/link-appender/internal/api/middleware"
	"github.com/dom/link-appender/internal/domain"
	"github.com/dom/link-appender/internal/service"
	"github.com/go-chi/render"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type LinkHandler struct {
	linkService *service.LinkService
}

func NewLinkHandler(linkService *service.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

type AppendParametersRequest struct {
	URL    string                 `json:"url" validate:"required"`
	Params map[string]interface{} `json:"params" validate:"required"`
}

type AppendParametersResponse struct {
	OriginalURL string                 `json:"originalUrl"`
	Parameters  map[string]interface{} `json:"parameters"`
	NewURL      string                 `json:"newUrl"`
}

func (h *LinkHandler) AppendParameters(w http.ResponseWriter, r *http.Request) {
	reqCtx, ok := middleware.GetRequestContext(r.Context())
	if !ok {
		renderError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AppendParametersRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		renderError(w, r, http.StatusBadRequest, "URL and params are required")
		return
	}

	link, err := h.linkService.Append(r.Context(), reqCtx.UserID, req.URL, req.Params)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidURL) {
			renderError(w, r, http.StatusBadRequest, "Invalid URL")
			return
		}
		renderError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	render.JSON(w, r, AppendParametersResponse{
		OriginalURL: link.OriginalURL,
		Parameters:  link.Parameters,
		NewURL:      link.NewURL,
	})
}

func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", defaultPage)
	limit := queryInt(r, "limit", defaultLimit)
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	links, err := h.linkService.List(r.Context(), (page-1)*limit, limit)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	if links == nil {
		links = []*domain.Link{}
	}
	render.JSON(w, r, links)
}

func queryInt(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
