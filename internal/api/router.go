package api

import (
	"net/http"

	"github.com/dom/link-appender/internal/api/handlers"
	"github.com/dom/link-appender/internal/api/middleware"
	"github.com/dom/link-appender/internal/config"
	"github.com/dom/link-appender/internal/domain"
	"github.com/dom/link-appender/internal/repository"
	"github.com/dom/link-appender/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, repos *repository.Repositories, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.User)
	linkHandler := handlers.NewLinkHandler(services.Link)

	auth := middleware.Auth(services.Auth, repos.Token)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	linksCache := middleware.NewResponseCache(cfg.LinksCacheTTL)

	// Public routes
	r.Post("/auth/login", authHandler.Login)
	r.Post("/users", userHandler.Create)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/append-parameters", linkHandler.AppendParameters)
		r.With(linksCache.Middleware).Get("/links", linkHandler.List)

		r.Get("/users/profile", userHandler.Profile)
		r.With(adminOnly).Get("/users", userHandler.List)
		r.With(adminOnly).Get("/users/{id}", userHandler.Get)
		r.Patch("/users/{id}", userHandler.Update)
		r.With(adminOnly).Delete("/users/{id}", userHandler.Delete)
	})

	return r
}
