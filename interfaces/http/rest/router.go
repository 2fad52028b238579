// Package rest assembles the HTTP surface: routing, middleware and
// handlers for the /api/v1 endpoints.
package rest

import (
	"net/http"

	"advicehub-backend/infrastructure/di"
	"advicehub-backend/interfaces/http/rest/handlers"
	"advicehub-backend/interfaces/http/rest/middleware"
	"advicehub-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{container: container}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	c := rt.container
	cfg := c.Config

	errHandler := errors.NewHandler(c.Logger, cfg.IsDevelopment())
	adviceHandler := handlers.NewAdviceHandler(c.CommandBus, c.QueryBus, c.ToggleLike, errHandler, c.Logger)
	authHandler := handlers.NewAuthHandler(c.UserRepo, c.EventPublisher, c.JWTGenerator, errHandler, c.Logger, cfg.CookieSecure)

	authenticate := middleware.Authenticate(c.JWTValidator, c.Logger)

	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(c.Logger))
	router.Use(middleware.Tracing(c.Tracer))

	if cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/advices", adviceHandler.ListAdvices)
		r.Get("/advices/{adviceID}", adviceHandler.GetAdvice)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			r.Post("/advices", adviceHandler.CreateAdvice)
			r.Patch("/advices/{adviceID}", adviceHandler.UpdateAdvice)
			r.Delete("/advices/{adviceID}", adviceHandler.DeleteAdvice)
			r.Post("/advices/likes/{adviceID}", adviceHandler.ToggleLike)

			r.Get("/users/me/advices", adviceHandler.ListMyAdvices)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
