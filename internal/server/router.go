package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter configures routes and middlewares.
func NewRouter(h *Handler, hub *Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ws", hub.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Post("/users", h.CreateUser)
		r.Post("/test-results", h.PostResult)
		r.Get("/leaderboard", h.GetLeaderboard)
		r.Get("/analytics/global", h.GlobalAnalytics)

		r.Route("/users/{userId}", func(r chi.Router) {
			r.Get("/stats", h.UserStats)
			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, http.StatusNotFound, "Route not found")
	})

	return r
}
