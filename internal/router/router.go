package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"commons-backend/internal/handlers"
	"commons-backend/internal/middleware"
)

// Deps carries everything the HTTP surface is built from.
type Deps struct {
	JWTAuth     *middleware.JWTAuth
	RateLimiter *middleware.RateLimiter
	CheckIns    *handlers.CheckInHandler
	Health      *handlers.HealthHandler
	WebSocket   http.HandlerFunc
	FrontendURL string
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.CORS(d.FrontendURL))

	r.Get("/health", d.Health.Health)

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Check-in Routes ────
		r.Route("/check-ins", func(r chi.Router) {
			r.Use(d.JWTAuth.Middleware)
			r.Use(d.RateLimiter.Middleware)
			r.Get("/", d.CheckIns.List)
			r.Post("/", d.CheckIns.Create)
			r.Get("/map", d.CheckIns.Map)
			r.Get("/{id}", d.CheckIns.Get)
			r.Post("/{id}/cancel", d.CheckIns.Cancel)
		})

		// ──── WebSocket ────
		// Authenticates with the token query parameter.
		r.Get("/ws", d.WebSocket)
	})

	return r
}
