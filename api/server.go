/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, the middleware stack, and the route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:   unique id per request for tracing
  2. Recoverer:   panic recovery (500 instead of crash)
  3. RequestLogger: structured request log via slog
  4. CORS:        cross-origin requests for internal tools
*/
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/staffhub/vacation-engine/logging"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logging.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/report", h.GetReport)
			r.Get("/{id}/ledger", h.GetLedger)
			r.Post("/{id}/terminate", h.TerminateEmployee)
			r.Get("/{id}/severance", h.GetSeverance)
		})

		r.Route("/vacation", func(r chi.Router) {
			r.Post("/check", h.CheckBalance)
			r.Post("/take", h.TakeVacation)
		})

		r.Get("/calendar/days", h.CountDays)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/accrual", h.RunDailyAccrual)
			r.Post("/rollover", h.RunAnnualRollover)
		})
	})

	return r
}
