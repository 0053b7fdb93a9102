package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/lead-intake/internal/infra/http/handlers"
	metrics "github.com/xavierca1/lead-intake/internal/infra/http/middleware"
)

type routeHandlers struct {
	Leads  *handlers.LeadHandler
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler
}

func newRouter(h routeHandlers, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/login", h.Auth.Login)

	r.Get("/leads", h.Leads.List)
	r.Post("/leads", h.Leads.Submit)
	r.Patch("/leads", h.Leads.MarkReachedOut)
	// the public intake form posts here
	r.Post("/api/leads", h.Leads.Submit)

	return r
}
