package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-leads/internal/infra/config"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
)

type Handlers struct {
	Payment *handlers.PaymentHandler
	Webhook *handlers.WebhookHandler
	Lead    *handlers.LeadHandler
	Health  *handlers.HealthHandler
}

func NewRouter(cfg *config.Config, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
	}))

	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/payments", func(r chi.Router) {
		r.Post("/", h.Payment.HandleCreate)
		r.Post("/approved", h.Payment.HandleApproved)
		r.Get("/{id}", h.Payment.HandleGet)
	})
	r.Post("/webhook/mercadopago", h.Webhook.Handle)

	r.Route("/leads", func(r chi.Router) {
		r.Post("/sync", h.Lead.HandleSync)
		r.Get("/{uid}", h.Lead.HandleGet)
	})

	return r
}
