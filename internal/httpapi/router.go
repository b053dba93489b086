package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	// RateLimit of zero or less leaves the API unlimited.
	RateLimit  int
	RateWindow time.Duration
	// JWTSecret turns on bearer authentication when non-empty.
	JWTSecret string
}

func NewRouter(h *Handler, cfg Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(Metrics())

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/watchlist", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(RateLimit(cfg.RateLimit, cfg.RateWindow))
		}
		if cfg.JWTSecret != "" {
			r.Use(Authenticate([]byte(cfg.JWTSecret), logger))
		}

		r.Post("/", h.Create)
		r.Get("/check/{userId}/{animeId}", h.Check)
		r.Post("/progress/{userId}/{animeId}", h.Progress)
		r.Post("/complete/{userId}/{animeId}", h.Complete)
		r.Get("/{userId}", h.List)
		r.Delete("/{userId}/{animeId}", h.Remove)
	})

	return r
}
