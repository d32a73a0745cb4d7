package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/benchtop/labsync/internal/server/handlers"
	"github.com/benchtop/labsync/internal/server/middleware"
)

// NewRouter assembles the HTTP routes for the sync server.
func NewRouter(logger *slog.Logger, syncHandler *handlers.SyncHandler, healthHandler *handlers.HealthHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.LoggingWithSkip(logger, []string{"/healthz", "/metrics"}))

	r.Post("/sync/pull", syncHandler.HandlePull)
	r.Post("/sync/push", syncHandler.HandlePush)

	r.Get("/healthz", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
