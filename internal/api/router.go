package api

import (
	"flight-emissions-service/internal/api/handlers"
	"flight-emissions-service/internal/ports"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// estimates may be nil, in which case the estimate log endpoint is not mounted.
func NewRouter(
	dispatcher handlers.Dispatcher,
	estimates ports.EstimateLister,
	gatherer prometheus.Gatherer,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware(logger))
	r.Use(middleware.Recoverer)

	resolveHandler := &handlers.ResolveHandler{Dispatcher: dispatcher}

	r.Get("/health", handlers.Health)
	r.Post("/resolve", resolveHandler.Resolve)

	if estimates != nil {
		estimateHandler := &handlers.EstimateHandler{Lister: estimates}
		r.Get("/estimates", estimateHandler.List)
	}

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
