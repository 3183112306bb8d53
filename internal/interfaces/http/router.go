package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/ChemReactivity/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemReactivity/internal/interfaces/http/handlers"
)

// RouterConfig aggregates the handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	DescriptorHandler *handlers.DescriptorHandler
	HealthHandler     *handlers.HealthHandler

	// Middleware, applied to every request in order.
	Middleware []func(http.Handler) http.Handler

	// Infrastructure
	MetricsCollector prometheus.MetricsCollector
}

// NewRouter constructs the complete HTTP route tree from the given
// configuration: public health probes, the Prometheus scrape endpoint, and
// the /api/v1 resource groups, as a single http.Handler.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	for _, mw := range cfg.Middleware {
		r.Use(mw)
	}

	// Health probes stay outside /api/v1 for Kubernetes probe configs.
	r.Group(func(pub chi.Router) {
		if cfg.HealthHandler != nil {
			pub.Get("/healthz", cfg.HealthHandler.Liveness)
			pub.Get("/readyz", cfg.HealthHandler.Readiness)
		}
	})

	if cfg.MetricsCollector != nil {
		r.Handle("/metrics", cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		registerDescriptorRoutes(api, cfg.DescriptorHandler)
	})

	return r
}

// registerDescriptorRoutes mounts descriptor-set endpoints under /descriptors.
func registerDescriptorRoutes(r chi.Router, h *handlers.DescriptorHandler) {
	if h == nil {
		return
	}
	r.Route("/descriptors", func(dr chi.Router) {
		dr.Get("/", h.List)
		dr.Post("/", h.Compute)

		dr.Route("/{setID}", func(item chi.Router) {
			item.Get("/", h.Get)
			item.Delete("/", h.Delete)
			item.Get("/grand-potential", h.GrandPotential)
		})
	})
}
