// Package api serves GFF resources over a REST interface: CRUD on stored
// containers, revision history, and stateless encode/decode endpoints.
// Authentication is a shared API key in the X-API-Key header; Prometheus
// metrics are exposed unauthenticated on /metrics.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the full route tree for a server.
func NewRouter(server *Server, metrics *Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(server.config.APIKey)))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Resource CRUD
		r.Get("/resources", metrics.InstrumentHandler("GET", "/api/v1/resources", server.handleListResources))
		r.Get("/resources/{name}", metrics.InstrumentHandler("GET", "/api/v1/resources/{name}", server.handleGetResource))
		r.Put("/resources/{name}", metrics.InstrumentHandler("PUT", "/api/v1/resources/{name}", server.handlePutResource))
		r.Delete("/resources/{name}", metrics.InstrumentHandler("DELETE", "/api/v1/resources/{name}", server.handleDeleteResource))
		r.Get("/resources/{name}/raw", metrics.InstrumentHandler("GET", "/api/v1/resources/{name}/raw", server.handleGetResourceRaw))
		r.Put("/resources/{name}/raw", metrics.InstrumentHandler("PUT", "/api/v1/resources/{name}/raw", server.handlePutResourceRaw))

		// Revision history
		r.Get("/resources/{name}/revisions", metrics.InstrumentHandler("GET", "/api/v1/resources/{name}/revisions", server.handleListRevisions))
		r.Get("/resources/{name}/revisions/{id}", metrics.InstrumentHandler("GET", "/api/v1/resources/{name}/revisions/{id}", server.handleGetRevision))

		// Stateless codec
		r.Post("/decode", metrics.InstrumentHandler("POST", "/api/v1/decode", server.handleDecode))
		r.Post("/encode", metrics.InstrumentHandler("POST", "/api/v1/encode", server.handleEncode))

		// Diagnostics
		r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/stats", server.handleStats))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured. It blocks
// until the listener fails.
func StartServer(store ResourceStore, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(store, config, metrics)
	router := NewRouter(server, metrics)

	go server.startMetricsUpdater()

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting gff REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	return http.ListenAndServe(addr, router)
}
