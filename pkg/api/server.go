// Package api serves container inspection and the asset store over HTTP.
//
// All routes under /api/v1 require the X-API-Key header. /metrics is left
// open for scraping.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter configures every route of the API
func NewRouter(server *Server, gatherer prometheus.Gatherer) http.Handler {
	metrics := server.metrics
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(server.config.APIKey)))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Post("/inspect/{kind}", metrics.InstrumentHandler("POST", "/api/v1/inspect/{kind}", server.handleInspect))

		r.Get("/assets", metrics.InstrumentHandler("GET", "/api/v1/assets", server.handleListAssets))
		r.Post("/assets", metrics.InstrumentHandler("POST", "/api/v1/assets", server.handlePutAsset))
		r.Get("/assets/{id}", metrics.InstrumentHandler("GET", "/api/v1/assets/{id}", server.handleGetAsset))
		r.Delete("/assets/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/assets/{id}", server.handleDeleteAsset))
	})

	return r
}

// StartServer serves the API until ctx is cancelled
func StartServer(ctx context.Context, assets AssetStore, config ServerConfig) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	server := NewServer(assets, config, NewMetrics(reg))
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Bind, config.Port),
		Handler:           NewRouter(server, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		server.logger.Info("starting flashkit API server", "addr", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.logger.Info("shutting down flashkit API server")
		return httpServer.Shutdown(shutdownCtx)
	}
}
