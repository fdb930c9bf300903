package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apihandlers "github.com/athebyme/wildberries-sync/internal/api/handlers"
	"github.com/athebyme/wildberries-sync/internal/api/middleware"
	"github.com/athebyme/wildberries-sync/internal/handlers"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

// SetupRouter настраивает маршрутизатор
func SetupRouter(deps *handlers.Deps, logger interfaces.LoggerPort) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Method(http.MethodGet, "/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))
	r.Method(http.MethodHead, "/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r.Handle("/metrics", promhttp.Handler())

	eventHandler := apihandlers.NewEventHandler(deps, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/events", eventHandler.StartEvent)
		r.Get("/orders", eventHandler.ListOrders)
	})

	return r
}
