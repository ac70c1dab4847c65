// Package httpapi exposes the workflow services as a JSON API.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/officeflow/internal/service"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// API bundles the services the handlers call.
type API struct {
	Templates     service.TemplateService
	Instances     service.InstanceService
	Notifications service.NotificationService
	// Gatherer backs /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// NewRouter registers every route on a fresh mux.Router.
func NewRouter(api *API) *mux.Router {
	if api.Logger == nil {
		api.Logger = slog.New(slog.DiscardHandler)
	}
	h := &handlers{api: api}

	router := mux.NewRouter()
	router.Use(h.logRequests)

	router.HandleFunc("/health", h.health).Methods(http.MethodGet)

	router.HandleFunc("/templates", h.listTemplates).Methods(http.MethodGet)
	router.HandleFunc("/templates/{id}", h.putTemplate).Methods(http.MethodPut)
	router.HandleFunc("/templates/{id}", h.deleteTemplate).Methods(http.MethodDelete)

	router.HandleFunc("/instances", h.listInstances).Methods(http.MethodGet)
	router.HandleFunc("/instances", h.createInstance).Methods(http.MethodPost)
	router.HandleFunc("/instances/{id}", h.getInstance).Methods(http.MethodGet)
	router.HandleFunc("/instances/{id}/cancel", h.cancelInstance).Methods(http.MethodPost)

	router.HandleFunc("/tasks", h.setTaskStatus).Methods(http.MethodPut)
	router.HandleFunc("/tasks/assigned", h.listAssigned).Methods(http.MethodGet)

	router.HandleFunc("/notifications", h.listNotifications).Methods(http.MethodGet)
	router.HandleFunc("/notifications/{id}/read", h.markRead).Methods(http.MethodPost)

	if api.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(api.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	return router
}

// NewServer wraps the router in an http.Server listening on addr.
func NewServer(addr string, api *API) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(api),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
