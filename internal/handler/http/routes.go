package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if h.trustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(h.withTraceID, h.withLogging)

	router.Get("/api/health", h.health)
	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	router.Post(h.webhookPath, h.receiveWebhook)

	// the gateway API exists only when operator tokens can be verified
	if h.operatorAPI {
		router.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/api/services/{slug}/call", h.callService)
		})
	}

	router.MethodNotAllowed(methodNotAllowed(h.webhookPath))

	return router
}
