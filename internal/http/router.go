// Package httpapi assembles the public router: the confirmation endpoints,
// the liveness probe and the Prometheus exposition endpoint, behind the
// ambient middleware chain.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"checkin/internal/checkin/handler"
	"checkin/internal/platform/middleware"
)

// NewRouter wires all public endpoints.
func NewRouter(h *handler.Handler, logger *slog.Logger, allowedOrigin string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigin))

	h.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
