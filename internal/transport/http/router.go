// Package httptransport assembles the public HTTP surface: operational
// endpoints plus the prediction API under /api.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"geomed/internal/prediction/handler"
	"geomed/pkg/platform/httputil"
	"geomed/pkg/platform/middleware/requestmeta"
)

// NewRouter wires middleware, operational endpoints, and the prediction API.
func NewRouter(predictions *handler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestmeta.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", predictions.Register)
	return r
}
