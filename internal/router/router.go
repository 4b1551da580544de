package router

import (
	"net/http"
	"strings"

	"packline/internal/handler"
	"packline/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	webhookHandler *handler.WebhookHandler,
	reportHandler *handler.ReportHandler,
	metricsHandler http.Handler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.Handle("/metrics", metricsHandler)

	// Webhook routes (both with and without trailing slash)
	mux.HandleFunc("/api/webhooks/orders", webhookHandler.Receive)
	mux.HandleFunc("/api/webhooks/orders/", webhookHandler.Receive)

	// Order routes: reporting endpoints plus fulfillment updates on
	// /api/orders/{id}/fulfillment.
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/orders/export":
			reportHandler.ExportCSV(w, r)
		case r.URL.Path == "/api/orders/stats":
			reportHandler.Stats(w, r)
		case strings.HasSuffix(r.URL.Path, "/fulfillment"):
			webhookHandler.UpdateFulfillment(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
