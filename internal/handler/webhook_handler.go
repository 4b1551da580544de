package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"packline/internal/model"
	"packline/internal/service"

	"github.com/rs/zerolog"
)

// WebhookHandler handles order webhook deliveries and fulfillment updates.
type WebhookHandler struct {
	service service.WebhookService
	logger  zerolog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(service service.WebhookService, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		logger:  logger.With().Str("handler", "webhook").Logger(),
	}
}

// Receive handles POST /api/webhooks/orders requests.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var payload model.RawOrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	result, err := h.service.ProcessOrder(r.Context(), payload)
	if err != nil {
		// Whatever the underlying cause, the upstream platform only needs a
		// generic failure signal; details stay in the logs.
		writeError(w, http.StatusInternalServerError, "failed to process order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// UpdateFulfillment handles POST /api/orders/{id}/fulfillment requests.
func (h *WebhookHandler) UpdateFulfillment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	// Expecting path: /api/orders/{id}/fulfillment
	path := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	orderID := strings.TrimSuffix(path, "/fulfillment")
	if orderID == "" || orderID == path {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return
	}

	var update model.FulfillmentUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if update.TrackingNumber == "" {
		writeError(w, http.StatusBadRequest, "tracking number is required", h.logger)
		return
	}

	if err := h.service.UpdateFulfillment(r.Context(), orderID, update); err != nil {
		if err == model.ErrOrderNotFound {
			writeError(w, http.StatusNotFound, "order not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update fulfillment", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
