package handler

import (
	"net/http"
	"time"

	"packline/internal/repository"
	"packline/internal/service"

	"github.com/rs/zerolog"
)

// ReportHandler handles CSV export and statistics requests.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("handler", "report").Logger(),
	}
}

// ExportCSV handles GET /api/orders/export requests. Optional query
// parameters: from, to (RFC 3339), payment_status.
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)

	if err := h.service.ExportCSV(r.Context(), filter, w); err != nil {
		// Headers may already be written; nothing to do beyond logging.
		h.logger.Error().Err(err).Msg("CSV export failed")
	}
}

// Stats handles GET /api/orders/stats requests.
func (h *ReportHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	stats, err := h.service.Stats(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// filterFromQuery builds a repository filter from query parameters.
func filterFromQuery(r *http.Request) (repository.Filter, error) {
	var filter repository.Filter

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return filter, &queryError{"invalid 'from' timestamp"}
		}
		filter.From = &t
	}

	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return filter, &queryError{"invalid 'to' timestamp"}
		}
		filter.To = &t
	}

	filter.PaymentStatus = r.URL.Query().Get("payment_status")

	return filter, nil
}

type queryError struct {
	message string
}

func (e *queryError) Error() string {
	return e.message
}
