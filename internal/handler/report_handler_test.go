package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"packline/internal/model"
	"packline/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportHandler_Stats(t *testing.T) {
	logger := zerolog.Nop()

	stats := &model.OrderStats{
		TotalRows:   3,
		TotalOrders: 2,
		PaidRows:    2,
		CODRows:     1,
	}

	mockService := new(MockReportService)
	mockService.On("Stats", mock.Anything, repository.Filter{}).Return(stats, nil)

	h := NewReportHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/stats", nil)
	w := httptest.NewRecorder()

	h.Stats(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got model.OrderStats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, *stats, got)
}

func TestReportHandler_Stats_DateFilter(t *testing.T) {
	logger := zerolog.Nop()

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	expected := repository.Filter{From: &from, PaymentStatus: "PAID"}

	mockService := new(MockReportService)
	mockService.On("Stats", mock.Anything, mock.MatchedBy(func(f repository.Filter) bool {
		return f.From != nil && f.From.Equal(*expected.From) && f.PaymentStatus == "PAID"
	})).Return(&model.OrderStats{}, nil)

	h := NewReportHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/stats?from=2025-06-01T00:00:00Z&payment_status=PAID", nil)
	w := httptest.NewRecorder()

	h.Stats(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestReportHandler_Stats_InvalidTimestamp(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockReportService)

	h := NewReportHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/stats?from=yesterday", nil)
	w := httptest.NewRecorder()

	h.Stats(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Stats")
}

func TestReportHandler_Stats_ServiceError(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockReportService)
	mockService.On("Stats", mock.Anything, repository.Filter{}).Return(nil, errors.New("database down"))

	h := NewReportHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/stats", nil)
	w := httptest.NewRecorder()

	h.Stats(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReportHandler_ExportCSV(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockReportService)
	mockService.On("ExportCSV", mock.Anything, repository.Filter{}, mock.Anything).
		Run(func(args mock.Arguments) {
			w := args.Get(2).(io.Writer)
			w.Write([]byte("order_id,original_order_id\n20001Q1MON,20001\n"))
		}).
		Return(nil)

	h := NewReportHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/export", nil)
	w := httptest.NewRecorder()

	h.ExportCSV(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders.csv")
	assert.Contains(t, w.Body.String(), "20001Q1MON")
}

func TestReportHandler_MethodNotAllowed(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockReportService)

	h := NewReportHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/export", nil)
	w := httptest.NewRecorder()

	h.ExportCSV(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
