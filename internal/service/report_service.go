package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"packline/internal/model"
	"packline/internal/repository"

	"github.com/rs/zerolog"
)

// reportService implements ReportService over the order repository.
type reportService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewReportService creates a new reporting service.
func NewReportService(orderRepo repository.OrderRepository, logger zerolog.Logger) ReportService {
	return &reportService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "report").Logger(),
	}
}

// Stats summarises stored order records matching the filter.
func (s *reportService) Stats(ctx context.Context, filter repository.Filter) (*model.OrderStats, error) {
	records, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list order records for stats")
		return nil, fmt.Errorf("failed to compute order stats: %w", err)
	}

	stats := &model.OrderStats{}
	seenOrders := make(map[int64]struct{})

	for _, record := range records {
		stats.TotalRows++
		if record.PaymentStatus == model.PaymentStatusPaid {
			stats.PaidRows++
		} else {
			stats.CODRows++
		}
		stats.TotalDiscount += record.Discount

		// Order-level totals repeat on every line item; count them once.
		if _, seen := seenOrders[record.OriginalOrderID]; !seen {
			seenOrders[record.OriginalOrderID] = struct{}{}
			stats.TotalRevenue += record.TotalAmount
		}
	}
	stats.TotalOrders = int64(len(seenOrders))

	return stats, nil
}

// csvHeader is the column layout of the CSV export.
var csvHeader = []string{
	"order_id", "original_order_id", "order_date", "payment_status", "fulfillment_status",
	"first_name", "last_name", "email", "phone", "city", "street_address", "country", "postal_code",
	"subtotal", "tax", "shipping_charge", "discount", "total_amount",
	"item_index", "translated_name", "sku", "quantity", "total_price", "size", "color",
	"tracking_number", "shipping_provider",
}

// ExportCSV writes matching order records to w as CSV, one row per line item.
func (s *reportService) ExportCSV(ctx context.Context, filter repository.Filter, w io.Writer) error {
	records, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list order records for export")
		return fmt.Errorf("failed to export order records: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, record := range records {
		orderDate := ""
		if record.OrderDate != nil {
			orderDate = record.OrderDate.Format(time.RFC3339)
		}

		row := []string{
			record.OrderID,
			strconv.FormatInt(record.OriginalOrderID, 10),
			orderDate,
			record.PaymentStatus,
			record.FulfillmentStatus,
			record.FirstName,
			record.LastName,
			record.Email,
			record.Phone,
			record.City,
			record.StreetAddress,
			record.Country,
			record.PostalCode,
			formatMoney(record.Subtotal),
			formatMoney(record.Tax),
			formatMoney(record.ShippingCharge),
			formatMoney(record.Discount),
			formatMoney(record.TotalAmount),
			strconv.Itoa(record.ItemIndex),
			record.TranslatedName,
			record.SKU,
			strconv.Itoa(record.Quantity),
			formatMoney(record.TotalPrice),
			record.Size,
			record.Color,
			record.TrackingNumber,
			record.ShippingProvider,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	s.logger.Info().Int("rows", len(records)).Msg("order records exported")
	return nil
}

// formatMoney renders a money value with two decimal places.
func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
