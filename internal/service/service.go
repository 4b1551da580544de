package service

import (
	"context"
	"io"

	"packline/internal/model"
	"packline/internal/repository"
)

// WebhookService defines operations for processing order webhook deliveries.
type WebhookService interface {
	// ProcessOrder normalizes one webhook payload, persists its order and
	// manifest records, and returns the generated order ids in line-item
	// order. Excluded and malformed payloads both yield a skipped result
	// with no ids.
	ProcessOrder(ctx context.Context, payload model.RawOrderPayload) (*model.WebhookResult, error)

	// UpdateFulfillment sets tracking details on a stored order record.
	UpdateFulfillment(ctx context.Context, orderID string, update model.FulfillmentUpdate) error
}

// ReportService defines read-side operations over stored records.
type ReportService interface {
	// Stats summarises stored order records matching the filter.
	Stats(ctx context.Context, filter repository.Filter) (*model.OrderStats, error)

	// ExportCSV writes matching order records to w as CSV.
	ExportCSV(ctx context.Context, filter repository.Filter, w io.Writer) error
}
