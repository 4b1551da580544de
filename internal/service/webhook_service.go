package service

import (
	"context"

	"packline/internal/backup"
	"packline/internal/events"
	"packline/internal/manifest"
	"packline/internal/metrics"
	"packline/internal/model"
	"packline/internal/normalizer"
	"packline/internal/repository"

	"github.com/rs/zerolog"
)

// Webhook result statuses.
const (
	StatusCreated = "created"
	StatusSkipped = "skipped"
)

// webhookService implements WebhookService.
type webhookService struct {
	normalizer   *normalizer.Normalizer
	builder      *manifest.Builder
	orderRepo    repository.OrderRepository
	manifestRepo repository.ManifestRepository
	backupWriter *backup.Writer
	publisher    events.Publisher
	metrics      *metrics.Registry
	logger       zerolog.Logger
}

// NewWebhookService creates a new webhook processing service. backupWriter
// may be nil to disable payload backups.
func NewWebhookService(
	norm *normalizer.Normalizer,
	builder *manifest.Builder,
	orderRepo repository.OrderRepository,
	manifestRepo repository.ManifestRepository,
	backupWriter *backup.Writer,
	publisher events.Publisher,
	reg *metrics.Registry,
	logger zerolog.Logger,
) WebhookService {
	return &webhookService{
		normalizer:   norm,
		builder:      builder,
		orderRepo:    orderRepo,
		manifestRepo: manifestRepo,
		backupWriter: backupWriter,
		publisher:    publisher,
		metrics:      reg,
		logger:       logger.With().Str("service", "webhook").Logger(),
	}
}

// ProcessOrder runs one webhook delivery through the pipeline. Persistence is
// partial-success: a record that fails to upsert is logged and skipped while
// its siblings continue. Only when extraction produced records and none could
// be persisted does the call fail.
func (s *webhookService) ProcessOrder(ctx context.Context, payload model.RawOrderPayload) (*model.WebhookResult, error) {
	if s.backupWriter != nil {
		// Best effort, off the request path.
		go s.backupWriter.Write(payload)
	}

	result := s.normalizer.Extract(payload)
	switch result.Outcome {
	case model.OutcomeExcluded:
		s.metrics.OrdersExcluded.Inc()
		return &model.WebhookResult{Status: StatusSkipped}, nil
	case model.OutcomeFailed:
		s.metrics.OrdersFailed.Inc()
		// Externally indistinguishable from an excluded order; the extraction
		// log carries the reason.
		return &model.WebhookResult{Status: StatusSkipped}, nil
	}

	s.metrics.OrdersExtracted.Inc()

	if len(result.Records) == 0 {
		s.logger.Info().Msg("order has no line items, nothing to persist")
		return &model.WebhookResult{Status: StatusSkipped}, nil
	}

	orderIDs := make([]string, 0, len(result.Records))
	for i := range result.Records {
		record := &result.Records[i]

		if err := s.orderRepo.Upsert(ctx, record); err != nil {
			s.metrics.PersistFailures.Inc()
			s.logger.Error().
				Err(err).
				Str("order_id", record.OrderID).
				Msg("failed to persist order record, skipping line item")
			continue
		}

		manifestRecord := s.builder.Build(*record)
		if err := s.manifestRepo.Upsert(ctx, &manifestRecord); err != nil {
			s.metrics.PersistFailures.Inc()
			s.logger.Error().
				Err(err).
				Str("sale_order_number", manifestRecord.SaleOrderNumber).
				Msg("failed to persist manifest record")
		}

		s.metrics.RecordsPersisted.Inc()
		orderIDs = append(orderIDs, record.OrderID)
	}

	if len(orderIDs) == 0 {
		return nil, model.ErrPersistenceFailure
	}

	event := events.OrderIngested{
		OriginalOrderID: result.Records[0].OriginalOrderID,
		OrderIDs:        orderIDs,
		LineItems:       len(result.Records),
	}
	if err := s.publisher.PublishOrderIngested(ctx, event); err != nil {
		// Event delivery is best effort; the records are already stored.
		s.logger.Warn().Err(err).Msg("failed to publish order event")
	}

	s.logger.Info().
		Int("line_items", len(result.Records)).
		Int("persisted", len(orderIDs)).
		Msg("order processed")

	return &model.WebhookResult{Status: StatusCreated, OrderIDs: orderIDs}, nil
}

// UpdateFulfillment sets tracking details on a stored order record.
func (s *webhookService) UpdateFulfillment(ctx context.Context, orderID string, update model.FulfillmentUpdate) error {
	if err := s.orderRepo.UpdateFulfillment(ctx, orderID, update); err != nil {
		if err != model.ErrOrderNotFound {
			s.logger.Error().Err(err).Str("order_id", orderID).Msg("fulfillment update failed")
		}
		return err
	}

	s.logger.Info().
		Str("order_id", orderID).
		Str("shipping_provider", update.ShippingProvider).
		Msg("fulfillment updated")

	return nil
}
