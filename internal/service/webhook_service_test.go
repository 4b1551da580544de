package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"packline/internal/clock"
	"packline/internal/config"
	"packline/internal/events"
	"packline/internal/exclusion"
	"packline/internal/manifest"
	"packline/internal/metrics"
	"packline/internal/model"
	"packline/internal/normalizer"
	"packline/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Upsert(ctx context.Context, record *model.OrderRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, orderID string) (*model.OrderRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderRecord), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter repository.Filter) ([]model.OrderRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderRecord), args.Error(1)
}

func (m *MockOrderRepository) UpdateFulfillment(ctx context.Context, orderID string, update model.FulfillmentUpdate) error {
	args := m.Called(ctx, orderID, update)
	return args.Error(0)
}

// MockManifestRepository is a mock implementation of ManifestRepository.
type MockManifestRepository struct {
	mock.Mock
}

func (m *MockManifestRepository) Upsert(ctx context.Context, record *model.ManifestRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockManifestRepository) List(ctx context.Context, orderIDs []string) ([]model.ManifestRecord, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ManifestRecord), args.Error(1)
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	events []eventsOrderIngested
	err    error
}

type eventsOrderIngested struct {
	originalOrderID int64
	orderIDs        []string
	lineItems       int
}

func (p *recordingPublisher) PublishOrderIngested(_ context.Context, event events.OrderIngested) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, eventsOrderIngested{
		originalOrderID: event.OriginalOrderID,
		orderIDs:        event.OrderIDs,
		lineItems:       event.LineItems,
	})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newWebhookService(orderRepo repository.OrderRepository, manifestRepo repository.ManifestRepository, publisher *recordingPublisher, excluded ...int64) WebhookService {
	logger := zerolog.Nop()
	monday := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	norm := normalizer.New(
		exclusion.NewSet(excluded),
		normalizer.WeekdayIDGenerator{Clock: clock.Fixed{Time: monday}},
		logger,
	)
	builder := manifest.NewBuilder(config.ManifestConfig{
		SaleOrderPrefix: "PZ",
		PickupLocation:  "franchise",
		TransportMode:   "Surface",
		State:           "West Bengal",
		CODSurcharge:    80,
		CODThreshold:    2000,
		PackageLengthCM: 35,
		PackageWidthCM:  25,
		PackageHeightCM: 5,
		WeightGrams:     250,
	})

	return NewWebhookService(norm, builder, orderRepo, manifestRepo, nil, publisher, metrics.NewRegistry(), logger)
}

func twoItemPayload(orderNumber float64) model.RawOrderPayload {
	return model.RawOrderPayload{
		"data": map[string]any{
			"orderNumber":   orderNumber,
			"paymentStatus": "NOT_PAID",
			"priceSummary": map[string]any{
				"total": map[string]any{"value": float64(2600)},
			},
			"lineItems": []any{
				map[string]any{
					"itemName":   "Tee",
					"sku":        "T1",
					"quantity":   float64(2),
					"totalPrice": map[string]any{"value": float64(1500)},
				},
				map[string]any{
					"itemName":   "Hoodie",
					"sku":        "H1",
					"totalPrice": map[string]any{"value": float64(1100)},
				},
			},
		},
	}
}

func TestWebhookService_ProcessOrder_Success(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	manifestRepo := new(MockManifestRepository)
	publisher := &recordingPublisher{}

	orderRepo.On("Upsert", ctx, mock.AnythingOfType("*model.OrderRecord")).Return(nil)
	manifestRepo.On("Upsert", ctx, mock.AnythingOfType("*model.ManifestRecord")).Return(nil)

	svc := newWebhookService(orderRepo, manifestRepo, publisher)

	result, err := svc.ProcessOrder(ctx, twoItemPayload(20001))

	require.NoError(t, err)
	assert.Equal(t, StatusCreated, result.Status)
	assert.Equal(t, []string{"20001Q1MON", "20001Q2MON"}, result.OrderIDs)

	orderRepo.AssertNumberOfCalls(t, "Upsert", 2)
	manifestRepo.AssertNumberOfCalls(t, "Upsert", 2)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, int64(20001), publisher.events[0].originalOrderID)
	assert.Equal(t, 2, publisher.events[0].lineItems)
}

func TestWebhookService_ProcessOrder_ExcludedOrder(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	manifestRepo := new(MockManifestRepository)
	publisher := &recordingPublisher{}

	svc := newWebhookService(orderRepo, manifestRepo, publisher, 10001)

	result, err := svc.ProcessOrder(ctx, twoItemPayload(10001))

	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status)
	assert.Empty(t, result.OrderIDs)

	orderRepo.AssertNotCalled(t, "Upsert")
	manifestRepo.AssertNotCalled(t, "Upsert")
	assert.Empty(t, publisher.events)
}

func TestWebhookService_ProcessOrder_MalformedPayload(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	manifestRepo := new(MockManifestRepository)
	publisher := &recordingPublisher{}

	svc := newWebhookService(orderRepo, manifestRepo, publisher)

	payload := twoItemPayload(20001)
	payload["data"].(map[string]any)["createdDate"] = "garbage"

	result, err := svc.ProcessOrder(ctx, payload)

	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status, "malformed payload is skipped like an excluded order")
	orderRepo.AssertNotCalled(t, "Upsert")
}

func TestWebhookService_ProcessOrder_NoLineItems(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	manifestRepo := new(MockManifestRepository)
	publisher := &recordingPublisher{}

	svc := newWebhookService(orderRepo, manifestRepo, publisher)

	payload := twoItemPayload(20001)
	payload["data"].(map[string]any)["lineItems"] = []any{}

	result, err := svc.ProcessOrder(ctx, payload)

	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status)
	orderRepo.AssertNotCalled(t, "Upsert")
	assert.Empty(t, publisher.events)
}

func TestWebhookService_ProcessOrder_PartialPersistence(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	manifestRepo := new(MockManifestRepository)
	publisher := &recordingPublisher{}

	// First line item fails to persist, second succeeds.
	orderRepo.On("Upsert", ctx, mock.MatchedBy(func(r *model.OrderRecord) bool {
		return r.ItemIndex == 1
	})).Return(errors.New("connection reset"))
	orderRepo.On("Upsert", ctx, mock.MatchedBy(func(r *model.OrderRecord) bool {
		return r.ItemIndex == 2
	})).Return(nil)
	manifestRepo.On("Upsert", ctx, mock.AnythingOfType("*model.ManifestRecord")).Return(nil)

	svc := newWebhookService(orderRepo, manifestRepo, publisher)

	result, err := svc.ProcessOrder(ctx, twoItemPayload(20001))

	require.NoError(t, err)
	assert.Equal(t, StatusCreated, result.Status)
	assert.Equal(t, []string{"20001Q2MON"}, result.OrderIDs, "surviving sibling is still persisted")
	manifestRepo.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestWebhookService_ProcessOrder_AllPersistenceFails(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	manifestRepo := new(MockManifestRepository)
	publisher := &recordingPublisher{}

	orderRepo.On("Upsert", ctx, mock.AnythingOfType("*model.OrderRecord")).Return(errors.New("database down"))

	svc := newWebhookService(orderRepo, manifestRepo, publisher)

	result, err := svc.ProcessOrder(ctx, twoItemPayload(20001))

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrPersistenceFailure)
	assert.Nil(t, result)
	assert.Empty(t, publisher.events)
}

func TestWebhookService_ProcessOrder_ManifestFailureDoesNotDropOrder(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	manifestRepo := new(MockManifestRepository)
	publisher := &recordingPublisher{}

	orderRepo.On("Upsert", ctx, mock.AnythingOfType("*model.OrderRecord")).Return(nil)
	manifestRepo.On("Upsert", ctx, mock.AnythingOfType("*model.ManifestRecord")).Return(errors.New("constraint violation"))

	svc := newWebhookService(orderRepo, manifestRepo, publisher)

	result, err := svc.ProcessOrder(ctx, twoItemPayload(20001))

	require.NoError(t, err)
	assert.Equal(t, StatusCreated, result.Status)
	assert.Len(t, result.OrderIDs, 2, "order records survive manifest persistence failures")
}

func TestWebhookService_ProcessOrder_PublishFailureIsBestEffort(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	manifestRepo := new(MockManifestRepository)
	publisher := &recordingPublisher{err: errors.New("broker unavailable")}

	orderRepo.On("Upsert", ctx, mock.AnythingOfType("*model.OrderRecord")).Return(nil)
	manifestRepo.On("Upsert", ctx, mock.AnythingOfType("*model.ManifestRecord")).Return(nil)

	svc := newWebhookService(orderRepo, manifestRepo, publisher)

	result, err := svc.ProcessOrder(ctx, twoItemPayload(20001))

	require.NoError(t, err)
	assert.Equal(t, StatusCreated, result.Status)
}

func TestWebhookService_UpdateFulfillment(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	manifestRepo := new(MockManifestRepository)

	update := model.FulfillmentUpdate{
		TrackingNumber:   "TRK123",
		ShippingProvider: "delhivery",
		Status:           "shipped",
	}
	orderRepo.On("UpdateFulfillment", ctx, "20001Q1MON", update).Return(nil)

	svc := newWebhookService(orderRepo, manifestRepo, &recordingPublisher{})

	err := svc.UpdateFulfillment(ctx, "20001Q1MON", update)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestWebhookService_UpdateFulfillment_NotFound(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	manifestRepo := new(MockManifestRepository)

	update := model.FulfillmentUpdate{TrackingNumber: "TRK123"}
	orderRepo.On("UpdateFulfillment", ctx, "unknown", update).Return(model.ErrOrderNotFound)

	svc := newWebhookService(orderRepo, manifestRepo, &recordingPublisher{})

	err := svc.UpdateFulfillment(ctx, "unknown", update)

	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}
