package repository

import (
	"context"
	"time"

	"packline/internal/model"
)

// Filter narrows List queries over stored records.
type Filter struct {
	// From and To bound the order date (inclusive). Nil means unbounded.
	From *time.Time
	To   *time.Time

	// PaymentStatus filters on the uppercase payment status when non-empty.
	PaymentStatus string

	// Limit caps the number of rows returned; 0 means no cap.
	Limit int
}

// OrderRepository defines the interface for order record persistence.
type OrderRepository interface {
	// Upsert inserts an order record, overwriting any existing record with
	// the same order id.
	Upsert(ctx context.Context, record *model.OrderRecord) error

	// GetByID retrieves a single order record by its order id.
	GetByID(ctx context.Context, orderID string) (*model.OrderRecord, error)

	// List retrieves order records matching the filter, ordered by original
	// order id then item index.
	List(ctx context.Context, filter Filter) ([]model.OrderRecord, error)

	// UpdateFulfillment sets tracking details on an existing record.
	// Returns model.ErrOrderNotFound if the order id is unknown.
	UpdateFulfillment(ctx context.Context, orderID string, update model.FulfillmentUpdate) error
}

// ManifestRepository defines the interface for manifest record persistence.
type ManifestRepository interface {
	// Upsert inserts a manifest record, overwriting any existing record with
	// the same sale order number.
	Upsert(ctx context.Context, record *model.ManifestRecord) error

	// List retrieves manifest records for the given order ids; an empty slice
	// of ids returns all records.
	List(ctx context.Context, orderIDs []string) ([]model.ManifestRecord, error)
}
