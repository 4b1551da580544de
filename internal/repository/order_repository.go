package repository

import (
	"context"
	"fmt"
	"strings"

	"packline/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `
	order_id, original_order_id, order_date, payment_status, fulfillment_status,
	first_name, last_name, email, phone, city, street_address, country, postal_code,
	subtotal, tax, shipping_charge, discount, total_amount,
	item_index, translated_name, sku, quantity, total_price, size, color, custom_size_note,
	tracking_number, shipping_provider, weight`

// Upsert inserts an order record, overwriting any existing record with the
// same order id. Webhook retries delivered on the same processing day land on
// the same key.
func (r *orderRepository) Upsert(ctx context.Context, record *model.OrderRecord) error {
	query := `
		INSERT INTO order_records (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)
		ON CONFLICT (order_id) DO UPDATE SET
			original_order_id = EXCLUDED.original_order_id,
			order_date = EXCLUDED.order_date,
			payment_status = EXCLUDED.payment_status,
			fulfillment_status = EXCLUDED.fulfillment_status,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			city = EXCLUDED.city,
			street_address = EXCLUDED.street_address,
			country = EXCLUDED.country,
			postal_code = EXCLUDED.postal_code,
			subtotal = EXCLUDED.subtotal,
			tax = EXCLUDED.tax,
			shipping_charge = EXCLUDED.shipping_charge,
			discount = EXCLUDED.discount,
			total_amount = EXCLUDED.total_amount,
			item_index = EXCLUDED.item_index,
			translated_name = EXCLUDED.translated_name,
			sku = EXCLUDED.sku,
			quantity = EXCLUDED.quantity,
			total_price = EXCLUDED.total_price,
			size = EXCLUDED.size,
			color = EXCLUDED.color,
			custom_size_note = EXCLUDED.custom_size_note,
			tracking_number = EXCLUDED.tracking_number,
			shipping_provider = EXCLUDED.shipping_provider,
			weight = EXCLUDED.weight
	`

	_, err := r.pool.Exec(ctx, query,
		record.OrderID, record.OriginalOrderID, record.OrderDate,
		record.PaymentStatus, record.FulfillmentStatus,
		record.FirstName, record.LastName, record.Email, record.Phone,
		record.City, record.StreetAddress, record.Country, record.PostalCode,
		record.Subtotal, record.Tax, record.ShippingCharge, record.Discount, record.TotalAmount,
		record.ItemIndex, record.TranslatedName, record.SKU, record.Quantity,
		record.TotalPrice, record.Size, record.Color, record.CustomSizeNote,
		record.TrackingNumber, record.ShippingProvider, record.Weight,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", record.OrderID).
			Msg("failed to upsert order record")
		return fmt.Errorf("failed to upsert order record: %w", err)
	}

	r.logger.Debug().
		Str("order_id", record.OrderID).
		Msg("order record upserted")

	return nil
}

// GetByID retrieves a single order record by its order id.
func (r *orderRepository) GetByID(ctx context.Context, orderID string) (*model.OrderRecord, error) {
	query := `SELECT ` + orderColumns + ` FROM order_records WHERE order_id = $1`

	var record model.OrderRecord
	err := r.pool.QueryRow(ctx, query, orderID).Scan(orderFields(&record)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", orderID).Msg("order record not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to query order record")
		return nil, fmt.Errorf("failed to query order record: %w", err)
	}

	return &record, nil
}

// List retrieves order records matching the filter.
func (r *orderRepository) List(ctx context.Context, filter Filter) ([]model.OrderRecord, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("order_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("order_date <= $%d", len(args)))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM order_records`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY original_order_id, item_index"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order records")
		return nil, fmt.Errorf("failed to query order records: %w", err)
	}
	defer rows.Close()

	var records []model.OrderRecord
	for rows.Next() {
		var record model.OrderRecord
		if err := rows.Scan(orderFields(&record)...); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order record row")
			return nil, fmt.Errorf("failed to scan order record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order record rows")
		return nil, fmt.Errorf("error iterating order records: %w", err)
	}

	return records, nil
}

// UpdateFulfillment sets tracking details on an existing record.
func (r *orderRepository) UpdateFulfillment(ctx context.Context, orderID string, update model.FulfillmentUpdate) error {
	query := `
		UPDATE order_records
		SET tracking_number = $2, shipping_provider = $3, fulfillment_status = $4
		WHERE order_id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		orderID,
		update.TrackingNumber,
		update.ShippingProvider,
		strings.ToUpper(update.Status),
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID).
			Msg("failed to update fulfillment")
		return fmt.Errorf("failed to update fulfillment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("order_id", orderID).Msg("fulfillment update for unknown order")
		return model.ErrOrderNotFound
	}

	r.logger.Debug().
		Str("order_id", orderID).
		Str("tracking_number", update.TrackingNumber).
		Msg("fulfillment updated")

	return nil
}

// orderFields returns scan destinations in orderColumns order.
func orderFields(record *model.OrderRecord) []any {
	return []any{
		&record.OrderID, &record.OriginalOrderID, &record.OrderDate,
		&record.PaymentStatus, &record.FulfillmentStatus,
		&record.FirstName, &record.LastName, &record.Email, &record.Phone,
		&record.City, &record.StreetAddress, &record.Country, &record.PostalCode,
		&record.Subtotal, &record.Tax, &record.ShippingCharge, &record.Discount, &record.TotalAmount,
		&record.ItemIndex, &record.TranslatedName, &record.SKU, &record.Quantity,
		&record.TotalPrice, &record.Size, &record.Color, &record.CustomSizeNote,
		&record.TrackingNumber, &record.ShippingProvider, &record.Weight,
	}
}
