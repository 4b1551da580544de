package repository

import (
	"context"
	"fmt"

	"packline/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// manifestRepository implements the ManifestRepository interface using PostgreSQL.
type manifestRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewManifestRepository creates a new PostgreSQL-backed manifest repository.
func NewManifestRepository(pool *pgxpool.Pool, logger zerolog.Logger) ManifestRepository {
	return &manifestRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "manifest").Logger(),
	}
}

const manifestColumns = `
	sale_order_number, order_id, pickup_location, transport_mode, payment_mode,
	customer_name, email, phone, address, city, state, country, postal_code,
	item_sku, item_sku_name, quantity, unit_item_price,
	package_length_cm, package_width_cm, package_height_cm, weight_grams`

// Upsert inserts a manifest record, overwriting any existing record with the
// same sale order number.
func (r *manifestRepository) Upsert(ctx context.Context, record *model.ManifestRecord) error {
	query := `
		INSERT INTO manifest_records (` + manifestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (sale_order_number) DO UPDATE SET
			order_id = EXCLUDED.order_id,
			pickup_location = EXCLUDED.pickup_location,
			transport_mode = EXCLUDED.transport_mode,
			payment_mode = EXCLUDED.payment_mode,
			customer_name = EXCLUDED.customer_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			country = EXCLUDED.country,
			postal_code = EXCLUDED.postal_code,
			item_sku = EXCLUDED.item_sku,
			item_sku_name = EXCLUDED.item_sku_name,
			quantity = EXCLUDED.quantity,
			unit_item_price = EXCLUDED.unit_item_price,
			package_length_cm = EXCLUDED.package_length_cm,
			package_width_cm = EXCLUDED.package_width_cm,
			package_height_cm = EXCLUDED.package_height_cm,
			weight_grams = EXCLUDED.weight_grams
	`

	_, err := r.pool.Exec(ctx, query,
		record.SaleOrderNumber, record.OrderID, record.PickupLocation,
		record.TransportMode, record.PaymentMode,
		record.CustomerName, record.Email, record.Phone, record.Address,
		record.City, record.State, record.Country, record.PostalCode,
		record.ItemSKU, record.ItemSKUName, record.Quantity, record.UnitItemPrice,
		record.PackageLengthCM, record.PackageWidthCM, record.PackageHeightCM,
		record.WeightGrams,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("sale_order_number", record.SaleOrderNumber).
			Msg("failed to upsert manifest record")
		return fmt.Errorf("failed to upsert manifest record: %w", err)
	}

	r.logger.Debug().
		Str("sale_order_number", record.SaleOrderNumber).
		Msg("manifest record upserted")

	return nil
}

// List retrieves manifest records for the given order ids; an empty slice of
// ids returns all records.
func (r *manifestRepository) List(ctx context.Context, orderIDs []string) ([]model.ManifestRecord, error) {
	query := `SELECT ` + manifestColumns + ` FROM manifest_records`
	var args []any
	if len(orderIDs) > 0 {
		query += ` WHERE order_id = ANY($1)`
		args = append(args, orderIDs)
	}
	query += ` ORDER BY sale_order_number`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query manifest records")
		return nil, fmt.Errorf("failed to query manifest records: %w", err)
	}
	defer rows.Close()

	var records []model.ManifestRecord
	for rows.Next() {
		var record model.ManifestRecord
		err := rows.Scan(
			&record.SaleOrderNumber, &record.OrderID, &record.PickupLocation,
			&record.TransportMode, &record.PaymentMode,
			&record.CustomerName, &record.Email, &record.Phone, &record.Address,
			&record.City, &record.State, &record.Country, &record.PostalCode,
			&record.ItemSKU, &record.ItemSKUName, &record.Quantity, &record.UnitItemPrice,
			&record.PackageLengthCM, &record.PackageWidthCM, &record.PackageHeightCM,
			&record.WeightGrams,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan manifest record row")
			return nil, fmt.Errorf("failed to scan manifest record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating manifest record rows")
		return nil, fmt.Errorf("error iterating manifest records: %w", err)
	}

	return records, nil
}
