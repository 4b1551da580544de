package integration

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the order and manifest tables.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS order_records (
			order_id TEXT PRIMARY KEY,
			original_order_id BIGINT NOT NULL,
			order_date TIMESTAMPTZ,
			payment_status TEXT NOT NULL DEFAULT '',
			fulfillment_status TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			street_address TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			postal_code TEXT NOT NULL DEFAULT '',
			subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
			tax DOUBLE PRECISION NOT NULL DEFAULT 0,
			shipping_charge DOUBLE PRECISION NOT NULL DEFAULT 0,
			discount DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			item_index INT NOT NULL,
			translated_name TEXT NOT NULL DEFAULT '',
			sku TEXT NOT NULL DEFAULT '',
			quantity INT NOT NULL DEFAULT 1,
			total_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			size TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			custom_size_note TEXT NOT NULL DEFAULT '',
			tracking_number TEXT NOT NULL DEFAULT '',
			shipping_provider TEXT NOT NULL DEFAULT '',
			weight INT NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS manifest_records (
			sale_order_number TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			pickup_location TEXT NOT NULL DEFAULT '',
			transport_mode TEXT NOT NULL DEFAULT '',
			payment_mode TEXT NOT NULL DEFAULT '',
			customer_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			postal_code TEXT NOT NULL DEFAULT '',
			item_sku TEXT NOT NULL DEFAULT '',
			item_sku_name TEXT NOT NULL DEFAULT '',
			quantity INT NOT NULL DEFAULT 1,
			unit_item_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			package_length_cm INT NOT NULL DEFAULT 0,
			package_width_cm INT NOT NULL DEFAULT 0,
			package_height_cm INT NOT NULL DEFAULT 0,
			weight_grams INT NOT NULL DEFAULT 0
		);
	`

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}
