package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Pipeline  PipelineConfig
	Manifest  ManifestConfig
	Exclusion ExclusionConfig
	Backup    BackupConfig
	Events    EventsConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string
}

// PipelineConfig holds settings for the order-normalization pipeline.
type PipelineConfig struct {
	// IDStrategy selects how per-item order ids are derived:
	// "weekday" (legacy, date-dependent) or "stable" (content-derived).
	IDStrategy string
}

// ManifestConfig holds the carrier-manifest constants. These are injected
// into the builder rather than hardcoded so tests and deployments can vary
// them.
type ManifestConfig struct {
	SaleOrderPrefix string
	PickupLocation  string
	TransportMode   string
	State           string

	CODSurcharge float64
	CODThreshold float64

	PackageLengthCM int
	PackageWidthCM  int
	PackageHeightCM int
	WeightGrams     int
}

// ExclusionConfig holds the test-order exclusion set configuration.
// Source "static" uses OrderNumbers directly; "file" and "s3" load one order
// number per line from the named location at startup.
type ExclusionConfig struct {
	Source       string // "static", "file" or "s3"
	OrderNumbers []int64
	FilePath     string
	S3Bucket     string
	S3Region     string
	S3Key        string
}

// BackupConfig holds settings for the raw-payload backup writer.
type BackupConfig struct {
	Enabled   bool
	Directory string
}

// EventsConfig holds settings for the optional Kafka event publisher.
type EventsConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// Load loads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	excluded, err := parseOrderNumbers(getEnv("EXCLUDED_ORDER_NUMBERS", "10001,10376"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXCLUDED_ORDER_NUMBERS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "packline"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Pipeline: PipelineConfig{
			IDStrategy: getEnv("ORDER_ID_STRATEGY", "weekday"),
		},
		Manifest: ManifestConfig{
			SaleOrderPrefix: getEnv("MANIFEST_SALE_ORDER_PREFIX", "PZ"),
			PickupLocation:  getEnv("MANIFEST_PICKUP_LOCATION", "franchise"),
			TransportMode:   getEnv("MANIFEST_TRANSPORT_MODE", "Surface"),
			State:           getEnv("MANIFEST_STATE", "West Bengal"),
			CODSurcharge:    getEnvAsFloat("MANIFEST_COD_SURCHARGE", 80),
			CODThreshold:    getEnvAsFloat("MANIFEST_COD_THRESHOLD", 2000),
			PackageLengthCM: getEnvAsInt("MANIFEST_PACKAGE_LENGTH_CM", 35),
			PackageWidthCM:  getEnvAsInt("MANIFEST_PACKAGE_WIDTH_CM", 25),
			PackageHeightCM: getEnvAsInt("MANIFEST_PACKAGE_HEIGHT_CM", 5),
			WeightGrams:     getEnvAsInt("MANIFEST_WEIGHT_GRAMS", 250),
		},
		Exclusion: ExclusionConfig{
			Source:       getEnv("EXCLUSION_SOURCE", "static"),
			OrderNumbers: excluded,
			FilePath:     getEnv("EXCLUSION_FILE_PATH", "data/excluded_orders.txt"),
			S3Bucket:     getEnv("EXCLUSION_S3_BUCKET", ""),
			S3Region:     getEnv("EXCLUSION_S3_REGION", "us-east-1"),
			S3Key:        getEnv("EXCLUSION_S3_KEY", "excluded_orders.txt"),
		},
		Backup: BackupConfig{
			Enabled:   getEnvAsBool("BACKUP_ENABLED", true),
			Directory: getEnv("BACKUP_DIR", "data/backups"),
		},
		Events: EventsConfig{
			Enabled: getEnvAsBool("KAFKA_ENABLED", false),
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "orders.ingested"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Pipeline.IDStrategy != "weekday" && c.Pipeline.IDStrategy != "stable" {
		return fmt.Errorf("invalid order id strategy: %s (must be weekday or stable)", c.Pipeline.IDStrategy)
	}

	if c.Manifest.SaleOrderPrefix == "" {
		return fmt.Errorf("manifest sale order prefix is required")
	}

	if c.Manifest.CODThreshold < 0 || c.Manifest.CODSurcharge < 0 {
		return fmt.Errorf("manifest COD threshold and surcharge must be non-negative")
	}

	switch c.Exclusion.Source {
	case "static":
	case "file":
		if c.Exclusion.FilePath == "" {
			return fmt.Errorf("exclusion file path is required when source is file")
		}
	case "s3":
		if c.Exclusion.S3Bucket == "" {
			return fmt.Errorf("exclusion S3 bucket is required when source is s3")
		}
		if c.Exclusion.S3Region == "" {
			return fmt.Errorf("exclusion S3 region is required when source is s3")
		}
	default:
		return fmt.Errorf("invalid exclusion source: %s (must be static, file or s3)", c.Exclusion.Source)
	}

	if c.Backup.Enabled && c.Backup.Directory == "" {
		return fmt.Errorf("backup directory is required when backups are enabled")
	}

	if c.Events.Enabled {
		if len(c.Events.Brokers) == 0 || c.Events.Brokers[0] == "" {
			return fmt.Errorf("Kafka brokers are required when events are enabled")
		}
		if c.Events.Topic == "" {
			return fmt.Errorf("Kafka topic is required when events are enabled")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// parseOrderNumbers parses a comma-separated list of order numbers.
func parseOrderNumbers(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	numbers := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("order number %q is not an integer", part)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
