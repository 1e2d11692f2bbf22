package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Marketplace API
	GraphQLEndpoint   string
	SubscriptionWSURL string
	RequestTimeout    time.Duration

	// Circuit breaker over the GraphQL transport
	BreakerFailureThreshold int
	BreakerCooldown         time.Duration

	// Query cache
	CacheMaxSize int
	SearchTTL    time.Duration
	ListingTTL   time.Duration
	CategoryTTL  time.Duration
	WishlistTTL  time.Duration

	// Currency
	RatesRefreshInterval   time.Duration
	DefaultDisplayCurrency string
	PrefsPath              string

	// Live feed
	FeedCategory          string
	WSDialTimeout         time.Duration
	WSReconnectInitial    time.Duration
	WSReconnectMaxDelay   time.Duration
	WSReconnectMultiplier float64
	WSEventBufferSize     int

	// View tracking
	TrackingMode string // "postgres" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Marketplace API defaults
		GraphQLEndpoint:   getEnvOrDefault("SOUQ_GRAPHQL_URL", "https://api.souq-syria.com/graphql"),
		SubscriptionWSURL: getEnvOrDefault("SOUQ_SUBSCRIPTIONS_WS_URL", "wss://api.souq-syria.com/graphql/ws"),
		RequestTimeout:    getDurationOrDefault("SOUQ_REQUEST_TIMEOUT", 15*time.Second),

		// Circuit breaker defaults
		BreakerFailureThreshold: getIntOrDefault("SOUQ_BREAKER_FAILURE_THRESHOLD", 5),
		BreakerCooldown:         getDurationOrDefault("SOUQ_BREAKER_COOLDOWN", 30*time.Second),

		// Query cache defaults
		CacheMaxSize: getIntOrDefault("SOUQ_CACHE_MAX_SIZE", 100),
		SearchTTL:    getDurationOrDefault("SOUQ_SEARCH_TTL", 30*time.Second),
		ListingTTL:   getDurationOrDefault("SOUQ_LISTING_TTL", 5*time.Minute),
		CategoryTTL:  getDurationOrDefault("SOUQ_CATEGORY_TTL", 6*time.Hour),
		WishlistTTL:  getDurationOrDefault("SOUQ_WISHLIST_TTL", time.Minute),

		// Currency defaults
		RatesRefreshInterval:   getDurationOrDefault("SOUQ_RATES_REFRESH_INTERVAL", time.Hour),
		DefaultDisplayCurrency: getEnvOrDefault("SOUQ_DISPLAY_CURRENCY", "SYP"),
		PrefsPath:              getEnvOrDefault("SOUQ_PREFS_PATH", defaultPrefsPath()),

		// Live feed defaults
		FeedCategory:          os.Getenv("SOUQ_FEED_CATEGORY"),
		WSDialTimeout:         getDurationOrDefault("WS_DIAL_TIMEOUT", 10*time.Second),
		WSReconnectInitial:    getDurationOrDefault("WS_RECONNECT_INITIAL_DELAY", 1*time.Second),
		WSReconnectMaxDelay:   getDurationOrDefault("WS_RECONNECT_MAX_DELAY", 30*time.Second),
		WSReconnectMultiplier: getFloat64OrDefault("WS_RECONNECT_BACKOFF_MULTIPLIER", 2.0),
		WSEventBufferSize:     getIntOrDefault("WS_EVENT_BUFFER_SIZE", 256),

		// View tracking defaults
		TrackingMode: getEnvOrDefault("TRACKING_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "souq"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "souq123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "souq_client"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.GraphQLEndpoint == "" {
		return fmt.Errorf("SOUQ_GRAPHQL_URL cannot be empty")
	}

	if c.CacheMaxSize <= 0 {
		return fmt.Errorf("SOUQ_CACHE_MAX_SIZE must be positive, got %d", c.CacheMaxSize)
	}

	if c.BreakerFailureThreshold <= 0 {
		return fmt.Errorf("SOUQ_BREAKER_FAILURE_THRESHOLD must be positive, got %d", c.BreakerFailureThreshold)
	}

	if c.TrackingMode != "console" && c.TrackingMode != "postgres" {
		return fmt.Errorf("TRACKING_MODE must be 'console' or 'postgres', got %q", c.TrackingMode)
	}

	switch c.DefaultDisplayCurrency {
	case "USD", "EUR", "SYP":
	default:
		return fmt.Errorf("SOUQ_DISPLAY_CURRENCY must be USD, EUR or SYP, got %q", c.DefaultDisplayCurrency)
	}

	return nil
}

func defaultPrefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".souq/prefs.json"
	}
	return filepath.Join(home, ".souq", "prefs.json")
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
