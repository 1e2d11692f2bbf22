package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/RakanDouli/souq-client/internal/circuitbreaker"
	"github.com/RakanDouli/souq-client/internal/currency"
	"github.com/RakanDouli/souq-client/internal/listings"
	"github.com/RakanDouli/souq-client/internal/query"
	"github.com/RakanDouli/souq-client/pkg/cache"
	"github.com/RakanDouli/souq-client/pkg/config"
	"github.com/RakanDouli/souq-client/pkg/graphql"
	"github.com/RakanDouli/souq-client/pkg/prefs"
)

// loadEnvironment loads .env, the config, and the logger. Every command
// starts here.
func loadEnvironment() (*config.Config, *zap.Logger, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validate config: %w", err)
	}

	logger, err := config.NewLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	return cfg, logger, nil
}

// newQueries builds the cached GraphQL client used by one-off commands.
// The transport sits behind a circuit breaker so a dead API fails fast.
func newQueries(cfg *config.Config, logger *zap.Logger) (*query.CachedClient, error) {
	tokens := &graphql.EnvTokenProvider{Key: "SOUQ_AUTH_TOKEN"}
	transport := graphql.NewClient(cfg.GraphQLEndpoint, tokens, logger)

	breaker, err := circuitbreaker.New(&circuitbreaker.Config{
		FailureThreshold: cfg.BreakerFailureThreshold,
		Cooldown:         cfg.BreakerCooldown,
		Logger:           logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create circuit breaker: %w", err)
	}

	resultCache := cache.NewBoundedCache(logger, cache.WithMaxSize(cfg.CacheMaxSize))
	return query.NewCachedClient(query.NewGuardedTransport(transport, breaker), resultCache, logger), nil
}

// newListingsService builds the read service over the cached client.
func newListingsService(cfg *config.Config, logger *zap.Logger, queries *query.CachedClient) (*listings.Service, error) {
	snapshots, err := cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: int64(cfg.CacheMaxSize) * 10,
		MaxCost:     int64(cfg.CacheMaxSize),
		BufferItems: 64,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create snapshot cache: %w", err)
	}

	return listings.New(&listings.Config{
		Queries:     queries,
		Snapshots:   snapshots,
		SearchTTL:   cfg.SearchTTL,
		DetailTTL:   cfg.ListingTTL,
		CategoryTTL: cfg.CategoryTTL,
		Logger:      logger,
	}), nil
}

// loadRates fetches the current rate table, falling back to the seeded
// table when the remote query fails.
func loadRates(ctx context.Context, cfg *config.Config, logger *zap.Logger, queries *query.CachedClient) currency.RateTable {
	refresher := currency.NewRefresher(&currency.RefresherConfig{
		Queries:  queries,
		Interval: cfg.RatesRefreshInterval,
		Logger:   logger,
	})
	if err := refresher.Refresh(ctx); err != nil {
		logger.Warn("rate-refresh-failed", zap.Error(err))
	}
	return refresher.Table()
}

// displayCurrency resolves the currency used to render prices: the
// saved preference wins, then the configured default.
func displayCurrency(cfg *config.Config, logger *zap.Logger) string {
	store, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		logger.Warn("prefs-unavailable", zap.Error(err))
		return cfg.DefaultDisplayCurrency
	}

	if saved, ok := store.Get(prefs.KeyDisplayCurrency); ok && saved != "" {
		return saved
	}
	return cfg.DefaultDisplayCurrency
}

// renderPrice converts a minor-unit amount into the display currency
// and formats it. Conversion is fail-soft: with no known rate the
// amount renders in its original currency.
func renderPrice(amountMinor int64, from, display string, rates currency.RateTable) string {
	if _, ok := rates.Rate(from, display); !ok && from != display {
		return currency.FormatMinor(amountMinor, from)
	}
	return currency.FormatMinor(currency.Convert(amountMinor, from, display, rates), display)
}
