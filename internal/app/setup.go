package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RakanDouli/souq-client/internal/circuitbreaker"
	"github.com/RakanDouli/souq-client/internal/currency"
	"github.com/RakanDouli/souq-client/internal/query"
	"github.com/RakanDouli/souq-client/internal/tracking"
	"github.com/RakanDouli/souq-client/pkg/cache"
	"github.com/RakanDouli/souq-client/pkg/config"
	"github.com/RakanDouli/souq-client/pkg/graphql"
	"github.com/RakanDouli/souq-client/pkg/healthprobe"
	"github.com/RakanDouli/souq-client/pkg/httpserver"
	"github.com/RakanDouli/souq-client/pkg/subscription"
)

const newListingsSubscription = `subscription NewListings($categoryId: ID) {
  listingAdded(categoryId: $categoryId) { id title priceMinor currency }
}`

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := healthprobe.New()

	queries, err := setupQueries(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup queries: %w", err)
	}
	refresher := setupRefresher(cfg, logger, queries)

	tracker, err := setupTracker(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup tracker: %w", err)
	}

	httpServer := setupHTTPServer(cfg, logger, healthChecker, refresher, tracker)

	var feed *subscription.Client
	if cfg.FeedCategory != "" {
		feed = setupFeed(cfg, logger)
	}

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		queries:       queries,
		refresher:     refresher,
		feed:          feed,
		tracker:       tracker,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupQueries(cfg *config.Config, logger *zap.Logger) (*query.CachedClient, error) {
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

func setupRefresher(cfg *config.Config, logger *zap.Logger, queries *query.CachedClient) *currency.Refresher {
	return currency.NewRefresher(&currency.RefresherConfig{
		Queries:  queries,
		Interval: cfg.RatesRefreshInterval,
		Logger:   logger,
	})
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	refresher *currency.Refresher,
	tracker tracking.Tracker,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		RateSource:    refresher,
		Views:         tracker,
	})
}

func setupTracker(cfg *config.Config, logger *zap.Logger) (tracking.Tracker, error) {
	return tracking.FromConfig(cfg, logger)
}

func setupFeed(cfg *config.Config, logger *zap.Logger) *subscription.Client {
	return subscription.NewClient(subscription.Config{
		URL:         cfg.SubscriptionWSURL,
		Document:    newListingsSubscription,
		Variables:   map[string]interface{}{"categoryId": cfg.FeedCategory},
		Tokens:      &graphql.EnvTokenProvider{Key: "SOUQ_AUTH_TOKEN"},
		DialTimeout: cfg.WSDialTimeout,
		BufferSize:  cfg.WSEventBufferSize,
		Backoff: subscription.BackoffConfig{
			InitialDelay: cfg.WSReconnectInitial,
			MaxDelay:     cfg.WSReconnectMaxDelay,
			Multiplier:   cfg.WSReconnectMultiplier,
			Jitter:       0.2,
		},
		Logger: logger,
	})
}
