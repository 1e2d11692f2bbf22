package currency

import (
	"context"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/RakanDouli/souq-client/internal/query"
)

const exchangeRatesQuery = `query ExchangeRates { exchangeRates { from to rate } }`

// MinUSDToSYPRate is the sanity floor for a fetched USD→SYP rate.
// Anything at or below it is clearly wrong and the whole payload is
// rejected in favor of the current table.
const MinUSDToSYPRate = 100.0

// fallbackRates are approximate constants used until a plausible remote
// table arrives. Stale but renderable beats blank.
var fallbackRates = RateTable{
	RateKey(USD, SYP): 13000,
	RateKey(SYP, USD): 1.0 / 13000,
	RateKey(EUR, SYP): 14000,
	RateKey(SYP, EUR): 1.0 / 14000,
	RateKey(USD, EUR): 0.93,
	RateKey(EUR, USD): 1.08,
}

// Refresher keeps an exchange-rate table fresh by polling the remote
// rates query. Reads always succeed: the table starts from hardcoded
// fallbacks and only ever moves to a payload that passed the sanity
// check.
type Refresher struct {
	queries  *query.CachedClient
	interval time.Duration
	logger   *zap.Logger

	mu    sync.RWMutex
	table RateTable
}

// RefresherConfig holds rate refresher configuration.
type RefresherConfig struct {
	Queries  *query.CachedClient
	Interval time.Duration
	Logger   *zap.Logger
}

// NewRefresher creates a rate refresher seeded with the fallback table.
func NewRefresher(cfg *RefresherConfig) *Refresher {
	table := make(RateTable, len(fallbackRates))
	for k, v := range fallbackRates {
		table[k] = v
	}

	return &Refresher{
		queries:  cfg.Queries,
		interval: cfg.Interval,
		logger:   cfg.Logger,
		table:    table,
	}
}

// Table returns a snapshot of the current rate table.
func (r *Refresher) Table() RateTable {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(RateTable, len(r.table))
	for k, v := range r.table {
		snapshot[k] = v
	}
	return snapshot
}

// Run polls the remote rates query until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) error {
	r.logger.Info("rate-refresher-starting",
		zap.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Initial refresh
	err := r.Refresh(ctx)
	if err != nil {
		r.logger.Warn("initial-rate-refresh-failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("rate-refresher-stopping")
			return ctx.Err()
		case <-ticker.C:
			err := r.Refresh(ctx)
			if err != nil {
				r.logger.Warn("rate-refresh-failed", zap.Error(err))
			}
		}
	}
}

// Refresh fetches the remote rate table once. A fetch failure or an
// implausible payload leaves the current table untouched.
func (r *Refresher) Refresh(ctx context.Context) error {
	RefreshTotal.Inc()

	data, err := r.queries.Request(ctx, exchangeRatesQuery, nil, false)
	if err != nil {
		RefreshErrorsTotal.Inc()
		return fmt.Errorf("fetch exchange rates: %w", err)
	}

	var payload struct {
		ExchangeRates []struct {
			From string  `json:"from"`
			To   string  `json:"to"`
			Rate float64 `json:"rate"`
		} `json:"exchangeRates"`
	}
	err = json.Unmarshal(data, &payload)
	if err != nil {
		RefreshErrorsTotal.Inc()
		return fmt.Errorf("decode exchange rates: %w", err)
	}

	fetched := make(RateTable, len(payload.ExchangeRates))
	for _, entry := range payload.ExchangeRates {
		if entry.Rate <= 0 {
			continue
		}
		fetched[RateKey(entry.From, entry.To)] = entry.Rate
	}

	if !plausible(fetched) {
		RefreshRejectedTotal.Inc()
		r.logger.Warn("rate-table-rejected",
			zap.Int("entries", len(fetched)))
		return fmt.Errorf("exchange rates failed sanity check")
	}

	r.mu.Lock()
	r.table = fetched
	r.mu.Unlock()

	r.logger.Debug("rate-table-refreshed", zap.Int("entries", len(fetched)))
	return nil
}

// plausible rejects empty payloads and any table whose USD→SYP rate is
// at or below the sanity floor.
func plausible(table RateTable) bool {
	if len(table) == 0 {
		return false
	}
	rate, ok := table.Rate(USD, SYP)
	if !ok {
		return false
	}
	return rate > MinUSDToSYPRate
}
