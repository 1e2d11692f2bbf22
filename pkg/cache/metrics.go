package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	QueryCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_query_cache_hits_total",
		Help: "Total number of query cache hits",
	})

	QueryCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_query_cache_misses_total",
		Help: "Total number of query cache misses",
	})

	QueryCacheSetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_query_cache_sets_total",
		Help: "Total number of query cache inserts",
	})

	QueryCacheExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_query_cache_expired_total",
		Help: "Total number of entries dropped on read because their TTL had elapsed",
	})

	QueryCacheEvictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_query_cache_evictions_total",
		Help: "Total number of entries removed by batch eviction",
	})

	QueryCacheInvalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_query_cache_invalidations_total",
		Help: "Total number of entries removed by explicit invalidation",
	})

	SnapshotCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_snapshot_cache_hits_total",
		Help: "Total number of snapshot cache hits",
	})

	SnapshotCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_snapshot_cache_misses_total",
		Help: "Total number of snapshot cache misses",
	})

	SnapshotCacheSetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_snapshot_cache_sets_total",
		Help: "Total number of snapshot cache sets",
	})
)
