package cache

import "testing"

// TestMetrics_Registration tests all metrics are initialized
func TestMetrics_Registration(t *testing.T) {
	if QueryCacheHitsTotal == nil {
		t.Error("QueryCacheHitsTotal not registered")
	}
	if QueryCacheMissesTotal == nil {
		t.Error("QueryCacheMissesTotal not registered")
	}
	if QueryCacheSetsTotal == nil {
		t.Error("QueryCacheSetsTotal not registered")
	}
	if QueryCacheExpiredTotal == nil {
		t.Error("QueryCacheExpiredTotal not registered")
	}
	if QueryCacheEvictionsTotal == nil {
		t.Error("QueryCacheEvictionsTotal not registered")
	}
	if QueryCacheInvalidationsTotal == nil {
		t.Error("QueryCacheInvalidationsTotal not registered")
	}
	if SnapshotCacheHitsTotal == nil {
		t.Error("SnapshotCacheHitsTotal not registered")
	}
	if SnapshotCacheMissesTotal == nil {
		t.Error("SnapshotCacheMissesTotal not registered")
	}
	if SnapshotCacheSetsTotal == nil {
		t.Error("SnapshotCacheSetsTotal not registered")
	}
}

// TestMetrics_CounterIncrement tests counters can be incremented
func TestMetrics_CounterIncrement(t *testing.T) {
	QueryCacheHitsTotal.Inc()
	QueryCacheMissesTotal.Inc()
	SnapshotCacheHitsTotal.Inc()
}
