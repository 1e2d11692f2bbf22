package cache

import (
	"container/list"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxSize is the default entry capacity of a BoundedCache.
const DefaultMaxSize = 100

// evictFraction is the share of capacity removed in one eviction batch.
// Evictions are batched so a full cache does not evict on every insert.
const evictFraction = 0.2

// BoundedCache is an insertion-ordered, size-bounded store of memoized
// query results. Freshness is decided at read time: the caller supplies
// a TTL with every Get and an entry older than that TTL is treated as a
// miss and dropped. A hit promotes the entry to the most recently used
// position, so insertion order approximates recency order and batch
// eviction removes the entries least worth keeping.
type BoundedCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*list.Element
	order   *list.List // front = oldest, back = most recent
	now     func() time.Time
	logger  *zap.Logger
}

type boundedEntry struct {
	key      string
	value    interface{}
	storedAt time.Time
}

// BoundedOption configures a BoundedCache.
type BoundedOption func(*BoundedCache)

// WithMaxSize overrides the default entry capacity.
func WithMaxSize(n int) BoundedOption {
	return func(c *BoundedCache) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithClock overrides the time source. Used by tests to control expiry.
func WithClock(now func() time.Time) BoundedOption {
	return func(c *BoundedCache) {
		c.now = now
	}
}

// NewBoundedCache creates a BoundedCache with the given logger and options.
func NewBoundedCache(logger *zap.Logger, opts ...BoundedOption) *BoundedCache {
	c := &BoundedCache{
		maxSize: DefaultMaxSize,
		entries: make(map[string]*list.Element),
		order:   list.New(),
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key if it is younger than ttl.
// A fresh hit is promoted to the most recently used position. An entry
// older than ttl is removed and reported as a miss.
func (c *BoundedCache) Get(key string, ttl time.Duration) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		QueryCacheMissesTotal.Inc()
		return nil, false
	}

	entry := elem.Value.(*boundedEntry)
	if c.now().Sub(entry.storedAt) >= ttl {
		c.removeLocked(elem)
		QueryCacheExpiredTotal.Inc()
		QueryCacheMissesTotal.Inc()
		c.logger.Debug("query-cache-expired", zap.String("key", key))
		return nil, false
	}

	c.order.MoveToBack(elem)
	QueryCacheHitsTotal.Inc()
	return entry.value, true
}

// Set stores value under key, evicting the oldest batch of entries first
// when the cache is at capacity. Setting an existing key updates the
// value in place and promotes it.
func (c *BoundedCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*boundedEntry)
		entry.value = value
		entry.storedAt = c.now()
		c.order.MoveToBack(elem)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictBatchLocked()
	}

	elem := c.order.PushBack(&boundedEntry{
		key:      key,
		value:    value,
		storedAt: c.now(),
	})
	c.entries[key] = elem
	QueryCacheSetsTotal.Inc()
}

// Delete removes the entry for key, if present.
func (c *BoundedCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.removeLocked(elem)
		QueryCacheInvalidationsTotal.Inc()
	}
}

// Clear removes all entries.
func (c *BoundedCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.logger.Debug("query-cache-cleared")
}

// Len returns the current entry count.
func (c *BoundedCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// evictBatchLocked removes the oldest ceil(maxSize * evictFraction)
// entries. Caller must hold c.mu.
func (c *BoundedCache) evictBatchLocked() {
	n := int(math.Ceil(float64(c.maxSize) * evictFraction))
	for i := 0; i < n; i++ {
		oldest := c.order.Front()
		if oldest == nil {
			return
		}
		c.removeLocked(oldest)
		QueryCacheEvictionsTotal.Inc()
	}
	c.logger.Debug("query-cache-evicted-batch", zap.Int("count", n))
}

func (c *BoundedCache) removeLocked(elem *list.Element) {
	entry := elem.Value.(*boundedEntry)
	c.order.Remove(elem)
	delete(c.entries, entry.key)
}
