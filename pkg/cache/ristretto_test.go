package cache

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRistrettoCache(t *testing.T) {
	cacheInterface, err := NewRistrettoCache(&RistrettoConfig{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
		Logger:      zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	defer cacheInterface.Close()

	cache := cacheInterface.(*RistrettoCache)

	t.Run("set-and-get", func(t *testing.T) {
		if !cache.Set("listing:1", "snapshot", time.Hour) {
			t.Error("expected Set to succeed")
		}

		// Ristretto buffers writes.
		cache.Wait()

		value, found := cache.Get("listing:1")
		if !found {
			t.Fatal("expected key to be found")
		}
		if value != "snapshot" {
			t.Errorf("expected %q, got %q", "snapshot", value)
		}
	})

	t.Run("get-missing-key", func(t *testing.T) {
		_, found := cache.Get("listing:nonexistent")
		if found {
			t.Error("expected key to not be found")
		}
	})

	t.Run("delete", func(t *testing.T) {
		cache.Set("listing:2", "snapshot", time.Hour)
		cache.Wait()

		if _, found := cache.Get("listing:2"); !found {
			t.Error("expected key to exist before delete")
		}

		cache.Delete("listing:2")

		if _, found := cache.Get("listing:2"); found {
			t.Error("expected key to be deleted")
		}
	})

	t.Run("ttl-expiration", func(t *testing.T) {
		cache.Set("listing:3", "snapshot", 200*time.Millisecond)
		cache.Wait()

		if _, found := cache.Get("listing:3"); !found {
			t.Error("expected key to exist before TTL expires")
		}

		time.Sleep(300 * time.Millisecond)

		if _, found := cache.Get("listing:3"); found {
			t.Error("expected key to be expired after TTL")
		}
	})

	t.Run("clear", func(t *testing.T) {
		cache.Set("listing:4", "a", time.Hour)
		cache.Set("listing:5", "b", time.Hour)
		cache.Wait()

		_, found4 := cache.Get("listing:4")
		_, found5 := cache.Get("listing:5")
		if !found4 || !found5 {
			t.Skip("Ristretto probabilistic admission - some keys not admitted")
		}

		cache.Clear()

		if _, found := cache.Get("listing:4"); found {
			t.Error("expected cache to be empty after clear")
		}
	})
}
