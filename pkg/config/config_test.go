package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("expected default HTTP port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.CacheMaxSize != 100 {
		t.Errorf("expected default cache size 100, got %d", cfg.CacheMaxSize)
	}
	if cfg.WishlistTTL != time.Minute {
		t.Errorf("expected default wishlist ttl 1m, got %v", cfg.WishlistTTL)
	}
	if cfg.DefaultDisplayCurrency != "SYP" {
		t.Errorf("expected default display currency SYP, got %q", cfg.DefaultDisplayCurrency)
	}
	if cfg.TrackingMode != "console" {
		t.Errorf("expected default tracking mode console, got %q", cfg.TrackingMode)
	}
	if cfg.PrefsPath == "" {
		t.Error("expected a default prefs path")
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("SOUQ_CACHE_MAX_SIZE", "500")
	t.Setenv("SOUQ_SEARCH_TTL", "90s")
	t.Setenv("SOUQ_DISPLAY_CURRENCY", "USD")
	t.Setenv("TRACKING_MODE", "postgres")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.CacheMaxSize != 500 {
		t.Errorf("expected cache size 500, got %d", cfg.CacheMaxSize)
	}
	if cfg.SearchTTL != 90*time.Second {
		t.Errorf("expected search ttl 90s, got %v", cfg.SearchTTL)
	}
	if cfg.DefaultDisplayCurrency != "USD" {
		t.Errorf("expected USD, got %q", cfg.DefaultDisplayCurrency)
	}
	if cfg.TrackingMode != "postgres" {
		t.Errorf("expected postgres, got %q", cfg.TrackingMode)
	}
}

func TestLoadFromEnv_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("SOUQ_CACHE_MAX_SIZE", "not-a-number")
	t.Setenv("SOUQ_SEARCH_TTL", "soon")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.CacheMaxSize != 100 {
		t.Errorf("malformed int should fall back to default, got %d", cfg.CacheMaxSize)
	}
	if cfg.SearchTTL != 30*time.Second {
		t.Errorf("malformed duration should fall back to default, got %v", cfg.SearchTTL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "empty-port", mutate: func(c *Config) { c.HTTPPort = "" }, wantErr: true},
		{name: "empty-endpoint", mutate: func(c *Config) { c.GraphQLEndpoint = "" }, wantErr: true},
		{name: "zero-cache-size", mutate: func(c *Config) { c.CacheMaxSize = 0 }, wantErr: true},
		{name: "bad-tracking-mode", mutate: func(c *Config) { c.TrackingMode = "kafka" }, wantErr: true},
		{name: "bad-currency", mutate: func(c *Config) { c.DefaultDisplayCurrency = "GBP" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromEnv()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
